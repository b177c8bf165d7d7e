package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"costofcapital/pkg/core/config"
	"costofcapital/pkg/core/engine"
	"costofcapital/pkg/core/marketdata"
	"costofcapital/pkg/core/reference"
	"costofcapital/pkg/core/report"
	"costofcapital/pkg/core/scenario"
)

func loadReferenceSet(cfg config.Config) (*engine.ReferenceSet, error) {
	bondRows, err := reference.ReadRows(cfg.BondYieldFile)
	if err != nil {
		return nil, err
	}
	erpRows, err := reference.ReadRows(cfg.ERPFile)
	if err != nil {
		return nil, err
	}
	ratingRows, err := reference.ReadRows(cfg.RatingsFile)
	if err != nil {
		return nil, err
	}
	return engine.LoadReferenceSet(bondRows, erpRows, ratingRows)
}

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults apply when empty)")
	scenarioPath := flag.String("scenario", "scenario.hjson", "HJSON scenario file with company inputs")
	save := flag.Bool("save", false, "write the report to the configured output directory")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Config: %v", err)
		}
		cfg = loaded
	}

	scn, err := scenario.Load(*scenarioPath)
	if err != nil {
		log.Fatalf("Scenario: %v", err)
	}
	if scn.Ticker == "" || scn.IndexSymbol == "" {
		log.Fatal("Scenario: ticker and index_symbol are required")
	}
	if scn.Country == "" {
		log.Fatal("Scenario: country is required for the risk-free rate lookup")
	}

	refs, err := loadReferenceSet(cfg)
	if err != nil {
		log.Fatalf("Reference tables: %v", err)
	}

	fmt.Printf("📈 Cost of Equity Analysis for %s vs %s (%s, %s)...\n",
		scn.Ticker, scn.IndexSymbol, cfg.HistoryRange, cfg.HistoryInterval)

	ctx := context.Background()
	client := marketdata.NewClient()
	stock, err := client.FetchPriceHistory(ctx, scn.Ticker, cfg.HistoryRange, cfg.HistoryInterval)
	if err != nil {
		log.Fatalf("Price history (%s): %v", scn.Ticker, err)
	}
	index, err := client.FetchPriceHistory(ctx, scn.IndexSymbol, cfg.HistoryRange, cfg.HistoryInterval)
	if err != nil {
		log.Fatalf("Price history (%s): %v", scn.IndexSymbol, err)
	}

	// ERP country follows the index home market; manual ERP wins when set.
	erpCountry := marketdata.DetectCountry(scn.IndexSymbol)
	if erpCountry == "" {
		erpCountry = scn.Country
	}

	analysis, err := engine.RunCostOfEquity(refs, stock, index, engine.CostOfEquityInputs{
		BondCountry: scn.Country,
		ERPCountry:  erpCountry,
		ERPOverride: scn.EquityRiskPremium(),
	})
	if err != nil {
		log.Fatalf("Analysis: %v", err)
	}

	rep := report.CostOfEquity(analysis, scn.Ticker)
	fmt.Println(rep.Markdown)

	if *save {
		files, err := rep.WriteFiles(cfg.OutputDir, cfg.RenderHTML)
		if err != nil {
			log.Fatalf("Report: %v", err)
		}
		for _, f := range files {
			fmt.Printf("💾 Saved %s\n", f)
		}
	}
}
