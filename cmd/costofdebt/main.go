package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"costofcapital/pkg/core/config"
	"costofcapital/pkg/core/credit"
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
	scenarioPath := flag.String("scenario", "scenario.hjson", "HJSON scenario file with company financials")
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
	if scn.Ticker == "" {
		log.Fatal("Scenario: ticker is required")
	}
	if err := scenario.RequireFields(map[string]*float64{
		"ebit":             scn.EBITMillions,
		"interest_expense": scn.InterestExpenseMillions,
		"tax_rate":         scn.TaxRatePercent,
	}); err != nil {
		log.Fatalf("Scenario: %v", err)
	}
	if scn.Country == "" {
		log.Fatal("Scenario: country is required for the risk-free rate lookup")
	}

	refs, err := loadReferenceSet(cfg)
	if err != nil {
		log.Fatalf("Reference tables: %v", err)
	}

	fmt.Printf("🏦 Cost of Debt Analysis for %s...\n", scn.Ticker)

	client := marketdata.NewClient()
	info, err := client.FetchCompanyInfo(context.Background(), scn.Ticker)
	if err != nil {
		log.Fatalf("Company profile: %v", err)
	}
	profile := credit.ClassifyCompany(info.Ticker, info.MarketCap, info.Sector, info.Industry)

	analysis, err := engine.RunCostOfDebt(refs, profile, engine.CostOfDebtInputs{
		EBIT:            *scn.EBIT(),
		InterestExpense: *scn.InterestExpense(),
		Country:         scn.Country,
		TaxRate:         *scn.TaxRate(),
	})
	if err != nil {
		log.Fatalf("Analysis: %v", err)
	}

	rep := report.CostOfDebt(analysis)
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
