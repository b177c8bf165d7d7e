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
	"costofcapital/pkg/core/report"
	"costofcapital/pkg/core/scenario"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults apply when empty)")
	scenarioPath := flag.String("scenario", "scenario.hjson", "HJSON scenario file with capital inputs")
	method := flag.String("method", "market", "capital weight basis: market or book")
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
	if err := scenario.RequireFields(map[string]*float64{
		"cost_of_equity":     scn.CostOfEquityPercent,
		"cost_of_debt":       scn.CostOfDebtPercent,
		"book_value_of_debt": scn.BookDebtMillions,
	}); err != nil {
		log.Fatalf("Scenario: %v", err)
	}

	inputs := engine.WACCInputs{
		CostOfEquity:    *scn.CostOfEquity(),
		CostOfDebt:      *scn.CostOfDebt(),
		BookValueOfDebt: *scn.BookDebt(),
	}

	switch *method {
	case "market":
		if scn.Ticker == "" {
			log.Fatal("Scenario: ticker is required for market-value weights")
		}
		if err := scenario.RequireFields(map[string]*float64{
			"interest_expense": scn.InterestExpenseMillions,
			"debt_maturity":    scn.DebtMaturityYears,
		}); err != nil {
			log.Fatalf("Scenario: %v", err)
		}
		fmt.Printf("⚖️  WACC Analysis for %s (market values)...\n", scn.Ticker)
		info, err := marketdata.NewClient().FetchCompanyInfo(context.Background(), scn.Ticker)
		if err != nil {
			log.Fatalf("Company profile: %v", err)
		}
		inputs.Method = engine.MarketValues
		inputs.MarketCap = info.MarketCap
		inputs.InterestExpense = *scn.InterestExpense()
		inputs.Maturity = *scn.DebtMaturityYears
	case "book":
		if err := scenario.RequireFields(map[string]*float64{
			"book_value_of_equity": scn.BookEquityMillions,
		}); err != nil {
			log.Fatalf("Scenario: %v", err)
		}
		fmt.Printf("⚖️  WACC Analysis for %s (book values)...\n", scn.Ticker)
		inputs.Method = engine.BookValues
		inputs.BookValueOfEquity = *scn.BookEquity()
	default:
		log.Fatalf("Unknown method %q (want market or book)", *method)
	}

	analysis, err := engine.RunWACC(inputs)
	if err != nil {
		log.Fatalf("Analysis: %v", err)
	}

	rep := report.WACC(analysis, scn.Ticker)
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
