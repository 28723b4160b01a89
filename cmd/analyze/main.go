package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ipv4-waitlist-lab/internal/config"
	"ipv4-waitlist-lab/internal/normalization"
	"ipv4-waitlist-lab/internal/replay"
	"ipv4-waitlist-lab/internal/reporting"
	"ipv4-waitlist-lab/internal/source"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	waitlistURL := flag.String("waitlist-url", "", "Waitlist JSON endpoint (overrides config)")
	ledgerURL := flag.String("ledger-url", "", "Cleared-blocks CSV document (overrides config)")
	csvOut := flag.Bool("csv", false, "Output a CSV row instead of the text report")
	noHeader := flag.Bool("no-header", false, "Omit the CSV header row")

	flag.Parse()

	logger := log.New(os.Stderr, "[analyze] ", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *waitlistURL != "" {
		cfg.Sources.WaitlistURL = *waitlistURL
	}
	if *ledgerURL != "" {
		cfg.Sources.LedgerURL = *ledgerURL
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Sources.Timeout)
	defer cancel()

	waitlist := source.NewWaitlistClient(cfg.Sources.WaitlistURL, source.WithTimeout(cfg.Sources.Timeout))
	payload, err := waitlist.Fetch(ctx)
	if err != nil {
		logger.Fatalf("fetch waitlist: %v", err)
	}

	ledgerClient := source.NewLedgerClient(cfg.Sources.LedgerURL, source.WithTimeout(cfg.Sources.Timeout))
	ledger, err := ledgerClient.Fetch(ctx)
	if err != nil {
		logger.Fatalf("fetch cleared-blocks ledger: %v", err)
	}

	snap, err := normalization.Normalize(payload)
	if err != nil {
		logger.Fatalf("parse waitlist payload: %v", err)
	}
	logger.Printf("fetched %d waitlist requests, %d ledger entries", snap.Len(), len(ledger))

	row := replay.AssembleRow(snap, nil, time.Now().UTC(), ledger)

	if *csvOut {
		if !*noHeader {
			fmt.Println(reporting.CSVHeader())
		}
		fmt.Println(reporting.RenderCSVRow(row))
		return
	}
	fmt.Print(reporting.RenderText(row))
}
