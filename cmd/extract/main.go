package main

import (
	"flag"
	"log"
	"os"

	"ipv4-waitlist-lab/internal/extract"
)

func main() {
	inPath := flag.String("in", "", "Saved waitlist HTML page (required)")
	outPath := flag.String("out", "", "Output JSON file (default stdout)")

	flag.Parse()

	logger := log.New(os.Stderr, "[extract] ", log.LstdFlags)

	if *inPath == "" {
		logger.Fatal("--in is required")
	}

	html, err := os.ReadFile(*inPath)
	if err != nil {
		logger.Fatalf("read input: %v", err)
	}

	records, err := extract.ExtractTable(html)
	if err != nil {
		logger.Fatalf("extract table: %v", err)
	}
	logger.Printf("extracted %d records", len(records))

	data, err := extract.MarshalRecords(records)
	if err != nil {
		logger.Fatalf("encode records: %v", err)
	}
	data = append(data, '\n')

	if *outPath == "" {
		if _, err := os.Stdout.Write(data); err != nil {
			logger.Fatalf("write output: %v", err)
		}
		return
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		logger.Fatalf("write output: %v", err)
	}
}
