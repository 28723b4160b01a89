package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ipv4-waitlist-lab/internal/domain"
)

// Ledger CSV date layout: m/d/yy, as published upstream.
const ledgerDateLayout = "1/2/06"

// LedgerClient fetches and parses the historical ledger of cleared blocks.
type LedgerClient struct {
	url    string
	client *http.Client
}

// NewLedgerClient creates a client for the cleared-blocks CSV.
// An empty url selects the default endpoint.
func NewLedgerClient(url string, opts ...Option) *LedgerClient {
	if url == "" {
		url = DefaultLedgerURL
	}
	return &LedgerClient{url: url, client: buildClient(opts)}
}

// Fetch retrieves and parses the ledger.
func (c *LedgerClient) Fetch(ctx context.Context) ([]domain.ClearanceEntry, error) {
	body, err := fetch(ctx, c.client, c.url)
	if err != nil {
		return nil, err
	}
	return ParseLedger(body)
}

// ParseLedger parses the ledger CSV document.
//
// The document carries a header row; the columns of interest are the CIDR
// prefix (class parsed from the substring after the final '/') and the
// reissue date. Rows that fail to parse are skipped; only an unreadable
// document is an error.
func ParseLedger(body []byte) ([]domain.ClearanceEntry, error) {
	reader := csv.NewReader(strings.NewReader(string(body)))
	reader.FieldsPerRecord = -1 // upstream rows vary in trailing columns
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse ledger csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	prefixCol, dateCol := findLedgerColumns(records[0])

	var entries []domain.ClearanceEntry
	for _, row := range records[1:] {
		if prefixCol >= len(row) || dateCol >= len(row) {
			continue
		}
		class, ok := parseClass(row[prefixCol])
		if !ok {
			continue
		}
		resolved, err := time.Parse(ledgerDateLayout, strings.TrimSpace(row[dateCol]))
		if err != nil {
			continue
		}
		entries = append(entries, domain.ClearanceEntry{Resolved: resolved, Class: class})
	}
	return entries, nil
}

// findLedgerColumns locates the prefix and date columns by header name,
// falling back to the upstream positions (1 and 2).
func findLedgerColumns(header []string) (prefixCol, dateCol int) {
	prefixCol, dateCol = 1, 2
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "CIDR Prefix":
			prefixCol = i
		case "Date Reissued":
			dateCol = i
		}
	}
	return prefixCol, dateCol
}

// parseClass extracts the size class from a prefix string such as
// "192.0.2.0/24": the integer after the final '/'.
func parseClass(prefix string) (int, bool) {
	idx := strings.LastIndex(prefix, "/")
	if idx < 0 {
		return 0, false
	}
	class, err := strconv.Atoi(strings.TrimSpace(prefix[idx+1:]))
	if err != nil {
		return 0, false
	}
	return class, true
}
