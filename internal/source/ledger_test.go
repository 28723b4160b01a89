package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const ledgerFixture = `Block, CIDR Prefix, Date Reissued
192.0.2.0,192.0.2.0/24,1/15/24
198.51.100.0,198.51.100.0/23,2/20/24
not-a-block,garbage,3/1/24
203.0.113.0,203.0.113.0/24,not-a-date
203.0.113.0,203.0.113.0/22,4/10/24
`

func TestParseLedger(t *testing.T) {
	entries, err := ParseLedger([]byte(ledgerFixture))
	if err != nil {
		t.Fatalf("ParseLedger failed: %v", err)
	}

	// Two malformed rows (bad prefix, bad date) are skipped.
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].Class != 24 {
		t.Errorf("expected class 24, got %d", entries[0].Class)
	}
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !entries[0].Resolved.Equal(want) {
		t.Errorf("expected resolved %v, got %v", want, entries[0].Resolved)
	}
	if entries[1].Class != 23 || entries[2].Class != 22 {
		t.Errorf("unexpected classes: %d, %d", entries[1].Class, entries[2].Class)
	}
}

func TestParseLedger_Empty(t *testing.T) {
	entries, err := ParseLedger([]byte(""))
	if err != nil {
		t.Fatalf("ParseLedger failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestLedgerClient_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(ledgerFixture))
	}))
	defer srv.Close()

	client := NewLedgerClient(srv.URL)
	entries, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(entries))
	}
}

func TestLedgerClient_FetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewLedgerClient(srv.URL)
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestWaitlistClient_Fetch(t *testing.T) {
	payload := `[{"waitListActionDate": "2024-01-01T00:00:00Z", "maximumCidr": 24}]`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	client := NewWaitlistClient(srv.URL)
	body, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if string(body) != payload {
		t.Errorf("unexpected body: %q", body)
	}
}
