package reporting

import (
	"math"
	"strings"
	"testing"
	"time"

	"ipv4-waitlist-lab/internal/domain"
)

func sampleRow() *domain.AggregateRow {
	return &domain.AggregateRow{
		Timestamp:     time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		TotalRequests: 10,
		Requests22:    2,
		Requests23:    3,
		Requests24:    5,
		AddedTotal:    1,
		Added24:       1,
		AvgCleared24:  2.0,
		Quarters22:    math.Inf(1),
		Years22:       math.Inf(1),
		Quarters23:    math.Inf(1),
		Years23:       math.Inf(1),
		Quarters24:    3,
		Years24:       0.75,
	}
}

func TestRenderCSV_HeaderAndFieldCountsMatch(t *testing.T) {
	out := RenderCSV([]*domain.AggregateRow{sampleRow()}, true)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	headerFields := strings.Split(lines[0], ",")
	rowFields := strings.Split(lines[1], ",")
	if len(headerFields) != len(rowFields) {
		t.Errorf("header has %d columns, row has %d", len(headerFields), len(rowFields))
	}
}

func TestRenderCSV_NoHeader(t *testing.T) {
	out := RenderCSV([]*domain.AggregateRow{sampleRow()}, false)
	if strings.HasPrefix(out, "timestamp,") {
		t.Error("expected no header line")
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected exactly one row, got %q", out)
	}
}

func TestRenderCSVRow_InfiniteWait(t *testing.T) {
	row := RenderCSVRow(sampleRow())

	if !strings.Contains(row, ",inf,") {
		t.Errorf("expected infinite wait rendered as inf, got %q", row)
	}
	if !strings.Contains(row, "2024-06-01T12:00:00Z") {
		t.Errorf("expected RFC3339 timestamp, got %q", row)
	}
	// Finite /24 projection appears as whole quarters and fractional years.
	if !strings.HasSuffix(row, ",3,0.8") {
		t.Errorf("expected row to end with quarters_24=3, years_24=0.8, got %q", row)
	}
}

func TestRenderText_MentionsAllClasses(t *testing.T) {
	out := RenderText(sampleRow())

	for _, want := range []string{"/22", "/23", "/24", "10 requests"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected text report to contain %q", want)
		}
	}
	// Zero-rate classes explain the missing estimate instead of printing inf.
	if strings.Contains(out, "inf") {
		t.Errorf("text report must not print raw inf: %q", out)
	}
}
