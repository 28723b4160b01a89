// Package reporting renders computed aggregate rows for the output sink:
// a fixed-column CSV time series or a narrative text report.
package reporting

import (
	"fmt"
	"math"
	"strings"
	"time"

	"ipv4-waitlist-lab/internal/domain"
)

// CSVHeader is the fixed column set, one statistic per column.
var csvColumns = []string{
	"timestamp",
	"total_requests", "requests_22", "requests_23", "requests_24",
	"added_total", "added_22", "added_23", "added_24",
	"removed_total", "removed_22", "removed_23", "removed_24",
	"flexible_count", "exact_count", "avg_flexibility",
	"size_changes", "upsize_changes", "downsize_changes", "flexibility_changes",
	"age_0_3mo", "age_3_6mo", "age_6_12mo", "age_12_24mo", "age_over_24mo",
	"age_22_0_3mo", "age_22_3_6mo", "age_22_6_12mo", "age_22_12_24mo", "age_22_over_24mo",
	"age_23_0_3mo", "age_23_3_6mo", "age_23_6_12mo", "age_23_12_24mo", "age_23_over_24mo",
	"age_24_0_3mo", "age_24_3_6mo", "age_24_6_12mo", "age_24_12_24mo", "age_24_over_24mo",
	"mean_age_days", "median_age_days", "min_age_days", "max_age_days",
	"avg_22_cleared_per_quarter", "avg_23_cleared_per_quarter", "avg_24_cleared_per_quarter",
	"estimated_quarters_22", "estimated_years_22",
	"estimated_quarters_23", "estimated_years_23",
	"estimated_quarters_24", "estimated_years_24",
}

// CSVHeader returns the header line without a trailing newline.
func CSVHeader() string {
	return strings.Join(csvColumns, ",")
}

// RenderCSV renders aggregate rows as a CSV string, one line per snapshot.
func RenderCSV(rows []*domain.AggregateRow, includeHeader bool) string {
	var sb strings.Builder

	if includeHeader {
		sb.WriteString(CSVHeader())
		sb.WriteByte('\n')
	}
	for _, row := range rows {
		sb.WriteString(RenderCSVRow(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderCSVRow renders one row without a trailing newline.
func RenderCSVRow(row *domain.AggregateRow) string {
	fields := []string{
		row.Timestamp.UTC().Format(time.RFC3339),

		itoa(row.TotalRequests), itoa(row.Requests22), itoa(row.Requests23), itoa(row.Requests24),
		itoa(row.AddedTotal), itoa(row.Added22), itoa(row.Added23), itoa(row.Added24),
		itoa(row.RemovedTotal), itoa(row.Removed22), itoa(row.Removed23), itoa(row.Removed24),
		itoa(row.FlexibleCount), itoa(row.ExactCount), fmt.Sprintf("%.2f", row.AvgFlexibility),
		itoa(row.SizeChanges), itoa(row.UpsizeChanges), itoa(row.DownsizeChanges), itoa(row.FlexibilityChanges),
	}
	fields = append(fields, bucketFields(row.Ages)...)
	for _, class := range domain.Classes {
		fields = append(fields, bucketFields(row.AgesByClass[class])...)
	}
	fields = append(fields,
		fmt.Sprintf("%.1f", row.MeanAgeDays),
		fmt.Sprintf("%.1f", row.MedianAgeDays),
		fmt.Sprintf("%.1f", row.MinAgeDays),
		fmt.Sprintf("%.1f", row.MaxAgeDays),

		fmt.Sprintf("%.1f", row.AvgCleared22),
		fmt.Sprintf("%.1f", row.AvgCleared23),
		fmt.Sprintf("%.1f", row.AvgCleared24),

		formatQuarters(row.Quarters22), formatYears(row.Years22),
		formatQuarters(row.Quarters23), formatYears(row.Years23),
		formatQuarters(row.Quarters24), formatYears(row.Years24),
	)
	return strings.Join(fields, ",")
}

func bucketFields(b domain.AgeBuckets) []string {
	return []string{
		itoa(b.Under3Mo), itoa(b.Mo3To6), itoa(b.Mo6To12), itoa(b.Mo12To24), itoa(b.Over24Mo),
	}
}

func itoa(n int) string {
	return fmt.Sprintf("%d", n)
}

// formatQuarters renders a whole quarter count, or "inf" for a never-
// draining queue.
func formatQuarters(q float64) string {
	if math.IsInf(q, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.0f", q)
}

func formatYears(y float64) string {
	if math.IsInf(y, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.1f", y)
}
