package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"ipv4-waitlist-lab/internal/domain"
	"ipv4-waitlist-lab/internal/storage"
)

// TimeseriesRowStore implements storage.TimeseriesRowStore using ClickHouse.
// One row per snapshot, keyed by the snapshot's reference instant.
type TimeseriesRowStore struct {
	conn *Conn
}

// NewTimeseriesRowStore creates a new TimeseriesRowStore.
func NewTimeseriesRowStore(conn *Conn) *TimeseriesRowStore {
	return &TimeseriesRowStore{conn: conn}
}

// Compile-time interface check.
var _ storage.TimeseriesRowStore = (*TimeseriesRowStore)(nil)

const rowColumns = `
	ts,
	total_requests, requests_22, requests_23, requests_24,
	added_total, added_22, added_23, added_24,
	removed_total, removed_22, removed_23, removed_24,
	flexible_count, exact_count, avg_flexibility,
	size_changes, upsize_changes, downsize_changes, flexibility_changes,
	age_0_3mo, age_3_6mo, age_6_12mo, age_12_24mo, age_over_24mo,
	age_22_0_3mo, age_22_3_6mo, age_22_6_12mo, age_22_12_24mo, age_22_over_24mo,
	age_23_0_3mo, age_23_3_6mo, age_23_6_12mo, age_23_12_24mo, age_23_over_24mo,
	age_24_0_3mo, age_24_3_6mo, age_24_6_12mo, age_24_12_24mo, age_24_over_24mo,
	mean_age_days, median_age_days, min_age_days, max_age_days,
	avg_22_cleared, avg_23_cleared, avg_24_cleared,
	quarters_22, years_22, quarters_23, years_23, quarters_24, years_24
`

// Insert adds one row. Returns ErrDuplicateKey if the timestamp exists;
// the table is append-only even though the engine would replace.
func (s *TimeseriesRowStore) Insert(ctx context.Context, row *domain.AggregateRow) error {
	if row == nil || row.Timestamp.IsZero() {
		return storage.ErrInvalidInput
	}

	exists, err := s.exists(ctx, row.Timestamp)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}
	if exists {
		return storage.ErrDuplicateKey
	}

	query := "INSERT INTO waitlist_timeseries (" + rowColumns + ") VALUES (" + placeholders(53) + ")"
	if err := s.conn.Exec(ctx, query, rowValues(row)...); err != nil {
		return fmt.Errorf("insert timeseries row: %w", err)
	}
	return nil
}

// InsertBulk adds multiple rows atomically. Fails the entire batch on any
// duplicate, existing or intra-batch.
func (s *TimeseriesRowStore) InsertBulk(ctx context.Context, rows []*domain.AggregateRow) error {
	if len(rows) == 0 {
		return nil
	}

	seen := make(map[int64]struct{}, len(rows))
	for _, row := range rows {
		if row == nil || row.Timestamp.IsZero() {
			return storage.ErrInvalidInput
		}
		key := row.Timestamp.UnixNano()
		if _, dup := seen[key]; dup {
			return storage.ErrDuplicateKey
		}
		seen[key] = struct{}{}

		exists, err := s.exists(ctx, row.Timestamp)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, "INSERT INTO waitlist_timeseries ("+rowColumns+")")
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}
	for _, row := range rows {
		if err := batch.Append(rowValues(row)...); err != nil {
			return fmt.Errorf("append row: %w", err)
		}
	}
	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByTimeRange retrieves rows within [start, end] inclusive, timestamp ASC.
func (s *TimeseriesRowStore) GetByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.AggregateRow, error) {
	query := "SELECT " + rowColumns + `
		FROM waitlist_timeseries
		WHERE ts >= ? AND ts <= ?
		ORDER BY ts ASC
	`
	rows, err := s.conn.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("query timeseries rows: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// GetAll retrieves every row, timestamp ASC.
func (s *TimeseriesRowStore) GetAll(ctx context.Context) ([]*domain.AggregateRow, error) {
	query := "SELECT " + rowColumns + `
		FROM waitlist_timeseries
		ORDER BY ts ASC
	`
	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query timeseries rows: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

func (s *TimeseriesRowStore) exists(ctx context.Context, ts time.Time) (bool, error) {
	var count uint64
	err := s.conn.QueryRow(ctx,
		"SELECT count() FROM waitlist_timeseries WHERE ts = ?", ts).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func placeholders(n int) string {
	out := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ", "...)
		}
		out = append(out, '?')
	}
	return string(out)
}

// rowValues flattens a row into insert arguments in rowColumns order.
func rowValues(row *domain.AggregateRow) []any {
	values := []any{
		row.Timestamp.UTC(),
		int64(row.TotalRequests), int64(row.Requests22), int64(row.Requests23), int64(row.Requests24),
		int64(row.AddedTotal), int64(row.Added22), int64(row.Added23), int64(row.Added24),
		int64(row.RemovedTotal), int64(row.Removed22), int64(row.Removed23), int64(row.Removed24),
		int64(row.FlexibleCount), int64(row.ExactCount), row.AvgFlexibility,
		int64(row.SizeChanges), int64(row.UpsizeChanges), int64(row.DownsizeChanges), int64(row.FlexibilityChanges),
	}
	values = append(values, bucketValues(row.Ages)...)
	for _, class := range domain.Classes {
		values = append(values, bucketValues(row.AgesByClass[class])...)
	}
	values = append(values,
		row.MeanAgeDays, row.MedianAgeDays, row.MinAgeDays, row.MaxAgeDays,
		row.AvgCleared22, row.AvgCleared23, row.AvgCleared24,
		row.Quarters22, row.Years22, row.Quarters23, row.Years23, row.Quarters24, row.Years24,
	)
	return values
}

func bucketValues(b domain.AgeBuckets) []any {
	return []any{
		int64(b.Under3Mo), int64(b.Mo3To6), int64(b.Mo6To12), int64(b.Mo12To24), int64(b.Over24Mo),
	}
}

func scanRows(rows driver.Rows) ([]*domain.AggregateRow, error) {
	var out []*domain.AggregateRow
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan timeseries row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timeseries rows: %w", err)
	}
	return out, nil
}

func scanRow(rows driver.Rows) (*domain.AggregateRow, error) {
	var (
		ts time.Time

		counts  [18]int64
		buckets [20]int64
		floats  [13]float64

		avgFlexibility float64
	)

	dest := []any{&ts}
	for i := 0; i < 14; i++ { // queue depth + churn + flexible/exact counts
		dest = append(dest, &counts[i])
	}
	dest = append(dest, &avgFlexibility)
	for i := 14; i < 18; i++ { // size-change stats
		dest = append(dest, &counts[i])
	}
	for i := range buckets { // overall + per-class age buckets
		dest = append(dest, &buckets[i])
	}
	for i := range floats { // age summary, rates, projections
		dest = append(dest, &floats[i])
	}

	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	row := &domain.AggregateRow{
		Timestamp: ts,

		TotalRequests: int(counts[0]),
		Requests22:    int(counts[1]),
		Requests23:    int(counts[2]),
		Requests24:    int(counts[3]),
		AddedTotal:    int(counts[4]),
		Added22:       int(counts[5]),
		Added23:       int(counts[6]),
		Added24:       int(counts[7]),
		RemovedTotal:  int(counts[8]),
		Removed22:     int(counts[9]),
		Removed23:     int(counts[10]),
		Removed24:     int(counts[11]),
		FlexibleCount: int(counts[12]),
		ExactCount:    int(counts[13]),

		AvgFlexibility: avgFlexibility,

		SizeChanges:        int(counts[14]),
		UpsizeChanges:      int(counts[15]),
		DownsizeChanges:    int(counts[16]),
		FlexibilityChanges: int(counts[17]),

		Ages: bucketsFrom(buckets[0:5]),
		AgesByClass: map[int]domain.AgeBuckets{
			domain.Class22: bucketsFrom(buckets[5:10]),
			domain.Class23: bucketsFrom(buckets[10:15]),
			domain.Class24: bucketsFrom(buckets[15:20]),
		},

		MeanAgeDays:   floats[0],
		MedianAgeDays: floats[1],
		MinAgeDays:    floats[2],
		MaxAgeDays:    floats[3],

		AvgCleared22: floats[4],
		AvgCleared23: floats[5],
		AvgCleared24: floats[6],

		Quarters22: floats[7],
		Years22:    floats[8],
		Quarters23: floats[9],
		Years23:    floats[10],
		Quarters24: floats[11],
		Years24:    floats[12],
	}
	return row, nil
}

func bucketsFrom(vals []int64) domain.AgeBuckets {
	return domain.AgeBuckets{
		Under3Mo: int(vals[0]),
		Mo3To6:   int(vals[1]),
		Mo6To12:  int(vals[2]),
		Mo12To24: int(vals[3]),
		Over24Mo: int(vals[4]),
	}
}
