package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"ipv4-waitlist-lab/internal/domain"
	"ipv4-waitlist-lab/internal/storage"
)

// TimeseriesRowStore is an in-memory implementation of
// storage.TimeseriesRowStore.
type TimeseriesRowStore struct {
	mu   sync.RWMutex
	data map[int64]*domain.AggregateRow // keyed by unix nanos of Timestamp
}

// NewTimeseriesRowStore creates a new in-memory timeseries row store.
func NewTimeseriesRowStore() *TimeseriesRowStore {
	return &TimeseriesRowStore{
		data: make(map[int64]*domain.AggregateRow),
	}
}

// Compile-time interface check.
var _ storage.TimeseriesRowStore = (*TimeseriesRowStore)(nil)

// Insert adds one row. Returns ErrDuplicateKey if the timestamp exists.
func (s *TimeseriesRowStore) Insert(_ context.Context, row *domain.AggregateRow) error {
	if row == nil || row.Timestamp.IsZero() {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := row.Timestamp.UnixNano()
	if _, exists := s.data[key]; exists {
		return storage.ErrDuplicateKey
	}
	s.data[key] = copyRow(row)
	return nil
}

// InsertBulk adds multiple rows atomically. Fails the entire batch on any
// duplicate, existing or intra-batch.
func (s *TimeseriesRowStore) InsertBulk(_ context.Context, rows []*domain.AggregateRow) error {
	if len(rows) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[int64]struct{}, len(rows))
	for _, row := range rows {
		if row == nil || row.Timestamp.IsZero() {
			return storage.ErrInvalidInput
		}
		key := row.Timestamp.UnixNano()
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, row := range rows {
		s.data[row.Timestamp.UnixNano()] = copyRow(row)
	}
	return nil
}

// GetByTimeRange retrieves rows within [start, end] inclusive, timestamp ASC.
func (s *TimeseriesRowStore) GetByTimeRange(_ context.Context, start, end time.Time) ([]*domain.AggregateRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*domain.AggregateRow
	for _, row := range s.data {
		if row.Timestamp.Before(start) || row.Timestamp.After(end) {
			continue
		}
		out = append(out, copyRow(row))
	}
	sortRows(out)
	return out, nil
}

// GetAll retrieves every row, timestamp ASC.
func (s *TimeseriesRowStore) GetAll(_ context.Context) ([]*domain.AggregateRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.AggregateRow, 0, len(s.data))
	for _, row := range s.data {
		out = append(out, copyRow(row))
	}
	sortRows(out)
	return out, nil
}

func sortRows(rows []*domain.AggregateRow) {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Timestamp.Before(rows[j].Timestamp)
	})
}

// copyRow deep-copies a row so callers cannot mutate stored data.
func copyRow(row *domain.AggregateRow) *domain.AggregateRow {
	c := *row
	if row.AgesByClass != nil {
		c.AgesByClass = make(map[int]domain.AgeBuckets, len(row.AgesByClass))
		for class, buckets := range row.AgesByClass {
			c.AgesByClass[class] = buckets
		}
	}
	return &c
}
