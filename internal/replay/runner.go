// Package replay reconstructs the waitlist statistic time series by driving
// the normalizer, differ, age analyzer, rate estimator and projector across
// an ordered history of snapshots.
package replay

import (
	"context"
	"log"
	"time"

	"ipv4-waitlist-lab/internal/agedist"
	"ipv4-waitlist-lab/internal/diffing"
	"ipv4-waitlist-lab/internal/domain"
	"ipv4-waitlist-lab/internal/history"
	"ipv4-waitlist-lab/internal/normalization"
	"ipv4-waitlist-lab/internal/projection"
	"ipv4-waitlist-lab/internal/rates"
)

// RowHandler receives one aggregate row per successfully processed snapshot,
// in history order.
type RowHandler interface {
	OnRow(ctx context.Context, row *domain.AggregateRow) error
}

// RowHandlerFunc adapts a function to the RowHandler interface.
type RowHandlerFunc func(ctx context.Context, row *domain.AggregateRow) error

// OnRow calls f.
func (f RowHandlerFunc) OnRow(ctx context.Context, row *domain.AggregateRow) error {
	return f(ctx, row)
}

// Runner replays an ordered snapshot history into aggregate rows.
//
// The ledger is a fixed external input, loaded once and re-filtered per
// snapshot cutoff; a nil ledger degrades every row's rate-dependent fields
// to zero rates and infinite projections instead of aborting.
type Runner struct {
	provider history.Provider
	ledger   []domain.ClearanceEntry
}

// NewRunner creates a replay runner.
func NewRunner(provider history.Provider, ledger []domain.ClearanceEntry) *Runner {
	return &Runner{provider: provider, ledger: ledger}
}

// Run enumerates the tracked artifact's history and replays all of it.
func (r *Runner) Run(ctx context.Context, handler RowHandler) error {
	refs, err := r.provider.List(ctx)
	if err != nil {
		return err
	}
	return r.RunRefs(ctx, refs, handler)
}

// RunRefs replays the given refs, oldest first, handing one row per
// successfully processed snapshot to the handler.
//
// A ref whose payload cannot be retrieved or parsed is skipped with a log
// line, and the previous-snapshot baseline is NOT advanced: the next good
// snapshot is diffed against the last good one. Handler errors abort the
// replay. A second call with the same refs and ledger produces an identical
// row sequence; no state survives between calls.
func (r *Runner) RunRefs(ctx context.Context, refs []history.SnapshotRef, handler RowHandler) error {
	var previous *domain.Snapshot

	for _, ref := range refs {
		payload, err := r.provider.Payload(ctx, ref)
		if err != nil {
			log.Printf("replay: skipping %s: %v", ref.ID, err)
			continue
		}

		snap, err := normalization.Normalize(payload)
		if err != nil {
			log.Printf("replay: skipping %s: %v", ref.ID, err)
			continue
		}

		// The commit instant is authoritative when present; a provider that
		// supplies none falls back to the snapshot's own maximum action time.
		reference := ref.CommitTime
		if reference.IsZero() {
			reference = snap.Reference
		}
		snap.Reference = reference

		row := AssembleRow(snap, previous, reference, r.ledger)
		if err := handler.OnRow(ctx, row); err != nil {
			return err
		}

		previous = snap
	}
	return nil
}

// AssembleRow computes the full statistics row for one snapshot against its
// predecessor. previous may be nil for a first observation. Pure function of
// its inputs; rows carry no state beyond the immediately preceding snapshot.
func AssembleRow(current, previous *domain.Snapshot, reference time.Time, ledger []domain.ClearanceEntry) *domain.AggregateRow {
	counts := current.CountByClass()
	diff := diffing.Diff(current, previous)
	ages := agedist.Analyze(current, reference)
	rateByClass := rates.ClearanceRates(ledger, reference)
	waits := projection.Project(counts, rateByClass)

	return &domain.AggregateRow{
		Timestamp: reference,

		TotalRequests: current.Len(),
		Requests22:    counts[domain.Class22],
		Requests23:    counts[domain.Class23],
		Requests24:    counts[domain.Class24],

		AddedTotal:   diff.AddedTotal,
		Added22:      diff.Added.Get(domain.Class22),
		Added23:      diff.Added.Get(domain.Class23),
		Added24:      diff.Added.Get(domain.Class24),
		RemovedTotal: diff.RemovedTotal,
		Removed22:    diff.Removed.Get(domain.Class22),
		Removed23:    diff.Removed.Get(domain.Class23),
		Removed24:    diff.Removed.Get(domain.Class24),

		FlexibleCount:  diff.Flexibility.FlexibleCount,
		ExactCount:     diff.Flexibility.ExactCount,
		AvgFlexibility: diff.Flexibility.AvgFlexibility,

		SizeChanges:        diff.SizeChanges.SizeChanges,
		UpsizeChanges:      diff.SizeChanges.UpsizeChanges,
		DownsizeChanges:    diff.SizeChanges.DownsizeChanges,
		FlexibilityChanges: diff.SizeChanges.FlexibilityChanges,

		Ages:          ages.Buckets,
		AgesByClass:   ages.ByClass,
		MeanAgeDays:   ages.MeanDays,
		MedianAgeDays: ages.MedianDays,
		MinAgeDays:    ages.MinDays,
		MaxAgeDays:    ages.MaxDays,

		AvgCleared22: rates.Rate(rateByClass, domain.Class22),
		AvgCleared23: rates.Rate(rateByClass, domain.Class23),
		AvgCleared24: rates.Rate(rateByClass, domain.Class24),

		Quarters22: waits[domain.Class22].Quarters,
		Quarters23: waits[domain.Class23].Quarters,
		Quarters24: waits[domain.Class24].Quarters,
		Years22:    waits[domain.Class22].Years,
		Years23:    waits[domain.Class23].Years,
		Years24:    waits[domain.Class24].Years,
	}
}
