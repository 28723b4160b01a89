package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ipv4-waitlist-lab/internal/config"
	"ipv4-waitlist-lab/internal/domain"
	"ipv4-waitlist-lab/internal/history"
	"ipv4-waitlist-lab/internal/replay"
	"ipv4-waitlist-lab/internal/reporting"
	"ipv4-waitlist-lab/internal/source"
	"ipv4-waitlist-lab/internal/storage"
	chstore "ipv4-waitlist-lab/internal/storage/clickhouse"
	"ipv4-waitlist-lab/internal/storage/migrations"
	pgstore "ipv4-waitlist-lab/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	repoDir := flag.String("repo", "", "Git repository holding the snapshot artifact (overrides config)")
	artifact := flag.String("artifact", "", "Tracked snapshot file, relative to the repo root (overrides config)")
	ledgerURL := flag.String("ledger-url", "", "Cleared-blocks CSV document (overrides config)")
	noLedger := flag.Bool("no-ledger", false, "Skip the ledger fetch; rate and wait columns degrade")
	postgresDSN := flag.String("postgres-dsn", "", "Archive raw snapshots to PostgreSQL (overrides config)")
	clickhouseDSN := flag.String("clickhouse-dsn", "", "Archive computed rows to ClickHouse (overrides config)")
	noHeader := flag.Bool("no-header", false, "Omit the CSV header row")

	flag.Parse()

	logger := log.New(os.Stderr, "[timeseries] ", log.LstdFlags)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if *repoDir != "" {
		cfg.History.RepoDir = *repoDir
	}
	if *artifact != "" {
		cfg.History.Artifact = *artifact
	}
	if *ledgerURL != "" {
		cfg.Sources.LedgerURL = *ledgerURL
	}
	if *postgresDSN != "" {
		cfg.Storage.PostgresDSN = *postgresDSN
	}
	if *clickhouseDSN != "" {
		cfg.Storage.ClickhouseDSN = *clickhouseDSN
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("received signal %v, shutting down", sig)
		cancel()
	}()

	// A missing ledger only degrades the rate and wait-time columns, so a
	// fetch failure is not fatal here.
	var ledger []domain.ClearanceEntry
	if !*noLedger {
		client := source.NewLedgerClient(cfg.Sources.LedgerURL, source.WithTimeout(cfg.Sources.Timeout))
		ledger, err = client.Fetch(ctx)
		if err != nil {
			logger.Printf("fetch cleared-blocks ledger: %v (continuing without rates)", err)
			ledger = nil
		}
	}

	var provider history.Provider = history.NewGitLog(cfg.History.RepoDir, cfg.History.Artifact)

	if cfg.Storage.PostgresDSN != "" {
		pool, err := pgstore.NewPool(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			logger.Fatalf("connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			logger.Fatalf("apply postgres migrations: %v", err)
		}
		provider = &archivingProvider{
			inner:  provider,
			store:  pgstore.NewSnapshotArchiveStore(pool),
			logger: logger,
		}
	}

	var rowStore storage.TimeseriesRowStore
	if cfg.Storage.ClickhouseDSN != "" {
		conn, err := migrations.RunClickhouseMigrations(ctx, cfg.Storage.ClickhouseDSN)
		if err != nil {
			logger.Fatalf("prepare clickhouse: %v", err)
		}
		defer conn.Close()
		rowStore = chstore.NewTimeseriesRowStore(conn)
	}

	if !*noHeader {
		fmt.Println(reporting.CSVHeader())
	}

	handler := replay.RowHandlerFunc(func(ctx context.Context, row *domain.AggregateRow) error {
		fmt.Println(reporting.RenderCSVRow(row))
		if rowStore != nil {
			if err := rowStore.Insert(ctx, row); err != nil {
				if errors.Is(err, storage.ErrDuplicateKey) {
					logger.Printf("row %s already stored, skipping", row.Timestamp.Format(time.RFC3339))
					return nil
				}
				return fmt.Errorf("store row: %w", err)
			}
		}
		return nil
	})

	runner := replay.NewRunner(provider, ledger)
	if err := runner.Run(ctx, handler); err != nil {
		logger.Fatalf("replay history: %v", err)
	}
}

// archivingProvider tees every payload it serves into the snapshot archive.
// Refs already archived are left as-is.
type archivingProvider struct {
	inner  history.Provider
	store  storage.SnapshotArchiveStore
	logger *log.Logger
}

func (p *archivingProvider) List(ctx context.Context) ([]history.SnapshotRef, error) {
	return p.inner.List(ctx)
}

func (p *archivingProvider) Payload(ctx context.Context, ref history.SnapshotRef) ([]byte, error) {
	payload, err := p.inner.Payload(ctx, ref)
	if err != nil {
		return nil, err
	}
	err = p.store.Insert(ctx, &domain.ArchivedSnapshot{
		RefID:      ref.ID,
		CommitTime: ref.CommitTime,
		Payload:    payload,
	})
	if err != nil && !errors.Is(err, storage.ErrDuplicateKey) {
		p.logger.Printf("archive snapshot %s: %v", ref.ID, err)
	}
	return payload, nil
}
