// Package main runs the full analytics pass over stored orders, prints
// the report to stdout and optionally persists a snapshot of the run to
// ClickHouse.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ecommerce-analytics/internal/analytics"
	"ecommerce-analytics/internal/config"
	"ecommerce-analytics/internal/domain"
	"ecommerce-analytics/internal/generator"
	"ecommerce-analytics/internal/observability"
	"ecommerce-analytics/internal/reporting"
	"ecommerce-analytics/internal/storage"
	chstore "ecommerce-analytics/internal/storage/clickhouse"
	"ecommerce-analytics/internal/storage/memory"
	"ecommerce-analytics/internal/storage/migrations"
	pgstore "ecommerce-analytics/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	postgresDSN := flag.String("postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", cfg.ClickhouseDSN, "ClickHouse connection string; empty skips snapshot persistence")
	useFixtures := flag.Bool("use-fixtures", false, "Analyze a freshly generated in-memory dataset instead of the database")
	topN := flag.Int("top-n", analytics.DefaultConfig().TopN, "Ranking size for products and customers")
	flag.Parse()

	if !*useFixtures && *postgresDSN == "" {
		fmt.Fprintln(os.Stderr, "Error: --postgres-dsn is required when not using fixtures")
		fmt.Fprintln(os.Stderr, "Use --use-fixtures to run against generated demo data instead")
		os.Exit(1)
	}

	ctx := context.Background()

	engineCfg := analytics.DefaultConfig()
	engineCfg.TopN = *topN

	orderStore, cleanup, err := openOrderStore(ctx, *useFixtures, *postgresDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	start := time.Now()
	report, err := reporting.NewGenerator(orderStore, engineCfg).Generate(ctx)
	if err != nil {
		observability.RecordAnalysisRun("error", time.Since(start).Seconds())
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		os.Exit(1)
	}
	observability.RecordAnalysisRun("ok", time.Since(start).Seconds())
	if report.Diagnostics != nil {
		observability.RecordInvalidOrders(report.Diagnostics.SkippedRecords)
	}

	fmt.Print(reporting.RenderMarkdown(report))

	if *clickhouseDSN != "" {
		if err := persistSnapshot(ctx, *clickhouseDSN, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error persisting snapshot: %v\n", err)
			os.Exit(1)
		}
		observability.RecordSnapshotWritten()
		fmt.Fprintf(os.Stderr, "Snapshot %s stored in clickhouse\n", report.RunID)
	}
}

// openOrderStore returns either a postgres-backed store or an in-memory
// store seeded with the standard demo dataset.
func openOrderStore(ctx context.Context, useFixtures bool, dsn string) (storage.OrderStore, func(), error) {
	if useFixtures {
		store := memory.NewOrderStore()
		if err := store.InsertBulk(ctx, generator.New(generator.DefaultConfig()).Generate()); err != nil {
			return nil, nil, fmt.Errorf("load fixtures: %w", err)
		}
		return store, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	return pgstore.NewOrderStore(pool), pool.Close, nil
}

func persistSnapshot(ctx context.Context, dsn string, report *reporting.Report) error {
	conn, err := chstore.NewConn(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to clickhouse: %w", err)
	}
	defer conn.Close()

	if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	skipped := 0
	if report.Diagnostics != nil {
		skipped = report.Diagnostics.SkippedRecords
	}

	snap := &domain.AnalysisSnapshot{
		RunID:          report.RunID,
		ComputedAt:     report.GeneratedAt,
		Metrics:        report.Business,
		SkippedRecords: skipped,
		Monthly:        report.Monthly,
	}
	return chstore.NewSnapshotStore(conn).Insert(ctx, snap)
}
