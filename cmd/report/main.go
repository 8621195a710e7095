// Package main generates the business report artifacts (Markdown plus
// CSV exports) into an output directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ecommerce-analytics/internal/analytics"
	"ecommerce-analytics/internal/config"
	"ecommerce-analytics/internal/generator"
	"ecommerce-analytics/internal/observability"
	"ecommerce-analytics/internal/reporting"
	"ecommerce-analytics/internal/storage"
	"ecommerce-analytics/internal/storage/memory"
	pgstore "ecommerce-analytics/internal/storage/postgres"
)

func main() {
	cfg := config.Load()

	outputDir := flag.String("output-dir", cfg.OutputDir, "Output directory for generated files")
	postgresDSN := flag.String("postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string")
	useFixtures := flag.Bool("use-fixtures", false, "Use a generated in-memory dataset instead of the database")
	fixedClock := flag.String("generated-at", "", "Override the report timestamp (RFC 3339) for reproducible output")
	flag.Parse()

	if !*useFixtures && *postgresDSN == "" {
		fmt.Fprintln(os.Stderr, "Error: --postgres-dsn is required when not using fixtures")
		fmt.Fprintln(os.Stderr, "Use --use-fixtures to run with demo data instead")
		os.Exit(1)
	}

	ctx := context.Background()

	orderStore, cleanup, err := openOrderStore(ctx, *useFixtures, *postgresDSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	gen := reporting.NewGenerator(orderStore, analytics.DefaultConfig())
	if *fixedClock != "" {
		at, err := time.Parse(time.RFC3339, *fixedClock)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid --generated-at: %v\n", err)
			os.Exit(1)
		}
		gen = gen.WithClock(func() time.Time { return at })
	}

	report, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
		os.Exit(1)
	}

	if err := reporting.WriteArtifacts(*outputDir, report); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing artifacts: %v\n", err)
		os.Exit(1)
	}
	observability.RecordReportGenerated()

	fmt.Println("Report generated successfully:")
	fmt.Printf("  - %s/%s\n", *outputDir, reporting.ReportFileName)
	fmt.Printf("  - %s/%s\n", *outputDir, reporting.BusinessMetricsFileName)
	fmt.Printf("  - %s/%s\n", *outputDir, reporting.MonthlySalesFileName)
	fmt.Printf("  - %s/%s\n", *outputDir, reporting.CategoryPerformanceFileName)
}

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
