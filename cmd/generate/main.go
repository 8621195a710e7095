// Package main generates a synthetic order dataset and loads it into
// PostgreSQL, a CSV file, or both.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"ecommerce-analytics/internal/config"
	"ecommerce-analytics/internal/domain"
	"ecommerce-analytics/internal/generator"
	"ecommerce-analytics/internal/observability"
	"ecommerce-analytics/internal/storage/migrations"
	pgstore "ecommerce-analytics/internal/storage/postgres"
)

const insertBatchSize = 500

func main() {
	cfg := config.Load()
	defaults := generator.DefaultConfig()

	numOrders := flag.Int("orders", defaults.NumOrders, "Number of orders to generate")
	numCustomers := flag.Int("customers", defaults.NumCustomers, "Number of distinct customers")
	seed := flag.Int64("seed", defaults.Seed, "Random seed (same seed, same dataset)")
	startDate := flag.String("start-date", defaults.StartDate.Format("2006-01-02"), "First possible order date (YYYY-MM-DD)")
	days := flag.Int("days", defaults.Days, "Number of days orders are spread across")
	postgresDSN := flag.String("postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string; empty skips database load")
	csvPath := flag.String("csv", "", "Write the dataset to this CSV file; empty skips the file")
	flag.Parse()

	if *postgresDSN == "" && *csvPath == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to do, pass --postgres-dsn and/or --csv")
		os.Exit(1)
	}

	start, err := time.ParseInLocation("2006-01-02", *startDate, time.UTC)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid --start-date: %v\n", err)
		os.Exit(1)
	}

	gen := generator.New(generator.Config{
		NumOrders:    *numOrders,
		NumCustomers: *numCustomers,
		Seed:         *seed,
		StartDate:    start,
		Days:         *days,
	})

	orders := gen.Generate()
	observability.RecordOrdersGenerated(len(orders))
	fmt.Printf("Generated %d orders (run %s)\n", len(orders), gen.RunID())

	if *csvPath != "" {
		if err := writeCSV(*csvPath, orders); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *csvPath)
	}

	if *postgresDSN != "" {
		if err := loadPostgres(context.Background(), *postgresDSN, orders); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading postgres: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Stored %d orders in postgres\n", len(orders))
	}
}

// loadPostgres applies migrations and bulk-inserts orders in batches,
// showing progress on the terminal.
func loadPostgres(ctx context.Context, dsn string, orders []*domain.Order) error {
	pool, err := pgstore.NewPool(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	store := pgstore.NewOrderStore(pool)
	bar := progressbar.Default(int64(len(orders)), "inserting orders")

	for i := 0; i < len(orders); i += insertBatchSize {
		end := i + insertBatchSize
		if end > len(orders) {
			end = len(orders)
		}
		if err := store.InsertBulk(ctx, orders[i:end]); err != nil {
			return fmt.Errorf("insert batch at %d: %w", i, err)
		}
		_ = bar.Add(end - i)
		observability.RecordOrdersStored(end - i)
	}
	_ = bar.Finish()
	return nil
}

func writeCSV(path string, orders []*domain.Order) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"order_id", "customer_id", "product_name", "category", "order_date", "unit_price", "quantity", "total_amount"}); err != nil {
		return err
	}
	for _, o := range orders {
		record := []string{
			fmt.Sprintf("%d", o.OrderID),
			o.CustomerID,
			o.ProductName,
			o.Category,
			o.OrderDate.Format("2006-01-02"),
			o.UnitPrice.StringFixed(2),
			fmt.Sprintf("%d", o.Quantity),
			o.TotalAmount.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
