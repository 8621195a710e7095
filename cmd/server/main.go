// Package main runs the analytics dashboard and read-only HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecommerce-analytics/internal/analytics"
	"ecommerce-analytics/internal/config"
	"ecommerce-analytics/internal/generator"
	"ecommerce-analytics/internal/server"
	"ecommerce-analytics/internal/storage"
	chstore "ecommerce-analytics/internal/storage/clickhouse"
	"ecommerce-analytics/internal/storage/memory"
	"ecommerce-analytics/internal/storage/migrations"
	pgstore "ecommerce-analytics/internal/storage/postgres"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.HTTPAddr, "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", cfg.PostgresDSN, "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", cfg.ClickhouseDSN, "ClickHouse connection string; empty disables snapshot history on /status")
	useMemory := flag.Bool("use-memory", false, "Serve a generated in-memory dataset instead of the database")
	refresh := flag.Duration("refresh-interval", cfg.RefreshInterval, "Websocket push interval")
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && *postgresDSN == "" {
		fmt.Fprintln(os.Stderr, "Error: --postgres-dsn is required when not using --use-memory")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orderStore, snapshotStore, cleanup, err := openStores(ctx, *useMemory, *postgresDSN, *clickhouseDSN)
	if err != nil {
		logger.Fatalf("open stores: %v", err)
	}
	defer cleanup()

	srv := server.New(server.Options{
		Addr:            *addr,
		OrderStore:      orderStore,
		SnapshotStore:   snapshotStore,
		Analytics:       analytics.DefaultConfig(),
		RefreshInterval: *refresh,
		Logger:          logger,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Println("shutting down")
	case err := <-errCh:
		if err != nil {
			logger.Fatalf("server: %v", err)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
}

// openStores wires the order store and the optional snapshot store. The
// returned cleanup closes whatever connections were opened.
func openStores(ctx context.Context, useMemory bool, postgresDSN, clickhouseDSN string) (storage.OrderStore, storage.SnapshotStore, func(), error) {
	if useMemory {
		store := memory.NewOrderStore()
		if err := store.InsertBulk(ctx, generator.New(generator.DefaultConfig()).Generate()); err != nil {
			return nil, nil, nil, fmt.Errorf("load demo data: %w", err)
		}
		return store, memory.NewSnapshotStore(), func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("run postgres migrations: %w", err)
	}

	cleanup := pool.Close
	var snapshots storage.SnapshotStore

	if clickhouseDSN != "" {
		conn, err := chstore.NewConn(ctx, clickhouseDSN)
		if err != nil {
			pool.Close()
			return nil, nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
		}
		snapshots = chstore.NewSnapshotStore(conn)
		cleanup = func() {
			conn.Close()
			pool.Close()
		}
	}

	return pgstore.NewOrderStore(pool), snapshots, cleanup, nil
}
