// Command reconcile audits every estate and service charge against the
// membership and ledger invariants. It never writes.
//
// Exit codes: 0 = clean, 1 = error, 2 = violations found.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/filatei/btorestate/internal/adapter/postgres"
	"github.com/filatei/btorestate/internal/adapter/postgres/charge"
	"github.com/filatei/btorestate/internal/adapter/postgres/estate"
	"github.com/filatei/btorestate/internal/app"
	"github.com/filatei/btorestate/internal/config"
	"github.com/filatei/btorestate/internal/service/reconcile"
)

func main() {
	pageSize := flag.Int("page-size", 100, "records fetched per query")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: reconcile [-page-size=100]")
		flag.PrintDefaults()
		config.Usage(os.Stderr)
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.Database.UsesPostgres() {
		log.Fatal("DATABASE_DSN is required")
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	report, err := reconcile.NewService(logger, estate.New(pool), charge.New(pool), *pageSize).Run(ctx)
	if err != nil {
		logger.Error("reconciliation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !report.OK() {
		os.Exit(2)
	}
}
