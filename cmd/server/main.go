package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/ledger-orchestrator/internal/api"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/config"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/ledger-orchestrator/internal/interfaces"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/ledger"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/logging"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage/memory"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage/postgres"
	"github.com/sheikh-saqib/ledger-orchestrator/internal/storage/tigerbeetle"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, _, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	var store interfaces.LedgerStore
	switch cfg.Backend {
	case config.BackendMemory:
		logger.Warn("using in-memory ledger store, balances are lost on restart")
		store = memory.NewMemoryLedgerStore()
	default:
		client, err := tigerbeetle.Open(cfg.TigerBeetleClusterID, cfg.TigerBeetleAddresses, cfg.StoreTimeout, logger)
		if err != nil {
			return fmt.Errorf("connect to tigerbeetle: %w", err)
		}
		defer client.Close()
		store = client
	}

	journal, closeJournal, err := openJournal(cfg, logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	opts := []ledger.Option{
		ledger.WithLogger(logger),
		ledger.WithJournal(journal),
	}
	if cfg.EventsEnabled() {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer publisher.Close()
		opts = append(opts, ledger.WithPublisher(publisher, ledger.TopicsFor(cfg.KafkaTopicPrefix)))
	}
	ledgerService := ledger.NewLedger(store, opts...)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.NewRouter(api.NewHandler(ledgerService, logger)),
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.HTTPAddr), zap.String("backend", cfg.Backend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

// openJournal picks the postgres journal when a database is configured.
func openJournal(cfg *config.Config, logger *zap.Logger) (interfaces.Journal, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Info("no DATABASE_URL, keeping the submission journal in memory")
		return memory.NewJournal(), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	journal := postgres.NewJournal(db)
	if err := journal.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return journal, func() { db.Close() }, nil
}
