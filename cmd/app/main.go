package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/CaseVault_Go/internal/account"
	"github.com/osse101/CaseVault_Go/internal/admin"
	"github.com/osse101/CaseVault_Go/internal/caseopen"
	"github.com/osse101/CaseVault_Go/internal/catalog"
	"github.com/osse101/CaseVault_Go/internal/concurrency"
	"github.com/osse101/CaseVault_Go/internal/config"
	"github.com/osse101/CaseVault_Go/internal/database"
	"github.com/osse101/CaseVault_Go/internal/database/postgres"
	"github.com/osse101/CaseVault_Go/internal/inventory"
	"github.com/osse101/CaseVault_Go/internal/ledger"
	"github.com/osse101/CaseVault_Go/internal/random"
	"github.com/osse101/CaseVault_Go/internal/reward"
	"github.com/osse101/CaseVault_Go/internal/server"
	"github.com/osse101/CaseVault_Go/internal/settlement"
	"github.com/osse101/CaseVault_Go/internal/upgrade"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	connString := cfg.GetDBConnString()
	if err := database.Migrate(connString); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(connString, database.DefaultMaxConnections, database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		slog.Error("Failed to load case catalog", "error", err, "path", cfg.CatalogPath)
		os.Exit(1)
	}

	// Repositories
	ledgerRepo := postgres.NewLedgerRepository(dbPool)
	inventoryRepo := postgres.NewInventoryRepository(dbPool)
	accountRepo := postgres.NewAccountRepository(dbPool)
	caseOpenRepo := postgres.NewCaseOpenRepository(dbPool)
	upgradeRepo := postgres.NewUpgradeRepository(dbPool)

	// Shared engine plumbing
	locks := concurrency.NewLockManager()
	selector := reward.NewSelector(random.New())
	settlementClient := settlement.NewStubClient()

	feed, err := caseopen.NewFeed(cfg.RecentWinsSize)
	if err != nil {
		slog.Error("Failed to create recent-wins feed", "error", err)
		os.Exit(1)
	}

	// Services
	ledgerSvc := ledger.NewService(ledgerRepo)
	inventorySvc := inventory.NewService(inventoryRepo)
	accountSvc := account.NewService(accountRepo, settlementClient, cfg.ReferralBonus)
	caseOpenSvc := caseopen.NewService(caseOpenRepo, cat, selector, locks, feed, cfg.GrantRetries, cfg.GrantRetryBackoff)
	upgradeSvc := upgrade.NewService(upgradeRepo, cat, selector, locks, cfg.HouseFactor, cfg.GrantRetries, cfg.GrantRetryBackoff)
	adminSvc := admin.NewService(ledgerSvc, settlementClient)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, dbPool, cat, server.Services{
		Account:   accountSvc,
		Ledger:    ledgerSvc,
		Inventory: inventorySvc,
		CaseOpen:  caseOpenSvc,
		Upgrade:   upgradeSvc,
		Admin:     adminSvc,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server stopped unexpectedly", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Shutdown complete")
}
