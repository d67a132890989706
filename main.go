package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mikehquan19/bettero-app/internal/config"
	"github.com/mikehquan19/bettero-app/internal/database"
	"github.com/mikehquan19/bettero-app/internal/market"
	"github.com/mikehquan19/bettero-app/internal/router"
	"github.com/mikehquan19/bettero-app/internal/tasks"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	provider := market.NewYahooProvider(cfg.Market.BaseURL,
		time.Duration(cfg.Market.TimeoutSeconds)*time.Second)

	// maintenance jobs
	if cfg.Scheduler.Enabled {
		runner := tasks.NewRunner(db, provider)
		retry := tasks.DefaultRetryPolicy
		if cfg.Scheduler.RetryBackoffSecs > 0 {
			retry.Backoff = time.Duration(cfg.Scheduler.RetryBackoffSecs) * time.Second
		}

		tick := 24 * time.Hour
		if cfg.Scheduler.TickHours > 0 {
			tick = time.Duration(cfg.Scheduler.TickHours) * time.Hour
		}

		sched := tasks.NewScheduler(retry)
		sched.Add("rollover_credit_due_dates", tick, runner.RolloverCreditDueDates)
		sched.Add("refresh_stock_prices", tick, func() error {
			return runner.RefreshStockPrices(context.Background())
		})
		sched.Add("prune_stale_prices", tick, runner.PruneStalePrices)
		sched.Add("prune_stale_transactions", tick, runner.PruneStaleTransactions)
		sched.Add("sweep_overdue_bills", tick, runner.SweepOverdueBills)
		sched.Start(context.Background())
	}

	// setup router
	r := router.SetupRouter(cfg, db, provider)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
