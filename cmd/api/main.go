package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ledgeradmin/internal/api"
	"ledgeradmin/internal/auth"
	"ledgeradmin/internal/config"
	"ledgeradmin/internal/db"
	"ledgeradmin/internal/logger"
	"ledgeradmin/internal/metrics"
	"ledgeradmin/internal/middleware"
	"ledgeradmin/internal/repository/postgres"
	"ledgeradmin/internal/services"
	"ledgeradmin/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.MigrateOnBoot {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(cfg.WorkerCount)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTRefresh, cfg.JWTIssuer, 15*time.Minute, 7*24*time.Hour)

	balanceSvc := services.NewBalanceService(repos.Transactions, repos.Balances)
	r := api.NewRouter(api.RouterDeps{
		Cfg:        cfg,
		Auth:       middleware.NewAuthMiddleware(tm),
		UserSvc:    services.NewUserService(repos.Users, tm),
		BalanceSvc: balanceSvc,
		TxnSvc:     services.NewTransactionService(repos.Transactions, repos.Balances),
		DeleteSvc:  services.NewDeleteService(repos.Transactions, balanceSvc, repos.AuditLogs, wp),
		StatsSvc:   services.NewStatsService(repos.Stats),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
