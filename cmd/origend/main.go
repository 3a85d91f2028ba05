// origend is the origen API server: auth, receipt CRUD, uploads, and
// spreadsheet export over a JSON REST API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/origen-app/origen-server/internal/auth"
	"github.com/origen-app/origen-server/internal/common"
	"github.com/origen-app/origen-server/internal/export"
	"github.com/origen-app/origen-server/internal/httpapi"
	"github.com/origen-app/origen-server/internal/receipts"
	"github.com/origen-app/origen-server/internal/repository"
	"github.com/origen-app/origen-server/internal/storage"
	"github.com/origen-app/origen-server/internal/users"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	entClient, pool, err := repository.Open(ctx, repository.Config{
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer repository.Close(entClient, pool, logger)

	if err := repository.HealthCheck(ctx, pool, cfg.Database.DialTimeout, logger); err != nil {
		logger.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewStore(cfg.Upload.Dir, logger)
	if err != nil {
		logger.Error("upload store init failed", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(entClient, logger)
	receiptRepo := repository.NewReceiptRepository(entClient, logger)

	authSvc := auth.NewService(cfg.Auth)
	usersSvc := users.NewService(userRepo, authSvc, logger)
	receiptsSvc := receipts.NewService(receiptRepo, store, logger)
	exportSvc := export.NewService(receiptRepo, logger)

	api := httpapi.NewServer(usersSvc, receiptsSvc, exportSvc, authSvc, logger, httpapi.Options{
		MaxUploadBytes: cfg.Upload.MaxFileSize,
		RequestTimeout: cfg.Server.RequestTimeout,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: api.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}
	logger.Info("server stopped")
}
