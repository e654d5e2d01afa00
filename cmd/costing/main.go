package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"hat-costing/internal/config"
	"hat-costing/internal/middleware/auth"
	"hat-costing/internal/service"
	generate_excel "hat-costing/internal/service/generate-excel"
	"hat-costing/internal/session"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg := config.MustConfig()

	log, errorLog := setupLogger(cfg.Env, cfg.ErrorLogPath)
	defer errorLog.Close()

	authz, err := auth.NewAuthorizer(cfg.Password, cfg.PasswordHash)
	if err != nil {
		log.Error("failed to prepare access password", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if !authz.Enabled() {
		log.Warn("access password is not set, the calculator is open to everyone")
	}

	sessions := session.NewManager(cfg.CookieName, cfg.TTL, cfg.Session.Secure, cfg.MaxSessions)
	excelService := generate_excel.NewGenerateService(cfg.SheetName, cfg.ColumnWidth)
	costService := service.NewCostService(excelService)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, sessions, authz, costService),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sessions.Run(gCtx, cfg.SweepInterval)
	})
	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped")
}
