package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrJamesThe3rd/filingdesk/internal/cache"
	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
	complianceStore "github.com/MrJamesThe3rd/filingdesk/internal/compliance/store"
	"github.com/MrJamesThe3rd/filingdesk/internal/config"
	"github.com/MrJamesThe3rd/filingdesk/internal/database"
	fdHttp "github.com/MrJamesThe3rd/filingdesk/internal/http"
	deadlineHandler "github.com/MrJamesThe3rd/filingdesk/internal/http/deadline"
	importHandler "github.com/MrJamesThe3rd/filingdesk/internal/http/importcsv"
	orderHandler "github.com/MrJamesThe3rd/filingdesk/internal/http/order"
	renewalHandler "github.com/MrJamesThe3rd/filingdesk/internal/http/renewal"
	statsHandler "github.com/MrJamesThe3rd/filingdesk/internal/http/stats"
	"github.com/MrJamesThe3rd/filingdesk/internal/importer"
	"github.com/MrJamesThe3rd/filingdesk/internal/metrics"
	"github.com/MrJamesThe3rd/filingdesk/internal/notification"
	"github.com/MrJamesThe3rd/filingdesk/internal/notification/email"
	notificationStore "github.com/MrJamesThe3rd/filingdesk/internal/notification/store"
	"github.com/MrJamesThe3rd/filingdesk/internal/order"
	orderStore "github.com/MrJamesThe3rd/filingdesk/internal/order/store"
	"github.com/MrJamesThe3rd/filingdesk/internal/reminder"
	"github.com/MrJamesThe3rd/filingdesk/internal/renewal"
	renewalStore "github.com/MrJamesThe3rd/filingdesk/internal/renewal/store"
	"github.com/MrJamesThe3rd/filingdesk/internal/scheduler"
	"github.com/MrJamesThe3rd/filingdesk/internal/stats"
)

const repopulateInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	mailer, err := newMailer(ctx, cfg)
	if err != nil {
		slog.Error("failed to configure mailer", "error", err)
		os.Exit(1)
	}

	summaryCache, err := cache.New[string, stats.Summary](cfg.Cache.Size)
	if err != nil {
		slog.Error("failed to create stats cache", "error", err)
		os.Exit(1)
	}

	var (
		deadlines = complianceStore.New(db)

		complianceService = compliance.NewService(deadlines)
		orderService      = order.NewService(orderStore.New(db), complianceService)
		renewalService    = renewal.NewService(renewalStore.New(db))
		dispatcher        = notification.NewDispatcher(notificationStore.New(db), mailer)
		importService     = importer.NewService(complianceService)
		statsService      = stats.NewService(deadlines, renewalService, summaryCache, cfg.Cache.TTL)
	)

	scanner := reminder.NewScanner(deadlines, renewalService, dispatcher, reminder.Config{
		AbandonAfter: cfg.Scheduler.AbandonAfter,
		BaseURL:      cfg.App.BaseURL,
	})

	repopulate := func(ctx context.Context) {
		n, err := complianceService.RepopulateMissing(ctx)
		if err != nil {
			slog.Error("failed to repopulate deadlines", "error", err)
			return
		}

		metrics.DeadlinesRepopulated.Add(float64(n))
	}

	sched := scheduler.New()
	sched.EveryAfter(cfg.Scheduler.WarmUp, cfg.Scheduler.Interval, "sweep", scanner.Tick)
	sched.EveryAfter(cfg.Scheduler.WarmUp, repopulateInterval, "repopulate-deadlines", repopulate)
	sched.Start()
	defer sched.Stop()

	router := fdHttp.New(
		fdHttp.Options{
			JWTSecret:      []byte(cfg.Admin.JWTSecret),
			AllowedOrigins: cfg.Admin.AllowedOrigins,
		},
		orderHandler.NewHandler(orderService),
		deadlineHandler.NewHandler(complianceService),
		renewalHandler.NewHandler(renewalService),
		importHandler.NewHandler(importService, statsService),
		statsHandler.NewHandler(statsService),
	)

	if cfg.Admin.JWTSecret == "" {
		slog.Warn("ADMIN_JWT_SECRET is not set; admin API will reject every request")
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "port", srv.Addr, "sweep_interval", cfg.Scheduler.Interval)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

func newMailer(ctx context.Context, cfg *config.Config) (notification.Mailer, error) {
	if !cfg.Email.Enabled {
		return email.LogMailer{}, nil
	}

	mailer, err := email.NewSESMailerFromRegion(ctx, cfg.Email.Region, cfg.Email.From)
	if err != nil {
		return nil, err
	}

	return mailer, nil
}
