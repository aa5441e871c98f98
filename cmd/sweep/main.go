// Command sweep runs one reminder sweep and exits. It is meant for hosts that schedule work with an external cron.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
	complianceStore "github.com/MrJamesThe3rd/filingdesk/internal/compliance/store"
	"github.com/MrJamesThe3rd/filingdesk/internal/config"
	"github.com/MrJamesThe3rd/filingdesk/internal/database"
	"github.com/MrJamesThe3rd/filingdesk/internal/notification"
	"github.com/MrJamesThe3rd/filingdesk/internal/notification/email"
	notificationStore "github.com/MrJamesThe3rd/filingdesk/internal/notification/store"
	"github.com/MrJamesThe3rd/filingdesk/internal/reminder"
	"github.com/MrJamesThe3rd/filingdesk/internal/renewal"
	renewalStore "github.com/MrJamesThe3rd/filingdesk/internal/renewal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var mailer notification.Mailer = email.LogMailer{}
	if cfg.Email.Enabled {
		ses, err := email.NewSESMailerFromRegion(ctx, cfg.Email.Region, cfg.Email.From)
		if err != nil {
			slog.Error("failed to configure mailer", "error", err)
			os.Exit(1)
		}

		mailer = ses
	}

	deadlines := complianceStore.New(db)

	n, err := compliance.NewService(deadlines).RepopulateMissing(ctx)
	if err != nil {
		slog.Error("failed to repopulate deadlines", "error", err)
	} else if n > 0 {
		slog.Info("repopulated missing deadlines", "count", n)
	}

	scanner := reminder.NewScanner(
		deadlines,
		renewal.NewService(renewalStore.New(db)),
		notification.NewDispatcher(notificationStore.New(db), mailer),
		reminder.Config{
			AbandonAfter: cfg.Scheduler.AbandonAfter,
			BaseURL:      cfg.App.BaseURL,
		},
	)

	scanner.Tick(ctx)
}
