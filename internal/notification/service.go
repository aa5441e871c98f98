package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=notification
type Repository interface {
	ExistsSince(ctx context.Context, clientID, orderID uuid.UUID, category Category, since time.Time) (bool, error)
	Create(ctx context.Context, n *Notification) error
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type Dispatcher struct {
	repo   Repository
	mailer Mailer
	now    func() time.Time
}

func NewDispatcher(repo Repository, mailer Mailer) *Dispatcher {
	return &Dispatcher{repo: repo, mailer: mailer, now: time.Now}
}

// Notify creates an in-app notification unless one of the same category already exists for the
// client and order within the suppression window. It reports whether a notification was created.
func (d *Dispatcher) Notify(ctx context.Context, params Params) (bool, error) {
	since := d.now().Add(-SuppressionWindow)

	exists, err := d.repo.ExistsSince(ctx, params.ClientID, params.OrderID, params.Category, since)
	if err != nil {
		return false, fmt.Errorf("checking existing notifications: %w", err)
	}

	if exists {
		slog.Debug("notification suppressed", "client_id", params.ClientID, "order_id", params.OrderID, "category", params.Category)
		return false, nil
	}

	n := &Notification{
		ClientID:  params.ClientID,
		OrderID:   params.OrderID,
		OrderCode: params.OrderCode,
		Category:  params.Category,
		Title:     params.Title,
		Message:   params.Message,
	}

	if err := d.repo.Create(ctx, n); err != nil {
		return false, fmt.Errorf("creating notification: %w", err)
	}

	return true, nil
}

// SendEmail hands an HTML message and its plain-text alternative to the mailer. Failures are
// logged, never returned.
func (d *Dispatcher) SendEmail(ctx context.Context, to, subject, html, text string) {
	if to == "" {
		slog.Warn("skipping email without recipient", "subject", subject)
		return
	}

	if err := d.mailer.Send(ctx, Email{To: to, Subject: subject, HTML: html, Text: text}); err != nil {
		slog.Error("failed to send email", "error", err, "to", to, "subject", subject)
	}
}
