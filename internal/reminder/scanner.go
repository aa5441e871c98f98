package reminder

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
	"github.com/MrJamesThe3rd/filingdesk/internal/metrics"
	"github.com/MrJamesThe3rd/filingdesk/internal/notification"
	"github.com/MrJamesThe3rd/filingdesk/internal/renewal"
)

type DeadlineStore interface {
	ListDueBetween(ctx context.Context, kind compliance.DeadlineType, from, to time.Time) ([]compliance.Upcoming, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, marker string) error
	MarkAbandoned(ctx context.Context, now, cutoff time.Time) (int64, error)
}

type Renewals interface {
	ClientsNeedingRenewal(ctx context.Context, now time.Time) ([]renewal.Candidate, error)
	CheckExpiredRenewals(ctx context.Context, now time.Time) ([]renewal.ExpiredRenewal, error)
}

type Notifier interface {
	Notify(ctx context.Context, params notification.Params) (bool, error)
	SendEmail(ctx context.Context, to, subject, html, text string)
}

type Config struct {
	AbandonAfter time.Duration
	// BaseURL is linked from reminder emails. Empty omits the link.
	BaseURL string
}

type Scanner struct {
	deadlines DeadlineStore
	renewals  Renewals
	notifier  Notifier
	cfg       Config
	now       func() time.Time
}

func NewScanner(deadlines DeadlineStore, renewals Renewals, notifier Notifier, cfg Config) *Scanner {
	return &Scanner{
		deadlines: deadlines,
		renewals:  renewals,
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Tick runs every sweep phase once. A failing phase is logged and does not stop the others.
func (s *Scanner) Tick(ctx context.Context) {
	now := s.now().UTC()

	s.runPhase(ctx, "compliance", func(ctx context.Context) error {
		_, err := s.ScanCompliance(ctx, now)
		return err
	})

	s.runPhase(ctx, "renewals", func(ctx context.Context) error {
		_, err := s.ScanRenewals(ctx, now)
		return err
	})

	s.runPhase(ctx, "abandoned", func(ctx context.Context) error {
		_, err := s.SweepAbandoned(ctx, now)
		return err
	})

	s.runPhase(ctx, "expired", func(ctx context.Context) error {
		_, err := s.CheckExpired(ctx, now)
		return err
	})
}

func (s *Scanner) runPhase(ctx context.Context, phase string, fn func(context.Context) error) {
	start := time.Now()

	defer func() {
		metrics.SweepPhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())

		if r := recover(); r != nil {
			metrics.SweepPhaseFailures.WithLabelValues(phase).Inc()
			slog.Error("sweep phase panicked", "phase", phase, "panic", r)
		}
	}()

	if err := fn(ctx); err != nil {
		metrics.SweepPhaseFailures.WithLabelValues(phase).Inc()
		slog.Error("sweep phase failed", "phase", phase, "error", err)
	}
}

// ScanCompliance reminds clients of every deadline falling 55 to 65 days from now.
// Each kind is queried on its own; a failed kind does not stop the rest.
// The result is sorted by days until due, soonest first.
func (s *Scanner) ScanCompliance(ctx context.Context, now time.Time) ([]Reminder, error) {
	from := now.AddDate(0, 0, ComplianceWindowStart)
	to := now.AddDate(0, 0, ComplianceWindowEnd)

	var (
		reminders []Reminder
		errs      []error
	)

	for _, kind := range compliance.DeadlineTypes {
		upcoming, err := s.deadlines.ListDueBetween(ctx, kind, from, to)
		if err != nil {
			errs = append(errs, fmt.Errorf("listing %s deadlines: %w", kind, err))
			continue
		}

		for _, u := range upcoming {
			reminders = append(reminders, s.remindCompliance(ctx, u, now))
		}
	}

	slices.SortStableFunc(reminders, func(a, b Reminder) int {
		return cmp.Compare(a.DaysUntilDue, b.DaysUntilDue)
	})

	return reminders, errors.Join(errs...)
}

func (s *Scanner) remindCompliance(ctx context.Context, u compliance.Upcoming, now time.Time) Reminder {
	category := CategoryFor(u.Type)
	days := compliance.DaysUntil(u.DueDate, now)

	r := Reminder{
		ApplicationID: u.ApplicationID,
		RequestCode:   u.RequestCode,
		OrderID:       u.OrderID,
		ClientID:      u.ClientID,
		Category:      category,
		DueDate:       u.DueDate,
		DaysUntilDue:  days,
	}

	vars := map[string]string{
		"days":         strconv.Itoa(days),
		"order_code":   u.RequestCode,
		"due_date":     u.DueDate.Format(time.DateOnly),
		"jurisdiction": u.Jurisdiction.Name(),
		"name":         u.ClientName,
	}

	created, err := s.dispatch(ctx, notification.Params{
		ClientID:  u.ClientID,
		OrderID:   u.OrderID,
		OrderCode: u.RequestCode,
		Category:  category,
		Title:     notification.Render(notification.TitleKey(category), vars),
		Message:   notification.Render(notification.MessageKey(category), vars),
	}, u.ClientEmail)
	if err != nil {
		slog.Error("failed to send compliance reminder", "error", err,
			"client_id", u.ClientID, "application_id", u.ApplicationID, "category", category)

		return r
	}

	r.Created = created

	return r
}

// ScanRenewals sends at most one renewal reminder per client, using the first window the renewal falls in.
// Markers already recorded on the application block a repeat of the same window.
func (s *Scanner) ScanRenewals(ctx context.Context, now time.Time) ([]Reminder, error) {
	candidates, err := s.renewals.ClientsNeedingRenewal(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("resolving renewals: %w", err)
	}

	seen := make(map[uuid.UUID]struct{}, len(candidates))

	var reminders []Reminder

	for _, c := range candidates {
		if _, ok := seen[c.ClientID]; ok {
			continue
		}

		if c.DaysUntilExpiry < 0 {
			continue
		}

		w, ok := MatchWindow(c.DaysUntilExpiry)
		if !ok || c.RemindersSent.Has(string(w.Category)) {
			continue
		}

		seen[c.ClientID] = struct{}{}

		reminders = append(reminders, s.remindRenewal(ctx, c, w))
	}

	return reminders, nil
}

func (s *Scanner) remindRenewal(ctx context.Context, c renewal.Candidate, w Window) Reminder {
	r := Reminder{
		ApplicationID: c.ApplicationID,
		RequestCode:   c.RequestCode,
		OrderID:       c.OrderID,
		ClientID:      c.ClientID,
		Category:      w.Category,
		DueDate:       c.AgentRenewalDue,
		DaysUntilDue:  c.DaysUntilExpiry,
	}

	vars := map[string]string{
		"window":       w.Label,
		"name":         c.ClientName,
		"jurisdiction": c.Jurisdiction.Name(),
		"due_date":     c.AgentRenewalDue.Format(time.DateOnly),
		"order_code":   c.RequestCode,
	}

	created, err := s.dispatch(ctx, notification.Params{
		ClientID:  c.ClientID,
		OrderID:   c.OrderID,
		OrderCode: c.RequestCode,
		Category:  w.Category,
		Title:     notification.Render("reminder.renewal.title", vars),
		Message:   notification.Render("reminder.renewal.message", vars),
	}, c.ClientEmail)
	if err != nil {
		slog.Error("failed to send renewal reminder", "error", err,
			"client_id", c.ClientID, "application_id", c.ApplicationID, "window", w.Label)

		return r
	}

	r.Created = created

	if err := s.deadlines.MarkReminderSent(ctx, c.ApplicationID, string(w.Category)); err != nil {
		slog.Error("failed to record renewal reminder", "error", err,
			"client_id", c.ClientID, "application_id", c.ApplicationID, "window", w.Label)
	}

	return r
}

// dispatch creates the in-app notification and, only when it was new, emails the client.
func (s *Scanner) dispatch(ctx context.Context, params notification.Params, to string) (bool, error) {
	created, err := s.notifier.Notify(ctx, params)
	if err != nil {
		metrics.ReminderFailures.WithLabelValues(string(params.Category)).Inc()
		return false, err
	}

	if !created {
		metrics.RemindersSuppressed.WithLabelValues(string(params.Category)).Inc()
		return false, nil
	}

	metrics.RemindersSent.WithLabelValues(string(params.Category)).Inc()

	data := notification.EmailData{
		Title:     params.Title,
		Message:   params.Message,
		ActionURL: s.dashboardURL(),
	}

	html, err := notification.RenderEmail(data)
	if err != nil {
		slog.Error("failed to render reminder email", "error", err, "client_id", params.ClientID, "category", params.Category)
		return true, nil
	}

	s.notifier.SendEmail(ctx, to, params.Title, html, notification.RenderText(data))

	return true, nil
}

func (s *Scanner) dashboardURL() string {
	if s.cfg.BaseURL == "" {
		return ""
	}

	return s.cfg.BaseURL + "/dashboard"
}

// SweepAbandoned marks drafts untouched for longer than AbandonAfter.
func (s *Scanner) SweepAbandoned(ctx context.Context, now time.Time) (int64, error) {
	if s.cfg.AbandonAfter <= 0 {
		return 0, nil
	}

	n, err := s.deadlines.MarkAbandoned(ctx, now, now.Add(-s.cfg.AbandonAfter))
	if err != nil {
		return 0, fmt.Errorf("sweeping abandoned applications: %w", err)
	}

	if n > 0 {
		metrics.ApplicationsAbandoned.Add(float64(n))
		slog.Info("marked applications abandoned", "count", n)
	}

	return n, nil
}

// CheckExpired reads the expiry feed and publishes its size. Accounts are left untouched.
func (s *Scanner) CheckExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := s.renewals.CheckExpiredRenewals(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("checking expired renewals: %w", err)
	}

	metrics.ExpiredRenewals.Set(float64(len(expired)))

	if len(expired) > 0 {
		slog.Info("clients with lapsed renewals awaiting review", "count", len(expired))
	}

	return len(expired), nil
}
