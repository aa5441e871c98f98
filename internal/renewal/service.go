package renewal

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=renewal
type Repository interface {
	// ListRenewalCandidates returns applications of completed orders owned by active clients whose
	// agent renewal is due at or before dueBefore.
	ListRenewalCandidates(ctx context.Context, dueBefore time.Time) ([]Candidate, error)
	ListMaintenanceCoverage(ctx context.Context) ([]Coverage, error)

	GetClient(ctx context.Context, id uuid.UUID) (*Client, error)
	SetAccountStatus(ctx context.Context, id uuid.UUID, status AccountStatus) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ClientsNeedingRenewal lists uncovered renewals due within the lookahead, soonest first.
// Already lapsed renewals are included with IsExpired set.
func (s *Service) ClientsNeedingRenewal(ctx context.Context, now time.Time) ([]Candidate, error) {
	return s.uncovered(ctx, now.Add(Lookahead), now)
}

// CheckExpiredRenewals lists uncovered renewals due on a date before today. A renewal due today
// has not lapsed yet. It never changes account status.
func (s *Service) CheckExpiredRenewals(ctx context.Context, now time.Time) ([]ExpiredRenewal, error) {
	candidates, err := s.uncovered(ctx, ExpiredBefore(now), now)
	if err != nil {
		return nil, err
	}

	out := make([]ExpiredRenewal, 0, len(candidates))
	for _, c := range candidates {
		days := compliance.CalendarDaysUntil(c.AgentRenewalDue, now)
		if days >= 0 {
			continue
		}

		c.DaysUntilExpiry = days
		c.IsExpired = true

		out = append(out, ExpiredRenewal{
			Candidate:     c,
			AccountStatus: AccountActive,
			DaysOverdue:   -days,
		})
	}

	return out, nil
}

// ExpiredBefore is the latest due date that counts as lapsed at now: the day before today.
func ExpiredBefore(now time.Time) time.Time {
	return compliance.DateOnly(now).AddDate(0, 0, -1)
}

// Deactivate marks the client deactivated. Only clients present in the expired feed qualify.
func (s *Service) Deactivate(ctx context.Context, clientID uuid.UUID, now time.Time) (*Client, error) {
	client, err := s.repo.GetClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("loading client: %w", err)
	}

	expired, err := s.CheckExpiredRenewals(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("checking expired renewals: %w", err)
	}

	if !slices.ContainsFunc(expired, func(e ExpiredRenewal) bool { return e.ClientID == clientID }) {
		return nil, ErrNotExpired
	}

	if err := s.repo.SetAccountStatus(ctx, clientID, AccountDeactivated); err != nil {
		return nil, fmt.Errorf("deactivating client: %w", err)
	}

	slog.Info("client deactivated for lapsed renewal", "client_id", clientID, "email", client.Email)

	client.AccountStatus = AccountDeactivated

	return client, nil
}

func (s *Service) uncovered(ctx context.Context, dueBefore, now time.Time) ([]Candidate, error) {
	candidates, err := s.repo.ListRenewalCandidates(ctx, dueBefore)
	if err != nil {
		return nil, fmt.Errorf("listing renewal candidates: %w", err)
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	coverage, err := s.repo.ListMaintenanceCoverage(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing maintenance coverage: %w", err)
	}

	latest := latestCoverage(coverage)

	out := make([]Candidate, 0, len(candidates))

	for _, c := range candidates {
		if covered(latest, c) {
			continue
		}

		c.DaysUntilExpiry = compliance.DaysUntil(c.AgentRenewalDue, now)
		c.IsExpired = c.DaysUntilExpiry < 0
		out = append(out, c)
	}

	slices.SortStableFunc(out, func(a, b Candidate) int {
		return cmp.Compare(a.DaysUntilExpiry, b.DaysUntilExpiry)
	})

	return out, nil
}

type coverageKey struct {
	clientID     uuid.UUID
	jurisdiction compliance.Jurisdiction
}

// latestCoverage keeps the most recent maintenance order per client and state.
func latestCoverage(coverage []Coverage) map[coverageKey]time.Time {
	latest := make(map[coverageKey]time.Time, len(coverage))

	for _, cv := range coverage {
		key := coverageKey{clientID: cv.ClientID, jurisdiction: cv.Jurisdiction}
		if prev, ok := latest[key]; !ok || cv.OrderCreatedAt.After(prev) {
			latest[key] = cv.OrderCreatedAt
		}
	}

	return latest
}

// covered has no upper bound: any maintenance order placed on or after the window start counts.
func covered(latest map[coverageKey]time.Time, c Candidate) bool {
	at, ok := latest[coverageKey{clientID: c.ClientID, jurisdiction: c.Jurisdiction}]
	if !ok {
		return false
	}

	return !at.Before(c.AgentRenewalDue.AddDate(0, 0, -CoverageLeadDays))
}
