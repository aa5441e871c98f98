package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/MrJamesThe3rd/filingdesk/internal/cache"
	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
	"github.com/MrJamesThe3rd/filingdesk/internal/renewal"
)

// Horizon is how far ahead upcoming deadlines are counted.
const Horizon = 90 * 24 * time.Hour

const summaryKey = "summary"

type DeadlineCounter interface {
	CountDueBetween(ctx context.Context, from, to time.Time) (map[compliance.DeadlineType]int, error)
}

type Renewals interface {
	ClientsNeedingRenewal(ctx context.Context, now time.Time) ([]renewal.Candidate, error)
	CheckExpiredRenewals(ctx context.Context, now time.Time) ([]renewal.ExpiredRenewal, error)
}

// Summary holds the admin dashboard counts.
type Summary struct {
	GeneratedAt       time.Time
	UpcomingDeadlines map[compliance.DeadlineType]int
	RenewalsNeeded    int
	ExpiredRenewals   int
}

type Service struct {
	deadlines DeadlineCounter
	renewals  Renewals
	cache     *cache.Cache[string, Summary]
	ttl       time.Duration
}

func NewService(deadlines DeadlineCounter, renewals Renewals, c *cache.Cache[string, Summary], ttl time.Duration) *Service {
	return &Service{deadlines: deadlines, renewals: renewals, cache: c, ttl: ttl}
}

// Summary returns the dashboard counts, served from cache while fresh.
func (s *Service) Summary(ctx context.Context, now time.Time) (Summary, error) {
	if cached, ok := s.cache.Get(summaryKey); ok {
		return cached, nil
	}

	counts, err := s.deadlines.CountDueBetween(ctx, now, now.Add(Horizon))
	if err != nil {
		return Summary{}, fmt.Errorf("counting upcoming deadlines: %w", err)
	}

	needed, err := s.renewals.ClientsNeedingRenewal(ctx, now)
	if err != nil {
		return Summary{}, fmt.Errorf("listing renewals: %w", err)
	}

	expired, err := s.renewals.CheckExpiredRenewals(ctx, now)
	if err != nil {
		return Summary{}, fmt.Errorf("listing expired renewals: %w", err)
	}

	summary := Summary{
		GeneratedAt:       now,
		UpcomingDeadlines: counts,
		RenewalsNeeded:    len(needed),
		ExpiredRenewals:   len(expired),
	}

	s.cache.Set(summaryKey, summary, s.ttl)

	return summary, nil
}

// Invalidate drops the cached summary so the next call recomputes it.
func (s *Service) Invalidate() {
	s.cache.Delete(summaryKey)
}
