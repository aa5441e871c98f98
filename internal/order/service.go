package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=order
type Repository interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

// DeadlineHook is notified of the transitions that create or clear compliance deadlines.
type DeadlineHook interface {
	OnOrderFiled(ctx context.Context, orderID uuid.UUID, filedOn time.Time) error
	OnOrderCancelled(ctx context.Context, orderID uuid.UUID) error
}

type Service struct {
	repo      Repository
	deadlines DeadlineHook
}

func NewService(repo Repository, deadlines DeadlineHook) *Service {
	return &Service{repo: repo, deadlines: deadlines}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.repo.GetOrder(ctx, id)
}

// ChangeStatus moves the order to status and runs the deadline hook for that transition.
// Setting the current status again writes nothing but runs the hook again, so a failed
// filed or cancelled hook can be retried.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, status Status, filedOn time.Time) (*Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}

	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading order: %w", err)
	}

	if o.Status == status {
		return o, s.runHook(ctx, id, status, filedOn)
	}

	if !o.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, status)
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("updating order status: %w", err)
	}

	o.Status = status

	if err := s.runHook(ctx, id, status, filedOn); err != nil {
		return o, err
	}

	return o, nil
}

func (s *Service) runHook(ctx context.Context, id uuid.UUID, status Status, filedOn time.Time) error {
	var err error

	switch status {
	case StatusFiled:
		err = s.deadlines.OnOrderFiled(ctx, id, filedOn)
	case StatusCancelled:
		err = s.deadlines.OnOrderCancelled(ctx, id)
	default:
		return nil
	}

	// Maintenance orders have no formation application.
	if errors.Is(err, compliance.ErrNotFound) {
		slog.Info("order has no formation application, skipping deadlines", "order_id", id, "status", status)
		return nil
	}

	if err != nil {
		return fmt.Errorf("updating deadlines for %s order: %w", status, err)
	}

	return nil
}
