package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=compliance
type Repository interface {
	GetApplication(ctx context.Context, id uuid.UUID) (*Application, error)
	GetApplicationByOrder(ctx context.Context, orderID uuid.UUID) (*Application, error)
	GetApplicationByCode(ctx context.Context, requestCode string) (*Application, error)

	SaveDeadlines(ctx context.Context, id uuid.UUID, params SaveParams) error
	SaveTaxExtension(ctx context.Context, id uuid.UUID, params TaxExtensionParams) error
	ClearDeadlines(ctx context.Context, id uuid.UUID) error
	CancelApplication(ctx context.Context, id uuid.UUID) error

	ListMissingDeadlines(ctx context.Context) ([]*Application, error)
}

// SaveParams is the full set of formation facts and derived deadlines written in one update.
type SaveParams struct {
	FormationDate   time.Time
	Jurisdiction    Jurisdiction
	HasTaxExtension bool
	Deadlines       DeadlineSet
	RecalculatedAt  time.Time
	// ResetReminders starts a new renewal cycle by emptying the reminder marker set.
	ResetReminders bool
}

// TaxExtensionParams updates the extension flag. FederalDue is nil when no formation date is known yet.
type TaxExtensionParams struct {
	HasTaxExtension bool
	FederalDue      *time.Time
	RecalculatedAt  time.Time
}

type RecomputeParams struct {
	ApplicationID   uuid.UUID
	FormationDate   time.Time
	Jurisdiction    Jurisdiction
	HasTaxExtension bool
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// ApplyDeadlines computes the deadlines for the given facts and stores them on the application.
// Kinds that do not apply are written as NULL.
func (s *Service) ApplyDeadlines(ctx context.Context, id uuid.UUID, formationDate time.Time, jurisdiction Jurisdiction, hasTaxExtension bool) (DeadlineSet, error) {
	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return DeadlineSet{}, fmt.Errorf("loading application: %w", err)
	}

	return s.apply(ctx, app, formationDate, jurisdiction, hasTaxExtension)
}

// RecomputeDeadlines is the admin entry point used when an order status change or a
// correction requires the deadlines to be derived again.
func (s *Service) RecomputeDeadlines(ctx context.Context, params RecomputeParams) (DeadlineSet, error) {
	return s.ApplyDeadlines(ctx, params.ApplicationID, params.FormationDate, params.Jurisdiction, params.HasTaxExtension)
}

// SetFormationDate records the date the state accepted the filing and derives the deadlines.
func (s *Service) SetFormationDate(ctx context.Context, id uuid.UUID, formationDate time.Time) (DeadlineSet, error) {
	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return DeadlineSet{}, fmt.Errorf("loading application: %w", err)
	}

	return s.apply(ctx, app, formationDate, app.Jurisdiction, app.HasTaxExtension)
}

// SetFormationDateByCode is SetFormationDate for callers that only know the request code.
// A known jurisdiction overrides the stored one.
func (s *Service) SetFormationDateByCode(ctx context.Context, requestCode string, formationDate time.Time, jurisdiction Jurisdiction) (DeadlineSet, error) {
	app, err := s.repo.GetApplicationByCode(ctx, requestCode)
	if err != nil {
		return DeadlineSet{}, fmt.Errorf("loading application %s: %w", requestCode, err)
	}

	if !jurisdiction.Known() {
		jurisdiction = app.Jurisdiction
	}

	return s.apply(ctx, app, formationDate, jurisdiction, app.HasTaxExtension)
}

// SetTaxExtension toggles the extension flag. Only the two federal deadlines move.
func (s *Service) SetTaxExtension(ctx context.Context, id uuid.UUID, hasTaxExtension bool) error {
	app, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return fmt.Errorf("loading application: %w", err)
	}

	params := TaxExtensionParams{
		HasTaxExtension: hasTaxExtension,
		RecalculatedAt:  s.now().UTC(),
	}

	if app.FormationDate != nil {
		federalDue := FederalDue(*app.FormationDate, hasTaxExtension)
		params.FederalDue = &federalDue
	}

	if err := s.repo.SaveTaxExtension(ctx, id, params); err != nil {
		return fmt.Errorf("saving tax extension: %w", err)
	}

	return nil
}

// ClearDeadlines nulls every deadline field without consulting the calculator.
func (s *Service) ClearDeadlines(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.ClearDeadlines(ctx, id); err != nil {
		return fmt.Errorf("clearing deadlines: %w", err)
	}

	return nil
}

// OnOrderFiled derives deadlines for the order's application. An application without a
// formation date takes the filing date.
func (s *Service) OnOrderFiled(ctx context.Context, orderID uuid.UUID, filedOn time.Time) error {
	app, err := s.repo.GetApplicationByOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("loading application for order %s: %w", orderID, err)
	}

	formationDate := filedOn
	if app.FormationDate != nil {
		formationDate = *app.FormationDate
	}

	if _, err := s.apply(ctx, app, formationDate, app.Jurisdiction, app.HasTaxExtension); err != nil {
		return err
	}

	return nil
}

// OnOrderCancelled cancels the order's application and clears its deadlines. A cancelled
// application is never repopulated or reminded.
func (s *Service) OnOrderCancelled(ctx context.Context, orderID uuid.UUID) error {
	app, err := s.repo.GetApplicationByOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("loading application for order %s: %w", orderID, err)
	}

	if err := s.repo.CancelApplication(ctx, app.ID); err != nil {
		return fmt.Errorf("cancelling application: %w", err)
	}

	return nil
}

// RepopulateMissing applies deadlines to every application that has a formation date but was
// never recalculated. A failure on one application does not stop the others.
func (s *Service) RepopulateMissing(ctx context.Context) (int, error) {
	apps, err := s.repo.ListMissingDeadlines(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing applications missing deadlines: %w", err)
	}

	applied := 0

	for _, app := range apps {
		if app.FormationDate == nil {
			continue
		}

		if _, err := s.apply(ctx, app, *app.FormationDate, app.Jurisdiction, app.HasTaxExtension); err != nil {
			slog.Error("failed to repopulate deadlines", "error", err, "application_id", app.ID, "request_code", app.RequestCode)
			continue
		}

		applied++
	}

	return applied, nil
}

func (s *Service) apply(ctx context.Context, app *Application, formationDate time.Time, jurisdiction Jurisdiction, hasTaxExtension bool) (DeadlineSet, error) {
	if !jurisdiction.Known() {
		slog.Warn("unknown jurisdiction, omitting annual report deadline",
			"application_id", app.ID, "request_code", app.RequestCode, "jurisdiction", app.RawJurisdiction)
	}

	set := ComputeDeadlines(formationDate, jurisdiction, hasTaxExtension)

	params := SaveParams{
		FormationDate:   DateOnly(formationDate),
		Jurisdiction:    jurisdiction,
		HasTaxExtension: hasTaxExtension,
		Deadlines:       set,
		RecalculatedAt:  s.now().UTC(),
		ResetReminders:  !sameDate(app.AgentRenewalDue, set.Due(DeadlineAgentRenewal)),
	}

	if err := s.repo.SaveDeadlines(ctx, app.ID, params); err != nil {
		return DeadlineSet{}, fmt.Errorf("saving deadlines: %w", err)
	}

	return set, nil
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return DateOnly(*a).Equal(DateOnly(*b))
}
