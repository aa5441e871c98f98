package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// deadlineColumns maps each deadline kind to its column. Queries only interpolate values from here.
var deadlineColumns = map[compliance.DeadlineType]string{
	compliance.DeadlineFederalIncomeTax:          "federal_income_tax_due",
	compliance.DeadlineFederalForeignOwnerReport: "federal_foreign_owner_report_due",
	compliance.DeadlineAnnualReport:              "state_annual_report_due",
	compliance.DeadlineAgentRenewal:              "agent_renewal_due",
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order matches selectApplicationColumns.
func scanApplication(s scanner) (*compliance.Application, error) {
	var app compliance.Application

	var jurisdiction, status string

	if err := s.Scan(
		&app.ID, &app.RequestCode, &app.OrderID, &jurisdiction, &status,
		&app.FormationDate, &app.HasTaxExtension,
		&app.FederalIncomeTaxDue, &app.FederalForeignOwnerReportDue, &app.StateAnnualReportDue, &app.AgentRenewalDue,
		&app.DeadlinesRecalculatedAt, &app.RemindersSent, &app.AbandonedAt,
		&app.CreatedAt, &app.UpdatedAt,
	); err != nil {
		return nil, err
	}

	app.Jurisdiction, _ = compliance.ParseJurisdiction(jurisdiction)
	app.RawJurisdiction = jurisdiction
	app.Status = compliance.Status(status)

	return &app, nil
}

const selectApplicationColumns = `
	a.id, a.request_code, a.order_id, a.jurisdiction, a.status,
	a.formation_date, a.has_tax_extension,
	a.federal_income_tax_due, a.federal_foreign_owner_report_due, a.state_annual_report_due, a.agent_renewal_due,
	a.deadlines_recalculated_at, a.reminders_sent, a.abandoned_at,
	a.created_at, a.updated_at
`

func (s *Store) getOne(ctx context.Context, where string, arg any) (*compliance.Application, error) {
	query := `SELECT ` + selectApplicationColumns + ` FROM applications a WHERE ` + where

	app, err := scanApplication(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, compliance.ErrNotFound
		}

		return nil, fmt.Errorf("getting application: %w", err)
	}

	return app, nil
}

func (s *Store) GetApplication(ctx context.Context, id uuid.UUID) (*compliance.Application, error) {
	return s.getOne(ctx, "a.id = $1", id)
}

func (s *Store) GetApplicationByOrder(ctx context.Context, orderID uuid.UUID) (*compliance.Application, error) {
	return s.getOne(ctx, "a.order_id = $1", orderID)
}

func (s *Store) GetApplicationByCode(ctx context.Context, requestCode string) (*compliance.Application, error) {
	return s.getOne(ctx, "a.request_code = $1", requestCode)
}

func (s *Store) SaveDeadlines(ctx context.Context, id uuid.UUID, params compliance.SaveParams) error {
	query := `
		UPDATE applications
		SET formation_date = $1,
			jurisdiction = COALESCE(NULLIF($2, ''), jurisdiction),
			has_tax_extension = $3,
			federal_income_tax_due = $4,
			federal_foreign_owner_report_due = $5,
			state_annual_report_due = $6,
			agent_renewal_due = $7,
			deadlines_recalculated_at = $8,
			reminders_sent = CASE WHEN $9::boolean THEN '[]'::jsonb ELSE reminders_sent END,
			updated_at = NOW()
		WHERE id = $10
	`

	set := params.Deadlines

	res, err := s.db.ExecContext(ctx, query,
		params.FormationDate,
		string(params.Jurisdiction),
		params.HasTaxExtension,
		set.Due(compliance.DeadlineFederalIncomeTax),
		set.Due(compliance.DeadlineFederalForeignOwnerReport),
		set.Due(compliance.DeadlineAnnualReport),
		set.Due(compliance.DeadlineAgentRenewal),
		params.RecalculatedAt,
		params.ResetReminders,
		id,
	)
	if err != nil {
		return fmt.Errorf("saving deadlines: %w", err)
	}

	return requireRow(res)
}

func (s *Store) SaveTaxExtension(ctx context.Context, id uuid.UUID, params compliance.TaxExtensionParams) error {
	var (
		res sql.Result
		err error
	)

	if params.FederalDue == nil {
		query := `UPDATE applications SET has_tax_extension = $1, updated_at = NOW() WHERE id = $2`
		res, err = s.db.ExecContext(ctx, query, params.HasTaxExtension, id)
	} else {
		query := `
			UPDATE applications
			SET has_tax_extension = $1,
				federal_income_tax_due = $2,
				federal_foreign_owner_report_due = $2,
				deadlines_recalculated_at = $3,
				updated_at = NOW()
			WHERE id = $4
		`
		res, err = s.db.ExecContext(ctx, query, params.HasTaxExtension, *params.FederalDue, params.RecalculatedAt, id)
	}

	if err != nil {
		return fmt.Errorf("saving tax extension: %w", err)
	}

	return requireRow(res)
}

func (s *Store) ClearDeadlines(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE applications
		SET federal_income_tax_due = NULL,
			federal_foreign_owner_report_due = NULL,
			state_annual_report_due = NULL,
			agent_renewal_due = NULL,
			deadlines_recalculated_at = NULL,
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("clearing deadlines: %w", err)
	}

	return requireRow(res)
}

// CancelApplication marks the application cancelled and clears its deadlines in one update.
func (s *Store) CancelApplication(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE applications
		SET status = 'cancelled',
			federal_income_tax_due = NULL,
			federal_foreign_owner_report_due = NULL,
			state_annual_report_due = NULL,
			agent_renewal_due = NULL,
			deadlines_recalculated_at = NULL,
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("cancelling application: %w", err)
	}

	return requireRow(res)
}

// ListMissingDeadlines returns live applications with a formation date that were never recalculated.
// Applications of cancelled orders are excluded even if the application row itself was not cancelled.
func (s *Store) ListMissingDeadlines(ctx context.Context) ([]*compliance.Application, error) {
	query := `SELECT ` + selectApplicationColumns + `
		FROM applications a
		JOIN orders o ON o.id = a.order_id
		WHERE a.formation_date IS NOT NULL
			AND a.deadlines_recalculated_at IS NULL
			AND a.status <> 'cancelled'
			AND a.abandoned_at IS NULL
			AND o.status <> 'cancelled'
		ORDER BY a.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing applications missing deadlines: %w", err)
	}
	defer rows.Close()

	var apps []*compliance.Application

	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning application: %w", err)
		}

		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating application rows: %w", err)
	}

	return apps, nil
}

// ListDueBetween returns live applications whose deadline of the given kind falls in [from, to].
// Cancelled or abandoned applications are excluded. Active and vip clients are included, except
// for the agent renewal kind, which only reaches active clients.
func (s *Store) ListDueBetween(ctx context.Context, kind compliance.DeadlineType, from, to time.Time) ([]compliance.Upcoming, error) {
	col, ok := deadlineColumns[kind]
	if !ok {
		return nil, fmt.Errorf("unknown deadline type %q", kind)
	}

	audience := `('active', 'vip')`
	if kind == compliance.DeadlineAgentRenewal {
		audience = `('active')`
	}

	query := `
		SELECT a.id, a.request_code, a.order_id, o.client_id, c.email, c.display_name, a.jurisdiction, a.` + col + `
		FROM applications a
		JOIN orders o ON o.id = a.order_id
		JOIN clients c ON c.id = o.client_id
		WHERE a.` + col + ` BETWEEN $1 AND $2
			AND a.status <> 'cancelled'
			AND a.abandoned_at IS NULL
			AND o.status <> 'cancelled'
			AND c.account_status IN ` + audience + `
		ORDER BY a.` + col + ` ASC, a.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing %s deadlines: %w", kind, err)
	}
	defer rows.Close()

	var out []compliance.Upcoming

	for rows.Next() {
		var jurisdiction string

		u := compliance.Upcoming{Type: kind}
		if err := rows.Scan(&u.ApplicationID, &u.RequestCode, &u.OrderID, &u.ClientID, &u.ClientEmail, &u.ClientName, &jurisdiction, &u.DueDate); err != nil {
			return nil, fmt.Errorf("scanning upcoming deadline: %w", err)
		}

		u.Jurisdiction, _ = compliance.ParseJurisdiction(jurisdiction)

		out = append(out, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating upcoming rows: %w", err)
	}

	return out, nil
}

// CountDueBetween counts live deadlines per kind falling in [from, to].
func (s *Store) CountDueBetween(ctx context.Context, from, to time.Time) (map[compliance.DeadlineType]int, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE a.federal_income_tax_due BETWEEN $1 AND $2),
			COUNT(*) FILTER (WHERE a.federal_foreign_owner_report_due BETWEEN $1 AND $2),
			COUNT(*) FILTER (WHERE a.state_annual_report_due BETWEEN $1 AND $2),
			COUNT(*) FILTER (WHERE a.agent_renewal_due BETWEEN $1 AND $2)
		FROM applications a
		JOIN orders o ON o.id = a.order_id
		WHERE a.status <> 'cancelled' AND a.abandoned_at IS NULL AND o.status <> 'cancelled'
	`

	var federal, foreign, annual, agent int
	if err := s.db.QueryRowContext(ctx, query, from, to).Scan(&federal, &foreign, &annual, &agent); err != nil {
		return nil, fmt.Errorf("counting deadlines: %w", err)
	}

	return map[compliance.DeadlineType]int{
		compliance.DeadlineFederalIncomeTax:          federal,
		compliance.DeadlineFederalForeignOwnerReport: foreign,
		compliance.DeadlineAnnualReport:              annual,
		compliance.DeadlineAgentRenewal:              agent,
	}, nil
}

// MarkReminderSent adds marker to the application's reminder set unless it is already present.
func (s *Store) MarkReminderSent(ctx context.Context, id uuid.UUID, marker string) error {
	query := `
		UPDATE applications
		SET reminders_sent = reminders_sent || jsonb_build_array($1::text),
			updated_at = NOW()
		WHERE id = $2 AND NOT reminders_sent @> jsonb_build_array($1::text)
	`

	if _, err := s.db.ExecContext(ctx, query, marker, id); err != nil {
		return fmt.Errorf("marking reminder sent: %w", err)
	}

	return nil
}

// MarkAbandoned stamps abandoned_at on drafts not touched since cutoff and returns how many changed.
func (s *Store) MarkAbandoned(ctx context.Context, now, cutoff time.Time) (int64, error) {
	query := `
		UPDATE applications
		SET abandoned_at = $1
		WHERE status = 'draft'
			AND abandoned_at IS NULL
			AND COALESCE(updated_at, created_at) < $2
	`

	res, err := s.db.ExecContext(ctx, query, now, cutoff)
	if err != nil {
		return 0, fmt.Errorf("marking abandoned applications: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}

	return n, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return compliance.ErrNotFound
	}

	return nil
}
