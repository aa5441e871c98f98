package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
	"github.com/MrJamesThe3rd/filingdesk/internal/renewal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListRenewalCandidates(ctx context.Context, dueBefore time.Time) ([]renewal.Candidate, error) {
	query := `
		SELECT a.id, a.request_code, a.order_id, o.client_id, c.email, c.display_name, c.created_at,
			a.jurisdiction, a.agent_renewal_due, a.reminders_sent
		FROM applications a
		JOIN orders o ON o.id = a.order_id
		JOIN clients c ON c.id = o.client_id
		WHERE a.agent_renewal_due IS NOT NULL
			AND a.agent_renewal_due <= $1
			AND a.status <> 'cancelled'
			AND a.abandoned_at IS NULL
			AND o.status = 'completed'
			AND c.account_status = 'active'
		ORDER BY a.agent_renewal_due ASC, a.created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, dueBefore)
	if err != nil {
		return nil, fmt.Errorf("listing renewal candidates: %w", err)
	}
	defer rows.Close()

	var out []renewal.Candidate

	for rows.Next() {
		var (
			c            renewal.Candidate
			jurisdiction string
		)

		if err := rows.Scan(
			&c.ApplicationID, &c.RequestCode, &c.OrderID, &c.ClientID, &c.ClientEmail, &c.ClientName, &c.ClientCreatedAt,
			&jurisdiction, &c.AgentRenewalDue, &c.RemindersSent,
		); err != nil {
			return nil, fmt.Errorf("scanning renewal candidate: %w", err)
		}

		c.Jurisdiction, _ = compliance.ParseJurisdiction(jurisdiction)
		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating renewal candidates: %w", err)
	}

	return out, nil
}

// ListMaintenanceCoverage returns every maintenance purchase regardless of order status.
func (s *Store) ListMaintenanceCoverage(ctx context.Context) ([]renewal.Coverage, error) {
	query := `
		SELECT o.client_id, m.jurisdiction, o.created_at
		FROM maintenance_applications m
		JOIN orders o ON o.id = m.order_id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing maintenance coverage: %w", err)
	}
	defer rows.Close()

	var out []renewal.Coverage

	for rows.Next() {
		var (
			cv           renewal.Coverage
			jurisdiction string
		)

		if err := rows.Scan(&cv.ClientID, &jurisdiction, &cv.OrderCreatedAt); err != nil {
			return nil, fmt.Errorf("scanning maintenance coverage: %w", err)
		}

		cv.Jurisdiction, _ = compliance.ParseJurisdiction(jurisdiction)
		out = append(out, cv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating maintenance coverage: %w", err)
	}

	return out, nil
}

func (s *Store) GetClient(ctx context.Context, id uuid.UUID) (*renewal.Client, error) {
	query := `SELECT id, email, display_name, account_status, created_at FROM clients WHERE id = $1`

	var (
		c      renewal.Client
		status string
	)

	err := s.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Email, &c.DisplayName, &status, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, renewal.ErrClientNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	c.AccountStatus = renewal.AccountStatus(status)

	return &c, nil
}

func (s *Store) SetAccountStatus(ctx context.Context, id uuid.UUID, status renewal.AccountStatus) error {
	query := `UPDATE clients SET account_status = $1, updated_at = NOW() WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("updating account status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return renewal.ErrClientNotFound
	}

	return nil
}
