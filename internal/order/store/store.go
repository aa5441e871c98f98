package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/filingdesk/internal/order"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query := `SELECT id, client_id, status, created_at, updated_at FROM orders WHERE id = $1`

	var (
		o      order.Order
		status string
	)

	err := s.db.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.ClientID, &status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("getting order: %w", err)
	}

	o.Status = order.Status(status)

	return &o, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status order.Status) error {
	query := `UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`

	res, err := s.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("updating order status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return order.ErrNotFound
	}

	return nil
}
