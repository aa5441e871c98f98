package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/filingdesk/internal/notification"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ExistsSince(ctx context.Context, clientID, orderID uuid.UUID, category notification.Category, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM notifications
			WHERE client_id = $1 AND order_id = $2 AND category = $3 AND created_at >= $4
		)
	`

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, clientID, orderID, string(category), since).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking notifications: %w", err)
	}

	return exists, nil
}

func (s *Store) Create(ctx context.Context, n *notification.Notification) error {
	query := `
		INSERT INTO notifications (client_id, order_id, order_code, category, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		n.ClientID,
		n.OrderID,
		n.OrderCode,
		string(n.Category),
		n.Title,
		n.Message,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}

	return nil
}
