package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// Status represents the lifecycle state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusPaid       Status = "paid"
	StatusProcessing Status = "processing"
	StatusFiled      Status = "filed"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusPaid, StatusCancelled},
	StatusPaid:       {StatusProcessing, StatusFiled, StatusCancelled},
	StatusProcessing: {StatusFiled, StatusCancelled},
	StatusFiled:      {StatusCompleted, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusProcessing, StatusFiled, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransition reports whether an order may move from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// Order links an application to the client who bought it.
type Order struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	Status    Status
	CreatedAt time.Time
	UpdatedAt *time.Time
}
