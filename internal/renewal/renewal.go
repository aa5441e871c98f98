package renewal

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrNotExpired     = errors.New("client has no expired renewal")
)

// AccountStatus is the state of a client account.
type AccountStatus string

const (
	AccountActive      AccountStatus = "active"
	AccountPending     AccountStatus = "pending"
	AccountDeactivated AccountStatus = "deactivated"
	AccountVIP         AccountStatus = "vip"
)

const (
	// Lookahead bounds how far ahead ClientsNeedingRenewal looks.
	Lookahead = 90 * 24 * time.Hour
	// CoverageLeadDays is how long before a renewal date a maintenance order still counts as covering it.
	CoverageLeadDays = 60
)

// Candidate is a formed application with a registered agent renewal coming up or overdue.
type Candidate struct {
	ApplicationID   uuid.UUID
	RequestCode     string
	OrderID         uuid.UUID
	ClientID        uuid.UUID
	ClientEmail     string
	ClientName      string
	ClientCreatedAt time.Time
	Jurisdiction    compliance.Jurisdiction
	AgentRenewalDue time.Time
	RemindersSent   compliance.Markers

	DaysUntilExpiry int
	IsExpired       bool
}

// ExpiredRenewal is a lapsed candidate with the client details the deactivation workflow shows.
type ExpiredRenewal struct {
	Candidate
	AccountStatus AccountStatus
	DaysOverdue   int
}

// Coverage is one maintenance purchase: who bought it, for which state, and when the order was placed.
type Coverage struct {
	ClientID       uuid.UUID
	Jurisdiction   compliance.Jurisdiction
	OrderCreatedAt time.Time
}

// Client is the account data touched by the deactivation action.
type Client struct {
	ID            uuid.UUID
	Email         string
	DisplayName   string
	AccountStatus AccountStatus
	CreatedAt     time.Time
}
