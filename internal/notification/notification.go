package notification

import (
	"time"

	"github.com/google/uuid"
)

// Category identifies the kind of reminder a notification carries.
type Category string

const (
	CategoryIRS1120       Category = "compliance_irs_1120"
	CategoryIRS5472       Category = "compliance_irs_5472"
	CategoryAnnualReport  Category = "compliance_annual_report"
	CategoryAgentRenewal  Category = "compliance_agent_renewal"
	CategoryRenewal60Days Category = "renewal_60days"
	CategoryRenewal30Days Category = "renewal_30days"
	CategoryRenewal7Days  Category = "renewal_7days"
)

// SuppressionWindow is how long a notification of one category blocks another for the same client and order.
const SuppressionWindow = 30 * 24 * time.Hour

// Notification is an in-app message shown to a client.
type Notification struct {
	ID        uuid.UUID
	ClientID  uuid.UUID
	OrderID   uuid.UUID
	OrderCode string
	Category  Category
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}

type Params struct {
	ClientID  uuid.UUID
	OrderID   uuid.UUID
	OrderCode string
	Category  Category
	Title     string
	Message   string
}

// Email is one outbound message. Text is optional.
type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}
