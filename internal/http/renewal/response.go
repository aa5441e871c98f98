package renewal

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
	"github.com/MrJamesThe3rd/filingdesk/internal/renewal"
)

type candidateResponse struct {
	ApplicationID   uuid.UUID               `json:"application_id"`
	RequestCode     string                  `json:"request_code"`
	OrderID         uuid.UUID               `json:"order_id"`
	ClientID        uuid.UUID               `json:"client_id"`
	ClientEmail     string                  `json:"client_email"`
	ClientName      string                  `json:"client_name"`
	Jurisdiction    compliance.Jurisdiction `json:"jurisdiction"`
	AgentRenewalDue string                  `json:"agent_renewal_due"`
	DaysUntilExpiry int                     `json:"days_until_expiry"`
	IsExpired       bool                    `json:"is_expired"`
}

type expiredResponse struct {
	candidateResponse
	AccountStatus renewal.AccountStatus `json:"account_status"`
	DaysOverdue   int                   `json:"days_overdue"`
}

type clientResponse struct {
	ID            uuid.UUID             `json:"id"`
	Email         string                `json:"email"`
	DisplayName   string                `json:"display_name"`
	AccountStatus renewal.AccountStatus `json:"account_status"`
}

func toCandidateResponse(c renewal.Candidate) candidateResponse {
	return candidateResponse{
		ApplicationID:   c.ApplicationID,
		RequestCode:     c.RequestCode,
		OrderID:         c.OrderID,
		ClientID:        c.ClientID,
		ClientEmail:     c.ClientEmail,
		ClientName:      c.ClientName,
		Jurisdiction:    c.Jurisdiction,
		AgentRenewalDue: c.AgentRenewalDue.Format(time.DateOnly),
		DaysUntilExpiry: c.DaysUntilExpiry,
		IsExpired:       c.IsExpired,
	}
}
