package reminder

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
	"github.com/MrJamesThe3rd/filingdesk/internal/notification"
)

const (
	// ComplianceWindowStart and ComplianceWindowEnd bound the lookahead band around the 60 day reminder point.
	ComplianceWindowStart = 55
	ComplianceWindowEnd   = 65
)

// Window is a range of days before a renewal in which one reminder category applies.
type Window struct {
	MinDays  int
	MaxDays  int
	Label    string
	Category notification.Category
}

// RenewalWindows are checked in order; the first match wins.
var RenewalWindows = []Window{
	{MinDays: 55, MaxDays: 65, Label: "60 days", Category: notification.CategoryRenewal60Days},
	{MinDays: 25, MaxDays: 35, Label: "30 days", Category: notification.CategoryRenewal30Days},
	{MinDays: 5, MaxDays: 10, Label: "7 days", Category: notification.CategoryRenewal7Days},
}

// MatchWindow returns the renewal window containing days.
func MatchWindow(days int) (Window, bool) {
	for _, w := range RenewalWindows {
		if days >= w.MinDays && days <= w.MaxDays {
			return w, true
		}
	}

	return Window{}, false
}

var complianceCategories = map[compliance.DeadlineType]notification.Category{
	compliance.DeadlineFederalIncomeTax:          notification.CategoryIRS1120,
	compliance.DeadlineFederalForeignOwnerReport: notification.CategoryIRS5472,
	compliance.DeadlineAnnualReport:              notification.CategoryAnnualReport,
	compliance.DeadlineAgentRenewal:              notification.CategoryAgentRenewal,
}

// CategoryFor maps a deadline kind to its compliance notification category.
func CategoryFor(kind compliance.DeadlineType) notification.Category {
	return complianceCategories[kind]
}

// Reminder is one reminder decision made during a scan.
type Reminder struct {
	ApplicationID uuid.UUID
	RequestCode   string
	OrderID       uuid.UUID
	ClientID      uuid.UUID
	Category      notification.Category
	DueDate       time.Time
	DaysUntilDue  int
	// Created is false when an earlier notification suppressed this one or dispatch failed.
	Created bool
}
