package compliance

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("application not found")

// DeadlineType identifies one compliance obligation of a formed LLC.
type DeadlineType string

const (
	DeadlineFederalIncomeTax          DeadlineType = "federal_income_tax"
	DeadlineFederalForeignOwnerReport DeadlineType = "federal_foreign_owner_report"
	DeadlineAnnualReport              DeadlineType = "annual_report"
	DeadlineAgentRenewal              DeadlineType = "agent_renewal"
)

// DeadlineTypes lists every kind in the order the calculator emits them.
var DeadlineTypes = []DeadlineType{
	DeadlineFederalIncomeTax,
	DeadlineFederalForeignOwnerReport,
	DeadlineAnnualReport,
	DeadlineAgentRenewal,
}

// Deadline is a single computed obligation.
type Deadline struct {
	Type         DeadlineType
	DueDate      time.Time
	ReminderDate time.Time
	Description  string
	Jurisdiction Jurisdiction // only set for DeadlineAnnualReport
}

// DeadlineSet is the calculator output. Kinds that do not apply are absent.
type DeadlineSet struct {
	Deadlines []Deadline
}

// Due returns the due date of the given kind, or nil when the set does not contain it.
func (s DeadlineSet) Due(t DeadlineType) *time.Time {
	for _, d := range s.Deadlines {
		if d.Type == t {
			due := d.DueDate
			return &due
		}
	}

	return nil
}

// Has reports whether the set contains the given kind.
func (s DeadlineSet) Has(t DeadlineType) bool {
	return s.Due(t) != nil
}

// Status represents the lifecycle state of an application.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusPaid      Status = "paid"
	StatusFiled     Status = "filed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Application is an LLC formation request together with its derived deadlines.
type Application struct {
	ID              uuid.UUID
	RequestCode     string
	OrderID         uuid.UUID
	Jurisdiction    Jurisdiction
	// RawJurisdiction is the stored text, kept when it does not resolve to a known state.
	RawJurisdiction string
	Status          Status
	FormationDate   *time.Time
	HasTaxExtension bool

	FederalIncomeTaxDue          *time.Time
	FederalForeignOwnerReportDue *time.Time
	StateAnnualReportDue         *time.Time
	AgentRenewalDue              *time.Time
	DeadlinesRecalculatedAt      *time.Time

	RemindersSent Markers
	AbandonedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Upcoming is one deadline of an application, joined with the order and client it belongs to.
type Upcoming struct {
	ApplicationID uuid.UUID
	RequestCode   string
	OrderID       uuid.UUID
	ClientID      uuid.UUID
	ClientEmail   string
	ClientName    string
	Jurisdiction  Jurisdiction
	Type          DeadlineType
	DueDate       time.Time
}

// Markers is the set of reminder kinds already dispatched in the current renewal cycle.
// It is stored as a JSON array.
type Markers []string

func (m Markers) Has(marker string) bool {
	return slices.Contains(m, marker)
}

func (m Markers) Value() (driver.Value, error) {
	if m == nil {
		return []byte("[]"), nil
	}

	return json.Marshal([]string(m))
}

func (m *Markers) Scan(value any) error {
	var raw []byte

	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported markers type %T", value)
	}

	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decoding markers: %w", err)
	}

	*m = out

	return nil
}

// FormationFact is one formation date reported by a registered agent or state filing export.
type FormationFact struct {
	RequestCode   string
	FormationDate time.Time
	Jurisdiction  Jurisdiction
	// Row is the 1-based line of the fact in its source file.
	Row int
}
