package compliance

import (
	"math"
	"time"
)

// ReminderLeadDays is how many days before a due date its reminder date falls, for every kind.
const ReminderLeadDays = 60

const federalDueDay = 15

// ComputeDeadlines derives every applicable deadline from the formation facts of an LLC.
//
// Both federal filings are due on the 15th of April (October with an extension) of the year
// after formation. The agent renewal is due on the first anniversary of formation. The annual
// report follows the state's rule and is absent for states without one, including unknown ones.
func ComputeDeadlines(formationDate time.Time, jurisdiction Jurisdiction, hasTaxExtension bool) DeadlineSet {
	formed := DateOnly(formationDate)
	federal := FederalDue(formed, hasTaxExtension)

	deadlines := []Deadline{
		newDeadline(DeadlineFederalIncomeTax, federal, "Form 1120 federal income tax return"),
		newDeadline(DeadlineFederalForeignOwnerReport, federal, "Form 5472 foreign-owned LLC information return"),
	}

	if due, ok := annualReportDue(formed, jurisdiction); ok {
		d := newDeadline(DeadlineAnnualReport, due, jurisdiction.Name()+" annual report")
		d.Jurisdiction = jurisdiction
		deadlines = append(deadlines, d)
	}

	deadlines = append(deadlines, newDeadline(DeadlineAgentRenewal, anniversary(formed), "Registered agent renewal"))

	return DeadlineSet{Deadlines: deadlines}
}

// FederalDue is the shared due date of the Form 1120 and Form 5472 filings.
func FederalDue(formationDate time.Time, hasTaxExtension bool) time.Time {
	month := time.April
	if hasTaxExtension {
		month = time.October
	}

	return time.Date(formationDate.Year()+1, month, federalDueDay, 0, 0, 0, 0, time.UTC)
}

// ReminderDate is the day the reminder for a deadline due on due becomes relevant.
func ReminderDate(due time.Time) time.Time {
	return due.AddDate(0, 0, -ReminderLeadDays)
}

// DateOnly drops the clock part of t, keeping its calendar date, in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func annualReportDue(formed time.Time, j Jurisdiction) (time.Time, bool) {
	switch j {
	case JurisdictionDelaware:
		return time.Date(formed.Year()+1, time.June, 1, 0, 0, 0, 0, time.UTC), true
	case JurisdictionWyoming:
		return anniversary(formed), true
	default:
		return time.Time{}, false
	}
}

// anniversary relies on time.Date normalization: Feb 29 plus one year lands on Mar 1.
func anniversary(d time.Time) time.Time {
	return time.Date(d.Year()+1, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func newDeadline(t DeadlineType, due time.Time, description string) Deadline {
	return Deadline{
		Type:         t,
		DueDate:      due,
		ReminderDate: ReminderDate(due),
		Description:  description,
	}
}

// DaysUntil counts whole days from now to due, rounding partial days up. It is negative once due has passed.
func DaysUntil(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

// CalendarDaysUntil counts calendar dates from now to due, ignoring the time of day.
func CalendarDaysUntil(due, now time.Time) int {
	return int(DateOnly(due).Sub(DateOnly(now)).Hours() / 24)
}
