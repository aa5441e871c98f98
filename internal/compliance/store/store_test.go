package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
	"github.com/MrJamesThe3rd/filingdesk/internal/compliance/store"
)

func newStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return store.New(db), mock
}

var applicationColumns = []string{
	"id", "request_code", "order_id", "jurisdiction", "status",
	"formation_date", "has_tax_extension",
	"federal_income_tax_due", "federal_foreign_owner_report_due", "state_annual_report_due", "agent_renewal_due",
	"deadlines_recalculated_at", "reminders_sent", "abandoned_at",
	"created_at", "updated_at",
}

func TestStore_GetApplication(t *testing.T) {
	s, mock := newStore(t)

	id := uuid.New()
	orderID := uuid.New()
	formed := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	renewal := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, time.February, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM applications a WHERE a.id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(applicationColumns).AddRow(
			id.String(), "WY-0001", orderID.String(), "wyoming", "filed",
			formed, false,
			nil, nil, nil, renewal,
			nil, []byte(`["renewal_60days"]`), nil,
			created, nil,
		))

	app, err := s.GetApplication(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, app.ID)
	assert.Equal(t, orderID, app.OrderID)
	assert.Equal(t, compliance.JurisdictionWyoming, app.Jurisdiction)
	assert.Equal(t, compliance.StatusFiled, app.Status)
	require.NotNil(t, app.FormationDate)
	assert.Equal(t, formed, *app.FormationDate)
	assert.Nil(t, app.FederalIncomeTaxDue)
	require.NotNil(t, app.AgentRenewalDue)
	assert.Equal(t, renewal, *app.AgentRenewalDue)
	assert.True(t, app.RemindersSent.Has("renewal_60days"))
	assert.Nil(t, app.UpdatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetApplication_NotFound(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(`FROM applications a WHERE a.order_id = \$1`).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetApplicationByOrder(context.Background(), uuid.New())
	assert.ErrorIs(t, err, compliance.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveDeadlines(t *testing.T) {
	s, mock := newStore(t)

	id := uuid.New()
	formed := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 11, 12, 0, 0, 0, time.UTC)
	set := compliance.ComputeDeadlines(formed, compliance.JurisdictionNewMexico, true)

	mock.ExpectExec(`UPDATE applications`).
		WithArgs(
			formed, "NM", true,
			set.Due(compliance.DeadlineFederalIncomeTax),
			set.Due(compliance.DeadlineFederalForeignOwnerReport),
			nil,
			set.Due(compliance.DeadlineAgentRenewal),
			now, true, id,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.SaveDeadlines(context.Background(), id, compliance.SaveParams{
		FormationDate:   formed,
		Jurisdiction:    compliance.JurisdictionNewMexico,
		HasTaxExtension: true,
		Deadlines:       set,
		RecalculatedAt:  now,
		ResetReminders:  true,
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveDeadlines_UnknownJurisdictionKeepsStoredText(t *testing.T) {
	s, mock := newStore(t)

	id := uuid.New()
	formed := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.March, 11, 12, 0, 0, 0, time.UTC)
	set := compliance.ComputeDeadlines(formed, compliance.JurisdictionUnknown, false)

	mock.ExpectExec(`jurisdiction = COALESCE\(NULLIF\(\$2, ''\), jurisdiction\)`).
		WithArgs(
			formed, "", false,
			set.Due(compliance.DeadlineFederalIncomeTax),
			set.Due(compliance.DeadlineFederalForeignOwnerReport),
			nil,
			set.Due(compliance.DeadlineAgentRenewal),
			now, true, id,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.SaveDeadlines(context.Background(), id, compliance.SaveParams{
		FormationDate:  formed,
		Deadlines:      set,
		RecalculatedAt: now,
		ResetReminders: true,
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetApplication_KeepsRawJurisdiction(t *testing.T) {
	s, mock := newStore(t)

	id := uuid.New()

	mock.ExpectQuery(`FROM applications a WHERE a.request_code = \$1`).
		WithArgs("TX-0001").
		WillReturnRows(sqlmock.NewRows(applicationColumns).AddRow(
			id.String(), "TX-0001", uuid.NewString(), "Texas", "submitted",
			nil, false,
			nil, nil, nil, nil,
			nil, []byte(`[]`), nil,
			time.Now(), nil,
		))

	app, err := s.GetApplicationByCode(context.Background(), "TX-0001")
	require.NoError(t, err)

	assert.Equal(t, compliance.JurisdictionUnknown, app.Jurisdiction)
	assert.Equal(t, "Texas", app.RawJurisdiction)
}

func TestStore_CancelApplication(t *testing.T) {
	s, mock := newStore(t)

	id := uuid.New()

	mock.ExpectExec(`SET status = 'cancelled',\s+federal_income_tax_due = NULL`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.CancelApplication(context.Background(), id))

	mock.ExpectExec(`SET status = 'cancelled'`).WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, s.CancelApplication(context.Background(), uuid.New()), compliance.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListMissingDeadlines_ExcludesCancelledOrders(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectQuery(`JOIN orders o ON o.id = a.order_id .* AND a.status <> 'cancelled' .* AND o.status <> 'cancelled'`).
		WillReturnRows(sqlmock.NewRows(applicationColumns))

	apps, err := s.ListMissingDeadlines(context.Background())
	require.NoError(t, err)
	assert.Empty(t, apps)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CountDueBetween_ExcludesCancelledOrders(t *testing.T) {
	s, mock := newStore(t)

	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 90)

	mock.ExpectQuery(`JOIN orders o ON o.id = a.order_id .* o.status <> 'cancelled'`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"a", "b", "c", "d"}).AddRow(1, 2, 3, 4))

	counts, err := s.CountDueBetween(context.Background(), from, to)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[compliance.DeadlineAnnualReport])
	assert.Equal(t, 4, counts[compliance.DeadlineAgentRenewal])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveDeadlines_MissingRow(t *testing.T) {
	s, mock := newStore(t)

	mock.ExpectExec(`UPDATE applications`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.SaveDeadlines(context.Background(), uuid.New(), compliance.SaveParams{})
	assert.ErrorIs(t, err, compliance.ErrNotFound)
}

func TestStore_SaveTaxExtension_FlagOnly(t *testing.T) {
	s, mock := newStore(t)

	id := uuid.New()

	mock.ExpectExec(`UPDATE applications SET has_tax_extension = \$1, updated_at = NOW\(\) WHERE id = \$2`).
		WithArgs(true, id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := s.SaveTaxExtension(context.Background(), id, compliance.TaxExtensionParams{HasTaxExtension: true})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListDueBetween(t *testing.T) {
	s, mock := newStore(t)

	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 60)
	due := time.Date(2025, time.February, 14, 0, 0, 0, 0, time.UTC)
	appID, orderID, clientID := uuid.New(), uuid.New(), uuid.New()

	mock.ExpectQuery(`a.agent_renewal_due BETWEEN \$1 AND \$2 .* c.account_status IN \('active'\)`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request_code", "order_id", "client_id", "email", "display_name", "jurisdiction", "agent_renewal_due"}).
			AddRow(appID.String(), "DE-0009", orderID.String(), clientID.String(), "ana@example.com", "Ana", "DE", due))

	got, err := s.ListDueBetween(context.Background(), compliance.DeadlineAgentRenewal, from, to)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, compliance.DeadlineAgentRenewal, got[0].Type)
	assert.Equal(t, clientID, got[0].ClientID)
	assert.Equal(t, due, got[0].DueDate)
	assert.Equal(t, compliance.JurisdictionDelaware, got[0].Jurisdiction)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListDueBetween_ComplianceKindsReachVIP(t *testing.T) {
	s, mock := newStore(t)

	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 10)

	mock.ExpectQuery(`a.state_annual_report_due BETWEEN \$1 AND \$2 .* c.account_status IN \('active', 'vip'\)`).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "request_code", "order_id", "client_id", "email", "display_name", "jurisdiction", "state_annual_report_due"}))

	_, err := s.ListDueBetween(context.Background(), compliance.DeadlineAnnualReport, from, to)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListDueBetween_UnknownKind(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.ListDueBetween(context.Background(), compliance.DeadlineType("bogus"), time.Now(), time.Now())
	assert.Error(t, err)
}

func TestStore_MarkAbandoned(t *testing.T) {
	s, mock := newStore(t)

	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	cutoff := now.Add(-168 * time.Hour)

	mock.ExpectExec(`SET abandoned_at = \$1`).
		WithArgs(now, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := s.MarkAbandoned(context.Background(), now, cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}
