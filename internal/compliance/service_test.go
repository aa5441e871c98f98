package compliance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
)

func TestService_ApplyDeadlines(t *testing.T) {
	appID := uuid.New()
	formed := date(2024, time.March, 10)

	type testCase struct {
		name         string
		jurisdiction compliance.Jurisdiction
		extension    bool
		setupMock    func(m *compliance.MockRepository, saved *compliance.SaveParams)
		wantKinds    int
		wantErr      bool
	}

	capture := func(saved *compliance.SaveParams) func(context.Context, uuid.UUID, compliance.SaveParams) error {
		return func(_ context.Context, _ uuid.UUID, p compliance.SaveParams) error {
			*saved = p
			return nil
		}
	}

	tests := []testCase{
		{
			name:         "WyomingWritesAllFour",
			jurisdiction: compliance.JurisdictionWyoming,
			setupMock: func(m *compliance.MockRepository, saved *compliance.SaveParams) {
				m.EXPECT().GetApplication(gomock.Any(), appID).Return(&compliance.Application{ID: appID}, nil)
				m.EXPECT().SaveDeadlines(gomock.Any(), appID, gomock.Any()).DoAndReturn(capture(saved))
			},
			wantKinds: 4,
		},
		{
			name:         "UnknownJurisdictionOmitsAnnualReport",
			jurisdiction: compliance.JurisdictionUnknown,
			setupMock: func(m *compliance.MockRepository, saved *compliance.SaveParams) {
				m.EXPECT().GetApplication(gomock.Any(), appID).Return(&compliance.Application{ID: appID}, nil)
				m.EXPECT().SaveDeadlines(gomock.Any(), appID, gomock.Any()).DoAndReturn(capture(saved))
			},
			wantKinds: 3,
		},
		{
			name:         "NotFound",
			jurisdiction: compliance.JurisdictionDelaware,
			setupMock: func(m *compliance.MockRepository, _ *compliance.SaveParams) {
				m.EXPECT().GetApplication(gomock.Any(), appID).Return(nil, compliance.ErrNotFound)
			},
			wantErr: true,
		},
		{
			name:         "SaveError",
			jurisdiction: compliance.JurisdictionDelaware,
			setupMock: func(m *compliance.MockRepository, _ *compliance.SaveParams) {
				m.EXPECT().GetApplication(gomock.Any(), appID).Return(&compliance.Application{ID: appID}, nil)
				m.EXPECT().SaveDeadlines(gomock.Any(), appID, gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			var saved compliance.SaveParams

			repo := compliance.NewMockRepository(ctrl)
			tt.setupMock(repo, &saved)

			svc := compliance.NewService(repo)
			set, err := svc.ApplyDeadlines(context.Background(), appID, formed, tt.jurisdiction, tt.extension)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, set.Deadlines)

				return
			}

			require.NoError(t, err)
			assert.Len(t, set.Deadlines, tt.wantKinds)
			assert.Equal(t, set, saved.Deadlines)
			assert.Equal(t, formed, saved.FormationDate)
			assert.Equal(t, tt.jurisdiction, saved.Jurisdiction)
			assert.False(t, saved.RecalculatedAt.IsZero())
		})
	}
}

func TestService_ApplyDeadlines_NotFoundIsDistinguishable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := compliance.NewMockRepository(ctrl)
	repo.EXPECT().GetApplication(gomock.Any(), gomock.Any()).Return(nil, compliance.ErrNotFound)

	svc := compliance.NewService(repo)
	_, err := svc.ApplyDeadlines(context.Background(), uuid.New(), date(2024, time.May, 1), compliance.JurisdictionWyoming, false)

	assert.ErrorIs(t, err, compliance.ErrNotFound)
}

func TestService_ApplyDeadlines_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	appID := uuid.New()
	formed := date(2024, time.March, 10)
	app := &compliance.Application{ID: appID}

	var saves []compliance.SaveParams

	repo := compliance.NewMockRepository(ctrl)
	repo.EXPECT().GetApplication(gomock.Any(), appID).Return(app, nil).Times(2)
	repo.EXPECT().SaveDeadlines(gomock.Any(), appID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, p compliance.SaveParams) error {
			saves = append(saves, p)
			app.FormationDate = ptr(p.FormationDate)
			app.AgentRenewalDue = p.Deadlines.Due(compliance.DeadlineAgentRenewal)

			return nil
		}).Times(2)

	svc := compliance.NewService(repo)

	first, err := svc.ApplyDeadlines(context.Background(), appID, formed, compliance.JurisdictionDelaware, false)
	require.NoError(t, err)

	second, err := svc.ApplyDeadlines(context.Background(), appID, formed, compliance.JurisdictionDelaware, false)
	require.NoError(t, err)

	require.Len(t, saves, 2)
	assert.Equal(t, first, second)
	assert.Equal(t, saves[0].Deadlines, saves[1].Deadlines)
	assert.Equal(t, saves[0].FormationDate, saves[1].FormationDate)
	assert.True(t, saves[0].ResetReminders, "first computation starts a cycle")
	assert.False(t, saves[1].ResetReminders, "same agent renewal keeps the cycle")
}

func TestService_SetTaxExtension(t *testing.T) {
	appID := uuid.New()

	type testCase struct {
		name       string
		app        *compliance.Application
		extension  bool
		wantFedDue *time.Time
	}

	tests := []testCase{
		{
			name:       "ExtensionMovesFederalToOctober",
			app:        &compliance.Application{ID: appID, FormationDate: ptr(date(2024, time.March, 10))},
			extension:  true,
			wantFedDue: ptr(date(2025, time.October, 15)),
		},
		{
			name:       "RemovingExtensionRestoresApril",
			app:        &compliance.Application{ID: appID, FormationDate: ptr(date(2024, time.March, 10)), HasTaxExtension: true},
			extension:  false,
			wantFedDue: ptr(date(2025, time.April, 15)),
		},
		{
			name:      "NoFormationDateOnlyFlips",
			app:       &compliance.Application{ID: appID},
			extension: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := compliance.NewMockRepository(ctrl)
			repo.EXPECT().GetApplication(gomock.Any(), appID).Return(tt.app, nil)
			repo.EXPECT().SaveTaxExtension(gomock.Any(), appID, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ uuid.UUID, p compliance.TaxExtensionParams) error {
					assert.Equal(t, tt.extension, p.HasTaxExtension)
					assert.Equal(t, tt.wantFedDue, p.FederalDue)

					return nil
				})

			svc := compliance.NewService(repo)
			assert.NoError(t, svc.SetTaxExtension(context.Background(), appID, tt.extension))
		})
	}
}

func TestService_SetFormationDateByCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	app := &compliance.Application{ID: uuid.New(), RequestCode: "WY-2024-0042", Jurisdiction: compliance.JurisdictionWyoming}

	repo := compliance.NewMockRepository(ctrl)
	repo.EXPECT().GetApplicationByCode(gomock.Any(), "WY-2024-0042").Return(app, nil)
	repo.EXPECT().SaveDeadlines(gomock.Any(), app.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, p compliance.SaveParams) error {
			assert.Equal(t, compliance.JurisdictionWyoming, p.Jurisdiction)
			assert.True(t, p.Deadlines.Has(compliance.DeadlineAnnualReport))

			return nil
		})

	svc := compliance.NewService(repo)
	_, err := svc.SetFormationDateByCode(context.Background(), "WY-2024-0042", date(2024, time.July, 1), compliance.JurisdictionUnknown)

	assert.NoError(t, err)
}

func TestService_OnOrderFiled(t *testing.T) {
	orderID := uuid.New()
	filedOn := date(2024, time.September, 2)

	type testCase struct {
		name       string
		app        *compliance.Application
		wantFormed time.Time
	}

	tests := []testCase{
		{
			name:       "UsesFilingDateWhenMissing",
			app:        &compliance.Application{ID: uuid.New(), OrderID: orderID, Jurisdiction: compliance.JurisdictionDelaware},
			wantFormed: filedOn,
		},
		{
			name: "KeepsExistingFormationDate",
			app: &compliance.Application{
				ID: uuid.New(), OrderID: orderID, Jurisdiction: compliance.JurisdictionDelaware,
				FormationDate: ptr(date(2024, time.August, 20)),
			},
			wantFormed: date(2024, time.August, 20),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := compliance.NewMockRepository(ctrl)
			repo.EXPECT().GetApplicationByOrder(gomock.Any(), orderID).Return(tt.app, nil)
			repo.EXPECT().SaveDeadlines(gomock.Any(), tt.app.ID, gomock.Any()).
				DoAndReturn(func(_ context.Context, _ uuid.UUID, p compliance.SaveParams) error {
					assert.Equal(t, tt.wantFormed, p.FormationDate)
					assert.Len(t, p.Deadlines.Deadlines, 4)

					return nil
				})

			svc := compliance.NewService(repo)
			assert.NoError(t, svc.OnOrderFiled(context.Background(), orderID, filedOn))
		})
	}
}

func TestService_OnOrderCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	app := &compliance.Application{ID: uuid.New(), OrderID: orderID}

	repo := compliance.NewMockRepository(ctrl)
	repo.EXPECT().GetApplicationByOrder(gomock.Any(), orderID).Return(app, nil)
	repo.EXPECT().CancelApplication(gomock.Any(), app.ID).Return(nil)

	svc := compliance.NewService(repo)
	assert.NoError(t, svc.OnOrderCancelled(context.Background(), orderID))
}

// memRepo keeps applications in memory with the same selection rules as the SQL store.
type memRepo struct {
	apps map[uuid.UUID]*compliance.Application
}

func newMemRepo(apps ...*compliance.Application) *memRepo {
	r := &memRepo{apps: make(map[uuid.UUID]*compliance.Application)}
	for _, a := range apps {
		r.apps[a.ID] = a
	}

	return r
}

func (r *memRepo) GetApplication(_ context.Context, id uuid.UUID) (*compliance.Application, error) {
	if a, ok := r.apps[id]; ok {
		return a, nil
	}

	return nil, compliance.ErrNotFound
}

func (r *memRepo) GetApplicationByOrder(_ context.Context, orderID uuid.UUID) (*compliance.Application, error) {
	for _, a := range r.apps {
		if a.OrderID == orderID {
			return a, nil
		}
	}

	return nil, compliance.ErrNotFound
}

func (r *memRepo) GetApplicationByCode(_ context.Context, code string) (*compliance.Application, error) {
	for _, a := range r.apps {
		if a.RequestCode == code {
			return a, nil
		}
	}

	return nil, compliance.ErrNotFound
}

func (r *memRepo) SaveDeadlines(_ context.Context, id uuid.UUID, p compliance.SaveParams) error {
	a := r.apps[id]
	a.FormationDate = ptr(p.FormationDate)
	a.FederalIncomeTaxDue = p.Deadlines.Due(compliance.DeadlineFederalIncomeTax)
	a.FederalForeignOwnerReportDue = p.Deadlines.Due(compliance.DeadlineFederalForeignOwnerReport)
	a.StateAnnualReportDue = p.Deadlines.Due(compliance.DeadlineAnnualReport)
	a.AgentRenewalDue = p.Deadlines.Due(compliance.DeadlineAgentRenewal)
	a.DeadlinesRecalculatedAt = ptr(p.RecalculatedAt)

	return nil
}

func (r *memRepo) SaveTaxExtension(_ context.Context, id uuid.UUID, p compliance.TaxExtensionParams) error {
	r.apps[id].HasTaxExtension = p.HasTaxExtension
	return nil
}

func (r *memRepo) clear(a *compliance.Application) {
	a.FederalIncomeTaxDue = nil
	a.FederalForeignOwnerReportDue = nil
	a.StateAnnualReportDue = nil
	a.AgentRenewalDue = nil
	a.DeadlinesRecalculatedAt = nil
}

func (r *memRepo) ClearDeadlines(_ context.Context, id uuid.UUID) error {
	r.clear(r.apps[id])
	return nil
}

func (r *memRepo) CancelApplication(_ context.Context, id uuid.UUID) error {
	a := r.apps[id]
	r.clear(a)
	a.Status = compliance.StatusCancelled

	return nil
}

func (r *memRepo) ListMissingDeadlines(context.Context) ([]*compliance.Application, error) {
	var out []*compliance.Application

	for _, a := range r.apps {
		if a.FormationDate != nil && a.DeadlinesRecalculatedAt == nil && a.Status != compliance.StatusCancelled {
			out = append(out, a)
		}
	}

	return out, nil
}

func TestService_CancelledOrderStaysCleared(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()
	app := &compliance.Application{
		ID:           uuid.New(),
		OrderID:      orderID,
		Status:       compliance.StatusSubmitted,
		Jurisdiction: compliance.JurisdictionWyoming,
	}

	svc := compliance.NewService(newMemRepo(app))

	require.NoError(t, svc.OnOrderFiled(ctx, orderID, date(2024, time.March, 10)))
	require.NotNil(t, app.AgentRenewalDue)

	require.NoError(t, svc.OnOrderCancelled(ctx, orderID))
	assert.Equal(t, compliance.StatusCancelled, app.Status)
	assert.NotNil(t, app.FormationDate)

	n, err := svc.RepopulateMissing(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Nil(t, app.FederalIncomeTaxDue)
	assert.Nil(t, app.FederalForeignOwnerReportDue)
	assert.Nil(t, app.StateAnnualReportDue)
	assert.Nil(t, app.AgentRenewalDue)
}

func TestService_RepopulateMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ok := &compliance.Application{ID: uuid.New(), FormationDate: ptr(date(2024, time.January, 5)), Jurisdiction: compliance.JurisdictionWyoming}
	broken := &compliance.Application{ID: uuid.New(), FormationDate: ptr(date(2024, time.February, 5))}
	undated := &compliance.Application{ID: uuid.New()}

	repo := compliance.NewMockRepository(ctrl)
	repo.EXPECT().ListMissingDeadlines(gomock.Any()).Return([]*compliance.Application{broken, undated, ok}, nil)
	repo.EXPECT().SaveDeadlines(gomock.Any(), broken.ID, gomock.Any()).Return(errors.New("db error"))
	repo.EXPECT().SaveDeadlines(gomock.Any(), ok.ID, gomock.Any()).Return(nil)

	svc := compliance.NewService(repo)
	n, err := svc.RepopulateMissing(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

// ptr returns a pointer to a copy of v.
func ptr[T any](v T) *T {
	return &v
}
