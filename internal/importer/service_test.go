package importer_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
	"github.com/MrJamesThe3rd/filingdesk/internal/importer"
)

func TestService_Apply(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	input := "Request Code;Formation Date;State\n" +
		"WY-2024-0042;2024-03-10;WY\n" +
		"XX-0000;2024-03-11;\n" +
		"WY-2024-0043;garbage;WY\n"

	applier := importer.NewMockApplier(ctrl)
	applier.EXPECT().
		SetFormationDateByCode(gomock.Any(), "WY-2024-0042", time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), compliance.JurisdictionWyoming).
		Return(compliance.DeadlineSet{}, nil)
	applier.EXPECT().
		SetFormationDateByCode(gomock.Any(), "XX-0000", gomock.Any(), compliance.JurisdictionUnknown).
		Return(compliance.DeadlineSet{}, compliance.ErrNotFound)

	svc := importer.NewService(applier)
	res, err := svc.Apply(context.Background(), importer.SourceRegisteredAgent, strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, "registered_agent", res.Profile)
	assert.Equal(t, 1, res.Applied)
	require.Len(t, res.Failed, 2)
	assert.Equal(t, 4, res.Failed[0].Row)
	assert.Equal(t, importer.Failure{Row: 3, RequestCode: "XX-0000", Reason: "unknown request code"}, res.Failed[1])
}

func TestService_UnknownSource(t *testing.T) {
	svc := importer.NewService(nil)

	_, err := svc.Import(importer.Source("bank"), strings.NewReader(""))
	assert.ErrorContains(t, err, "unknown source")
}
