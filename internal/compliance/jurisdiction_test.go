package compliance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
)

func TestParseJurisdiction(t *testing.T) {
	tests := []struct {
		raw    string
		want   compliance.Jurisdiction
		wantOK bool
	}{
		{raw: "WY", want: compliance.JurisdictionWyoming, wantOK: true},
		{raw: "Wyoming", want: compliance.JurisdictionWyoming, wantOK: true},
		{raw: " wyoming ", want: compliance.JurisdictionWyoming, wantOK: true},
		{raw: "de", want: compliance.JurisdictionDelaware, wantOK: true},
		{raw: "DELAWARE", want: compliance.JurisdictionDelaware, wantOK: true},
		{raw: "New Mexico", want: compliance.JurisdictionNewMexico, wantOK: true},
		{raw: "new   mexico", want: compliance.JurisdictionNewMexico, wantOK: true},
		{raw: "new_mexico", want: compliance.JurisdictionNewMexico, wantOK: true},
		{raw: "NM", want: compliance.JurisdictionNewMexico, wantOK: true},
		{raw: "Texas", want: compliance.JurisdictionUnknown, wantOK: false},
		{raw: "", want: compliance.JurisdictionUnknown, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := compliance.ParseJurisdiction(tt.raw)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestJurisdiction_Name(t *testing.T) {
	assert.Equal(t, "Delaware", compliance.JurisdictionDelaware.Name())
	assert.Equal(t, "Wyoming", compliance.JurisdictionWyoming.Name())
	assert.Equal(t, "New Mexico", compliance.JurisdictionNewMexico.Name())
	assert.Equal(t, "Unknown", compliance.JurisdictionUnknown.Name())
	assert.False(t, compliance.JurisdictionUnknown.Known())
}

func TestMarkers_RoundTripThroughDriver(t *testing.T) {
	m := compliance.Markers{"renewal_60days"}

	v, err := m.Value()
	assert.NoError(t, err)

	var got compliance.Markers
	assert.NoError(t, got.Scan(v))
	assert.True(t, got.Has("renewal_60days"))
	assert.False(t, got.Has("renewal_7days"))

	var empty compliance.Markers
	v, err = empty.Value()
	assert.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	assert.Error(t, got.Scan(42))
}
