package compliance

import "strings"

// Jurisdiction is the normalized US state an LLC is formed in.
type Jurisdiction string

const (
	JurisdictionUnknown   Jurisdiction = ""
	JurisdictionDelaware  Jurisdiction = "DE"
	JurisdictionWyoming   Jurisdiction = "WY"
	JurisdictionNewMexico Jurisdiction = "NM"
)

var jurisdictionAliases = map[string]Jurisdiction{
	"de":         JurisdictionDelaware,
	"delaware":   JurisdictionDelaware,
	"wy":         JurisdictionWyoming,
	"wyoming":    JurisdictionWyoming,
	"nm":         JurisdictionNewMexico,
	"newmexico":  JurisdictionNewMexico,
	"new mexico": JurisdictionNewMexico,
	"new_mexico": JurisdictionNewMexico,
	"new-mexico": JurisdictionNewMexico,
}

// ParseJurisdiction normalizes the spellings found in orders, CSV exports and admin input.
// The second return value is false when raw does not name a supported state.
func ParseJurisdiction(raw string) (Jurisdiction, bool) {
	key := strings.Join(strings.Fields(strings.ToLower(raw)), " ")

	j, ok := jurisdictionAliases[key]
	if !ok {
		return JurisdictionUnknown, false
	}

	return j, true
}

// Name returns the state's display name.
func (j Jurisdiction) Name() string {
	switch j {
	case JurisdictionDelaware:
		return "Delaware"
	case JurisdictionWyoming:
		return "Wyoming"
	case JurisdictionNewMexico:
		return "New Mexico"
	default:
		return "Unknown"
	}
}

func (j Jurisdiction) Known() bool {
	return j != JurisdictionUnknown
}
