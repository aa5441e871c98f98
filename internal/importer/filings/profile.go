package filings

// Profile describes the header layout of one known export.
type Profile struct {
	Name            string
	RequestCodeCol  string
	DateCol         string
	JurisdictionCol string // optional
}

// profiles are tried in order; the first whose required columns all appear in a row wins.
var profiles = []Profile{
	{
		Name:            "registered_agent",
		RequestCodeCol:  "Request Code",
		DateCol:         "Formation Date",
		JurisdictionCol: "State",
	},
	{
		Name:            "state_portal",
		RequestCodeCol:  "Order",
		DateCol:         "Filed On",
		JurisdictionCol: "Jurisdiction",
	},
}

func (p *Profile) requiredCols() []string {
	return []string{p.RequestCodeCol, p.DateCol}
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}
