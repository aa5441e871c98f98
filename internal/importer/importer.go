package importer

import (
	"io"

	"github.com/MrJamesThe3rd/filingdesk/internal/importer/filings"
)

// Source identifies who produced a formation export.
type Source string

const (
	SourceRegisteredAgent Source = "registered_agent"
	SourceStatePortal     Source = "state_portal"
)

type Importer interface {
	Parse(r io.Reader) (*filings.ParseResult, error)
}
