package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
	"github.com/MrJamesThe3rd/filingdesk/internal/importer/filings"
)

//go:generate mockgen -source=service.go -destination=applier_mock.go -package=importer

// Applier records a formation date against the application with the given request code.
type Applier interface {
	SetFormationDateByCode(ctx context.Context, requestCode string, formationDate time.Time, jurisdiction compliance.Jurisdiction) (compliance.DeadlineSet, error)
}

// Failure describes a row that was parsed or applied unsuccessfully.
type Failure struct {
	Row         int    `json:"row"`
	RequestCode string `json:"request_code,omitempty"`
	Reason      string `json:"reason"`
}

type Result struct {
	Profile string    `json:"profile"`
	Applied int       `json:"applied"`
	Failed  []Failure `json:"failed"`
}

type Service struct {
	importers map[Source]Importer
	applier   Applier
}

func NewService(applier Applier) *Service {
	parser := filings.New()

	return &Service{
		importers: map[Source]Importer{
			SourceRegisteredAgent: parser,
			SourceStatePortal:     parser,
		},
		applier: applier,
	}
}

// Import parses a file without touching any application.
func (s *Service) Import(source Source, r io.Reader) (*filings.ParseResult, error) {
	importer, ok := s.importers[source]
	if !ok {
		return nil, fmt.Errorf("unknown source: %s", source)
	}

	return importer.Parse(r)
}

// Apply parses a file and writes every fact's formation date, recomputing its deadlines.
// Rows that fail to parse or apply are reported in the result.
func (s *Service) Apply(ctx context.Context, source Source, r io.Reader) (*Result, error) {
	parsed, err := s.Import(source, r)
	if err != nil {
		return nil, err
	}

	res := &Result{Profile: parsed.Profile, Failed: []Failure{}}

	for _, rowErr := range parsed.Errors {
		res.Failed = append(res.Failed, Failure{Row: rowErr.Row, Reason: rowErr.Reason})
	}

	for _, fact := range parsed.Facts {
		_, err := s.applier.SetFormationDateByCode(ctx, fact.RequestCode, fact.FormationDate, fact.Jurisdiction)
		if err != nil {
			reason := err.Error()
			if errors.Is(err, compliance.ErrNotFound) {
				reason = "unknown request code"
			}

			slog.Warn("failed to apply formation date", "error", err, "row", fact.Row, "request_code", fact.RequestCode)
			res.Failed = append(res.Failed, Failure{Row: fact.Row, RequestCode: fact.RequestCode, Reason: reason})

			continue
		}

		res.Applied++
	}

	return res, nil
}
