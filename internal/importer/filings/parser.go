package filings

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
	enc "github.com/MrJamesThe3rd/filingdesk/internal/encoding"
)

// Parser reads formation-date exports from registered agents and state portals.
// The layout is detected by matching header names against known profiles,
// with ';' tried before ','.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// RowError reports a data row that could not be turned into a fact.
type RowError struct {
	Row    int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// ParseResult holds the facts read from a file and the rows that were rejected.
type ParseResult struct {
	Profile string
	Facts   []compliance.FormationFact
	Errors  []RowError
}

func (p *Parser) Parse(r io.Reader) (*ParseResult, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read %s input: %w", charset, err)
	}

	for _, comma := range []rune{';', ','} {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		res := parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)

		return res, nil
	}

	return nil, fmt.Errorf("no matching filing format found: expected a registered agent or state portal header")
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

type colIndex map[string]int

// detectProfile scans rows for a header that matches a known profile.
// Returns the matched profile, column index map, and header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows turns data rows into facts. Blank rows are skipped; malformed rows are
// reported and do not stop the rest of the file.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) *ParseResult {
	codeIdx := cols[p.RequestCodeCol]
	dateIdx := cols[p.DateCol]
	stateIdx, hasState := cols[p.JurisdictionCol]

	res := &ParseResult{Profile: p.Name}

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		if blank(row) {
			continue
		}

		code := cellValue(row, codeIdx)
		if code == "" {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Reason: "missing request code"})
			continue
		}

		raw := cellValue(row, dateIdx)

		date, ok := parseDate(raw)
		if !ok {
			res.Errors = append(res.Errors, RowError{Row: rowNum, Reason: fmt.Sprintf("invalid formation date %q", raw)})
			continue
		}

		fact := compliance.FormationFact{
			RequestCode:   code,
			FormationDate: date,
			Row:           rowNum,
		}

		if hasState {
			fact.Jurisdiction, _ = compliance.ParseJurisdiction(cellValue(row, stateIdx))
		}

		res.Facts = append(res.Facts, fact)
	}

	return res
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func cellValue(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
