package importcsv

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/filingdesk/internal/importer"
	"github.com/MrJamesThe3rd/filingdesk/internal/importer/filings"
)

type Service interface {
	Import(source importer.Source, r io.Reader) (*filings.ParseResult, error)
	Apply(ctx context.Context, source importer.Source, r io.Reader) (*importer.Result, error)
}

// Invalidator drops cached dashboard counts once new deadlines were written.
type Invalidator interface {
	Invalidate()
}

type Handler struct {
	importSvc Service
	stats     Invalidator
}

func NewHandler(importSvc Service, stats Invalidator) *Handler {
	return &Handler{
		importSvc: importSvc,
		stats:     stats,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/import", h.importCSV)
}

type factDTO struct {
	Row           int    `json:"row"`
	RequestCode   string `json:"request_code"`
	FormationDate string `json:"formation_date"`
	Jurisdiction  string `json:"jurisdiction,omitempty"`
}

type rowErrorDTO struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type previewResponse struct {
	Profile string        `json:"profile"`
	Facts   []factDTO     `json:"facts"`
	Errors  []rowErrorDTO `json:"errors"`
}

// importCSV applies an uploaded export. With dry_run=true the file is only parsed.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	source := importer.Source(r.FormValue("source"))
	if source == "" {
		http.Error(w, "source field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	dryRun, _ := strconv.ParseBool(r.FormValue("dry_run"))
	if dryRun {
		h.preview(w, source, file)
		return
	}

	result, err := h.importSvc.Apply(r.Context(), source, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if result.Applied > 0 && h.stats != nil {
		h.stats.Invalidate()
	}

	slog.Info("filings imported", "source", source, "profile", result.Profile,
		"applied", result.Applied, "failed", len(result.Failed))

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(result); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) preview(w http.ResponseWriter, source importer.Source, file io.Reader) {
	parsed, err := h.importSvc.Import(source, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := previewResponse{
		Profile: parsed.Profile,
		Facts:   make([]factDTO, 0, len(parsed.Facts)),
		Errors:  make([]rowErrorDTO, 0, len(parsed.Errors)),
	}

	for _, f := range parsed.Facts {
		resp.Facts = append(resp.Facts, factDTO{
			Row:           f.Row,
			RequestCode:   f.RequestCode,
			FormationDate: f.FormationDate.Format(time.DateOnly),
			Jurisdiction:  string(f.Jurisdiction),
		})
	}

	for _, e := range parsed.Errors {
		resp.Errors = append(resp.Errors, rowErrorDTO{Row: e.Row, Reason: e.Reason})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
