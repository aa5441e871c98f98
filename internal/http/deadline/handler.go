package deadline

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
)

type Service interface {
	RecomputeDeadlines(ctx context.Context, params compliance.RecomputeParams) (compliance.DeadlineSet, error)
	SetFormationDate(ctx context.Context, id uuid.UUID, formationDate time.Time) (compliance.DeadlineSet, error)
	SetTaxExtension(ctx context.Context, id uuid.UUID, hasTaxExtension bool) error
	ClearDeadlines(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Put("/{id}/deadlines", h.recompute)
	r.Delete("/{id}/deadlines", h.clear)
	r.Put("/{id}/formation-date", h.setFormationDate)
	r.Patch("/{id}/tax-extension", h.setTaxExtension)
}

type recomputeRequest struct {
	FormationDate   string `json:"formation_date"`
	Jurisdiction    string `json:"jurisdiction"`
	HasTaxExtension bool   `json:"has_tax_extension"`
}

type formationDateRequest struct {
	FormationDate string `json:"formation_date"`
}

type taxExtensionRequest struct {
	HasTaxExtension bool `json:"has_tax_extension"`
}

func (h *Handler) recompute(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req recomputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	formed, err := time.Parse(time.DateOnly, req.FormationDate)
	if err != nil {
		http.Error(w, "formation_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	jurisdiction, known := compliance.ParseJurisdiction(req.Jurisdiction)
	if !known && req.Jurisdiction != "" {
		slog.Warn("recomputing with unsupported jurisdiction", "application_id", id, "jurisdiction", req.Jurisdiction)
	}

	set, err := h.svc.RecomputeDeadlines(r.Context(), compliance.RecomputeParams{
		ApplicationID:   id,
		FormationDate:   formed,
		Jurisdiction:    jurisdiction,
		HasTaxExtension: req.HasTaxExtension,
	})
	if err != nil {
		writeError(w, err, id)
		return
	}

	writeDeadlines(w, set)
}

func (h *Handler) setFormationDate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req formationDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	formed, err := time.Parse(time.DateOnly, req.FormationDate)
	if err != nil {
		http.Error(w, "formation_date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	set, err := h.svc.SetFormationDate(r.Context(), id, formed)
	if err != nil {
		writeError(w, err, id)
		return
	}

	writeDeadlines(w, set)
}

func (h *Handler) setTaxExtension(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req taxExtensionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetTaxExtension(r.Context(), id, req.HasTaxExtension); err != nil {
		writeError(w, err, id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.ClearDeadlines(r.Context(), id); err != nil {
		writeError(w, err, id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}

func writeError(w http.ResponseWriter, err error, id uuid.UUID) {
	if errors.Is(err, compliance.ErrNotFound) {
		http.Error(w, "application not found", http.StatusNotFound)
		return
	}

	slog.Error("failed to update deadlines", "error", err, "application_id", id)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
