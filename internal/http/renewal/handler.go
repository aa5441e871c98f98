package renewal

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/filingdesk/internal/renewal"
)

type Service interface {
	ClientsNeedingRenewal(ctx context.Context, now time.Time) ([]renewal.Candidate, error)
	CheckExpiredRenewals(ctx context.Context, now time.Time) ([]renewal.ExpiredRenewal, error)
	Deactivate(ctx context.Context, clientID uuid.UUID, now time.Time) (*renewal.Client, error)
}

type Handler struct {
	svc Service
	now func() time.Time
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/renewals", h.needing)
	r.Get("/renewals/expired", h.expired)
	r.Post("/clients/{id}/deactivate", h.deactivate)
}

func (h *Handler) needing(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.svc.ClientsNeedingRenewal(r.Context(), h.now().UTC())
	if err != nil {
		slog.Error("failed to list renewals", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]candidateResponse, len(candidates))
	for i, c := range candidates {
		resp[i] = toCandidateResponse(c)
	}

	writeJSON(w, resp)
}

func (h *Handler) expired(w http.ResponseWriter, r *http.Request) {
	expired, err := h.svc.CheckExpiredRenewals(r.Context(), h.now().UTC())
	if err != nil {
		slog.Error("failed to list expired renewals", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := make([]expiredResponse, len(expired))
	for i, e := range expired {
		resp[i] = expiredResponse{
			candidateResponse: toCandidateResponse(e.Candidate),
			AccountStatus:     e.AccountStatus,
			DaysOverdue:       e.DaysOverdue,
		}
	}

	writeJSON(w, resp)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	client, err := h.svc.Deactivate(r.Context(), id, h.now().UTC())
	if err != nil {
		switch {
		case errors.Is(err, renewal.ErrClientNotFound):
			http.Error(w, "client not found", http.StatusNotFound)
		case errors.Is(err, renewal.ErrNotExpired):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			slog.Error("failed to deactivate client", "error", err, "client_id", id)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	writeJSON(w, clientResponse{
		ID:            client.ID,
		Email:         client.Email,
		DisplayName:   client.DisplayName,
		AccountStatus: client.AccountStatus,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
