package stats

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
	"github.com/MrJamesThe3rd/filingdesk/internal/stats"
)

type Service interface {
	Summary(ctx context.Context, now time.Time) (stats.Summary, error)
}

type Handler struct {
	svc Service
	now func() time.Time
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

type summaryResponse struct {
	GeneratedAt       time.Time                       `json:"generated_at"`
	UpcomingDeadlines map[compliance.DeadlineType]int `json:"upcoming_deadlines"`
	RenewalsNeeded    int                             `json:"renewals_needed"`
	ExpiredRenewals   int                             `json:"expired_renewals"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context(), h.now().UTC())
	if err != nil {
		slog.Error("failed to build stats summary", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(summaryResponse{
		GeneratedAt:       s.GeneratedAt,
		UpcomingDeadlines: s.UpcomingDeadlines,
		RenewalsNeeded:    s.RenewalsNeeded,
		ExpiredRenewals:   s.ExpiredRenewals,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
