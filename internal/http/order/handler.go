package order

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/filingdesk/internal/order"
)

type Service interface {
	ChangeStatus(ctx context.Context, id uuid.UUID, status order.Status, filedOn time.Time) (*order.Order, error)
}

type Handler struct {
	svc Service
	now func() time.Time
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Patch("/{id}/status", h.updateStatus)
}

type updateStatusRequest struct {
	Status order.Status `json:"status"`
	// FiledOn is the state's acceptance date, YYYY-MM-DD. Defaults to today.
	FiledOn string `json:"filed_on,omitempty"`
}

type orderResponse struct {
	ID        uuid.UUID    `json:"id"`
	ClientID  uuid.UUID    `json:"client_id"`
	Status    order.Status `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at,omitempty"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	filedOn := h.now().UTC()

	if req.FiledOn != "" {
		filedOn, err = time.Parse(time.DateOnly, req.FiledOn)
		if err != nil {
			http.Error(w, "filed_on must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	o, err := h.svc.ChangeStatus(r.Context(), id, req.Status, filedOn)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			http.Error(w, "order not found", http.StatusNotFound)
		case errors.Is(err, order.ErrInvalidTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			slog.Error("failed to change order status", "error", err, "order_id", id)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(orderResponse{
		ID:        o.ID,
		ClientID:  o.ClientID,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
