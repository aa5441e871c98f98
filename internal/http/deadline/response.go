package deadline

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/MrJamesThe3rd/filingdesk/internal/compliance"
)

type deadlineResponse struct {
	Type         compliance.DeadlineType `json:"type"`
	DueDate      string                  `json:"due_date"`
	ReminderDate string                  `json:"reminder_date"`
	Description  string                  `json:"description"`
	Jurisdiction compliance.Jurisdiction `json:"jurisdiction,omitempty"`
}

type deadlineSetResponse struct {
	Deadlines []deadlineResponse `json:"deadlines"`
}

func toResponse(set compliance.DeadlineSet) deadlineSetResponse {
	resp := deadlineSetResponse{Deadlines: make([]deadlineResponse, len(set.Deadlines))}
	for i, d := range set.Deadlines {
		resp.Deadlines[i] = deadlineResponse{
			Type:         d.Type,
			DueDate:      d.DueDate.Format(time.DateOnly),
			ReminderDate: d.ReminderDate.Format(time.DateOnly),
			Description:  d.Description,
			Jurisdiction: d.Jurisdiction,
		}
	}

	return resp
}

func writeDeadlines(w http.ResponseWriter, set compliance.DeadlineSet) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(set)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
