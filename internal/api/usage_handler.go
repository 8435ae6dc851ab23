package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/deskwatch/deskwatch/internal/api/respond"
	"github.com/deskwatch/deskwatch/internal/model"
	"github.com/deskwatch/deskwatch/internal/services"
)

// UsageHandler handles POST /api/usage.
type UsageHandler struct {
	svc *services.UsageService
}

func NewUsageHandler(svc *services.UsageService) *UsageHandler { return &UsageHandler{svc: svc} }

// LogUsage ingests one usage record submitted by an agent.
func (h *UsageHandler) LogUsage(w http.ResponseWriter, r *http.Request) {
	var sub model.UsageSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}

	key, err := h.svc.Ingest(r.Context(), &sub)
	if err != nil {
		if errors.Is(err, model.ErrValidation) {
			respond.WriteBadRequest(w, err.Error())
			return
		}
		respond.WriteInternalError(w, "Failed to log data: "+err.Error())
		return
	}

	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":    "Usage data logged",
		"vector_key": key,
	})
}
