package api

import (
	"errors"
	"net/http"

	"github.com/deskwatch/deskwatch/internal/api/respond"
	"github.com/deskwatch/deskwatch/internal/model"
	"github.com/deskwatch/deskwatch/internal/services"
)

// SearchHandler handles GET /api/search.
type SearchHandler struct {
	svc *services.UsageService
}

func NewSearchHandler(svc *services.UsageService) *SearchHandler { return &SearchHandler{svc: svc} }

// Search runs a semantic query over ingested usage records.
// An empty neighbor set is a successful response with empty results; an
// empty index is 404.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	result, err := h.svc.Search(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrValidation):
			respond.WriteBadRequest(w, "Missing 'query' parameter")
		case errors.Is(err, model.ErrNotFound):
			respond.WriteNotFound(w, "No data in vector index")
		default:
			respond.WriteInternalError(w, "Search failed: "+err.Error())
		}
		return
	}

	respond.WriteJSON(w, http.StatusOK, result)
}
