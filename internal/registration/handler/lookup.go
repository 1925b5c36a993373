package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"patient-intake/internal/lookup"
	"patient-intake/pkg/platform/httputil"
)

// Searcher answers autocomplete queries for the address fields.
type Searcher interface {
	Cities(ctx context.Context, query string) []lookup.Candidate
	Streets(ctx context.Context, query, cityCode string) []lookup.Candidate
}

// LookupHandler handles the autocomplete endpoints. Every answer is 200 with
// a candidate list; degraded backends just make the list empty.
type LookupHandler struct {
	logger   *slog.Logger
	searcher Searcher
}

// NewLookup creates a LookupHandler.
func NewLookup(searcher Searcher, logger *slog.Logger) *LookupHandler {
	return &LookupHandler{
		logger:   logger,
		searcher: searcher,
	}
}

// Register mounts the lookup routes on the router.
func (h *LookupHandler) Register(r chi.Router) {
	r.Get("/api/lookup/cities", h.handleCities)
	r.Get("/api/lookup/streets", h.handleStreets)
}

// candidatesResponse wraps a candidate list so the shape can grow without
// breaking clients.
type candidatesResponse struct {
	Candidates []lookup.Candidate `json:"candidates"`
}

func (h *LookupHandler) handleCities(w http.ResponseWriter, r *http.Request) {
	candidates := h.searcher.Cities(r.Context(), r.URL.Query().Get("q"))
	httputil.WriteJSON(w, http.StatusOK, candidatesResponse{Candidates: candidates})
}

func (h *LookupHandler) handleStreets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	candidates := h.searcher.Streets(r.Context(), query.Get("q"), query.Get("cityCode"))
	httputil.WriteJSON(w, http.StatusOK, candidatesResponse{Candidates: candidates})
}
