// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/hirewire/matchengine/internal/adapters/source"
)

// CandidateDependencies defines the interface for candidate retrieval operations.
type CandidateDependencies interface {
	CandidatesForJob(ctx context.Context, jobID string, limit, minScore int) ([]Match, error)
}

// CandidatesHandler handles ranked-candidate requests for a job posting.
type CandidatesHandler struct {
	deps     CandidateDependencies
	maxLimit int
}

// NewCandidatesHandler creates a new candidates handler.
func NewCandidatesHandler(deps CandidateDependencies, maxLimit int) *CandidatesHandler {
	return &CandidatesHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetCandidates handles GET /candidates/{job_id}?limit=N&min_score=M requests.
func (h *CandidatesHandler) HandleGetCandidates(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_candidates"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	jobID := strings.TrimPrefix(r.URL.Path, "/candidates/")
	if jobID == "" || strings.Contains(jobID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	limit, minScore, err := rankingParams(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	candidates, err := h.deps.CandidatesForJob(r.Context(), jobID, limit, minScore)
	if err != nil {
		if errors.Is(err, source.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "pool_unavailable", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if candidates == nil {
		candidates = []Match{}
	}
	writeJSON(w, http.StatusOK, candidates)
}
