// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/hirewire/matchengine/internal/adapters/source"
)

// MatchDependencies defines the interface for job retrieval operations.
type MatchDependencies interface {
	MatchesForUser(ctx context.Context, userID string, limit, minScore int) ([]Match, error)
}

// MatchesHandler handles ranked-job requests for a contractor.
type MatchesHandler struct {
	deps     MatchDependencies
	maxLimit int
}

// NewMatchesHandler creates a new matches handler.
func NewMatchesHandler(deps MatchDependencies, maxLimit int) *MatchesHandler {
	return &MatchesHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetMatches handles GET /matches/{user_id}?limit=N&min_score=M requests.
func (h *MatchesHandler) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_matches"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID := strings.TrimPrefix(r.URL.Path, "/matches/")
	if userID == "" || strings.Contains(userID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	limit, minScore, err := rankingParams(r, h.maxLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	matches, err := h.deps.MatchesForUser(r.Context(), userID, limit, minScore)
	if err != nil {
		if errors.Is(err, source.ErrUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "pool_unavailable", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if matches == nil {
		matches = []Match{}
	}
	writeJSON(w, http.StatusOK, matches)
}

// rankingParams parses the shared limit and min_score query parameters.
// Both are optional; limit of zero defers to the engine's default.
func rankingParams(r *http.Request, maxLimit int) (limit, minScore int, err error) {
	q := r.URL.Query()
	if s := q.Get("limit"); s != "" {
		limit, err = strconv.Atoi(s)
		if err != nil || limit < 1 {
			return 0, 0, errors.New("limit must be a positive integer")
		}
		if limit > maxLimit {
			limit = maxLimit
		}
	}
	if s := q.Get("min_score"); s != "" {
		minScore, err = strconv.Atoi(s)
		if err != nil || minScore < 0 || minScore > 100 {
			return 0, 0, errors.New("min_score must be an integer between 0 and 100")
		}
	}
	return limit, minScore, nil
}
