// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// digestRequest is the optional body of POST /digest/run. With user IDs it
// runs a targeted batch and returns the per-user map; without a body the
// full scheduled run executes and its summary is returned.
type digestRequest struct {
	UserIDs    []string `json:"user_ids"`
	MaxPerUser int      `json:"max_per_user"`
}

// DigestHandler triggers an on-demand digest run.
type DigestHandler struct {
	deps   BatchDependencies
	runner DigestRunner
}

// NewDigestHandler creates a new digest handler.
func NewDigestHandler(deps BatchDependencies, runner DigestRunner) *DigestHandler {
	return &DigestHandler{deps: deps, runner: runner}
}

// HandleRunDigest handles POST /digest/run requests.
func (h *DigestHandler) HandleRunDigest(w http.ResponseWriter, r *http.Request) {
	const op = "api.run_digest"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req digestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if len(req.UserIDs) > 0 {
		matches, err := h.deps.GenerateDailyMatches(r.Context(), req.UserIDs, req.MaxPerUser)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "digest_failed", Wrap(op, err))
			return
		}
		writeJSON(w, http.StatusOK, matches)
		return
	}

	summary, err := h.runner.RunNow(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "digest_failed", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
