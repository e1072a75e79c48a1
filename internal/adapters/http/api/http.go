// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hirewire/matchengine/internal/domain/match"
	"github.com/hirewire/matchengine/internal/scheduler"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// MatchesForUser ranks active jobs for one contractor.
	MatchesForUser(ctx context.Context, userID string, limit, minScore int) ([]Match, error)

	// CandidatesForJob ranks available contractors for one job.
	CandidatesForJob(ctx context.Context, jobID string, limit, minScore int) ([]Match, error)

	BatchDependencies
}

// BatchDependencies defines the interface for targeted digest runs.
type BatchDependencies interface {
	GenerateDailyMatches(ctx context.Context, userIDs []string, maxPerUser int) (map[string][]Match, error)
}

// Match mirrors the read shape returned by retrieval queries.
type Match = match.Score

// DigestSummary mirrors the result of a digest run.
type DigestSummary = scheduler.RunSummary

// DigestRunner triggers an out-of-schedule digest run.
type DigestRunner interface {
	RunNow(ctx context.Context) (DigestSummary, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	matchesHandler    *MatchesHandler
	candidatesHandler *CandidatesHandler
	digestHandler     *DigestHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, runner DigestRunner, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		matchesHandler:    NewMatchesHandler(deps, maxLimit),
		candidatesHandler: NewCandidatesHandler(deps, maxLimit),
		digestHandler:     NewDigestHandler(deps, runner),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/matches/", MetricsMiddleware(s.matchesHandler.HandleGetMatches, "matches"))
	mux.HandleFunc("/candidates/", MetricsMiddleware(s.candidatesHandler.HandleGetCandidates, "candidates"))
	mux.HandleFunc("/digest/run", MetricsMiddleware(s.digestHandler.HandleRunDigest, "digest_run"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
