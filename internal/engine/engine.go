// Package engine provides the retrieval and batch operations of the match
// engine: ranking jobs for a user, ranking candidates for a job, and the
// daily batch run over many users. All scoring goes through the pure
// match.Calculator; this package adds pool access, filtering, ordering and
// bounded parallelism.
package engine

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"time"

	"github.com/hirewire/matchengine/internal/adapters/source"
	"github.com/hirewire/matchengine/internal/domain/match"
	"github.com/hirewire/matchengine/internal/domain/model"
	"github.com/hirewire/matchengine/pkg/logger"
	"github.com/hirewire/matchengine/pkg/metrics"
)

// Result limit bounds. MaxResultLimit is the hard server-side ceiling on a
// single retrieval query regardless of what the caller requests.
const (
	MaxResultLimit     = 100
	DefaultResultLimit = 20
)

// DailyDigestMinScore is the floor for proactive notification. It sits
// materially above match.GoodMatchThreshold so users are never nudged about
// borderline matches.
const DailyDigestMinScore = 75

// DefaultMaxMatchesPerUser bounds a user's daily digest list when the caller
// does not say otherwise.
const DefaultMaxMatchesPerUser = 5

// Engine implements the retrieval and batch operations.
type Engine struct {
	profiles source.ProfileSource
	jobs     source.JobSource
	calc     *match.Calculator

	maxLimit    int
	workerCount int

	log logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithCalculator sets a custom match calculator.
func WithCalculator(calc *match.Calculator) Option {
	return func(e *Engine) {
		if calc != nil {
			e.calc = calc
		}
	}
}

// WithMaxLimit overrides the retrieval result ceiling.
func WithMaxLimit(limit int) Option {
	return func(e *Engine) {
		if limit > 0 {
			e.maxLimit = limit
		}
	}
}

// WithWorkerCount sets the batch worker pool size.
func WithWorkerCount(count int) Option {
	return func(e *Engine) {
		if count > 0 {
			e.workerCount = count
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New constructs an Engine over the given pool sources.
func New(profiles source.ProfileSource, jobs source.JobSource, opts ...Option) *Engine {
	e := &Engine{
		profiles:    profiles,
		jobs:        jobs,
		calc:        match.NewCalculator(),
		maxLimit:    MaxResultLimit,
		workerCount: runtime.NumCPU(),
		log:         logger.Get().Named("engine"),
	}
	for _, opt := range opts {
		opt(e)
	}
	metrics.UpdateWorkerCount(e.workerCount)
	return e
}

// MatchesForUser ranks the active job pool for one user. An unknown user
// yields an empty result, not an error; an unreachable pool source yields a
// retrieval error so callers can tell "nobody matched" from "couldn't
// compute".
func (e *Engine) MatchesForUser(ctx context.Context, userID string, limit, minScore int) ([]match.Score, error) {
	limit = e.clampLimit(limit)

	profile, err := e.profiles.Profile(ctx, userID)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch profile: %w", err)
	}

	jobs, err := e.jobs.ActiveJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch active jobs: %w", err)
	}

	scores := make([]match.Score, 0, len(jobs))
	for _, job := range jobs {
		s := e.score(profile, job)
		if s.Overall >= minScore {
			scores = append(scores, s)
		}
	}
	return rankAndTruncate(scores, limit), nil
}

// CandidatesForJob ranks the candidate profile pool for one posting. The
// symmetric counterpart of MatchesForUser with identical failure semantics.
func (e *Engine) CandidatesForJob(ctx context.Context, jobID string, limit, minScore int) ([]match.Score, error) {
	limit = e.clampLimit(limit)

	job, err := e.jobs.Job(ctx, jobID)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch job: %w", err)
	}

	candidates, err := e.profiles.CandidatePool(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate pool: %w", err)
	}

	scores := make([]match.Score, 0, len(candidates))
	for _, profile := range candidates {
		s := e.score(profile, job)
		if s.Overall >= minScore {
			scores = append(scores, s)
		}
	}
	return rankAndTruncate(scores, limit), nil
}

// score runs one pure calculation and records its metrics.
func (e *Engine) score(profile model.ContractorProfile, job model.JobPosting) match.Score {
	start := time.Now()
	s := e.calc.Calculate(profile, job)
	metrics.RecordScoringLatency(float64(time.Since(start).Microseconds()) / 1000)
	metrics.RecordMatchComputed(float64(s.Overall), s.IsGoodMatch)
	return s
}

func (e *Engine) clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultResultLimit
	}
	if limit > e.maxLimit {
		return e.maxLimit
	}
	return limit
}

// rankAndTruncate orders scores by the documented tie-break and cuts the
// list to limit.
func rankAndTruncate(scores []match.Score, limit int) []match.Score {
	sort.Slice(scores, func(i, k int) bool { return match.Less(scores[i], scores[k]) })
	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}
