// Package scheduler wires up the cron job that periodically generates the
// daily match digest for every active contractor.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/hirewire/matchengine/internal/domain/match"
	"github.com/hirewire/matchengine/pkg/logger"
)

// DefaultCronSpec fires the digest once a day at 07:00.
const DefaultCronSpec = "0 7 * * *"

// Matcher produces per-user digest matches for a batch of users.
type Matcher interface {
	GenerateDailyMatches(ctx context.Context, userIDs []string, maxPerUser int) (map[string][]match.Score, error)
}

// UserDirectory lists the users eligible for a digest run.
type UserDirectory interface {
	ActiveUserIDs(ctx context.Context) ([]string, error)
}

// RunSummary describes one completed digest run.
type RunSummary struct {
	RunID            string    `json:"run_id"`
	StartedAt        time.Time `json:"started_at"`
	Users            int       `json:"users"`
	UsersWithMatches int       `json:"users_with_matches"`
	Matches          int       `json:"matches"`
	DurationMS       int64     `json:"duration_ms"`
}

// Scheduler wraps robfig/cron and manages the digest loop.
type Scheduler struct {
	cron       *cron.Cron
	matcher    Matcher
	users      UserDirectory
	notifier   Notifier
	spec       string
	maxPerUser int
	chunkSize  int
	log        logger.Logger

	mu      sync.Mutex
	lastRun *RunSummary
}

// Option configures the Scheduler.
type Option func(*Scheduler)

// WithCronSpec overrides the digest schedule.
func WithCronSpec(spec string) Option {
	return func(s *Scheduler) {
		if spec != "" {
			s.spec = spec
		}
	}
}

// WithNotifier sets the digest delivery sink.
func WithNotifier(n Notifier) Option {
	return func(s *Scheduler) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithMaxMatchesPerUser caps digest entries per user.
func WithMaxMatchesPerUser(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.maxPerUser = n
		}
	}
}

// WithChunkSize bounds how many users one batch call covers.
func WithChunkSize(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithLogger sets the scheduler logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Scheduler) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Scheduler with the given matcher and user directory.
func New(matcher Matcher, users UserDirectory, opts ...Option) *Scheduler {
	s := &Scheduler{
		cron:       cron.New(cron.WithLogger(cron.DefaultLogger)),
		matcher:    matcher,
		users:      users,
		notifier:   NewLogNotifier(),
		spec:       DefaultCronSpec,
		maxPerUser: 5,
		chunkSize:  10_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get().Named("scheduler")
	}
	return s
}

// Start registers the digest job and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if _, err := s.RunNow(ctx); err != nil {
			s.log.Error(ctx, "scheduled digest run failed", logger.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadCronSpec, err)
	}

	s.cron.Start()
	s.log.Info(ctx, "digest scheduler started", logger.String("spec", s.spec))
	return nil
}

// Stop gracefully shuts down the scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info(context.Background(), "digest scheduler stopped")
}

// RunNow executes one digest run synchronously. Runs are serialized; a
// trigger that arrives while another run is in flight waits its turn.
func (s *Scheduler) RunNow(ctx context.Context) (RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	start := time.Now()

	userIDs, err := s.users.ActiveUserIDs(ctx)
	if err != nil {
		return summary, fmt.Errorf("%w: %w", ErrRunFailed, err)
	}
	summary.Users = len(userIDs)

	s.log.Info(ctx, "digest run started",
		logger.String("run_id", summary.RunID),
		logger.Int("users", len(userIDs)))

	for off := 0; off < len(userIDs); off += s.chunkSize {
		end := off + s.chunkSize
		if end > len(userIDs) {
			end = len(userIDs)
		}
		batch, err := s.matcher.GenerateDailyMatches(ctx, userIDs[off:end], s.maxPerUser)
		if err != nil {
			return summary, fmt.Errorf("%w: %w", ErrRunFailed, err)
		}
		for userID, matches := range batch {
			summary.UsersWithMatches++
			summary.Matches += len(matches)
			if err := s.notifier.Notify(ctx, userID, matches); err != nil {
				s.log.Warn(ctx, "digest delivery failed",
					logger.String("run_id", summary.RunID),
					logger.String("user_id", userID),
					logger.Error(err))
			}
		}
	}

	summary.DurationMS = time.Since(start).Milliseconds()
	s.lastRun = &summary

	s.log.Info(ctx, "digest run complete",
		logger.String("run_id", summary.RunID),
		logger.Int("users", summary.Users),
		logger.Int("users_with_matches", summary.UsersWithMatches),
		logger.Int("matches", summary.Matches),
		logger.Int("duration_ms", int(summary.DurationMS)))
	return summary, nil
}

// GetStats exposes scheduler state for the stats endpoint.
func (s *Scheduler) GetStats() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := map[string]interface{}{
		"cron_spec":            s.spec,
		"max_matches_per_user": s.maxPerUser,
	}
	if s.lastRun != nil {
		stats["last_run_id"] = s.lastRun.RunID
		stats["last_run_started_at"] = s.lastRun.StartedAt
		stats["last_run_users"] = s.lastRun.Users
		stats["last_run_users_with_matches"] = s.lastRun.UsersWithMatches
		stats["last_run_matches"] = s.lastRun.Matches
		stats["last_run_duration_ms"] = s.lastRun.DurationMS
	}
	return stats
}
