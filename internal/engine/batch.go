package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hirewire/matchengine/internal/domain/match"
	"github.com/hirewire/matchengine/internal/domain/model"
	"github.com/hirewire/matchengine/pkg/logger"
	"github.com/hirewire/matchengine/pkg/metrics"
)

// GenerateDailyMatches computes up to maxPerUser matches at or above
// DailyDigestMinScore for each user, against a single fetch of the active
// job pool. Users are processed independently across a bounded worker pool;
// a user whose data cannot be fetched or scored is skipped and the rest of
// the batch completes. Users with zero qualifying matches are absent from
// the result map, so len(result) is the users-with-matches count.
func (e *Engine) GenerateDailyMatches(ctx context.Context, userIDs []string, maxPerUser int) (map[string][]match.Score, error) {
	if maxPerUser <= 0 {
		maxPerUser = DefaultMaxMatchesPerUser
	}

	start := time.Now()
	defer func() {
		metrics.RecordBatchRun(time.Since(start).Seconds())
	}()

	jobs, err := e.jobs.ActiveJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch active jobs: %w", err)
	}
	if len(jobs) == 0 || len(userIDs) == 0 {
		return map[string][]match.Score{}, nil
	}

	workers := e.workerCount
	if workers > len(userIDs) {
		workers = len(userIDs)
	}

	var (
		mu      sync.Mutex
		results = make(map[string][]match.Score)
		failed  int
	)

	userCh := make(chan string)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for userID := range userCh {
				matches, err := e.matchesForDigest(ctx, userID, jobs, maxPerUser)
				if err != nil {
					e.log.Debug(ctx, "skipping user in batch run",
						logger.String("userID", userID),
						logger.Error(err),
					)
					metrics.RecordBatchUserFailure()
					mu.Lock()
					failed++
					mu.Unlock()
					continue
				}
				if len(matches) == 0 {
					continue
				}
				mu.Lock()
				results[userID] = matches
				mu.Unlock()
			}
		}()
	}

feed:
	for _, userID := range userIDs {
		select {
		case <-ctx.Done():
			break feed
		case userCh <- userID:
		}
	}
	close(userCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch run interrupted: %w", err)
	}

	metrics.UpdateBatchUsersWithMatches(len(results))
	e.log.Info(ctx, "daily match batch complete",
		logger.Int("users", len(userIDs)),
		logger.Int("usersWithMatches", len(results)),
		logger.Int("usersFailed", failed),
		logger.Int("activeJobs", len(jobs)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

// matchesForDigest scores one user against the shared job pool at the digest
// floor.
func (e *Engine) matchesForDigest(ctx context.Context, userID string, jobs []model.JobPosting, maxPerUser int) ([]match.Score, error) {
	profile, err := e.profiles.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	scores := make([]match.Score, 0, maxPerUser)
	for _, job := range jobs {
		s := e.score(profile, job)
		if s.Overall >= DailyDigestMinScore {
			scores = append(scores, s)
		}
	}
	return rankAndTruncate(scores, maxPerUser), nil
}
