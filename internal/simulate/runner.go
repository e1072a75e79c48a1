package simulate

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/hirewire/matchengine/internal/domain/match"
	"github.com/hirewire/matchengine/internal/engine"
	"github.com/hirewire/matchengine/pkg/logger"
)

// Run generates a synthetic population, pushes it through the real matching
// engine, and reports the resulting score distribution.
func Run(ctx context.Context, cfg *Config) error {
	if cfg.Users <= 0 || cfg.Jobs <= 0 {
		return fmt.Errorf("%w: users and jobs must be positive", ErrBadConfig)
	}
	log := logger.Get().Named("simulate")

	stats := &Stats{StartTime: time.Now()}

	log.Info(ctx, "generating population",
		logger.Int("users", cfg.Users),
		logger.Int("jobs", cfg.Jobs),
		logger.Int("seed", int(cfg.Seed)))
	profiles, jobs := generatePopulation(cfg)
	stats.ProfilesGenerated = len(profiles)
	stats.JobsGenerated = len(jobs)

	src := newMemSource(profiles, jobs)
	eng := engine.New(src, src,
		engine.WithMaxLimit(cfg.Jobs),
		engine.WithWorkerCount(cfg.Workers),
		engine.WithLogger(log.Named("engine")))

	// Ranking pass: score every user against the full job pool and bucket
	// the overall scores.
	for _, p := range profiles {
		if ctx.Err() != nil {
			return fmt.Errorf("simulation cancelled: %w", ctx.Err())
		}
		matches, err := eng.MatchesForUser(ctx, p.ID, cfg.Jobs, cfg.MinScore)
		if err != nil {
			return fmt.Errorf("ranking pass for %s: %w", p.ID, err)
		}
		for _, m := range matches {
			stats.PairsScored++
			bucket := m.Overall / 10
			if bucket > 10 {
				bucket = 10
			}
			stats.ScoreBuckets[bucket]++
			if m.IsGoodMatch {
				stats.GoodMatches++
			}
			stats.TopPairs = keepTopPairs(stats.TopPairs, m)
			if cfg.Verbose {
				log.Debug(ctx, "scored pair",
					logger.String("user_id", m.UserID),
					logger.String("job_id", m.JobID),
					logger.Int("overall", m.Overall))
			}
		}
	}

	// Digest pass: the same population through the batch matcher.
	userIDs := make([]string, len(profiles))
	for i, p := range profiles {
		userIDs[i] = p.ID
	}
	digest, err := eng.GenerateDailyMatches(ctx, userIDs, cfg.TopN)
	if err != nil {
		return fmt.Errorf("digest pass: %w", err)
	}
	stats.DigestUsers = len(digest)
	for _, matches := range digest {
		stats.DigestMatches += len(matches)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	writeReport(os.Stdout, cfg, stats)
	log.Info(ctx, "simulation complete",
		logger.Int("pairs_scored", stats.PairsScored),
		logger.Int("good_matches", stats.GoodMatches),
		logger.Int("digest_users", stats.DigestUsers),
		logger.Duration("duration", stats.Duration))
	return nil
}

// writeReport prints a plain-text score distribution report.
func writeReport(w *os.File, cfg *Config, stats *Stats) {
	fmt.Fprintf(w, "\nMatch Simulation Report\n")
	fmt.Fprintf(w, "=======================\n")
	fmt.Fprintf(w, "seed:           %d\n", cfg.Seed)
	fmt.Fprintf(w, "profiles:       %d\n", stats.ProfilesGenerated)
	fmt.Fprintf(w, "jobs:           %d\n", stats.JobsGenerated)
	fmt.Fprintf(w, "pairs scored:   %d\n", stats.PairsScored)
	fmt.Fprintf(w, "good matches:   %d (%.1f%%)\n", stats.GoodMatches, percent(stats.GoodMatches, stats.PairsScored))
	fmt.Fprintf(w, "digest users:   %d of %d\n", stats.DigestUsers, stats.ProfilesGenerated)
	fmt.Fprintf(w, "digest matches: %d\n", stats.DigestMatches)
	fmt.Fprintf(w, "duration:       %s\n\n", stats.Duration.Round(time.Millisecond))

	fmt.Fprintf(w, "overall score distribution\n")
	for i, count := range stats.ScoreBuckets {
		label := fmt.Sprintf("%3d-%3d", i*10, i*10+9)
		if i == 10 {
			label = "    100"
		}
		fmt.Fprintf(w, "  %s | %-60s %d\n", label, bar(count, stats.PairsScored), count)
	}

	if len(stats.TopPairs) > 0 {
		fmt.Fprintf(w, "\ntop pairs\n")
		for _, p := range stats.TopPairs {
			fmt.Fprintf(w, "  %s x %s  overall=%d skills=%.0f rate=%.0f confidence=%s\n",
				p.UserID, p.JobID, p.Overall, p.Skills, p.Rate, p.Confidence)
		}
	}
}

const topPairCount = 10

// keepTopPairs maintains a bounded best-scores list ordered by the ranking
// comparator.
func keepTopPairs(top []match.Score, m match.Score) []match.Score {
	top = append(top, m)
	sort.Slice(top, func(i, k int) bool { return match.Less(top[i], top[k]) })
	if len(top) > topPairCount {
		top = top[:topPairCount]
	}
	return top
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(part) / float64(total)
}

// bar renders a proportional histogram bar capped at 60 columns.
func bar(count, total int) string {
	if total == 0 {
		return ""
	}
	n := count * 60 / total
	return strings.Repeat("#", n)
}
