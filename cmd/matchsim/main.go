package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/hirewire/matchengine/internal/simulate"
	"github.com/hirewire/matchengine/pkg/logger"
)

// Default configuration constants.
const (
	defaultUsers   = 1000
	defaultJobs    = 200
	defaultSeed    = 1
	defaultTopN    = 5
	defaultTimeout = 10 * time.Minute
)

func main() {
	var (
		users    = flag.Int("users", defaultUsers, "Number of contractor profiles to generate")
		jobs     = flag.Int("jobs", defaultJobs, "Number of job postings to generate")
		seed     = flag.Int64("seed", defaultSeed, "Seed for the deterministic generator")
		workers  = flag.Int("workers", runtime.NumCPU(), "Number of concurrent scoring workers")
		topN     = flag.Int("top", defaultTopN, "Matches to keep per user in the digest pass")
		minScore = flag.Int("min-score", 0, "Minimum overall score kept in the ranking pass")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	cfg := &simulate.Config{
		Users:    *users,
		Jobs:     *jobs,
		Seed:     *seed,
		Workers:  *workers,
		TopN:     *topN,
		MinScore: *minScore,
		Verbose:  *verbose,
	}

	if err := simulate.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
