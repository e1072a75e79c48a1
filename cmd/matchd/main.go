package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hirewire/matchengine/internal/adapters/http/api"
	"github.com/hirewire/matchengine/internal/adapters/source"
	"github.com/hirewire/matchengine/internal/config"
	"github.com/hirewire/matchengine/internal/domain/match"
	"github.com/hirewire/matchengine/internal/engine"
	"github.com/hirewire/matchengine/internal/scheduler"
	"github.com/hirewire/matchengine/pkg/logger"
	"github.com/hirewire/matchengine/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout         = 10 * time.Second
	writeTimeout        = 10 * time.Second
	idleTimeout         = 60 * time.Second
	readHeaderTimeout   = 5 * time.Second
	shutdownTimeout     = 30 * time.Second
	poolMetricsInterval = 30 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Pool sources: Postgres, with an optional Redis cache in front of the
	// active-job pool.
	pool, err := source.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error(ctx, "failed to connect to postgres", logger.Error(err))
		return
	}
	defer pool.Close()

	pg := source.NewPostgresSource(pool)
	var jobs source.JobSource = pg
	if cfg.RedisURL != "" {
		rdb, err := source.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Error(ctx, "failed to connect to redis", logger.Error(err))
			return
		}
		defer func() { _ = rdb.Close() }()
		jobs = source.NewCachedJobSource(pg, rdb, source.WithTTL(cfg.JobCacheTTL))
		log.Info(ctx, "active-job cache enabled", logger.Duration("ttl", cfg.JobCacheTTL))
	}

	// Matching engine with configured weights.
	calc := match.NewCalculator(match.WithWeights(cfg.MatchWeights))
	eng := engine.New(pg, jobs,
		engine.WithCalculator(calc),
		engine.WithMaxLimit(cfg.MaxResultLimit),
		engine.WithWorkerCount(cfg.WorkerCount),
	)
	metrics.UpdateWorkerCount(cfg.WorkerCount)

	// Daily digest scheduler.
	sched := scheduler.New(eng, pg,
		scheduler.WithCronSpec(cfg.DigestCron),
		scheduler.WithMaxMatchesPerUser(cfg.MaxMatchesPerUser),
		scheduler.WithChunkSize(cfg.DigestMaxUsersPerRun),
	)
	if err := sched.Start(ctx); err != nil {
		log.Error(ctx, "failed to start scheduler", logger.Error(err))
		return
	}
	defer sched.Stop()

	// Keep pool-size gauges fresh in the background.
	go startPoolMetricsUpdater(ctx, pg, jobs)

	// HTTP mux and routes.
	mux := http.NewServeMux()
	apiServer := api.NewServer(eng, sched, &serviceStats{cfg: cfg, sched: sched}, cfg.MaxResultLimit)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// serviceStats exposes config and scheduler state on the stats endpoint.
type serviceStats struct {
	cfg   *config.Config
	sched *scheduler.Scheduler
}

func (s *serviceStats) GetStats() map[string]interface{} {
	stats := s.sched.GetStats()
	stats["worker_count"] = s.cfg.WorkerCount
	stats["max_result_limit"] = s.cfg.MaxResultLimit
	stats["job_cache_enabled"] = s.cfg.RedisURL != ""
	return stats
}

// startPoolMetricsUpdater periodically refreshes the pool-size gauges.
func startPoolMetricsUpdater(ctx context.Context, profiles source.ProfileSource, jobs source.JobSource) {
	ticker := time.NewTicker(poolMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if active, err := jobs.ActiveJobs(ctx); err == nil {
				metrics.UpdateActiveJobPoolSize(len(active))
			}
			if pool, err := profiles.CandidatePool(ctx); err == nil {
				metrics.UpdateCandidatePoolSize(len(pool))
			}
		}
	}
}
