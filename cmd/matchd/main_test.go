package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/hirewire/matchengine/internal/config"
	"github.com/hirewire/matchengine/internal/domain/match"
	"github.com/hirewire/matchengine/internal/scheduler"
	"github.com/hirewire/matchengine/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type noopMatcher struct{}

func (noopMatcher) GenerateDailyMatches(context.Context, []string, int) (map[string][]match.Score, error) {
	return nil, nil
}

type noopDirectory struct{}

func (noopDirectory) ActiveUserIDs(context.Context) ([]string, error) { return nil, nil }

func TestBootstrap(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("MATCHD_ADDR", ":8080")
			_ = os.Setenv("MATCHD_WORKER_COUNT", "4")
			defer func() {
				_ = os.Unsetenv("MATCHD_ADDR")
				_ = os.Unsetenv("MATCHD_WORKER_COUNT")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When building the HTTP server from config", func() {
			cfg := config.New()
			srv := &http.Server{
				Addr:              cfg.Addr,
				ReadTimeout:       readTimeout,
				WriteTimeout:      writeTimeout,
				IdleTimeout:       idleTimeout,
				ReadHeaderTimeout: readHeaderTimeout,
			}

			convey.Convey("Then timeouts are applied", func() {
				convey.So(srv.ReadTimeout, convey.ShouldEqual, 10*time.Second)
				convey.So(srv.IdleTimeout, convey.ShouldEqual, 60*time.Second)
			})
		})

		convey.Convey("When composing the stats provider", func() {
			cfg := config.New()
			sched := scheduler.New(noopMatcher{}, noopDirectory{})
			stats := (&serviceStats{cfg: cfg, sched: sched}).GetStats()

			convey.Convey("Then config and scheduler state are merged", func() {
				convey.So(stats["worker_count"], convey.ShouldEqual, cfg.WorkerCount)
				convey.So(stats["max_result_limit"], convey.ShouldEqual, cfg.MaxResultLimit)
				convey.So(stats["cron_spec"], convey.ShouldEqual, scheduler.DefaultCronSpec)
				convey.So(stats["job_cache_enabled"], convey.ShouldEqual, false)
			})
		})
	})
}
