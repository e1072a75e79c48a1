package config_test

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/hirewire/matchengine/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			// Clear any existing environment variables
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.JobCacheTTL, convey.ShouldEqual, 5*time.Minute)
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
				convey.So(cfg.MaxResultLimit, convey.ShouldEqual, 100)
				convey.So(cfg.DigestCron, convey.ShouldEqual, "0 7 * * *")
				convey.So(cfg.MaxMatchesPerUser, convey.ShouldEqual, 5)
				convey.So(cfg.MatchWeights.Valid(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MATCHD_ADDR", ":8080")
			_ = os.Setenv("MATCHD_WORKER_COUNT", "16")
			_ = os.Setenv("MATCHD_MAX_RESULT_LIMIT", "50")
			_ = os.Setenv("MATCHD_JOB_CACHE_TTL", "90s")
			_ = os.Setenv("MATCHD_MAX_MATCHES_PER_USER", "3")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 16)
				convey.So(cfg.MaxResultLimit, convey.ShouldEqual, 50)
				convey.So(cfg.JobCacheTTL, convey.ShouldEqual, 90*time.Second)
				convey.So(cfg.MaxMatchesPerUser, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
addr: ":7070"
worker_count: 24
max_result_limit: 25
digest_cron: "30 6 * * *"
match_weights:
  skills: 0.5
  rate: 0.5
  location: 0
  preference: 0
  availability: 0
  competition: 0
  completeness: 0
`
			tmpFile := createTempConfigFile(t, yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MATCHD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 24)
				convey.So(cfg.MaxResultLimit, convey.ShouldEqual, 25)
				convey.So(cfg.DigestCron, convey.ShouldEqual, "30 6 * * *")
				convey.So(cfg.MatchWeights.Skills, convey.ShouldEqual, 0.5)
				convey.So(cfg.MatchWeights.Location, convey.ShouldEqual, 0.0)
			})
		})

		convey.Convey("When env vars override the YAML file", func() {
			tmpFile := createTempConfigFile(t, "addr: \":7070\"\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("MATCHD_CONFIG", tmpFile)
			_ = os.Setenv("MATCHD_ADDR", ":6060")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the env var wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("MATCHD_CONFIG", "/nonexistent/matchd.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail with a load error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a required field is blanked out", func() {
			_ = os.Setenv("MATCHD_ADDR", "")
			defer clearConfigEnvVars()

			// An empty env value leaves the default intact, so blank it via file.
			tmpFile := createTempConfigFile(t, "addr: \"\"\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MATCHD_CONFIG", tmpFile)

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects the config", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When every weight is zero", func() {
			yamlContent := `
match_weights:
  skills: 0
  rate: 0
  location: 0
  preference: 0
  availability: 0
  competition: 0
  completeness: 0
`
			tmpFile := createTempConfigFile(t, yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("MATCHD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation rejects the weights", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"MATCHD_CONFIG",
		"MATCHD_ADDR",
		"MATCHD_LOG_LEVEL",
		"MATCHD_DATABASE_URL",
		"MATCHD_REDIS_URL",
		"MATCHD_JOB_CACHE_TTL",
		"MATCHD_WORKER_COUNT",
		"MATCHD_MAX_RESULT_LIMIT",
		"MATCHD_DIGEST_CRON",
		"MATCHD_DIGEST_MAX_USERS_PER_RUN",
		"MATCHD_MAX_MATCHES_PER_USER",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp("", "matchd-config-*.yaml")
	if err != nil {
		t.Fatalf("create temp config: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	_ = f.Close()
	return f.Name()
}
