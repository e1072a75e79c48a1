package engine_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/hirewire/matchengine/internal/adapters/source"
	"github.com/hirewire/matchengine/internal/domain/model"
	"github.com/hirewire/matchengine/internal/engine"
	"github.com/hirewire/matchengine/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// In-memory pool sources standing in for the CRUD layer.
type fakeProfiles struct {
	profiles map[string]model.ContractorProfile
	poolErr  error
	fetchErr error
}

func (f *fakeProfiles) Profile(_ context.Context, userID string) (model.ContractorProfile, error) {
	if f.fetchErr != nil {
		return model.ContractorProfile{}, f.fetchErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return model.ContractorProfile{}, fmt.Errorf("profile %s: %w", userID, source.ErrNotFound)
	}
	return p, nil
}

func (f *fakeProfiles) CandidatePool(context.Context) ([]model.ContractorProfile, error) {
	if f.poolErr != nil {
		return nil, f.poolErr
	}
	out := make([]model.ContractorProfile, 0, len(f.profiles))
	for _, p := range f.profiles {
		if p.Availability != model.NotLooking {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProfiles) ActiveUserIDs(context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.profiles))
	for id := range f.profiles {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeJobs struct {
	jobs    map[string]model.JobPosting
	poolErr error
}

func (f *fakeJobs) Job(_ context.Context, jobID string) (model.JobPosting, error) {
	j, ok := f.jobs[jobID]
	if !ok {
		return model.JobPosting{}, fmt.Errorf("job %s: %w", jobID, source.ErrNotFound)
	}
	return j, nil
}

func (f *fakeJobs) ActiveJobs(context.Context) ([]model.JobPosting, error) {
	if f.poolErr != nil {
		return nil, f.poolErr
	}
	out := make([]model.JobPosting, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return out, nil
}

func strongProfile(id string) model.ContractorProfile {
	return model.ContractorProfile{
		ID:                   id,
		Availability:         model.Available,
		DesiredHourlyRateMin: 90,
		DesiredHourlyRateMax: 110,
		IsRemoteOnly:         true,
		CompletenessPercent:  90,
		Skills: []model.Skill{
			{Name: "Go", Proficiency: model.LevelExpert},
			{Name: "Postgres", Proficiency: model.LevelAdvanced},
		},
	}
}

func goJob(id string, applicants int) model.JobPosting {
	return model.JobPosting{
		ID:            id,
		HourlyRateMin: 80,
		HourlyRateMax: 120,
		WorkType:      model.WorkRemote,
		ApplicantCount: applicants,
		RequiredSkills: []model.RequiredSkill{
			{Name: "Go", RequiredLevel: model.LevelAdvanced, Required: true},
			{Name: "Postgres", RequiredLevel: model.LevelIntermediate, Required: true},
		},
	}
}

func mismatchJob(id string) model.JobPosting {
	return model.JobPosting{
		ID:            id,
		HourlyRateMin: 20,
		HourlyRateMax: 30,
		WorkType:      model.WorkOnSite,
		Location:      "Tokyo",
		RequiredSkills: []model.RequiredSkill{
			{Name: "COBOL", RequiredLevel: model.LevelExpert, Required: true},
		},
	}
}

func TestMatchesForUser(t *testing.T) {
	ctx := context.Background()

	Convey("Given an engine over in-memory pools", t, func() {
		profiles := &fakeProfiles{profiles: map[string]model.ContractorProfile{
			"user-1": strongProfile("user-1"),
		}}
		jobs := &fakeJobs{jobs: map[string]model.JobPosting{
			"job-1": goJob("job-1", 0),
			"job-2": goJob("job-2", 40),
			"job-3": mismatchJob("job-3"),
		}}
		eng := engine.New(profiles, jobs)

		Convey("When ranking jobs for a known user", func() {
			scores, err := eng.MatchesForUser(ctx, "user-1", 10, 0)
			So(err, ShouldBeNil)

			Convey("Then results come back sorted by the tie-break", func() {
				So(len(scores), ShouldEqual, 3)
				for i := 1; i < len(scores); i++ {
					So(scores[i-1].Overall, ShouldBeGreaterThanOrEqualTo, scores[i].Overall)
				}
				So(scores[0].JobID, ShouldEqual, "job-1") // fewer applicants beat job-2
			})

			Convey("Then every score carries the querying user's id", func() {
				for _, s := range scores {
					So(s.UserID, ShouldEqual, "user-1")
				}
			})
		})

		Convey("When a minimum score is applied", func() {
			scores, err := eng.MatchesForUser(ctx, "user-1", 10, 70)
			So(err, ShouldBeNil)

			Convey("Then no returned entry is below it", func() {
				So(len(scores), ShouldBeGreaterThan, 0)
				for _, s := range scores {
					So(s.Overall, ShouldBeGreaterThanOrEqualTo, 70)
				}
			})
		})

		Convey("When the caller requests more than the ceiling", func() {
			small := engine.New(profiles, jobs, engine.WithMaxLimit(2))
			scores, err := small.MatchesForUser(ctx, "user-1", 10_000, 0)
			So(err, ShouldBeNil)

			Convey("Then the limit is clamped server-side", func() {
				So(len(scores), ShouldBeLessThanOrEqualTo, 2)
			})
		})

		Convey("When limit is 1", func() {
			scores, err := eng.MatchesForUser(ctx, "user-1", 1, 0)
			So(err, ShouldBeNil)
			So(len(scores), ShouldEqual, 1)
		})

		Convey("When the user does not exist", func() {
			scores, err := eng.MatchesForUser(ctx, "nobody", 10, 0)

			Convey("Then the result is empty, not an error", func() {
				So(err, ShouldBeNil)
				So(scores, ShouldBeEmpty)
			})
		})

		Convey("When the job pool is unreachable", func() {
			jobs.poolErr = fmt.Errorf("dial: %w", source.ErrUnavailable)
			_, err := eng.MatchesForUser(ctx, "user-1", 10, 0)

			Convey("Then a retrieval failure is surfaced, distinct from empty", func() {
				So(err, ShouldNotBeNil)
				So(errors.Is(err, source.ErrUnavailable), ShouldBeTrue)
			})
		})
	})
}

func TestCandidatesForJob(t *testing.T) {
	ctx := context.Background()

	Convey("Given an engine with a mixed candidate pool", t, func() {
		strong := strongProfile("user-strong")
		weak := model.ContractorProfile{ID: "user-weak", Availability: model.Busy, Location: "Tokyo"}
		profiles := &fakeProfiles{profiles: map[string]model.ContractorProfile{
			"user-strong": strong,
			"user-weak":   weak,
		}}
		jobs := &fakeJobs{jobs: map[string]model.JobPosting{"job-1": goJob("job-1", 0)}}
		eng := engine.New(profiles, jobs)

		Convey("When ranking candidates for a known job", func() {
			scores, err := eng.CandidatesForJob(ctx, "job-1", 10, 0)
			So(err, ShouldBeNil)

			Convey("Then the strong candidate ranks first", func() {
				So(len(scores), ShouldEqual, 2)
				So(scores[0].UserID, ShouldEqual, "user-strong")
				So(scores[0].JobID, ShouldEqual, "job-1")
			})
		})

		Convey("When filtering by minimum score", func() {
			scores, err := eng.CandidatesForJob(ctx, "job-1", 10, 80)
			So(err, ShouldBeNil)

			Convey("Then only qualifying candidates remain", func() {
				for _, s := range scores {
					So(s.Overall, ShouldBeGreaterThanOrEqualTo, 80)
				}
			})
		})

		Convey("When the job does not exist", func() {
			scores, err := eng.CandidatesForJob(ctx, "job-missing", 10, 0)
			So(err, ShouldBeNil)
			So(scores, ShouldBeEmpty)
		})

		Convey("When the profile pool is unreachable", func() {
			profiles.poolErr = fmt.Errorf("dial: %w", source.ErrUnavailable)
			_, err := eng.CandidatesForJob(ctx, "job-1", 10, 0)
			So(errors.Is(err, source.ErrUnavailable), ShouldBeTrue)
		})
	})
}
