package match_test

import (
	"reflect"
	"sort"
	"testing"

	"github.com/hirewire/matchengine/internal/domain/match"
	"github.com/hirewire/matchengine/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// The worked scenario from the product side: a strong frontend contractor
// against a well-paying remote React posting.
func strongPair() (model.ContractorProfile, model.JobPosting) {
	profile := model.ContractorProfile{
		ID:                   "user-react",
		Availability:         model.Available,
		DesiredHourlyRateMin: 100,
		DesiredHourlyRateMax: 100,
		IsRemoteOnly:         true,
		Skills: []model.Skill{
			{Name: "React", Proficiency: model.LevelExpert},
			{Name: "TypeScript", Proficiency: model.LevelAdvanced},
			{Name: "Node", Proficiency: model.LevelIntermediate},
		},
	}
	job := model.JobPosting{
		ID:            "job-react",
		Title:         "Senior React Contractor",
		HourlyRateMin: 80,
		HourlyRateMax: 120,
		WorkType:      model.WorkRemote,
		RequiredSkills: []model.RequiredSkill{
			{Name: "React", RequiredLevel: model.LevelAdvanced, Required: true},
			{Name: "TypeScript", RequiredLevel: model.LevelIntermediate, Required: true},
			{Name: "Python", RequiredLevel: model.LevelBeginner, Required: false},
		},
	}
	return profile, job
}

func TestCalculateStrongMatch(t *testing.T) {
	Convey("Given the strong frontend pair", t, func() {
		calc := match.NewCalculator()
		profile, job := strongPair()
		score := calc.Calculate(profile, job)

		Convey("Then the pair is a confident good match", func() {
			So(score.Overall, ShouldBeGreaterThan, 70)
			So(score.Skills, ShouldBeGreaterThan, 60)
			So(score.Rate, ShouldEqual, 100)
			So(score.Location, ShouldEqual, 100)
			So(score.IsGoodMatch, ShouldBeTrue)
			So(score.Confidence, ShouldEqual, match.ConfidenceHigh)
		})

		Convey("Then identities are carried through", func() {
			So(score.UserID, ShouldEqual, "user-react")
			So(score.JobID, ShouldEqual, "job-react")
		})

		Convey("When the posting pays far below the desired rate", func() {
			cheap := job
			cheap.HourlyRateMin = 30
			cheap.HourlyRateMax = 50
			low := calc.Calculate(profile, cheap)

			Convey("Then rate collapses and the match is no longer good", func() {
				So(low.Rate, ShouldBeLessThan, 50)
				So(low.IsGoodMatch, ShouldBeFalse)
				So(low.Confidence, ShouldNotEqual, match.ConfidenceHigh)
			})
		})
	})
}

func TestCalculateDeterminism(t *testing.T) {
	Convey("Given identical inputs", t, func() {
		calc := match.NewCalculator()
		profile, job := strongPair()

		Convey("Then two calculations are bit-for-bit identical", func() {
			a := calc.Calculate(profile, job)
			b := calc.Calculate(profile, job)
			So(reflect.DeepEqual(a, b), ShouldBeTrue)
		})

		Convey("Then the inputs are never mutated", func() {
			skillsBefore := append([]model.Skill(nil), profile.Skills...)
			_ = calc.Calculate(profile, job)
			So(reflect.DeepEqual(profile.Skills, skillsBefore), ShouldBeTrue)
		})
	})
}

func TestScoreBounds(t *testing.T) {
	Convey("Given a spread of profile/job shapes", t, func() {
		calc := match.NewCalculator()
		profiles := []model.ContractorProfile{
			{},
			{ID: "a", Availability: model.NotLooking, CompletenessPercent: 120},
			{ID: "b", Availability: model.Busy, DesiredHourlyRateMin: 500, DesiredHourlyRateMax: 900, IsRemoteOnly: true},
			{ID: "c", Availability: model.Available, Location: "Oslo", Skills: []model.Skill{{Name: "Go", Proficiency: model.LevelBeginner}}},
		}
		jobs := []model.JobPosting{
			{},
			{ID: "x", WorkType: model.WorkOnSite, ApplicantCount: 100000, HourlyRateMin: 1, HourlyRateMax: 2},
			{ID: "y", WorkType: model.WorkRemote, RequiredSkills: []model.RequiredSkill{{Name: "Go", RequiredLevel: model.LevelExpert, Required: true}}},
		}

		Convey("Then every sub-score and the overall stay within [0,100]", func() {
			for _, p := range profiles {
				for _, j := range jobs {
					s := calc.Calculate(p, j)
					for _, v := range []float64{s.Skills, s.Rate, s.Location, s.Preference, s.Availability, s.Competition, s.Completeness, float64(s.Overall)} {
						So(v, ShouldBeGreaterThanOrEqualTo, 0)
						So(v, ShouldBeLessThanOrEqualTo, 100)
					}
				}
			}
		})
	})
}

func TestConfidenceTiers(t *testing.T) {
	Convey("Given the confidence derivation", t, func() {
		calc := match.NewCalculator()

		Convey("When skills and rate are both solid", func() {
			profile, job := strongPair()
			So(calc.Calculate(profile, job).Confidence, ShouldEqual, match.ConfidenceHigh)
		})

		Convey("When multiple core dimensions are poor", func() {
			p := model.ContractorProfile{
				ID:                   "u1",
				Availability:         model.NotLooking,
				DesiredHourlyRateMin: 300,
				DesiredHourlyRateMax: 400,
			}
			j := model.JobPosting{
				ID: "j1", HourlyRateMin: 40, HourlyRateMax: 60, WorkType: model.WorkRemote,
				RequiredSkills: []model.RequiredSkill{{Name: "Rust", RequiredLevel: model.LevelExpert, Required: true}},
			}
			So(calc.Calculate(p, j).Confidence, ShouldEqual, match.ConfidenceLow)
		})

		Convey("When the signals conflict", func() {
			// strong skills, collapsed rate
			profile, job := strongPair()
			job.HourlyRateMin = 30
			job.HourlyRateMax = 50
			So(calc.Calculate(profile, job).Confidence, ShouldEqual, match.ConfidenceMedium)
		})
	})
}

func TestCustomWeights(t *testing.T) {
	Convey("Given custom weights", t, func() {
		Convey("When valid weights are supplied", func() {
			w := match.Weights{Skills: 1}
			calc := match.NewCalculator(match.WithWeights(w))

			Convey("Then the overall score is driven by that dimension alone", func() {
				profile, job := strongPair()
				s := calc.Calculate(profile, job)
				So(s.Overall, ShouldEqual, 80) // skills sub-score for the pair
			})
		})

		Convey("When invalid weights are supplied", func() {
			calc := match.NewCalculator(match.WithWeights(match.Weights{}))

			Convey("Then the defaults remain in effect", func() {
				So(calc.Weights(), ShouldResemble, match.DefaultWeights())
			})
		})
	})
}

func TestTieBreakOrdering(t *testing.T) {
	Convey("Given scores with ties at each level", t, func() {
		scores := []match.Score{
			{UserID: "u", JobID: "j-b", Overall: 80, Skills: 70, Rate: 60},
			{UserID: "u", JobID: "j-a", Overall: 80, Skills: 70, Rate: 60},
			{UserID: "u", JobID: "j-c", Overall: 80, Skills: 70, Rate: 90},
			{UserID: "u", JobID: "j-d", Overall: 80, Skills: 90, Rate: 10},
			{UserID: "u", JobID: "j-e", Overall: 90, Skills: 10, Rate: 10},
		}

		Convey("When sorted with the documented comparator", func() {
			sort.Slice(scores, func(i, k int) bool { return match.Less(scores[i], scores[k]) })

			Convey("Then overall, skills, rate and id break ties in that order", func() {
				ids := make([]string, len(scores))
				for i, s := range scores {
					ids[i] = s.JobID
				}
				So(ids, ShouldResemble, []string{"j-e", "j-d", "j-c", "j-a", "j-b"})
			})

			Convey("Then sorting again is a no-op", func() {
				before := append([]match.Score(nil), scores...)
				sort.Slice(scores, func(i, k int) bool { return match.Less(scores[i], scores[k]) })
				So(reflect.DeepEqual(scores, before), ShouldBeTrue)
			})
		})
	})
}

func TestReasonOrdering(t *testing.T) {
	Convey("Given a not-looking contractor with other weak dimensions", t, func() {
		calc := match.NewCalculator()
		p := model.ContractorProfile{ID: "u1", Availability: model.NotLooking, DesiredHourlyRateMin: 300, DesiredHourlyRateMax: 400}
		j := model.JobPosting{
			ID: "j1", HourlyRateMin: 40, HourlyRateMax: 60, WorkType: model.WorkRemote,
			RequiredSkills: []model.RequiredSkill{{Name: "Rust", RequiredLevel: model.LevelExpert, Required: true}},
		}
		score := calc.Calculate(p, j)

		Convey("Then the availability reason leads the unmatched list", func() {
			So(len(score.ReasonsNotMatched), ShouldBeGreaterThan, 1)
			So(score.ReasonsNotMatched[0].Code, ShouldEqual, match.ReasonNotLooking)
		})
	})
}
