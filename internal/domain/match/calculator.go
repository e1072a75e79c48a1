package match

import (
	"math"

	"github.com/hirewire/matchengine/internal/domain/model"
)

// GoodMatchThreshold is the overall score at or above which a pair counts as
// a good match. It is fixed for a deployment; the daily digest uses its own,
// higher floor (see the engine package).
const GoodMatchThreshold = 70

// neutralSubScore is the score a dimension receives when the contractor
// stated no preference for it. Neutrality must not penalize.
const neutralSubScore = 70.0

// Confidence tier boundaries on the sub-scores.
const (
	highConfidenceSkills = 70.0
	highConfidenceRate   = 70.0
	poorSubScore         = 40.0
)

// Confidence summarizes how actionable an overall score is.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Weights sets the relative contribution of each sub-score to the overall
// score. The calculator normalizes them, so only ratios matter. Defaults
// keep skills and rate dominant (together over half the total) and
// competition and completeness minor.
type Weights struct {
	Skills       float64 `koanf:"skills" json:"skills"`
	Rate         float64 `koanf:"rate" json:"rate"`
	Location     float64 `koanf:"location" json:"location"`
	Preference   float64 `koanf:"preference" json:"preference"`
	Availability float64 `koanf:"availability" json:"availability"`
	Competition  float64 `koanf:"competition" json:"competition"`
	Completeness float64 `koanf:"completeness" json:"completeness"`
}

// DefaultWeights returns the deployed weighting.
func DefaultWeights() Weights {
	return Weights{
		Skills:       0.30,
		Rate:         0.25,
		Location:     0.15,
		Preference:   0.10,
		Availability: 0.10,
		Competition:  0.05,
		Completeness: 0.05,
	}
}

func (w Weights) total() float64 {
	return w.Skills + w.Rate + w.Location + w.Preference + w.Availability + w.Competition + w.Completeness
}

// Valid reports whether the weights can be normalized.
func (w Weights) Valid() bool {
	return w.total() > 0 &&
		w.Skills >= 0 && w.Rate >= 0 && w.Location >= 0 && w.Preference >= 0 &&
		w.Availability >= 0 && w.Competition >= 0 && w.Completeness >= 0
}

// Score is the engine's output for one (profile, job) pair. It is a value
// object: created fresh on every calculation and never mutated afterwards.
type Score struct {
	UserID string `json:"user_id"`
	JobID  string `json:"job_id"`

	Overall int `json:"overall_score"`

	Skills       float64 `json:"skills_score"`
	Rate         float64 `json:"rate_score"`
	Location     float64 `json:"location_score"`
	Preference   float64 `json:"preference_score"`
	Availability float64 `json:"availability_score"`
	Competition  float64 `json:"competition_score"`
	Completeness float64 `json:"profile_score"`

	ReasonsMatched    []Reason `json:"reasons_matched"`
	ReasonsNotMatched []Reason `json:"reasons_not_matched"`

	Confidence  Confidence `json:"confidence"`
	IsGoodMatch bool       `json:"is_good_match"`
}

// Calculator computes MatchScores. It is stateless and safe for concurrent
// use; the only configuration is the weighting.
type Calculator struct {
	weights Weights
}

// Option applies a configuration option to the Calculator.
type Option func(*Calculator)

// WithWeights overrides the default sub-score weighting. Invalid weights are
// ignored in favor of the defaults.
func WithWeights(w Weights) Option {
	return func(c *Calculator) {
		if w.Valid() {
			c.weights = w
		}
	}
}

// NewCalculator creates a Calculator with the default weighting.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Weights returns the active weighting.
func (c *Calculator) Weights() Weights {
	return c.weights
}

// Calculate scores one (profile, job) pair. It is pure: no I/O, no mutation
// of its inputs, and deterministic for identical inputs, which is what makes
// scores explainable and reproducible in tests.
func (c *Calculator) Calculate(profile model.ContractorProfile, job model.JobPosting) Score {
	availability, availMatched, availUnmatched := scoreAvailability(profile)
	skills, skillsMatched, skillsUnmatched := scoreSkills(profile, job)
	rate, rateMatched, rateUnmatched := scoreRate(profile, job)
	location, locMatched, locUnmatched := scoreLocation(profile, job)
	preference, prefMatched, prefUnmatched := scorePreference(profile, job)
	competition, compMatched, compUnmatched := scoreCompetition(job)
	completeness, fullMatched, fullUnmatched := scoreCompleteness(profile)

	w := c.weights
	weighted := skills*w.Skills +
		rate*w.Rate +
		location*w.Location +
		preference*w.Preference +
		availability*w.Availability +
		competition*w.Competition +
		completeness*w.Completeness

	overall := int(math.Round(clamp(weighted/w.total(), 0, 100)))

	// Reason ordering is part of the output contract: availability first so
	// the NOT_LOOKING rule is always visible, then the dimensions in weight
	// order.
	matched := concatReasons(availMatched, skillsMatched, rateMatched, locMatched, prefMatched, compMatched, fullMatched)
	unmatched := concatReasons(availUnmatched, skillsUnmatched, rateUnmatched, locUnmatched, prefUnmatched, compUnmatched, fullUnmatched)

	return Score{
		UserID:            profile.ID,
		JobID:             job.ID,
		Overall:           overall,
		Skills:            skills,
		Rate:              rate,
		Location:          location,
		Preference:        preference,
		Availability:      availability,
		Competition:       competition,
		Completeness:      completeness,
		ReasonsMatched:    matched,
		ReasonsNotMatched: unmatched,
		Confidence:        confidenceFor(skills, rate, availability),
		IsGoodMatch:       overall >= GoodMatchThreshold,
	}
}

// confidenceFor derives the tier from the dispersion of the core dimensions:
// solid skills and rate mean high, two or more poor core dimensions mean
// low, anything in between is medium.
func confidenceFor(skills, rate, availability float64) Confidence {
	if skills >= highConfidenceSkills && rate >= highConfidenceRate {
		return ConfidenceHigh
	}
	poor := 0
	for _, s := range [...]float64{skills, rate, availability} {
		if s < poorSubScore {
			poor++
		}
	}
	if poor >= 2 {
		return ConfidenceLow
	}
	return ConfidenceMedium
}

// Less reports whether a ranks strictly before b. This is the documented
// tie-break every caller sorts with: overall desc, then skills desc, then
// rate desc, then job id and user id ascending so paginated results are
// reproducible.
func Less(a, b Score) bool {
	if a.Overall != b.Overall {
		return a.Overall > b.Overall
	}
	if a.Skills != b.Skills {
		return a.Skills > b.Skills
	}
	if a.Rate != b.Rate {
		return a.Rate > b.Rate
	}
	if a.JobID != b.JobID {
		return a.JobID < b.JobID
	}
	return a.UserID < b.UserID
}

func concatReasons(lists ...[]Reason) []Reason {
	var out []Reason
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
