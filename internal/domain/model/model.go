// Package model contains the job-board value types read by the match engine.
//
// The engine never mutates these: profiles are owned by their contractors and
// postings by their posters; both arrive here read-only from the pool sources.
package model

import "time"

// ProficiencyLevel is a contractor's self-reported level for one skill, and
// doubles as the level a posting requires.
type ProficiencyLevel string

const (
	LevelBeginner     ProficiencyLevel = "BEGINNER"
	LevelIntermediate ProficiencyLevel = "INTERMEDIATE"
	LevelAdvanced     ProficiencyLevel = "ADVANCED"
	LevelExpert       ProficiencyLevel = "EXPERT"
)

// Numeric maps a proficiency level onto the 25/50/75/100 scale used for
// partial skill credit. Unknown levels map to 0 so malformed rows score as
// unmet rather than erroring.
func (p ProficiencyLevel) Numeric() float64 {
	switch p {
	case LevelBeginner:
		return 25
	case LevelIntermediate:
		return 50
	case LevelAdvanced:
		return 75
	case LevelExpert:
		return 100
	default:
		return 0
	}
}

// Valid reports whether p is one of the four known levels.
func (p ProficiencyLevel) Valid() bool {
	return p.Numeric() > 0
}

// Availability is a contractor's current hiring status.
type Availability string

const (
	Available  Availability = "AVAILABLE"
	Busy       Availability = "BUSY"
	NotLooking Availability = "NOT_LOOKING"
)

// WorkType classifies where the work happens.
type WorkType string

const (
	WorkRemote WorkType = "REMOTE"
	WorkHybrid WorkType = "HYBRID"
	WorkOnSite WorkType = "ON_SITE"
)

// ExperienceLevel is a coarse seniority bracket.
type ExperienceLevel string

const (
	ExperienceEntry  ExperienceLevel = "ENTRY"
	ExperienceMid    ExperienceLevel = "MID"
	ExperienceSenior ExperienceLevel = "SENIOR"
	ExperienceLead   ExperienceLevel = "LEAD"
)

// Skill is one entry in a contractor's skill set.
type Skill struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Proficiency ProficiencyLevel `json:"proficiency_level"`
}

// RequiredSkill is one entry in a posting's requirements. A skill with
// Required=false is a nice-to-have and must never by itself fail a match.
type RequiredSkill struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	RequiredLevel ProficiencyLevel `json:"required_level"`
	Required      bool             `json:"required"`
}

// ContractorProfile is the engine's read-only view of a contractor.
type ContractorProfile struct {
	ID                   string          `json:"id"`
	Skills               []Skill         `json:"skills"`
	DesiredHourlyRateMin float64         `json:"desired_hourly_rate_min"`
	DesiredHourlyRateMax float64         `json:"desired_hourly_rate_max"`
	Location             string          `json:"location"`
	IsRemoteOnly         bool            `json:"is_remote_only"`
	Availability         Availability    `json:"availability"`
	Experience           ExperienceLevel `json:"experience_level"`
	PreferredWorkTypes   []WorkType      `json:"preferred_work_types"`
	PreferredDurations   []string        `json:"preferred_contract_durations"`
	PreferredIndustries  []string        `json:"preferred_industries"`
	CompletenessPercent  float64         `json:"profile_completeness_percent"`
}

// HasDesiredRate reports whether the contractor stated any rate expectation.
// A zero minimum means "not stated" and rate must score as neutral.
func (p ContractorProfile) HasDesiredRate() bool {
	return p.DesiredHourlyRateMin > 0
}

// DesiredRateRange returns the stated range, collapsing a missing maximum
// to the point range [min, min].
func (p ContractorProfile) DesiredRateRange() (min, max float64) {
	min = p.DesiredHourlyRateMin
	max = p.DesiredHourlyRateMax
	if max < min {
		max = min
	}
	return min, max
}

// JobPosting is the engine's read-only view of an open position.
type JobPosting struct {
	ID                 string          `json:"id"`
	Title              string          `json:"title"`
	RequiredSkills     []RequiredSkill `json:"required_skills"`
	HourlyRateMin      float64         `json:"hourly_rate_min"`
	HourlyRateMax      float64         `json:"hourly_rate_max"`
	Location           string          `json:"location"`
	WorkType           WorkType        `json:"work_type"`
	Industry           string          `json:"industry"`
	ContractDuration   string          `json:"contract_duration"`
	ExperienceRequired ExperienceLevel `json:"experience_required"`
	ApplicantCount     int             `json:"applicant_count"`
	PostedAt           time.Time       `json:"posted_at"`
}

// HasRateRange reports whether the posting carries a usable rate range.
// Postings should always have one by construction; the engine degrades to a
// neutral rate score when they do not.
func (j JobPosting) HasRateRange() bool {
	return j.HourlyRateMax > 0 && j.HourlyRateMax >= j.HourlyRateMin
}
