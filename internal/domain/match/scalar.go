package match

import (
	"github.com/hirewire/matchengine/internal/domain/model"
)

// Availability sub-scores.
const (
	busyAvailabilityScore = 40.0
)

// Competition curve parameters: score = 100 / (1 + applicants/10), floored
// so heavy competition reads as a headwind, never a disqualifier.
const (
	competitionSaturation    = 10.0
	competitionFloor         = 5.0
	lowCompetitionApplicants = 5
)

// Completeness bonus: above the threshold, completeness is rewarded slightly
// more than linearly.
const (
	completenessBonusThreshold = 80.0
	completenessBonusFactor    = 1.25
)

// scoreAvailability maps hiring status straight to a sub-score. NOT_LOOKING
// always emits its fixed mismatch reason, independent of every other
// dimension. A missing or unknown status degrades to neutral.
func scoreAvailability(profile model.ContractorProfile) (float64, []Reason, []Reason) {
	switch profile.Availability {
	case model.Available:
		return 100, nil, nil
	case model.Busy:
		return busyAvailabilityScore, nil, nil
	case model.NotLooking:
		return 0, nil, []Reason{reason(ReasonNotLooking, msgNotLooking)}
	default:
		return neutralSubScore, nil, nil
	}
}

// scoreCompetition is inversely related to the posting's applicant count via
// a saturating curve.
func scoreCompetition(job model.JobPosting) (float64, []Reason, []Reason) {
	applicants := job.ApplicantCount
	if applicants < 0 {
		applicants = 0
	}
	score := 100 / (1 + float64(applicants)/competitionSaturation)
	if score < competitionFloor {
		score = competitionFloor
	}

	var matched []Reason
	if applicants <= lowCompetitionApplicants {
		matched = append(matched, reason(ReasonLowCompetition, msgLowCompetition))
	}
	return score, matched, nil
}

// scoreCompleteness maps the profile completeness percentage to a sub-score,
// identity below the bonus threshold and mildly super-linear above it.
func scoreCompleteness(profile model.ContractorProfile) (float64, []Reason, []Reason) {
	p := clamp(profile.CompletenessPercent, 0, 100)
	if p >= completenessBonusThreshold {
		bonus := completenessBonusThreshold + (p-completenessBonusThreshold)*completenessBonusFactor
		return clamp(bonus, 0, 100), nil, nil
	}
	return p, nil, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
