// Package match implements the job matching engine: pure scoring primitives
// for each compatibility dimension and the calculator that combines them
// into an explainable MatchScore for one (profile, job) pair.
package match

import "fmt"

// ReasonCode is a stable identifier for one match or mismatch explanation.
// Callers and tests match on codes; Message is display text only.
type ReasonCode string

const (
	ReasonSkillMatched       ReasonCode = "SKILL_MATCHED"
	ReasonSkillMissing       ReasonCode = "SKILL_MISSING"
	ReasonSkillsStrong       ReasonCode = "SKILLS_STRONG"
	ReasonSkillsGood         ReasonCode = "SKILLS_GOOD"
	ReasonSkillsLimited      ReasonCode = "SKILLS_LIMITED"
	ReasonRateAligned        ReasonCode = "RATE_ALIGNED"
	ReasonRateMismatch       ReasonCode = "RATE_MISMATCH"
	ReasonLocationMatched    ReasonCode = "LOCATION_MATCHED"
	ReasonLocationBlocked    ReasonCode = "LOCATION_REMOTE_ONLY"
	ReasonPreferencesMatched ReasonCode = "PREFERENCES_MATCHED"
	ReasonWorkTypeMismatch   ReasonCode = "WORK_TYPE_MISMATCH"
	ReasonNotLooking         ReasonCode = "NOT_LOOKING"
	ReasonLowCompetition     ReasonCode = "LOW_COMPETITION"
)

// Reason is one explanation entry in a MatchScore.
type Reason struct {
	Code    ReasonCode `json:"code"`
	Message string     `json:"message"`
}

// Fixed display texts. NOT_LOOKING is contractual: it must read exactly
// "Not currently looking for work" whenever availability rules a profile out.
const (
	msgSkillsStrong       = "Strong skill alignment"
	msgSkillsGood         = "Good skill alignment"
	msgSkillsLimited      = "Limited skill match"
	msgRateAligned        = "Rate expectations align with the posting"
	msgRateMismatch       = "Rate expectations are outside the posting's range"
	msgLocationMatched    = "Location is compatible"
	msgLocationBlocked    = "Remote-only contractor cannot take an on-site role"
	msgPreferencesMatched = "Work preferences match the posting"
	msgWorkTypeMismatch   = "Work type is not among preferred work types"
	msgNotLooking         = "Not currently looking for work"
	msgLowCompetition     = "Few applicants so far"
)

func reason(code ReasonCode, msg string) Reason {
	return Reason{Code: code, Message: msg}
}

func skillMatchedReason(name string) Reason {
	return reason(ReasonSkillMatched, fmt.Sprintf("Meets required level for %s", name))
}

func skillMissingReason(name string) Reason {
	return reason(ReasonSkillMissing, fmt.Sprintf("Missing required skill %s", name))
}
