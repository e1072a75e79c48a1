package match

import (
	"strings"

	"github.com/hirewire/matchengine/internal/domain/model"
)

// Credit weighting for required vs nice-to-have skills.
const (
	mandatorySkillWeight = 2.0
	optionalSkillWeight  = 1.0
)

// Aggregate skill reason thresholds.
const (
	skillsStrongThreshold  = 80.0
	skillsGoodThreshold    = 60.0
	skillsLimitedThreshold = 40.0
)

// scoreSkills computes the skills sub-score: a credit-weighted average over
// the posting's requirements. A profile skill matches on case-insensitive
// exact name only. Full credit requires candidate level >= required level;
// below that, credit is the ratio of the numeric levels. Mandatory skills
// carry twice the weight of optional ones, and an absent optional skill only
// dilutes the average, it never emits a missing reason.
func scoreSkills(profile model.ContractorProfile, job model.JobPosting) (float64, []Reason, []Reason) {
	if len(job.RequiredSkills) == 0 {
		// Nothing required, nothing to hold against the candidate.
		return 100, nil, nil
	}

	byName := make(map[string]model.Skill, len(profile.Skills))
	for _, s := range profile.Skills {
		byName[strings.ToLower(strings.TrimSpace(s.Name))] = s
	}

	var creditSum, weightSum float64
	var matched, unmatched []Reason

	for _, req := range job.RequiredSkills {
		weight := optionalSkillWeight
		if req.Required {
			weight = mandatorySkillWeight
		}
		weightSum += weight

		have, ok := byName[strings.ToLower(strings.TrimSpace(req.Name))]
		if !ok {
			if req.Required {
				unmatched = append(unmatched, skillMissingReason(req.Name))
			}
			continue
		}

		required := req.RequiredLevel.Numeric()
		candidate := have.Proficiency.Numeric()
		credit := 1.0
		if required > 0 && candidate < required {
			credit = candidate / required
		}
		if credit >= 1 {
			credit = 1
			matched = append(matched, skillMatchedReason(req.Name))
		}
		creditSum += credit * weight
	}

	score := 100 * creditSum / weightSum

	switch {
	case score >= skillsStrongThreshold:
		matched = append(matched, reason(ReasonSkillsStrong, msgSkillsStrong))
	case score >= skillsGoodThreshold:
		matched = append(matched, reason(ReasonSkillsGood, msgSkillsGood))
	case score < skillsLimitedThreshold:
		unmatched = append(unmatched, reason(ReasonSkillsLimited, msgSkillsLimited))
	}

	return score, matched, unmatched
}
