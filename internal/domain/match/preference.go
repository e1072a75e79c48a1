package match

import (
	"strings"

	"github.com/hirewire/matchengine/internal/domain/model"
)

// scorePreference averages independent membership checks: work type,
// contract duration and industry, each worth 100 or 0. A check the
// contractor never stated a preference for is excluded from the average,
// not failed. With no stated preferences at all the dimension is neutral.
func scorePreference(profile model.ContractorProfile, job model.JobPosting) (float64, []Reason, []Reason) {
	var checks, passed int

	workTypeStated := len(profile.PreferredWorkTypes) > 0
	workTypeOK := false
	if workTypeStated {
		checks++
		for _, wt := range profile.PreferredWorkTypes {
			if wt == job.WorkType {
				workTypeOK = true
				passed++
				break
			}
		}
	}

	if len(profile.PreferredDurations) > 0 && job.ContractDuration != "" {
		checks++
		if containsFold(profile.PreferredDurations, job.ContractDuration) {
			passed++
		}
	}

	if len(profile.PreferredIndustries) > 0 && job.Industry != "" {
		checks++
		if containsFold(profile.PreferredIndustries, job.Industry) {
			passed++
		}
	}

	if checks == 0 {
		return neutralSubScore, nil, nil
	}

	score := 100 * float64(passed) / float64(checks)

	var matched, unmatched []Reason
	if workTypeStated && !workTypeOK {
		unmatched = append(unmatched, reason(ReasonWorkTypeMismatch, msgWorkTypeMismatch))
	}
	if passed == checks {
		matched = append(matched, reason(ReasonPreferencesMatched, msgPreferencesMatched))
	}
	return score, matched, unmatched
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(needle)) {
			return true
		}
	}
	return false
}
