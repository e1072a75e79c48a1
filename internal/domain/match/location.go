package match

import (
	"strings"

	"github.com/hirewire/matchengine/internal/domain/model"
)

// Location sub-scores for the non-exact cases.
const (
	locationPartialScore = 70.0
	locationUnknownScore = 30.0
)

// scoreLocation scores geographic compatibility. The one hard rule runs
// first: a remote-only contractor against an on-site posting is 0 no matter
// what the location text says. Otherwise remote-compatible pairs and exact
// text matches score 100, partial containment (same city substring) scores
// 70, and unknown compatibility scores 30 rather than 0.
func scoreLocation(profile model.ContractorProfile, job model.JobPosting) (float64, []Reason, []Reason) {
	if profile.IsRemoteOnly && job.WorkType == model.WorkOnSite {
		return 0, nil, []Reason{reason(ReasonLocationBlocked, msgLocationBlocked)}
	}

	if job.WorkType == model.WorkRemote && acceptsRemote(profile) {
		return 100, []Reason{reason(ReasonLocationMatched, msgLocationMatched)}, nil
	}

	want := strings.ToLower(strings.TrimSpace(profile.Location))
	have := strings.ToLower(strings.TrimSpace(job.Location))

	if want != "" && want == have {
		return 100, []Reason{reason(ReasonLocationMatched, msgLocationMatched)}, nil
	}
	if want != "" && have != "" && (strings.Contains(have, want) || strings.Contains(want, have)) {
		return locationPartialScore, nil, nil
	}
	return locationUnknownScore, nil, nil
}

// acceptsRemote reports whether the contractor can take a remote posting.
// No stated work-type preference counts as accepting remote.
func acceptsRemote(profile model.ContractorProfile) bool {
	if profile.IsRemoteOnly {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(profile.Location), "remote") {
		return true
	}
	if len(profile.PreferredWorkTypes) == 0 {
		return true
	}
	for _, wt := range profile.PreferredWorkTypes {
		if wt == model.WorkRemote {
			return true
		}
	}
	return false
}
