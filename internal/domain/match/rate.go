package match

import (
	"math"

	"github.com/hirewire/matchengine/internal/domain/model"
)

// Rate reason thresholds.
const (
	rateAlignedThreshold  = 80.0
	rateMismatchThreshold = 50.0
	disjointRateCeiling   = 50.0
	minRateSpan           = 1.0
)

// scoreRate compares the contractor's desired rate range against the
// posting's. Overlapping ranges score 100 minus a penalty proportional to how
// far the overlap midpoint sits from the posting's midpoint. Disjoint ranges
// decay from 50 toward 0 as the gap between the nearer edges grows relative
// to the posting's span. A contractor with no stated rate, or a posting with
// no usable range, scores neutral with no reason: absence of a preference
// never penalizes.
func scoreRate(profile model.ContractorProfile, job model.JobPosting) (float64, []Reason, []Reason) {
	if !profile.HasDesiredRate() || !job.HasRateRange() {
		return neutralSubScore, nil, nil
	}

	wantLo, wantHi := profile.DesiredRateRange()
	jobLo, jobHi := job.HourlyRateMin, job.HourlyRateMax
	jobSpan := jobHi - jobLo
	if jobSpan < minRateSpan {
		jobSpan = minRateSpan
	}
	jobMid := (jobLo + jobHi) / 2

	var score float64
	if wantLo <= jobHi && jobLo <= wantHi {
		overlapLo := math.Max(wantLo, jobLo)
		overlapHi := math.Min(wantHi, jobHi)
		overlapMid := (overlapLo + overlapHi) / 2
		penalty := disjointRateCeiling * math.Abs(overlapMid-jobMid) / jobSpan
		score = clamp(100-penalty, 0, 100)
	} else {
		gap := jobLo - wantHi
		if wantLo > jobHi {
			gap = wantLo - jobHi
		}
		score = clamp(disjointRateCeiling*(1-gap/jobSpan), 0, disjointRateCeiling)
	}

	var matched, unmatched []Reason
	switch {
	case score >= rateAlignedThreshold:
		matched = append(matched, reason(ReasonRateAligned, msgRateAligned))
	case score < rateMismatchThreshold:
		unmatched = append(unmatched, reason(ReasonRateMismatch, msgRateMismatch))
	}
	return score, matched, unmatched
}
