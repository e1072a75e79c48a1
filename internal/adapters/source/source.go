// Package source defines the pool collaborators the match engine reads from:
// a profile source and a job source. The engine never writes through these.
package source

import (
	"context"

	"github.com/hirewire/matchengine/internal/domain/model"
)

// CandidatePoolCap bounds the candidate pool a single "candidates for job"
// query may return. It keeps scoring cost proportional to the cap rather
// than the whole user population.
const CandidatePoolCap = 1000

// ProfileSource supplies contractor profiles.
type ProfileSource interface {
	// Profile returns the profile for one user. Returns ErrNotFound when the
	// user is unknown.
	Profile(ctx context.Context, userID string) (model.ContractorProfile, error)

	// CandidatePool returns profiles coarsely eligible for matching:
	// availability is not NOT_LOOKING, capped at CandidatePoolCap.
	CandidatePool(ctx context.Context) ([]model.ContractorProfile, error)

	// ActiveUserIDs returns the ids of users eligible for the daily digest.
	ActiveUserIDs(ctx context.Context) ([]string, error)
}

// JobSource supplies job postings.
type JobSource interface {
	// Job returns one posting. Returns ErrNotFound when the job is unknown.
	Job(ctx context.Context, jobID string) (model.JobPosting, error)

	// ActiveJobs returns the pool of open, non-expired postings.
	ActiveJobs(ctx context.Context) ([]model.JobPosting, error)
}
