package simulate

import (
	"context"
	"fmt"

	"github.com/hirewire/matchengine/internal/adapters/source"
	"github.com/hirewire/matchengine/internal/domain/model"
)

// memSource serves a generated population through the same pool interfaces
// the service uses in production, so a simulation exercises the real engine.
type memSource struct {
	profiles map[string]model.ContractorProfile
	jobs     map[string]model.JobPosting
	userIDs  []string
	jobList  []model.JobPosting
}

var (
	_ source.ProfileSource = (*memSource)(nil)
	_ source.JobSource     = (*memSource)(nil)
)

func newMemSource(profiles []model.ContractorProfile, jobs []model.JobPosting) *memSource {
	m := &memSource{
		profiles: make(map[string]model.ContractorProfile, len(profiles)),
		jobs:     make(map[string]model.JobPosting, len(jobs)),
		userIDs:  make([]string, 0, len(profiles)),
		jobList:  jobs,
	}
	for _, p := range profiles {
		m.profiles[p.ID] = p
		m.userIDs = append(m.userIDs, p.ID)
	}
	for _, j := range jobs {
		m.jobs[j.ID] = j
	}
	return m
}

func (m *memSource) Profile(_ context.Context, userID string) (model.ContractorProfile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return model.ContractorProfile{}, fmt.Errorf("profile %s: %w", userID, source.ErrNotFound)
	}
	return p, nil
}

func (m *memSource) CandidatePool(context.Context) ([]model.ContractorProfile, error) {
	out := make([]model.ContractorProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		if p.Availability != model.NotLooking {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memSource) ActiveUserIDs(context.Context) ([]string, error) {
	return m.userIDs, nil
}

func (m *memSource) Job(_ context.Context, jobID string) (model.JobPosting, error) {
	j, ok := m.jobs[jobID]
	if !ok {
		return model.JobPosting{}, fmt.Errorf("job %s: %w", jobID, source.ErrNotFound)
	}
	return j, nil
}

func (m *memSource) ActiveJobs(context.Context) ([]model.JobPosting, error) {
	return m.jobList, nil
}
