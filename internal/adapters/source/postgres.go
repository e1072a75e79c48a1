package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirewire/matchengine/internal/domain/model"
	"github.com/hirewire/matchengine/pkg/metrics"
)

// PostgresSource implements ProfileSource and JobSource over the job board's
// relational store. All queries are read-only.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresPool creates and verifies a pgxpool connection pool.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return pool, nil
}

// NewPostgresSource wraps an existing pool.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

const profileQuery = `
SELECT id, COALESCE(desired_rate_min, 0), COALESCE(desired_rate_max, 0),
       COALESCE(location, ''), is_remote_only, availability,
       COALESCE(experience_level, ''), preferred_work_types,
       preferred_durations, preferred_industries,
       COALESCE(completeness_percent, 0)
FROM contractor_profiles
WHERE id = $1`

const candidatePoolQuery = `
SELECT id, COALESCE(desired_rate_min, 0), COALESCE(desired_rate_max, 0),
       COALESCE(location, ''), is_remote_only, availability,
       COALESCE(experience_level, ''), preferred_work_types,
       preferred_durations, preferred_industries,
       COALESCE(completeness_percent, 0)
FROM contractor_profiles
WHERE availability <> 'NOT_LOOKING'
ORDER BY id
LIMIT $1`

const profileSkillsQuery = `
SELECT profile_id, skill_id, name, proficiency
FROM profile_skills
WHERE profile_id = ANY($1)
ORDER BY profile_id, name`

const activeUserIDsQuery = `
SELECT id FROM contractor_profiles
WHERE availability <> 'NOT_LOOKING'
ORDER BY id`

const jobQuery = `
SELECT id, title, COALESCE(hourly_rate_min, 0), COALESCE(hourly_rate_max, 0),
       COALESCE(location, ''), work_type, COALESCE(industry, ''),
       COALESCE(contract_duration, ''), COALESCE(experience_required, ''),
       applicant_count, posted_at
FROM job_postings
WHERE id = $1`

const activeJobsQuery = `
SELECT id, title, COALESCE(hourly_rate_min, 0), COALESCE(hourly_rate_max, 0),
       COALESCE(location, ''), work_type, COALESCE(industry, ''),
       COALESCE(contract_duration, ''), COALESCE(experience_required, ''),
       applicant_count, posted_at
FROM job_postings
WHERE status = 'OPEN' AND (expires_at IS NULL OR expires_at > now())
ORDER BY posted_at DESC`

const jobSkillsQuery = `
SELECT job_id, skill_id, name, required_level, required
FROM job_required_skills
WHERE job_id = ANY($1)
ORDER BY job_id, required DESC, name`

// Profile returns the profile for one user.
func (s *PostgresSource) Profile(ctx context.Context, userID string) (model.ContractorProfile, error) {
	row := s.pool.QueryRow(ctx, profileQuery, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ContractorProfile{}, fmt.Errorf("profile %s: %w", userID, ErrNotFound)
		}
		metrics.RecordPoolSourceError("postgres", "profile")
		return model.ContractorProfile{}, fmt.Errorf("query profile %s: %w: %w", userID, ErrUnavailable, err)
	}

	skills, err := s.skillsFor(ctx, []string{p.ID})
	if err != nil {
		metrics.RecordPoolSourceError("postgres", "profile_skills")
		return model.ContractorProfile{}, fmt.Errorf("query profile skills: %w: %w", ErrUnavailable, err)
	}
	p.Skills = skills[p.ID]
	return p, nil
}

// CandidatePool returns the coarsely eligible profile pool, capped at
// CandidatePoolCap.
func (s *PostgresSource) CandidatePool(ctx context.Context) ([]model.ContractorProfile, error) {
	rows, err := s.pool.Query(ctx, candidatePoolQuery, CandidatePoolCap)
	if err != nil {
		metrics.RecordPoolSourceError("postgres", "candidate_pool")
		return nil, fmt.Errorf("query candidate pool: %w: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var profiles []model.ContractorProfile
	ids := make([]string, 0, CandidatePoolCap)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan candidate: %w: %w", ErrUnavailable, err)
		}
		profiles = append(profiles, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordPoolSourceError("postgres", "candidate_pool")
		return nil, fmt.Errorf("iterate candidate pool: %w: %w", ErrUnavailable, err)
	}

	skills, err := s.skillsFor(ctx, ids)
	if err != nil {
		metrics.RecordPoolSourceError("postgres", "candidate_skills")
		return nil, fmt.Errorf("query candidate skills: %w: %w", ErrUnavailable, err)
	}
	for i := range profiles {
		profiles[i].Skills = skills[profiles[i].ID]
	}
	metrics.UpdateCandidatePoolSize(len(profiles))
	return profiles, nil
}

// ActiveUserIDs returns the digest audience.
func (s *PostgresSource) ActiveUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, activeUserIDsQuery)
	if err != nil {
		metrics.RecordPoolSourceError("postgres", "active_user_ids")
		return nil, fmt.Errorf("query active user ids: %w: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w: %w", ErrUnavailable, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user ids: %w: %w", ErrUnavailable, err)
	}
	return ids, nil
}

// Job returns one posting.
func (s *PostgresSource) Job(ctx context.Context, jobID string) (model.JobPosting, error) {
	row := s.pool.QueryRow(ctx, jobQuery, jobID)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.JobPosting{}, fmt.Errorf("job %s: %w", jobID, ErrNotFound)
		}
		metrics.RecordPoolSourceError("postgres", "job")
		return model.JobPosting{}, fmt.Errorf("query job %s: %w: %w", jobID, ErrUnavailable, err)
	}

	skills, err := s.requiredSkillsFor(ctx, []string{j.ID})
	if err != nil {
		metrics.RecordPoolSourceError("postgres", "job_skills")
		return model.JobPosting{}, fmt.Errorf("query job skills: %w: %w", ErrUnavailable, err)
	}
	j.RequiredSkills = skills[j.ID]
	return j, nil
}

// ActiveJobs returns the open posting pool.
func (s *PostgresSource) ActiveJobs(ctx context.Context) ([]model.JobPosting, error) {
	rows, err := s.pool.Query(ctx, activeJobsQuery)
	if err != nil {
		metrics.RecordPoolSourceError("postgres", "active_jobs")
		return nil, fmt.Errorf("query active jobs: %w: %w", ErrUnavailable, err)
	}
	defer rows.Close()

	var jobs []model.JobPosting
	var ids []string
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w: %w", ErrUnavailable, err)
		}
		jobs = append(jobs, j)
		ids = append(ids, j.ID)
	}
	if err := rows.Err(); err != nil {
		metrics.RecordPoolSourceError("postgres", "active_jobs")
		return nil, fmt.Errorf("iterate active jobs: %w: %w", ErrUnavailable, err)
	}

	skills, err := s.requiredSkillsFor(ctx, ids)
	if err != nil {
		metrics.RecordPoolSourceError("postgres", "job_skills")
		return nil, fmt.Errorf("query job skills: %w: %w", ErrUnavailable, err)
	}
	for i := range jobs {
		jobs[i].RequiredSkills = skills[jobs[i].ID]
	}
	metrics.UpdateActiveJobPoolSize(len(jobs))
	return jobs, nil
}

func (s *PostgresSource) skillsFor(ctx context.Context, profileIDs []string) (map[string][]model.Skill, error) {
	out := make(map[string][]model.Skill, len(profileIDs))
	if len(profileIDs) == 0 {
		return out, nil
	}
	rows, err := s.pool.Query(ctx, profileSkillsQuery, profileIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var profileID string
		var sk model.Skill
		if err := rows.Scan(&profileID, &sk.ID, &sk.Name, &sk.Proficiency); err != nil {
			return nil, err
		}
		out[profileID] = append(out[profileID], sk)
	}
	return out, rows.Err()
}

func (s *PostgresSource) requiredSkillsFor(ctx context.Context, jobIDs []string) (map[string][]model.RequiredSkill, error) {
	out := make(map[string][]model.RequiredSkill, len(jobIDs))
	if len(jobIDs) == 0 {
		return out, nil
	}
	rows, err := s.pool.Query(ctx, jobSkillsQuery, jobIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var jobID string
		var sk model.RequiredSkill
		if err := rows.Scan(&jobID, &sk.ID, &sk.Name, &sk.RequiredLevel, &sk.Required); err != nil {
			return nil, err
		}
		out[jobID] = append(out[jobID], sk)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (model.ContractorProfile, error) {
	var p model.ContractorProfile
	var workTypes []string
	err := row.Scan(
		&p.ID, &p.DesiredHourlyRateMin, &p.DesiredHourlyRateMax,
		&p.Location, &p.IsRemoteOnly, &p.Availability,
		&p.Experience, &workTypes,
		&p.PreferredDurations, &p.PreferredIndustries,
		&p.CompletenessPercent,
	)
	if err != nil {
		return model.ContractorProfile{}, err
	}
	p.PreferredWorkTypes = make([]model.WorkType, len(workTypes))
	for i, wt := range workTypes {
		p.PreferredWorkTypes[i] = model.WorkType(wt)
	}
	return p, nil
}

func scanJob(row rowScanner) (model.JobPosting, error) {
	var j model.JobPosting
	err := row.Scan(
		&j.ID, &j.Title, &j.HourlyRateMin, &j.HourlyRateMax,
		&j.Location, &j.WorkType, &j.Industry,
		&j.ContractDuration, &j.ExperienceRequired,
		&j.ApplicantCount, &j.PostedAt,
	)
	if err != nil {
		return model.JobPosting{}, err
	}
	return j, nil
}
