package simulate

import (
	"fmt"
	"math/rand"

	"github.com/hirewire/matchengine/internal/domain/model"
)

// Catalogs the generator draws from. Small on purpose so generated
// profiles and jobs overlap enough to produce interesting scores.
var (
	skillCatalog = []string{
		"Go", "Python", "React", "TypeScript", "Node.js", "Kubernetes",
		"Terraform", "PostgreSQL", "Rust", "Java", "Figma", "Swift",
	}
	locationCatalog = []string{
		"Berlin", "London", "New York", "Amsterdam", "Toronto", "Tokyo", "Austin",
	}
	industryCatalog = []string{
		"fintech", "healthtech", "e-commerce", "gaming", "devtools", "media",
	}
	durationCatalog = []string{
		"1-3 months", "3-6 months", "6-12 months", "12+ months",
	}
	levels       = []model.ProficiencyLevel{model.LevelBeginner, model.LevelIntermediate, model.LevelAdvanced, model.LevelExpert}
	workTypes    = []model.WorkType{model.WorkRemote, model.WorkHybrid, model.WorkOnSite}
	experiences  = []model.ExperienceLevel{model.ExperienceEntry, model.ExperienceMid, model.ExperienceSenior, model.ExperienceLead}
	availability = []model.Availability{model.Available, model.Available, model.Available, model.Busy, model.NotLooking}
)

// generator produces synthetic profiles and jobs from a seeded source so
// the same seed always yields the same population.
type generator struct {
	rng *rand.Rand
}

func newGenerator(seed int64) *generator {
	return &generator{rng: rand.New(rand.NewSource(seed))}
}

func (g *generator) pick(options []string) string {
	return options[g.rng.Intn(len(options))]
}

// pickSkills draws n distinct skill names.
func (g *generator) pickSkills(n int) []string {
	idx := g.rng.Perm(len(skillCatalog))
	if n > len(idx) {
		n = len(idx)
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = skillCatalog[idx[i]]
	}
	return names
}

func (g *generator) profile(i int) model.ContractorProfile {
	rateMin := 30 + g.rng.Float64()*100 // 30..130
	remoteOnly := g.rng.Intn(4) == 0

	skillNames := g.pickSkills(2 + g.rng.Intn(4))
	skills := make([]model.Skill, len(skillNames))
	for j, name := range skillNames {
		skills[j] = model.Skill{
			ID:          fmt.Sprintf("skill-%04d-%d", i, j),
			Name:        name,
			Proficiency: levels[g.rng.Intn(len(levels))],
		}
	}

	var preferredTypes []model.WorkType
	if g.rng.Intn(2) == 0 {
		preferredTypes = []model.WorkType{workTypes[g.rng.Intn(len(workTypes))]}
	}

	return model.ContractorProfile{
		ID:                   fmt.Sprintf("user-%04d", i),
		Skills:               skills,
		DesiredHourlyRateMin: rateMin,
		DesiredHourlyRateMax: rateMin + g.rng.Float64()*40,
		Location:             g.pick(locationCatalog),
		IsRemoteOnly:         remoteOnly,
		Availability:         availability[g.rng.Intn(len(availability))],
		Experience:           experiences[g.rng.Intn(len(experiences))],
		PreferredWorkTypes:   preferredTypes,
		PreferredDurations:   []string{g.pick(durationCatalog)},
		PreferredIndustries:  []string{g.pick(industryCatalog)},
		CompletenessPercent:  float64(40 + g.rng.Intn(61)),
	}
}

func (g *generator) job(i int) model.JobPosting {
	rateMin := 40 + g.rng.Float64()*80 // 40..120

	skillNames := g.pickSkills(1 + g.rng.Intn(3))
	required := make([]model.RequiredSkill, len(skillNames))
	for j, name := range skillNames {
		required[j] = model.RequiredSkill{
			ID:            fmt.Sprintf("req-%04d-%d", i, j),
			Name:          name,
			RequiredLevel: levels[g.rng.Intn(len(levels))],
			Required:      j == 0 || g.rng.Intn(2) == 0,
		}
	}

	return model.JobPosting{
		ID:                 fmt.Sprintf("job-%04d", i),
		Title:              fmt.Sprintf("%s contractor", skillNames[0]),
		RequiredSkills:     required,
		HourlyRateMin:      rateMin,
		HourlyRateMax:      rateMin + 10 + g.rng.Float64()*40,
		Location:           g.pick(locationCatalog),
		WorkType:           workTypes[g.rng.Intn(len(workTypes))],
		Industry:           g.pick(industryCatalog),
		ContractDuration:   g.pick(durationCatalog),
		ExperienceRequired: experiences[g.rng.Intn(len(experiences))],
		ApplicantCount:     g.rng.Intn(60),
	}
}

// generatePopulation builds the full synthetic population for a run.
func generatePopulation(cfg *Config) ([]model.ContractorProfile, []model.JobPosting) {
	g := newGenerator(cfg.Seed)
	profiles := make([]model.ContractorProfile, cfg.Users)
	for i := range profiles {
		profiles[i] = g.profile(i)
	}
	jobs := make([]model.JobPosting, cfg.Jobs)
	for i := range jobs {
		jobs[i] = g.job(i)
	}
	return profiles, jobs
}
