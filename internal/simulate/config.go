package simulate

import (
	"time"

	"github.com/hirewire/matchengine/internal/domain/match"
)

// Config holds configuration for a simulation run.
type Config struct {
	Users    int   // Number of contractor profiles to generate
	Jobs     int   // Number of job postings to generate
	Seed     int64 // Seed for the deterministic generator
	Workers  int   // Number of concurrent scoring workers
	TopN     int   // Matches to keep per user in the digest pass
	MinScore int   // Retrieval filter exercised in the ranking pass
	Verbose  bool  // Enable verbose logging
}

// Stats holds simulation statistics.
type Stats struct {
	ProfilesGenerated int
	JobsGenerated     int
	PairsScored       int
	GoodMatches       int
	DigestUsers       int
	DigestMatches     int
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration

	// ScoreBuckets counts overall scores per decade: [0-9], [10-19], ... [100].
	ScoreBuckets [11]int

	// TopPairs holds the highest-scoring user/job pairs seen in the run.
	TopPairs []match.Score
}
