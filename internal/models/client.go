package models

import "time"

// Client is the read-only view of a trainer's client used to build prompts.
type Client struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Age             *int   `json:"age,omitempty"`
	Gender          string `json:"gender,omitempty"`
	ExperienceLevel Level  `json:"experienceLevel,omitempty"`
}

// Assessment is a fitness assessment recorded by the trainer.
type Assessment struct {
	ID         int64     `json:"id"`
	ClientID   string    `json:"clientId"`
	AssessedAt time.Time `json:"assessedAt"`
	Kind       string    `json:"kind"`
	Findings   string    `json:"findings"`
}

// ProgressEntry is a body measurement snapshot.
type ProgressEntry struct {
	ID         int64     `json:"id"`
	ClientID   string    `json:"clientId"`
	RecordedAt time.Time `json:"recordedAt"`
	WeightKg   *float64  `json:"weightKg,omitempty"`
	BodyFatPct *float64  `json:"bodyFatPct,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// ClientProfile bundles the lookups made for one generation request.
type ClientProfile struct {
	Client           Client         `json:"client"`
	LatestAssessment *Assessment    `json:"latestAssessment,omitempty"`
	LatestProgress   *ProgressEntry `json:"latestProgress,omitempty"`
}
