package storage

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/claude/optcoach/internal/models"
	"gopkg.in/yaml.v3"
)

// Seeder writes client records. Both DB and Lite satisfy it.
type Seeder interface {
	UpsertClient(ctx context.Context, c models.Client) error
	InsertAssessment(ctx context.Context, a models.Assessment) (int64, error)
	InsertProgress(ctx context.Context, p models.ProgressEntry) (int64, error)
}

type seedFile struct {
	Clients []seedClient `yaml:"clients"`
}

type seedClient struct {
	ID              string           `yaml:"id"`
	Name            string           `yaml:"name"`
	Age             *int             `yaml:"age"`
	Gender          string           `yaml:"gender"`
	ExperienceLevel string           `yaml:"experience_level"`
	Assessments     []seedAssessment `yaml:"assessments"`
	Progress        []seedProgress   `yaml:"progress"`
}

type seedAssessment struct {
	AssessedAt time.Time `yaml:"assessed_at"`
	Kind       string    `yaml:"kind"`
	Findings   string    `yaml:"findings"`
}

type seedProgress struct {
	RecordedAt time.Time `yaml:"recorded_at"`
	WeightKg   *float64  `yaml:"weight_kg"`
	BodyFatPct *float64  `yaml:"body_fat_pct"`
	Notes      string    `yaml:"notes"`
}

// SeedFile loads clients with their assessments and progress entries from a
// YAML file. Clients are upserted; history entries are appended on every
// call. Returns the number of clients written.
func SeedFile(ctx context.Context, s Seeder, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading seed file: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("parsing seed file: %w", err)
	}

	for i, c := range f.Clients {
		if c.ID == "" || c.Name == "" {
			return i, fmt.Errorf("seed client %d: id and name are required", i)
		}
		level := models.ParseLevel(c.ExperienceLevel)
		if c.ExperienceLevel != "" && level == "" {
			return i, fmt.Errorf("seed client %s: unknown experience level %q", c.ID, c.ExperienceLevel)
		}
		err := s.UpsertClient(ctx, models.Client{
			ID:              c.ID,
			Name:            c.Name,
			Age:             c.Age,
			Gender:          c.Gender,
			ExperienceLevel: level,
		})
		if err != nil {
			return i, err
		}
		for _, a := range c.Assessments {
			if _, err := s.InsertAssessment(ctx, models.Assessment{
				ClientID: c.ID, AssessedAt: a.AssessedAt, Kind: a.Kind, Findings: a.Findings,
			}); err != nil {
				return i, err
			}
		}
		for _, p := range c.Progress {
			if _, err := s.InsertProgress(ctx, models.ProgressEntry{
				ClientID: c.ID, RecordedAt: p.RecordedAt, WeightKg: p.WeightKg, BodyFatPct: p.BodyFatPct, Notes: p.Notes,
			}); err != nil {
				return i, err
			}
		}
	}
	return len(f.Clients), nil
}
