package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/optcoach/internal/models"
	"github.com/jackc/pgx/v5"
)

// GetClient returns a client by ID or ErrNotFound.
func (db *DB) GetClient(ctx context.Context, id string) (models.Client, error) {
	var c models.Client
	var level string
	err := db.Pool.QueryRow(ctx,
		`SELECT id, name, age, gender, experience_level FROM clients WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Age, &c.Gender, &level)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Client{}, ErrNotFound
	}
	if err != nil {
		return models.Client{}, fmt.Errorf("querying client %s: %w", id, err)
	}
	c.ExperienceLevel = models.ParseLevel(level)
	return c, nil
}

// LatestAssessment returns the client's most recent assessment, or nil if
// none has been recorded.
func (db *DB) LatestAssessment(ctx context.Context, clientID string) (*models.Assessment, error) {
	var a models.Assessment
	err := db.Pool.QueryRow(ctx,
		`SELECT id, client_id, assessed_at, kind, findings
		 FROM assessments
		 WHERE client_id = $1
		 ORDER BY assessed_at DESC
		 LIMIT 1`, clientID,
	).Scan(&a.ID, &a.ClientID, &a.AssessedAt, &a.Kind, &a.Findings)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest assessment: %w", err)
	}
	return &a, nil
}

// LatestProgress returns the client's most recent progress entry, or nil if
// none has been recorded.
func (db *DB) LatestProgress(ctx context.Context, clientID string) (*models.ProgressEntry, error) {
	var p models.ProgressEntry
	err := db.Pool.QueryRow(ctx,
		`SELECT id, client_id, recorded_at, weight_kg, body_fat_pct, notes
		 FROM progress_entries
		 WHERE client_id = $1
		 ORDER BY recorded_at DESC
		 LIMIT 1`, clientID,
	).Scan(&p.ID, &p.ClientID, &p.RecordedAt, &p.WeightKg, &p.BodyFatPct, &p.Notes)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest progress: %w", err)
	}
	return &p, nil
}

// UpsertClient creates or replaces a client record.
func (db *DB) UpsertClient(ctx context.Context, c models.Client) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO clients (id, name, age, gender, experience_level) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, age = EXCLUDED.age,
		 gender = EXCLUDED.gender, experience_level = EXCLUDED.experience_level`,
		c.ID, c.Name, c.Age, c.Gender, string(c.ExperienceLevel))
	if err != nil {
		return fmt.Errorf("upserting client %s: %w", c.ID, err)
	}
	return nil
}

// InsertAssessment records an assessment and returns its ID.
func (db *DB) InsertAssessment(ctx context.Context, a models.Assessment) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO assessments (client_id, assessed_at, kind, findings) VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		a.ClientID, a.AssessedAt, a.Kind, a.Findings,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting assessment: %w", err)
	}
	return id, nil
}

// InsertProgress records a progress entry and returns its ID.
func (db *DB) InsertProgress(ctx context.Context, p models.ProgressEntry) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO progress_entries (client_id, recorded_at, weight_kg, body_fat_pct, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		p.ClientID, p.RecordedAt, p.WeightKg, p.BodyFatPct, p.Notes,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting progress entry: %w", err)
	}
	return id, nil
}
