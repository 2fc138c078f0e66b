package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/claude/optcoach/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertProgram writes a program document. A second ACTIVE program for the
// same client is rejected by the one_active_program_per_client index and
// reported as ErrActiveProgramExists.
func (db *DB) InsertProgram(ctx context.Context, p *models.Program) error {
	goals, workouts, err := encodeProgram(p)
	if err != nil {
		return err
	}
	_, err = db.Pool.Exec(ctx,
		`INSERT INTO programs (id, client_id, template_id, name, primary_goal, secondary_goals,
		 opt_phase, duration_weeks, workouts, notes, status, start_date, end_date, used_ai, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		p.ID, p.ClientID, p.TemplateID, p.Name, p.PrimaryGoal, goals,
		string(p.Phase), p.DurationWeeks, workouts, p.Notes, string(p.Status),
		p.StartDate, p.EndDate, p.UsedAI, p.CreatedAt)
	if isUniqueViolation(err) {
		return ErrActiveProgramExists
	}
	if err != nil {
		return fmt.Errorf("inserting program: %w", err)
	}
	return nil
}

// GetProgram returns a full program document or ErrNotFound.
func (db *DB) GetProgram(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	var (
		p                   models.Program
		phase, status       string
		goalsJSON, daysJSON []byte
	)
	err := db.Pool.QueryRow(ctx,
		`SELECT id, client_id, template_id, name, primary_goal, secondary_goals, opt_phase,
		 duration_weeks, workouts, notes, status, start_date, end_date, used_ai, created_at
		 FROM programs WHERE id = $1`, id,
	).Scan(&p.ID, &p.ClientID, &p.TemplateID, &p.Name, &p.PrimaryGoal, &goalsJSON, &phase,
		&p.DurationWeeks, &daysJSON, &p.Notes, &status, &p.StartDate, &p.EndDate, &p.UsedAI, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying program %s: %w", id, err)
	}
	p.Phase = models.Phase(phase)
	p.Status = models.ProgramStatus(status)
	if err := decodeProgram(&p, goalsJSON, daysJSON); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListClientPrograms returns summaries of a client's programs, newest first.
func (db *DB) ListClientPrograms(ctx context.Context, clientID string) ([]models.ProgramSummary, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, client_id, name, opt_phase, duration_weeks, status, start_date, end_date, used_ai, created_at
		 FROM programs
		 WHERE client_id = $1
		 ORDER BY created_at DESC`, clientID)
	if err != nil {
		return nil, fmt.Errorf("querying client programs: %w", err)
	}
	defer rows.Close()

	var result []models.ProgramSummary
	for rows.Next() {
		var s models.ProgramSummary
		var phase, status string
		if err := rows.Scan(&s.ID, &s.ClientID, &s.Name, &phase, &s.DurationWeeks, &status,
			&s.StartDate, &s.EndDate, &s.UsedAI, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning program summary: %w", err)
		}
		s.Phase = models.Phase(phase)
		s.Status = models.ProgramStatus(status)
		result = append(result, s)
	}
	return result, rows.Err()
}

// UpdateProgramStatus moves a program to a new lifecycle status. Returns
// ErrNotFound for an unknown ID and ErrActiveProgramExists when reactivating
// would leave the client with two ACTIVE programs.
func (db *DB) UpdateProgramStatus(ctx context.Context, id uuid.UUID, status models.ProgramStatus) error {
	tag, err := db.Pool.Exec(ctx,
		`UPDATE programs SET status = $2 WHERE id = $1`, id, string(status))
	if isUniqueViolation(err) {
		return ErrActiveProgramExists
	}
	if err != nil {
		return fmt.Errorf("updating program %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeProgram(p *models.Program) (goals, workouts string, err error) {
	secondary := p.SecondaryGoals
	if secondary == nil {
		secondary = []string{}
	}
	g, err := json.Marshal(secondary)
	if err != nil {
		return "", "", fmt.Errorf("encoding secondary goals: %w", err)
	}
	w, err := json.Marshal(p.Workouts)
	if err != nil {
		return "", "", fmt.Errorf("encoding workouts: %w", err)
	}
	return string(g), string(w), nil
}

func decodeProgram(p *models.Program, goals, workouts []byte) error {
	if err := json.Unmarshal(goals, &p.SecondaryGoals); err != nil {
		return fmt.Errorf("decoding secondary goals: %w", err)
	}
	if err := json.Unmarshal(workouts, &p.Workouts); err != nil {
		return fmt.Errorf("decoding workouts: %w", err)
	}
	return nil
}
