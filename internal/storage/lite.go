package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/claude/optcoach/internal/models"
	"github.com/google/uuid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Lite is a single-file SQLite store with the same repository methods as DB.
// It suits single-node deployments, local development and tests.
type Lite struct {
	db *sql.DB
}

const liteSchema = `
CREATE TABLE IF NOT EXISTS clients (
	id               TEXT PRIMARY KEY,
	name             TEXT NOT NULL,
	age              INTEGER,
	gender           TEXT NOT NULL DEFAULT '',
	experience_level TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS assessments (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	client_id   TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
	assessed_at TEXT NOT NULL,
	kind        TEXT NOT NULL,
	findings    TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS progress_entries (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	client_id    TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
	recorded_at  TEXT NOT NULL,
	weight_kg    REAL,
	body_fat_pct REAL,
	notes        TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS programs (
	id              TEXT PRIMARY KEY,
	client_id       TEXT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
	template_id     TEXT NOT NULL DEFAULT '',
	name            TEXT NOT NULL,
	primary_goal    TEXT NOT NULL,
	secondary_goals TEXT NOT NULL DEFAULT '[]',
	opt_phase       TEXT NOT NULL,
	duration_weeks  INTEGER NOT NULL,
	workouts        TEXT NOT NULL,
	notes           TEXT NOT NULL DEFAULT '',
	status          TEXT NOT NULL,
	start_date      TEXT NOT NULL,
	end_date        TEXT,
	used_ai         INTEGER NOT NULL DEFAULT 0,
	created_at      TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS one_active_program_per_client ON programs (client_id) WHERE status = 'ACTIVE';
CREATE TABLE IF NOT EXISTS generation_logs (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at      TEXT NOT NULL,
	client_id       TEXT NOT NULL,
	program_id      TEXT,
	template_id     TEXT NOT NULL DEFAULT '',
	source          TEXT NOT NULL,
	status          TEXT NOT NULL,
	used_ai         INTEGER NOT NULL DEFAULT 0,
	fallback_reason TEXT,
	duration_ms     INTEGER,
	error_message   TEXT
);`

// Times are stored as RFC 3339 text so ordering by column sorts chronologically.
const liteTime = "2006-01-02T15:04:05.000000000Z07:00"

// OpenLite opens (or creates) the SQLite database at path and applies the schema.
func OpenLite(path string) (*Lite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(liteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating sqlite schema: %w", err)
	}
	return &Lite{db: db}, nil
}

// Close closes the database.
func (l *Lite) Close() error {
	return l.db.Close()
}

// Ping checks that the database is usable.
func (l *Lite) Ping(ctx context.Context) error {
	return l.db.PingContext(ctx)
}

// UpsertClient creates or replaces a client record.
func (l *Lite) UpsertClient(ctx context.Context, c models.Client) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO clients (id, name, age, gender, experience_level) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET name = excluded.name, age = excluded.age,
		 gender = excluded.gender, experience_level = excluded.experience_level`,
		c.ID, c.Name, c.Age, c.Gender, string(c.ExperienceLevel))
	if err != nil {
		return fmt.Errorf("upserting client %s: %w", c.ID, err)
	}
	return nil
}

// InsertAssessment records an assessment and returns its ID.
func (l *Lite) InsertAssessment(ctx context.Context, a models.Assessment) (int64, error) {
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO assessments (client_id, assessed_at, kind, findings) VALUES (?, ?, ?, ?)`,
		a.ClientID, formatTime(a.AssessedAt), a.Kind, a.Findings)
	if err != nil {
		return 0, fmt.Errorf("inserting assessment: %w", err)
	}
	return res.LastInsertId()
}

// InsertProgress records a progress entry and returns its ID.
func (l *Lite) InsertProgress(ctx context.Context, p models.ProgressEntry) (int64, error) {
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO progress_entries (client_id, recorded_at, weight_kg, body_fat_pct, notes) VALUES (?, ?, ?, ?, ?)`,
		p.ClientID, formatTime(p.RecordedAt), p.WeightKg, p.BodyFatPct, p.Notes)
	if err != nil {
		return 0, fmt.Errorf("inserting progress entry: %w", err)
	}
	return res.LastInsertId()
}

// GetClient returns a client by ID or ErrNotFound.
func (l *Lite) GetClient(ctx context.Context, id string) (models.Client, error) {
	var c models.Client
	var age sql.NullInt64
	var level string
	err := l.db.QueryRowContext(ctx,
		`SELECT id, name, age, gender, experience_level FROM clients WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &age, &c.Gender, &level)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, ErrNotFound
	}
	if err != nil {
		return models.Client{}, fmt.Errorf("querying client %s: %w", id, err)
	}
	if age.Valid {
		c.Age = models.Int(int(age.Int64))
	}
	c.ExperienceLevel = models.ParseLevel(level)
	return c, nil
}

// LatestAssessment returns the client's most recent assessment, or nil.
func (l *Lite) LatestAssessment(ctx context.Context, clientID string) (*models.Assessment, error) {
	var a models.Assessment
	var at string
	err := l.db.QueryRowContext(ctx,
		`SELECT id, client_id, assessed_at, kind, findings FROM assessments
		 WHERE client_id = ? ORDER BY assessed_at DESC, id DESC LIMIT 1`, clientID,
	).Scan(&a.ID, &a.ClientID, &at, &a.Kind, &a.Findings)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest assessment: %w", err)
	}
	if a.AssessedAt, err = parseTime(at); err != nil {
		return nil, err
	}
	return &a, nil
}

// LatestProgress returns the client's most recent progress entry, or nil.
func (l *Lite) LatestProgress(ctx context.Context, clientID string) (*models.ProgressEntry, error) {
	var p models.ProgressEntry
	var at string
	var weight, fat sql.NullFloat64
	err := l.db.QueryRowContext(ctx,
		`SELECT id, client_id, recorded_at, weight_kg, body_fat_pct, notes FROM progress_entries
		 WHERE client_id = ? ORDER BY recorded_at DESC, id DESC LIMIT 1`, clientID,
	).Scan(&p.ID, &p.ClientID, &at, &weight, &fat, &p.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest progress: %w", err)
	}
	if p.RecordedAt, err = parseTime(at); err != nil {
		return nil, err
	}
	if weight.Valid {
		p.WeightKg = models.Float(weight.Float64)
	}
	if fat.Valid {
		p.BodyFatPct = models.Float(fat.Float64)
	}
	return &p, nil
}

// InsertProgram writes a program document, returning ErrActiveProgramExists
// when the client already has an ACTIVE program.
func (l *Lite) InsertProgram(ctx context.Context, p *models.Program) error {
	goals, workouts, err := encodeProgram(p)
	if err != nil {
		return err
	}
	var end sql.NullString
	if p.EndDate != nil {
		end = sql.NullString{String: formatTime(*p.EndDate), Valid: true}
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO programs (id, client_id, template_id, name, primary_goal, secondary_goals,
		 opt_phase, duration_weeks, workouts, notes, status, start_date, end_date, used_ai, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID.String(), p.ClientID, p.TemplateID, p.Name, p.PrimaryGoal, goals,
		string(p.Phase), p.DurationWeeks, workouts, p.Notes, string(p.Status),
		formatTime(p.StartDate), end, p.UsedAI, formatTime(p.CreatedAt))
	if isLiteUnique(err) {
		return ErrActiveProgramExists
	}
	if err != nil {
		return fmt.Errorf("inserting program: %w", err)
	}
	return nil
}

// GetProgram returns a full program document or ErrNotFound.
func (l *Lite) GetProgram(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	var (
		p                        models.Program
		rawID, phase, status     string
		goals, days, start, made string
		end                      sql.NullString
	)
	err := l.db.QueryRowContext(ctx,
		`SELECT id, client_id, template_id, name, primary_goal, secondary_goals, opt_phase,
		 duration_weeks, workouts, notes, status, start_date, end_date, used_ai, created_at
		 FROM programs WHERE id = ?`, id.String(),
	).Scan(&rawID, &p.ClientID, &p.TemplateID, &p.Name, &p.PrimaryGoal, &goals, &phase,
		&p.DurationWeeks, &days, &p.Notes, &status, &start, &end, &p.UsedAI, &made)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying program %s: %w", id, err)
	}
	p.ID = id
	p.Phase = models.Phase(phase)
	p.Status = models.ProgramStatus(status)
	if p.StartDate, err = parseTime(start); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(made); err != nil {
		return nil, err
	}
	if p.EndDate, err = parseNullTime(end); err != nil {
		return nil, err
	}
	if err := decodeProgram(&p, []byte(goals), []byte(days)); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListClientPrograms returns summaries of a client's programs, newest first.
func (l *Lite) ListClientPrograms(ctx context.Context, clientID string) ([]models.ProgramSummary, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, client_id, name, opt_phase, duration_weeks, status, start_date, end_date, used_ai, created_at
		 FROM programs WHERE client_id = ? ORDER BY created_at DESC, rowid DESC`, clientID)
	if err != nil {
		return nil, fmt.Errorf("querying client programs: %w", err)
	}
	defer rows.Close()

	var result []models.ProgramSummary
	for rows.Next() {
		var s models.ProgramSummary
		var rawID, phase, status, start, made string
		var end sql.NullString
		if err := rows.Scan(&rawID, &s.ClientID, &s.Name, &phase, &s.DurationWeeks, &status,
			&start, &end, &s.UsedAI, &made); err != nil {
			return nil, fmt.Errorf("scanning program summary: %w", err)
		}
		if s.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("parsing program id %q: %w", rawID, err)
		}
		s.Phase = models.Phase(phase)
		s.Status = models.ProgramStatus(status)
		if s.StartDate, err = parseTime(start); err != nil {
			return nil, err
		}
		if s.CreatedAt, err = parseTime(made); err != nil {
			return nil, err
		}
		if s.EndDate, err = parseNullTime(end); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// UpdateProgramStatus moves a program to a new lifecycle status.
func (l *Lite) UpdateProgramStatus(ctx context.Context, id uuid.UUID, status models.ProgramStatus) error {
	res, err := l.db.ExecContext(ctx,
		`UPDATE programs SET status = ? WHERE id = ?`, string(status), id.String())
	if isLiteUnique(err) {
		return ErrActiveProgramExists
	}
	if err != nil {
		return fmt.Errorf("updating program %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating program %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertGenerationLog creates a new generation log entry and returns its ID.
func (l *Lite) InsertGenerationLog(ctx context.Context, log GenerationLog) (int64, error) {
	created := log.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	var programID sql.NullString
	if log.ProgramID != nil {
		programID = sql.NullString{String: log.ProgramID.String(), Valid: true}
	}
	res, err := l.db.ExecContext(ctx,
		`INSERT INTO generation_logs (created_at, client_id, program_id, template_id, source, status,
		 used_ai, fallback_reason, duration_ms, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(created), log.ClientID, programID, log.TemplateID, log.Source, log.Status,
		log.UsedAI, log.FallbackReason, log.DurationMs, log.ErrorMessage)
	if err != nil {
		return 0, fmt.Errorf("inserting generation log: %w", err)
	}
	return res.LastInsertId()
}

// QueryGenerationLogs returns the most recent generation logs, optionally
// filtered to one client.
func (l *Lite) QueryGenerationLogs(ctx context.Context, clientID string, limit int) ([]GenerationLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, created_at, client_id, program_id, template_id, source, status,
		 used_ai, fallback_reason, duration_ms, error_message
		 FROM generation_logs
		 WHERE ? = '' OR client_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		clientID, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying generation logs: %w", err)
	}
	defer rows.Close()

	var result []GenerationLog
	for rows.Next() {
		var g GenerationLog
		var created string
		var programID, reason, errMsg sql.NullString
		var duration sql.NullInt64
		if err := rows.Scan(&g.ID, &created, &g.ClientID, &programID, &g.TemplateID,
			&g.Source, &g.Status, &g.UsedAI, &reason, &duration, &errMsg); err != nil {
			return nil, fmt.Errorf("scanning generation log: %w", err)
		}
		if g.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		if programID.Valid {
			id, err := uuid.Parse(programID.String)
			if err != nil {
				return nil, fmt.Errorf("parsing program id %q: %w", programID.String, err)
			}
			g.ProgramID = &id
		}
		if reason.Valid {
			g.FallbackReason = &reason.String
		}
		if errMsg.Valid {
			g.ErrorMessage = &errMsg.String
		}
		if duration.Valid {
			g.DurationMs = models.Int(int(duration.Int64))
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

func isLiteUnique(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	code := se.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(liteTime)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(liteTime, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored time %q: %w", s, err)
	}
	return t, nil
}

func parseNullTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
