package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Generation sources.
const (
	SourceAI       = "ai"
	SourceTemplate = "template"
)

// Generation statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// GenerationLog records the outcome of one program-generation request.
type GenerationLog struct {
	ID             int64      `json:"id"`
	CreatedAt      time.Time  `json:"created_at"`
	ClientID       string     `json:"client_id"`
	ProgramID      *uuid.UUID `json:"program_id"`
	TemplateID     string     `json:"template_id"`
	Source         string     `json:"source"`
	Status         string     `json:"status"`
	UsedAI         bool       `json:"used_ai"`
	FallbackReason *string    `json:"fallback_reason"`
	DurationMs     *int       `json:"duration_ms"`
	ErrorMessage   *string    `json:"error_message"`
}

// InsertGenerationLog creates a new generation log entry and returns its ID.
func (db *DB) InsertGenerationLog(ctx context.Context, log GenerationLog) (int64, error) {
	var id int64
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO generation_logs (client_id, program_id, template_id, source, status,
		 used_ai, fallback_reason, duration_ms, error_message)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		 RETURNING id`,
		log.ClientID, log.ProgramID, log.TemplateID, log.Source, log.Status,
		log.UsedAI, log.FallbackReason, log.DurationMs, log.ErrorMessage,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting generation log: %w", err)
	}
	return id, nil
}

// QueryGenerationLogs returns the most recent generation logs, optionally
// filtered to one client.
func (db *DB) QueryGenerationLogs(ctx context.Context, clientID string, limit int) ([]GenerationLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Pool.Query(ctx,
		`SELECT id, created_at, client_id, program_id, template_id, source, status,
		 used_ai, fallback_reason, duration_ms, error_message
		 FROM generation_logs
		 WHERE $1::text = '' OR client_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying generation logs: %w", err)
	}
	defer rows.Close()

	var result []GenerationLog
	for rows.Next() {
		var l GenerationLog
		if err := rows.Scan(&l.ID, &l.CreatedAt, &l.ClientID, &l.ProgramID, &l.TemplateID,
			&l.Source, &l.Status, &l.UsedAI, &l.FallbackReason, &l.DurationMs, &l.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scanning generation log: %w", err)
		}
		result = append(result, l)
	}
	return result, rows.Err()
}
