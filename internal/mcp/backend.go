package mcp

import (
	"context"

	"github.com/claude/optcoach/internal/models"
	"github.com/claude/optcoach/internal/service"
	"github.com/google/uuid"
)

// Backend abstracts the program service for MCP tools. Both *service.Service
// (in-process) and HTTPClient (remote via REST API) satisfy this interface.
type Backend interface {
	Templates(ctx context.Context) ([]models.ProgramTemplate, error)
	Preview(ctx context.Context, req service.PreviewRequest) (*service.Preview, error)
	Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error)
	Program(ctx context.Context, id uuid.UUID) (*models.Program, error)
	CompleteProgram(ctx context.Context, id uuid.UUID) (*models.Program, error)
	Guidelines(ctx context.Context) ([]models.PhaseGuideline, error)
	Exercises(ctx context.Context) ([]models.Exercise, error)
}

// Compile-time check: *service.Service satisfies Backend.
var _ Backend = (*service.Service)(nil)
