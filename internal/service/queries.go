package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/optcoach/internal/builder"
	"github.com/claude/optcoach/internal/models"
	"github.com/claude/optcoach/internal/storage"
	"github.com/google/uuid"
)

const maxLogLimit = 500

// PreviewRequest selects a template and optional overrides for a preview.
// Empty fields use the template's own values.
type PreviewRequest struct {
	TemplateID string `json:"templateId"`
	Split      string `json:"splitType,omitempty"`
	Phase      string `json:"optPhase,omitempty"`
	Level      string `json:"experienceLevel,omitempty"`
}

// Preview is one week of a template, assembled without the model and
// without touching storage.
type Preview struct {
	Template models.ProgramTemplate `json:"template"`
	Split    models.SplitType       `json:"splitType"`
	Phase    models.Phase           `json:"optPhase"`
	Level    models.Level           `json:"experienceLevel"`
	Workouts []models.WorkoutDay    `json:"workouts"`
}

// Templates returns the catalog's program templates.
func (s *Service) Templates(context.Context) ([]models.ProgramTemplate, error) {
	return append([]models.ProgramTemplate(nil), s.catalog.Templates...), nil
}

// Template returns one program template.
func (s *Service) Template(_ context.Context, id string) (models.ProgramTemplate, error) {
	t, ok := s.catalog.Template(id)
	if !ok {
		return models.ProgramTemplate{}, ErrTemplateNotFound
	}
	return t, nil
}

// Guidelines returns the OPT phase guidelines in phase order.
func (s *Service) Guidelines(context.Context) ([]models.PhaseGuideline, error) {
	out := make([]models.PhaseGuideline, 0, len(s.catalog.Guidelines))
	for _, p := range models.Phases {
		if g, ok := s.catalog.Guideline(p); ok {
			out = append(out, g)
		}
	}
	return out, nil
}

// Exercises returns the exercise library.
func (s *Service) Exercises(context.Context) ([]models.Exercise, error) {
	return append([]models.Exercise(nil), s.catalog.Exercises...), nil
}

// Preview assembles one week of a template deterministically.
func (s *Service) Preview(_ context.Context, req PreviewRequest) (*Preview, error) {
	tmpl, ok := s.catalog.Template(req.TemplateID)
	if !ok {
		return nil, ErrTemplateNotFound
	}

	phase := tmpl.Phase
	if req.Phase != "" {
		if phase = models.ParsePhase(req.Phase); phase == "" {
			return nil, invalidField("optPhase", "unknown phase "+req.Phase)
		}
	}
	level := tmpl.ExperienceLevel
	if req.Level != "" {
		if level = models.ParseLevel(req.Level); level == "" {
			return nil, invalidField("experienceLevel", "unknown level "+req.Level)
		}
	}
	var requested models.SplitType
	if req.Split != "" {
		if requested = models.ParseSplitType(req.Split); requested == "" {
			return nil, invalidField("splitType", "unknown split "+req.Split)
		}
	}

	split := builder.ResolveSplit(tmpl, requested)
	days := builder.Assemble(tmpl, s.catalog, split, builder.Prescription{Phase: phase, Level: level})
	return &Preview{
		Template: tmpl,
		Split:    split,
		Phase:    phase,
		Level:    level,
		Workouts: builder.ExpandWeeks(days, 1),
	}, nil
}

// Program returns a stored program.
func (s *Service) Program(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	p, err := s.store.GetProgram(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrProgramNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}
	return p, nil
}

// ClientPrograms lists a client's programs, newest first.
func (s *Service) ClientPrograms(ctx context.Context, clientID string) ([]models.ProgramSummary, error) {
	if _, err := s.store.GetClient(ctx, clientID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("loading client: %w", err)
	}
	list, err := s.store.ListClientPrograms(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("listing programs: %w", err)
	}
	if list == nil {
		list = []models.ProgramSummary{}
	}
	return list, nil
}

// CompleteProgram marks an ACTIVE program COMPLETED, which lets the client
// receive a new program.
func (s *Service) CompleteProgram(ctx context.Context, id uuid.UUID) (*models.Program, error) {
	p, err := s.Program(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Status != models.StatusActive {
		return nil, fmt.Errorf("%w: status is %s", ErrProgramNotActive, p.Status)
	}
	if err := s.store.UpdateProgramStatus(ctx, id, models.StatusCompleted); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, fmt.Errorf("completing program: %w", err)
	}
	p.Status = models.StatusCompleted
	s.log.Info("program completed", "program_id", id, "client_id", p.ClientID)
	return p, nil
}

// GenerationLogs returns recent generation log entries, optionally for one
// client. limit is capped at 500; zero or less uses the store default.
func (s *Service) GenerationLogs(ctx context.Context, clientID string, limit int) ([]storage.GenerationLog, error) {
	if limit > maxLogLimit {
		limit = maxLogLimit
	}
	logs, err := s.store.QueryGenerationLogs(ctx, clientID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying generation logs: %w", err)
	}
	if logs == nil {
		logs = []storage.GenerationLog{}
	}
	return logs, nil
}
