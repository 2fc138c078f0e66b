// Package service runs the program-generation pipeline end to end: it
// validates requests, loads the client profile, picks a template, drafts the
// workouts and writes the resulting program.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/optcoach/internal/builder"
	"github.com/claude/optcoach/internal/catalog"
	"github.com/claude/optcoach/internal/draft"
	"github.com/claude/optcoach/internal/models"
	"github.com/claude/optcoach/internal/storage"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Request defaults.
const (
	DefaultPhase         = models.PhaseStabilizationEndurance
	DefaultLevel         = models.LevelBeginner
	DefaultDurationWeeks = 12
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrClientNotFound   = errors.New("client not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrProgramNotFound  = errors.New("program not found")
	ErrProgramNotActive = errors.New("program is not active")
)

// Store is the persistence the service needs. Both *storage.DB and
// *storage.Lite satisfy it.
type Store interface {
	GetClient(ctx context.Context, id string) (models.Client, error)
	LatestAssessment(ctx context.Context, clientID string) (*models.Assessment, error)
	LatestProgress(ctx context.Context, clientID string) (*models.ProgressEntry, error)
	InsertProgram(ctx context.Context, p *models.Program) error
	GetProgram(ctx context.Context, id uuid.UUID) (*models.Program, error)
	ListClientPrograms(ctx context.Context, clientID string) ([]models.ProgramSummary, error)
	UpdateProgramStatus(ctx context.Context, id uuid.UUID, status models.ProgramStatus) error
	InsertGenerationLog(ctx context.Context, log storage.GenerationLog) (int64, error)
	QueryGenerationLogs(ctx context.Context, clientID string, limit int) ([]storage.GenerationLog, error)
}

var (
	_ Store = (*storage.DB)(nil)
	_ Store = (*storage.Lite)(nil)
)

// Service holds the immutable catalog and the collaborators of one process.
// It keeps no per-request state.
type Service struct {
	store     Store
	catalog   *catalog.Catalog
	generator *draft.Generator
	validate  *validator.Validate
	log       *slog.Logger
	now       func() time.Time
}

// New creates a Service.
func New(store Store, cat *catalog.Catalog, gen *draft.Generator, log *slog.Logger) *Service {
	return &Service{
		store:     store,
		catalog:   cat,
		generator: gen,
		validate:  newValidator(),
		log:       log,
		now:       time.Now,
	}
}

// Generate validates req, drafts a program for the client and writes it as
// the client's ACTIVE program. storage.ErrActiveProgramExists is returned
// unchanged when the client already has one.
func (s *Service) Generate(ctx context.Context, req models.GenerateRequest) (*models.GenerateResponse, error) {
	start := s.now()
	if err := s.validateRequest(&req); err != nil {
		return nil, err
	}

	profile, err := s.profile(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}

	phase := models.ParsePhase(req.OptPhase)
	if phase == "" {
		phase = DefaultPhase
	}
	level := models.ParseLevel(req.ExperienceLevel)
	if level == "" {
		level = profile.Client.ExperienceLevel
	}
	if level == "" {
		level = DefaultLevel
	}
	weeks := req.Duration
	if weeks == 0 {
		weeks = DefaultDurationWeeks
	}

	tmpl, err := s.pickTemplate(req.TemplateID, req.PrimaryGoal, level)
	if err != nil {
		return nil, err
	}

	in := draft.Input{
		Profile:  profile,
		Request:  req,
		Template: tmpl,
		Split:    builder.ResolveSplit(tmpl, models.ParseSplitType(req.SplitType)),
		Phase:    phase,
		Level:    level,
		Weeks:    weeks,
		UseAI:    req.UseAI == nil || *req.UseAI,
	}

	d, err := s.generator.Draft(ctx, in)
	if err != nil {
		s.log.Error("drafting program", "client_id", req.ClientID, "template_id", tmpl.ID, "error", err)
		s.record(ctx, req.ClientID, tmpl.ID, nil, draft.Draft{UsedAI: in.UseAI}, start, err)
		return nil, fmt.Errorf("drafting program: %w", err)
	}

	p := s.buildProgram(req, profile.Client, tmpl, d, weeks)
	if err := s.store.InsertProgram(ctx, p); err != nil {
		s.record(ctx, req.ClientID, tmpl.ID, nil, d, start, err)
		if errors.Is(err, storage.ErrActiveProgramExists) {
			return nil, err
		}
		return nil, fmt.Errorf("saving program: %w", err)
	}
	s.record(ctx, req.ClientID, tmpl.ID, &p.ID, d, start, nil)

	s.log.Info("program generated",
		"client_id", p.ClientID, "program_id", p.ID, "template_id", tmpl.ID,
		"phase", p.Phase, "workouts", len(p.Workouts), "used_ai", d.UsedAI)

	msg := "Program generated from template " + tmpl.ID
	if d.UsedAI {
		msg = "Program generated with AI assistance"
	}
	return &models.GenerateResponse{Success: true, Program: p, Message: msg, UsedAI: d.UsedAI}, nil
}

func (s *Service) profile(ctx context.Context, clientID string) (models.ClientProfile, error) {
	client, err := s.store.GetClient(ctx, clientID)
	if errors.Is(err, storage.ErrNotFound) {
		return models.ClientProfile{}, ErrClientNotFound
	}
	if err != nil {
		return models.ClientProfile{}, fmt.Errorf("loading client: %w", err)
	}
	assessment, err := s.store.LatestAssessment(ctx, clientID)
	if err != nil {
		return models.ClientProfile{}, fmt.Errorf("loading assessment: %w", err)
	}
	progress, err := s.store.LatestProgress(ctx, clientID)
	if err != nil {
		return models.ClientProfile{}, fmt.Errorf("loading progress: %w", err)
	}
	return models.ClientProfile{Client: client, LatestAssessment: assessment, LatestProgress: progress}, nil
}

func (s *Service) pickTemplate(id, goal string, level models.Level) (models.ProgramTemplate, error) {
	if id != "" {
		t, ok := s.catalog.Template(id)
		if !ok {
			return models.ProgramTemplate{}, invalidField("templateId", "unknown template "+id)
		}
		return t, nil
	}
	t, ok := s.catalog.Recommend(goal, level)
	if !ok {
		return models.ProgramTemplate{}, ErrTemplateNotFound
	}
	return t, nil
}

func (s *Service) buildProgram(req models.GenerateRequest, client models.Client, tmpl models.ProgramTemplate, d draft.Draft, weeks int) *models.Program {
	now := s.now().UTC()
	startDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	endDate := startDate.AddDate(0, 0, 7*weeks)

	name := req.ProgramName
	if name == "" {
		name = d.Name
	}
	if name == "" {
		name = fmt.Sprintf("%s for %s", tmpl.Name, client.Name)
	}
	secondary := req.SecondaryGoals
	if secondary == nil {
		secondary = []string{}
	}

	return &models.Program{
		ID:             uuid.New(),
		ClientID:       req.ClientID,
		TemplateID:     tmpl.ID,
		Name:           name,
		PrimaryGoal:    req.PrimaryGoal,
		SecondaryGoals: secondary,
		Phase:          d.Phase,
		DurationWeeks:  weeks,
		Workouts:       d.Workouts,
		Notes:          d.Notes,
		Status:         models.StatusActive,
		StartDate:      startDate,
		EndDate:        &endDate,
		UsedAI:         d.UsedAI,
		CreatedAt:      now,
	}
}

// record writes a generation log entry. Failures are logged, never returned.
func (s *Service) record(ctx context.Context, clientID, templateID string, programID *uuid.UUID, d draft.Draft, start time.Time, genErr error) {
	entry := storage.GenerationLog{
		CreatedAt:  s.now(),
		ClientID:   clientID,
		ProgramID:  programID,
		TemplateID: templateID,
		Source:     storage.SourceTemplate,
		Status:     storage.StatusSuccess,
		UsedAI:     d.UsedAI,
	}
	if d.UsedAI {
		entry.Source = storage.SourceAI
	}
	if d.FallbackReason != "" {
		entry.FallbackReason = &d.FallbackReason
	}
	ms := int(s.now().Sub(start).Milliseconds())
	entry.DurationMs = &ms
	if genErr != nil {
		entry.Status = storage.StatusError
		msg := genErr.Error()
		entry.ErrorMessage = &msg
	}
	if _, err := s.store.InsertGenerationLog(ctx, entry); err != nil {
		s.log.Warn("recording generation log", "client_id", clientID, "error", err)
	}
}
