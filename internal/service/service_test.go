package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/claude/optcoach/internal/catalog"
	"github.com/claude/optcoach/internal/draft"
	"github.com/claude/optcoach/internal/models"
	"github.com/claude/optcoach/internal/storage"
	"github.com/google/uuid"
)

var fixedNow = time.Date(2026, 5, 4, 15, 30, 0, 0, time.UTC)

type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(context.Context, string, string) (string, error) {
	f.calls++
	return f.reply, f.err
}

func newTestService(t *testing.T, completer draft.Completer) (*Service, *storage.Lite) {
	t.Helper()
	store, err := storage.OpenLite(filepath.Join(t.TempDir(), "optcoach.db"))
	if err != nil {
		t.Fatalf("OpenLite: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	err = store.UpsertClient(context.Background(), models.Client{
		ID:              "c1",
		Name:            "Dana",
		Age:             models.Int(34),
		Gender:          "female",
		ExperienceLevel: models.LevelIntermediate,
	})
	if err != nil {
		t.Fatalf("UpsertClient: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := catalog.Default()
	svc := New(store, cat, draft.NewGenerator(cat, completer, log), log)
	svc.now = func() time.Time { return fixedNow }
	return svc, store
}

func boolPtr(b bool) *bool { return &b }

func strengthRequest() models.GenerateRequest {
	return models.GenerateRequest{
		ClientID:        "c1",
		PrimaryGoal:     "Strength",
		OptPhase:        "MAXIMAL_STRENGTH",
		ExperienceLevel: "ADVANCED",
		Duration:        4,
		TemplateID:      "ppl-strength",
		SplitType:       "push-pull-legs",
		UseAI:           boolPtr(false),
	}
}

// TestGenerateMaximalStrengthProgram verifies the full pipeline for a
// four-week advanced push-pull-legs program: twelve non-empty days, main
// lifts at five sets, and a stored ACTIVE program.
func TestGenerateMaximalStrengthProgram(t *testing.T) {
	svc, store := newTestService(t, nil)
	ctx := context.Background()

	resp, err := svc.Generate(ctx, strengthRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !resp.Success || resp.UsedAI {
		t.Errorf("success=%v usedAI=%v", resp.Success, resp.UsedAI)
	}

	p := resp.Program
	if len(p.Workouts) != 12 {
		t.Fatalf("got %d workouts, want 12", len(p.Workouts))
	}
	for i, day := range p.Workouts {
		if len(day.Exercises) == 0 {
			t.Errorf("workout %d is empty", i)
		}
		if day.Week != i/3+1 {
			t.Errorf("workout %d week = %d, want %d", i, day.Week, i/3+1)
		}
		for _, ex := range day.Exercises {
			if ex.Block != models.BlockMain {
				continue
			}
			if ex.Variables.Sets != 5 {
				t.Errorf("%s sets = %d, want 5", ex.ExerciseID, ex.Variables.Sets)
			}
		}
	}

	if p.Status != models.StatusActive || p.Phase != models.PhaseMaximalStrength || p.DurationWeeks != 4 {
		t.Errorf("status=%s phase=%s weeks=%d", p.Status, p.Phase, p.DurationWeeks)
	}
	wantStart := time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC)
	if !p.StartDate.Equal(wantStart) || p.EndDate == nil || !p.EndDate.Equal(wantStart.AddDate(0, 0, 28)) {
		t.Errorf("dates = %v - %v", p.StartDate, p.EndDate)
	}
	if p.Name != "Push/Pull/Legs Strength for Dana" {
		t.Errorf("name = %q", p.Name)
	}

	stored, err := store.GetProgram(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProgram: %v", err)
	}
	if len(stored.Workouts) != 12 {
		t.Errorf("stored %d workouts, want 12", len(stored.Workouts))
	}

	logs, err := svc.GenerationLogs(ctx, "c1", 0)
	if err != nil {
		t.Fatalf("GenerationLogs: %v", err)
	}
	if len(logs) != 1 || logs[0].Source != storage.SourceTemplate || logs[0].Status != storage.StatusSuccess {
		t.Fatalf("unexpected logs %+v", logs)
	}
	if logs[0].ProgramID == nil || *logs[0].ProgramID != p.ID {
		t.Errorf("log program id = %v, want %s", logs[0].ProgramID, p.ID)
	}
}

// TestGenerateDefaults verifies that omitted fields fall back to the
// stabilization phase, the client's experience level and twelve weeks.
func TestGenerateDefaults(t *testing.T) {
	svc, _ := newTestService(t, nil)

	resp, err := svc.Generate(context.Background(), models.GenerateRequest{
		ClientID:    "c1",
		PrimaryGoal: "Strength",
		UseAI:       boolPtr(false),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	p := resp.Program
	if p.Phase != DefaultPhase {
		t.Errorf("phase = %s, want %s", p.Phase, DefaultPhase)
	}
	if p.DurationWeeks != DefaultDurationWeeks {
		t.Errorf("duration = %d, want %d", p.DurationWeeks, DefaultDurationWeeks)
	}
	// Strength + INTERMEDIATE recommends the push-pull-legs strength template.
	if p.TemplateID != "ppl-strength" {
		t.Errorf("template = %s, want ppl-strength", p.TemplateID)
	}
	if len(p.Workouts) != 3*DefaultDurationWeeks {
		t.Errorf("got %d workouts, want %d", len(p.Workouts), 3*DefaultDurationWeeks)
	}
	if p.SecondaryGoals == nil {
		t.Error("secondary goals should be an empty list, not nil")
	}
}

// TestGenerateValidation verifies that malformed requests are rejected with
// ErrValidation and name the offending field.
func TestGenerateValidation(t *testing.T) {
	svc, _ := newTestService(t, nil)

	tests := []struct {
		name  string
		edit  func(*models.GenerateRequest)
		field string
	}{
		{"missing client", func(r *models.GenerateRequest) { r.ClientID = "" }, "clientId"},
		{"missing goal", func(r *models.GenerateRequest) { r.PrimaryGoal = "" }, "primaryGoal"},
		{"unknown phase", func(r *models.GenerateRequest) { r.OptPhase = "PEAKING" }, "optPhase"},
		{"unknown level", func(r *models.GenerateRequest) { r.ExperienceLevel = "ELITE" }, "experienceLevel"},
		{"duration too long", func(r *models.GenerateRequest) { r.Duration = 60 }, "duration"},
		{"age too low", func(r *models.GenerateRequest) { r.ClientAge = models.Int(5) }, "clientAge"},
		{"unknown split", func(r *models.GenerateRequest) { r.SplitType = "twice-a-day" }, "splitType"},
		{"blank secondary goal", func(r *models.GenerateRequest) { r.SecondaryGoals = []string{"Posture", ""} }, "secondaryGoals[1]"},
		{"unknown template", func(r *models.GenerateRequest) { r.TemplateID = "nope" }, "templateId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := strengthRequest()
			tt.edit(&req)
			_, err := svc.Generate(context.Background(), req)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if _, ok := ve.Fields[tt.field]; !ok {
				t.Errorf("fields = %v, want %s", ve.Fields, tt.field)
			}
		})
	}
}

// TestGenerateHypertrophyAlias verifies that the legacy HYPERTROPHY label is
// accepted on input and stored as MUSCULAR_DEVELOPMENT.
func TestGenerateHypertrophyAlias(t *testing.T) {
	svc, _ := newTestService(t, nil)
	req := strengthRequest()
	req.OptPhase = "hypertrophy"

	resp, err := svc.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Program.Phase != models.PhaseMuscularDevelopment {
		t.Errorf("phase = %s, want MUSCULAR_DEVELOPMENT", resp.Program.Phase)
	}
}

// TestGenerateUnknownClient verifies that a missing client maps to
// ErrClientNotFound before any drafting happens.
func TestGenerateUnknownClient(t *testing.T) {
	fc := &fakeCompleter{reply: "{}"}
	svc, _ := newTestService(t, fc)
	req := strengthRequest()
	req.ClientID = "ghost"
	req.UseAI = nil

	if _, err := svc.Generate(context.Background(), req); !errors.Is(err, ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
	if fc.calls != 0 {
		t.Errorf("completer called %d times, want 0", fc.calls)
	}
}

// TestGenerateActiveConflict verifies that a second program for a client is
// rejected with the store's conflict error, and that completing the first
// program clears the way.
func TestGenerateActiveConflict(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	first, err := svc.Generate(ctx, strengthRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := svc.Generate(ctx, strengthRequest()); !errors.Is(err, storage.ErrActiveProgramExists) {
		t.Fatalf("expected ErrActiveProgramExists, got %v", err)
	}

	logs, err := svc.GenerationLogs(ctx, "c1", 10)
	if err != nil {
		t.Fatalf("GenerationLogs: %v", err)
	}
	if len(logs) != 2 || logs[0].Status != storage.StatusError || logs[0].ErrorMessage == nil {
		t.Fatalf("unexpected logs %+v", logs)
	}

	done, err := svc.CompleteProgram(ctx, first.Program.ID)
	if err != nil {
		t.Fatalf("CompleteProgram: %v", err)
	}
	if done.Status != models.StatusCompleted {
		t.Errorf("status = %s, want COMPLETED", done.Status)
	}
	if _, err := svc.Generate(ctx, strengthRequest()); err != nil {
		t.Fatalf("Generate after completion: %v", err)
	}

	if _, err := svc.CompleteProgram(ctx, first.Program.ID); !errors.Is(err, ErrProgramNotActive) {
		t.Errorf("expected ErrProgramNotActive, got %v", err)
	}
	if _, err := svc.CompleteProgram(ctx, uuid.New()); !errors.Is(err, ErrProgramNotFound) {
		t.Errorf("expected ErrProgramNotFound, got %v", err)
	}

	list, err := svc.ClientPrograms(ctx, "c1")
	if err != nil {
		t.Fatalf("ClientPrograms: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("got %d programs, want 2", len(list))
	}
}

const modelReply = `Here is the plan:
{"programName":"Hypertrophy Block","optPhase":"HYPERTROPHY","notes":"Add load weekly.",
 "phases":[{"name":"HYPERTROPHY","weeklyPlans":[{"week":1,"workouts":[
  {"day":"Upper","exercises":[{"name":"Barbell Bench Press","block":"main","sets":4,"reps":8}]},
  {"day":"Lower","exercises":[{"name":"Barbell Back Squat","block":"main","sets":4,"reps":8}]}]}]}]}`

// TestGenerateWithModel verifies that a usable model reply becomes the
// program, expanded over the requested weeks and normalized to
// MUSCULAR_DEVELOPMENT.
func TestGenerateWithModel(t *testing.T) {
	fc := &fakeCompleter{reply: modelReply}
	svc, _ := newTestService(t, fc)
	ctx := context.Background()
	req := strengthRequest()
	req.UseAI = nil

	resp, err := svc.Generate(ctx, req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !resp.UsedAI || !resp.Program.UsedAI {
		t.Fatal("expected the model reply to be used")
	}
	p := resp.Program
	if p.Phase != models.PhaseMuscularDevelopment {
		t.Errorf("phase = %s", p.Phase)
	}
	if p.Name != "Hypertrophy Block" || p.Notes != "Add load weekly." {
		t.Errorf("name=%q notes=%q", p.Name, p.Notes)
	}
	if len(p.Workouts) != 8 {
		t.Errorf("got %d workouts, want 8", len(p.Workouts))
	}

	logs, _ := svc.GenerationLogs(ctx, "c1", 0)
	if len(logs) != 1 || logs[0].Source != storage.SourceAI || logs[0].FallbackReason != nil {
		t.Errorf("unexpected logs %+v", logs)
	}
}

// TestGenerateModelFallback verifies that an unparseable reply is not an
// error: the deterministic program is stored and the reason is logged.
func TestGenerateModelFallback(t *testing.T) {
	fc := &fakeCompleter{reply: "Sorry, I cannot help with that."}
	svc, _ := newTestService(t, fc)
	ctx := context.Background()
	req := strengthRequest()
	req.UseAI = boolPtr(true)

	resp, err := svc.Generate(ctx, req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.UsedAI {
		t.Error("usedAI should be false after fallback")
	}
	if len(resp.Program.Workouts) != 12 {
		t.Errorf("got %d workouts, want 12", len(resp.Program.Workouts))
	}

	logs, _ := svc.GenerationLogs(ctx, "c1", 0)
	if len(logs) != 1 || logs[0].FallbackReason == nil || logs[0].Source != storage.SourceTemplate {
		t.Errorf("unexpected logs %+v", logs)
	}
}

// TestGenerateCompletionFailure verifies that a failed completion call is
// surfaced as ErrCompletion and nothing is stored.
func TestGenerateCompletionFailure(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("connection refused")}
	svc, _ := newTestService(t, fc)
	ctx := context.Background()
	req := strengthRequest()
	req.UseAI = nil

	if _, err := svc.Generate(ctx, req); !errors.Is(err, draft.ErrCompletion) {
		t.Fatalf("expected ErrCompletion, got %v", err)
	}
	list, err := svc.ClientPrograms(ctx, "c1")
	if err != nil {
		t.Fatalf("ClientPrograms: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("got %d programs, want none", len(list))
	}
	logs, _ := svc.GenerationLogs(ctx, "c1", 0)
	if len(logs) != 1 || logs[0].Status != storage.StatusError {
		t.Errorf("unexpected logs %+v", logs)
	}
}

// TestPreview verifies template defaults, overrides and rejection of unknown
// values.
func TestPreview(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	pv, err := svc.Preview(ctx, PreviewRequest{TemplateID: "upper-lower-hypertrophy"})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if pv.Split != models.SplitUpperLower || pv.Phase != models.PhaseMuscularDevelopment || pv.Level != models.LevelIntermediate {
		t.Errorf("split=%s phase=%s level=%s", pv.Split, pv.Phase, pv.Level)
	}
	if len(pv.Workouts) != 2 || pv.Workouts[0].Week != 1 {
		t.Errorf("unexpected workouts %+v", pv.Workouts)
	}

	pv, err = svc.Preview(ctx, PreviewRequest{TemplateID: "upper-lower-hypertrophy", Split: "full-body", Phase: "POWER", Level: "advanced"})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	if pv.Split != models.SplitFullBody || len(pv.Workouts) != 1 || pv.Level != models.LevelAdvanced {
		t.Errorf("overrides ignored: %+v", pv)
	}

	if _, err := svc.Preview(ctx, PreviewRequest{TemplateID: "nope"}); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
	if _, err := svc.Preview(ctx, PreviewRequest{TemplateID: "ppl-strength", Phase: "PEAKING"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

// TestCatalogQueries verifies the read-only catalog accessors.
func TestCatalogQueries(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	templates, _ := svc.Templates(ctx)
	if len(templates) == 0 {
		t.Fatal("expected templates")
	}
	if _, err := svc.Template(ctx, templates[0].ID); err != nil {
		t.Errorf("Template(%s): %v", templates[0].ID, err)
	}
	if _, err := svc.Template(ctx, "nope"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}

	guidelines, _ := svc.Guidelines(ctx)
	if len(guidelines) != len(models.Phases) {
		t.Fatalf("got %d guidelines, want %d", len(guidelines), len(models.Phases))
	}
	for i, g := range guidelines {
		if g.Phase != models.Phases[i] {
			t.Errorf("guideline %d = %s, want %s", i, g.Phase, models.Phases[i])
		}
	}

	if _, err := svc.ClientPrograms(ctx, "ghost"); !errors.Is(err, ErrClientNotFound) {
		t.Errorf("expected ErrClientNotFound, got %v", err)
	}
}
