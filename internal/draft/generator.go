package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/claude/optcoach/internal/builder"
	"github.com/claude/optcoach/internal/catalog"
	"github.com/claude/optcoach/internal/models"
)

// ErrCompletion reports that the completion service could not be reached or
// returned an error. Unusable replies are not errors; they fall back.
var ErrCompletion = errors.New("completion request failed")

// Draft is the outcome of one generation attempt.
type Draft struct {
	Workouts []models.WorkoutDay
	Phase    models.Phase
	Name     string
	Notes    string
	UsedAI   bool
	// FallbackReason says why a model reply was discarded. Empty when the
	// model was not asked or its reply was used.
	FallbackReason string
}

// Generator produces workout days, through the model when one is configured
// and deterministically otherwise.
type Generator struct {
	catalog   *catalog.Catalog
	completer Completer
	logger    *slog.Logger
}

// NewGenerator creates a Generator. completer may be nil to disable AI drafts.
func NewGenerator(cat *catalog.Catalog, completer Completer, logger *slog.Logger) *Generator {
	return &Generator{catalog: cat, completer: completer, logger: logger}
}

// Enabled reports whether a completer is configured.
func (g *Generator) Enabled() bool { return g.completer != nil }

// Deterministic assembles the split for in and expands it to in.Weeks.
func (g *Generator) Deterministic(in Input) []models.WorkoutDay {
	days := builder.Assemble(in.Template, g.catalog, in.Split, builder.Prescription{Phase: in.Phase, Level: in.Level})
	return builder.ExpandWeeks(days, in.Weeks)
}

// Draft generates workouts for in. When in.UseAI is set and a completer is
// configured the model is asked first; any reply that cannot be parsed into
// workouts is discarded in favour of the deterministic assembly. Only a
// failed completion call returns an error, wrapping ErrCompletion.
func (g *Generator) Draft(ctx context.Context, in Input) (Draft, error) {
	if !in.UseAI || g.completer == nil {
		return Draft{Workouts: g.Deterministic(in), Phase: in.Phase}, nil
	}

	guideline, ok := g.catalog.Guideline(in.Phase)
	system, user := BuildPrompt(in, guideline, ok)

	reply, err := g.completer.Complete(ctx, system, user)
	if err != nil {
		return Draft{}, fmt.Errorf("%w: %w", ErrCompletion, err)
	}

	res := Parse(reply)
	if res.Outcome != Parsed {
		return g.fallback(in, res.Reason), nil
	}
	days := Workouts(res.Plan, g.catalog)
	if len(days) == 0 {
		return g.fallback(in, "reply contained no usable workouts"), nil
	}
	if Weeks(days) == 1 && in.Weeks > 1 {
		days = builder.ExpandWeeks(days, in.Weeks)
	}

	phase := models.ParsePhase(res.Plan.OptPhase)
	if phase == "" {
		phase = in.Phase
	}
	if res.Repaired {
		g.logger.Info("used repaired model reply", "client_id", in.Request.ClientID)
	}
	return Draft{
		Workouts: days,
		Phase:    phase,
		Name:     res.Plan.ProgramName,
		Notes:    res.Plan.Notes,
		UsedAI:   true,
	}, nil
}

func (g *Generator) fallback(in Input, reason string) Draft {
	g.logger.Warn("model reply unusable, using template assembly",
		"client_id", in.Request.ClientID, "template_id", in.Template.ID, "reason", reason)
	return Draft{
		Workouts:       g.Deterministic(in),
		Phase:          in.Phase,
		FallbackReason: reason,
	}
}
