package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/claude/optcoach/internal/catalog"
	"github.com/claude/optcoach/internal/models"
	"github.com/claude/optcoach/internal/service"
	"github.com/claude/optcoach/internal/storage"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

var phaseEnum = []string{
	string(models.PhaseStabilizationEndurance),
	string(models.PhaseStrengthEndurance),
	string(models.PhaseMuscularDevelopment),
	string(models.PhaseMaximalStrength),
	string(models.PhasePower),
}

var levelEnum = []string{
	string(models.LevelBeginner),
	string(models.LevelIntermediate),
	string(models.LevelAdvanced),
}

var splitEnum = []string{
	string(models.SplitAuto),
	string(models.SplitFullBody),
	string(models.SplitUpperLower),
	string(models.SplitPushPullLegs),
	string(models.SplitBroSplit),
	string(models.SplitCustom),
}

// --- Tool definitions ---

var toolListTemplates = mcp.NewTool("list_templates",
	mcp.WithDescription("List program templates with goal, experience level, OPT phase, split and duration."),
	mcp.WithString("goal", mcp.Description("Only return templates for this goal (e.g. 'strength', 'fat loss', 'hypertrophy')")),
)

var toolPreviewProgram = mcp.NewTool("preview_program",
	mcp.WithDescription("Assemble one week of a template without saving anything. Shows warm-up, main, accessory and cooldown blocks with prescribed sets, reps, rest and tempo."),
	mcp.WithString("template_id", mcp.Required(), mcp.Description("Template ID from list_templates")),
	mcp.WithString("phase", mcp.Description("OPT phase override. Defaults to the template's phase."), mcp.Enum(phaseEnum...)),
	mcp.WithString("level", mcp.Description("Experience level override. Defaults to the template's level."), mcp.Enum(levelEnum...)),
	mcp.WithString("split", mcp.Description("Split override. Defaults to the template's split."), mcp.Enum(splitEnum...)),
)

var toolGenerateProgram = mcp.NewTool("generate_program",
	mcp.WithDescription("Generate and save a program for a client. Fails if the client already has an ACTIVE program; complete it first with complete_program."),
	mcp.WithString("client_id", mcp.Required(), mcp.Description("Client ID")),
	mcp.WithString("primary_goal", mcp.Required(), mcp.Description("Primary goal (e.g. 'Strength', 'Weight Loss')")),
	mcp.WithArray("secondary_goals", mcp.WithStringItems(), mcp.Description("Additional goals")),
	mcp.WithString("program_name", mcp.Description("Program name. Defaults to a name from the template or the model.")),
	mcp.WithString("opt_phase", mcp.Description("OPT phase. Defaults to STABILIZATION_ENDURANCE."), mcp.Enum(phaseEnum...)),
	mcp.WithString("experience_level", mcp.Description("Experience level. Defaults to the client's level."), mcp.Enum(levelEnum...)),
	mcp.WithNumber("duration", mcp.Description("Program length in weeks (1-52). Defaults to 12.")),
	mcp.WithNumber("client_age", mcp.Description("Client age in years (10-100). Defaults to the stored age.")),
	mcp.WithString("template_id", mcp.Description("Template ID. Defaults to the best match for goal and level.")),
	mcp.WithString("split_type", mcp.Description("Split type. Defaults to the template's split."), mcp.Enum(splitEnum...)),
	mcp.WithBoolean("use_ai", mcp.Description("Ask the language model for a draft. Defaults to true when a model is configured.")),
)

var toolGetProgram = mcp.NewTool("get_program",
	mcp.WithDescription("Fetch a saved program with all of its workouts."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
)

var toolCompleteProgram = mcp.NewTool("complete_program",
	mcp.WithDescription("Mark an ACTIVE program COMPLETED so the client can receive a new one."),
	mcp.WithString("program_id", mcp.Required(), mcp.Description("Program UUID")),
)

// --- Tool handlers ---

func (h *handlers) listTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templates, err := h.b.Templates(ctx)
	if err != nil {
		h.log.Error("mcp list_templates", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	if goal := req.GetString("goal", ""); goal != "" {
		tag := catalog.GoalTag(goal)
		filtered := templates[:0:0]
		for _, t := range templates {
			if catalog.GoalTag(t.Goal) == tag {
				filtered = append(filtered, t)
			}
		}
		templates = filtered
	}

	return jsonResult(templates)
}

func (h *handlers) previewProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID, err := req.RequireString("template_id")
	if err != nil {
		return mcp.NewToolResultError("template_id parameter is required"), nil
	}

	pv, err := h.b.Preview(ctx, service.PreviewRequest{
		TemplateID: templateID,
		Phase:      req.GetString("phase", ""),
		Level:      req.GetString("level", ""),
		Split:      req.GetString("split", ""),
	})
	if err != nil {
		return h.toolError("preview_program", err), nil
	}
	return jsonResult(pv)
}

func (h *handlers) generateProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clientID, err := req.RequireString("client_id")
	if err != nil {
		return mcp.NewToolResultError("client_id parameter is required"), nil
	}
	goal, err := req.RequireString("primary_goal")
	if err != nil {
		return mcp.NewToolResultError("primary_goal parameter is required"), nil
	}

	gr := models.GenerateRequest{
		ClientID:        clientID,
		PrimaryGoal:     goal,
		SecondaryGoals:  req.GetStringSlice("secondary_goals", nil),
		ProgramName:     req.GetString("program_name", ""),
		OptPhase:        req.GetString("opt_phase", ""),
		ExperienceLevel: req.GetString("experience_level", ""),
		Duration:        req.GetInt("duration", 0),
		TemplateID:      req.GetString("template_id", ""),
		SplitType:       req.GetString("split_type", ""),
	}
	if _, ok := req.GetArguments()["client_age"]; ok {
		age := req.GetInt("client_age", 0)
		gr.ClientAge = &age
	}
	if v, ok := req.GetArguments()["use_ai"].(bool); ok {
		gr.UseAI = &v
	}

	resp, err := h.b.Generate(ctx, gr)
	if err != nil {
		return h.toolError("generate_program", err), nil
	}
	return jsonResult(resp)
}

func (h *handlers) getProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := programIDArg(req)
	if errResult != nil {
		return errResult, nil
	}
	p, err := h.b.Program(ctx, id)
	if err != nil {
		return h.toolError("get_program", err), nil
	}
	return jsonResult(p)
}

func (h *handlers) completeProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := programIDArg(req)
	if errResult != nil {
		return errResult, nil
	}
	p, err := h.b.CompleteProgram(ctx, id)
	if err != nil {
		return h.toolError("complete_program", err), nil
	}
	return jsonResult(p)
}

func programIDArg(req mcp.CallToolRequest) (uuid.UUID, *mcp.CallToolResult) {
	raw, err := req.RequireString("program_id")
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("program_id parameter is required")
	}
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("program_id must be a UUID")
	}
	return id, nil
}

// toolError reports err to the caller. Caller mistakes are returned verbatim;
// anything else is logged and reported generically.
func (h *handlers) toolError(tool string, err error) *mcp.CallToolResult {
	if callerError(err) {
		return mcp.NewToolResultError(tool + " failed: " + err.Error())
	}
	h.log.Error("mcp "+tool, "error", err)
	return mcp.NewToolResultError(tool + " failed: internal error")
}

func callerError(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status < 500
	}
	for _, target := range []error{
		service.ErrValidation,
		service.ErrClientNotFound,
		service.ErrTemplateNotFound,
		service.ErrProgramNotFound,
		service.ErrProgramNotActive,
		storage.ErrActiveProgramExists,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
