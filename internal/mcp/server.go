package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(b Backend, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("optcoach", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("optcoach builds OPT-model training programs. List templates, preview a template's weekly split, generate a program for a client, and read or complete stored programs. Phase guidelines and the exercise catalog are available as resources."),
	)

	h := &handlers{b: b, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListTemplates, Handler: h.listTemplates},
		server.ServerTool{Tool: toolPreviewProgram, Handler: h.previewProgram},
		server.ServerTool{Tool: toolGenerateProgram, Handler: h.generateProgram},
		server.ServerTool{Tool: toolGetProgram, Handler: h.getProgram},
		server.ServerTool{Tool: toolCompleteProgram, Handler: h.completeProgram},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resPhaseGuidelines, Handler: h.phaseGuidelines},
		server.ServerResource{Resource: resExerciseCatalog, Handler: h.exerciseCatalog},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	b   Backend
	log *slog.Logger
}

// --- Resource definitions ---

var resPhaseGuidelines = mcp.NewResource(
	"optcoach://phase_guidelines",
	"OPT Phase Guidelines",
	mcp.WithResourceDescription("Acute-variable ranges (sets, reps, intensity, rest, RPE, tempo) for each of the five OPT phases"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseCatalog = mcp.NewResource(
	"optcoach://exercise_catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("All exercises with category, muscle groups, equipment, difficulty and default variables"),
	mcp.WithMIMEType("application/json"),
)
