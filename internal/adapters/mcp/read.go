package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"componentdiff/internal/adapters/report"
	"componentdiff/internal/application/commands"
	"componentdiff/internal/domain"
	"componentdiff/internal/ports"
)

// Deps bundles the stores and settings the tools run against
type Deps struct {
	Docs        ports.DocumentStore
	Registry    *domain.Registry
	History     ports.RunHistory // Optional
	Logger      *zap.Logger
	DefaultsDir string
	CorpusDir   string
	Threshold   float64
	Workers     int
}

// RegisterReadTools adds all read-only tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(listTypesTool(), listTypesHandler(deps))
	s.AddTool(compareTool(), compareHandler(deps))
	s.AddTool(diffTool(), diffHandler(deps))
	s.AddTool(analyzeTool(), analyzeHandler(deps))
	if deps.History != nil {
		s.AddTool(historyTool(), historyHandler(deps))
	}
}

// --- list_types ---

func listTypesTool() mcp.Tool {
	return mcp.NewTool("list_types",
		mcp.WithDescription("List component types, how their defaults are synthesized and whether a default document exists."),
	)
}

func listTypesHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		infos, err := commands.NewListTypesCommand(deps.Docs, deps.Registry, deps.DefaultsDir).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, info := range infos {
			status := "no default"
			if info.HasDefault {
				status = info.DefaultPath
			}
			fmt.Fprintf(&sb, "%s  %s  %s\n", info.Type, info.Strategy, status)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- compare ---

func compareTool() mcp.Tool {
	return mcp.NewTool("compare",
		mcp.WithDescription("Compare the first instance of a component in every corpus XML file against its default. Results are ranked by similarity; '*' marks files below the threshold."),
		mcp.WithString("type",
			mcp.Description("Component type (e.g. rates, wing, tool)"),
			mcp.Required(),
		),
		mcp.WithString("corpus",
			mcp.Description("Corpus directory. Defaults to the configured corpus."),
		),
		mcp.WithString("default",
			mcp.Description("Default document path. Defaults to <defaults>/<type>_default.xml."),
		),
		mcp.WithNumber("threshold",
			mcp.Description("Selection threshold in percent (default 90)"),
		),
	)
}

func compareHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t := domain.ComponentType(req.GetString("type", ""))

		cmd := commands.NewCompareCorpusCommand(deps.Docs, deps.Logger, t,
			req.GetString("default", domain.DefaultPath(deps.DefaultsDir, t)),
			req.GetString("corpus", deps.CorpusDir))
		cmd.Threshold = req.GetFloat("threshold", deps.Threshold)
		cmd.Workers = deps.Workers
		if deps.History != nil {
			cmd.WithHistory(deps.History)
		}

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		if err := report.WriteCompare(&sb, result.CompareReport); err != nil {
			return toolError(err)
		}
		if result.RunID != "" {
			fmt.Fprintf(&sb, "run %s\n", result.RunID)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- diff ---

func diffTool() mcp.Tool {
	return mcp.NewTool("diff",
		mcp.WithDescription("Show the per-field differences between one XML file's component and the default."),
		mcp.WithString("type",
			mcp.Description("Component type"),
			mcp.Required(),
		),
		mcp.WithString("file",
			mcp.Description("Path of the XML file to compare"),
			mcp.Required(),
		),
		mcp.WithBoolean("all",
			mcp.Description("Also list identical fields"),
		),
	)
}

func diffHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t := domain.ComponentType(req.GetString("type", ""))

		cmd := commands.NewDiffFileCommand(deps.Docs, t, domain.DefaultPath(deps.DefaultsDir, t), req.GetString("file", ""))
		cmd.Threshold = deps.Threshold
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		if err := report.WriteDiff(&sb, result.Result, req.GetBool("all", false)); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- analyze ---

func analyzeTool() mcp.Tool {
	return mcp.NewTool("analyze",
		mcp.WithDescription("Report how a component type is used across the corpus: element frequency and the structure of every instance."),
		mcp.WithString("type",
			mcp.Description("Component type"),
			mcp.Required(),
		),
		mcp.WithString("corpus",
			mcp.Description("Corpus directory. Defaults to the configured corpus."),
		),
	)
}

func analyzeHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t := domain.ComponentType(req.GetString("type", ""))

		result, err := commands.NewAnalyzeComponentCommand(deps.Docs, deps.Logger, t, req.GetString("corpus", deps.CorpusDir)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		if err := report.WriteAnalysis(&sb, result.Analysis, time.Now()); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- history ---

func historyTool() mcp.Tool {
	return mcp.NewTool("history",
		mcp.WithDescription("List recorded comparison runs, newest first, or the per-file rows of one run."),
		mcp.WithString("type",
			mcp.Description("Only list runs of this component type"),
		),
		mcp.WithString("run_id",
			mcp.Description("Show the per-file rows of this run"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of runs (default 20)"),
		),
	)
}

func historyHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var sb strings.Builder

		if runID := req.GetString("run_id", ""); runID != "" {
			rows, err := commands.NewShowRunCommand(deps.History, runID).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			if err := report.WriteRunResults(&sb, rows); err != nil {
				return toolError(err)
			}
			return mcp.NewToolResultText(sb.String()), nil
		}

		t := domain.ComponentType(req.GetString("type", ""))
		result, err := commands.NewListRunsCommand(deps.History, t, req.GetInt("limit", 0)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Runs) == 0 {
			return mcp.NewToolResultText("No runs recorded."), nil
		}
		if err := report.WriteRuns(&sb, result.Runs); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
