package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"componentdiff/internal/application/commands"
	"componentdiff/internal/domain"
)

// RegisterWriteTools adds all tools that modify files to the MCP server.
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(applyTool(), applyHandler(deps))
	s.AddTool(synthesizeTool(), synthesizeHandler(deps))
	s.AddTool(adoptTool(), adoptHandler(deps))
}

// --- apply ---

func applyTool() mcp.Tool {
	return mcp.NewTool("apply",
		mcp.WithDescription("Replace the first instance of a component in XML files with the default. A <file>.backup copy is made the first time a file is modified."),
		mcp.WithString("type",
			mcp.Description("Component type"),
			mcp.Required(),
		),
		mcp.WithString("files",
			mcp.Description("Comma-separated XML file paths. Omit together with selected=true to use every file below the threshold."),
		),
		mcp.WithBoolean("selected",
			mcp.Description("Apply to every corpus file whose similarity is below the threshold"),
		),
	)
}

func applyHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t := domain.ComponentType(req.GetString("type", ""))
		defaultPath := domain.DefaultPath(deps.DefaultsDir, t)

		targets := splitList(req.GetString("files", ""))
		if req.GetBool("selected", false) {
			cmd := commands.NewCompareCorpusCommand(deps.Docs, deps.Logger, t, defaultPath, deps.CorpusDir)
			cmd.Threshold = deps.Threshold
			cmd.Workers = deps.Workers
			compared, err := cmd.Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			targets = append(targets, commands.SelectedTargets(compared.CompareReport)...)
		}
		if len(targets) == 0 {
			return toolError(fmt.Errorf("no files to apply to (pass files or selected=true)"))
		}

		result, err := commands.NewApplyBatchCommand(deps.Docs, deps.Logger, t, defaultPath, targets).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(result.Message + "\n")
		for _, f := range result.Failures {
			fmt.Fprintf(&sb, "failed %s\n", f)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- synthesize ---

func synthesizeTool() mcp.Tool {
	return mcp.NewTool("synthesize",
		mcp.WithDescription("Build a default from every instance in the corpus and write it to <defaults>/<type>_default.xml, overwriting any existing one. Omit type to synthesize every type."),
		mcp.WithString("type",
			mcp.Description("Component type. Omit to synthesize all types."),
		),
		mcp.WithString("corpus",
			mcp.Description("Corpus directory. Defaults to the configured corpus."),
		),
	)
}

func synthesizeHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		corpus := req.GetString("corpus", deps.CorpusDir)

		t := domain.ComponentType(req.GetString("type", ""))
		if t == "" {
			result, err := commands.NewSynthesizeAllCommand(deps.Docs, deps.Registry, deps.Logger, corpus, deps.DefaultsDir).Execute(ctx)
			if err != nil {
				return toolError(err)
			}
			var sb strings.Builder
			for _, w := range result.Written {
				sb.WriteString(w.Message + "\n")
			}
			for _, f := range result.Failed {
				fmt.Fprintf(&sb, "failed %s\n", f)
			}
			sb.WriteString(result.Message + "\n")
			return mcp.NewToolResultText(sb.String()), nil
		}

		result, err := commands.NewSynthesizeDefaultCommand(deps.Docs, deps.Registry, deps.Logger, t, corpus, deps.DefaultsDir).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- adopt ---

func adoptTool() mcp.Tool {
	return mcp.NewTool("adopt",
		mcp.WithDescription("Make the first instance of a component in one XML file the new default, overwriting <defaults>/<type>_default.xml."),
		mcp.WithString("type",
			mcp.Description("Component type"),
			mcp.Required(),
		),
		mcp.WithString("file",
			mcp.Description("Path of the XML file to copy the component from"),
			mcp.Required(),
		),
	)
}

func adoptHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t := domain.ComponentType(req.GetString("type", ""))

		result, err := commands.NewAdoptDefaultCommand(deps.Docs, deps.Logger, t, req.GetString("file", ""), deps.DefaultsDir).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
