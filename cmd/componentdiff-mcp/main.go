package main

import (
	"context"
	"flag"
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"componentdiff/internal/adapters/filesystem"
	mcpadapter "componentdiff/internal/adapters/mcp"
	"componentdiff/internal/adapters/sqlite"
	"componentdiff/internal/config"
	"componentdiff/internal/logging"
)

func main() {
	configFlag := flag.String("config", config.ConfigPath(), "path to the YAML config file")
	defaultsFlag := flag.String("defaults", "", "directory holding <type>_default.xml files")
	corpusFlag := flag.String("corpus", "", "directory of XML script files")
	readOnly := flag.Bool("read-only", false, "do not register tools that modify files")
	verbose := flag.Bool("verbose", false, "log at debug level")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("componentdiff-mcp: %v", err)
	}
	if *defaultsFlag != "" {
		cfg.DefaultsDir = *defaultsFlag
	}
	if *corpusFlag != "" {
		cfg.CorpusDir = *corpusFlag
	}

	registry, err := cfg.Registry()
	if err != nil {
		log.Fatalf("componentdiff-mcp: %v", err)
	}

	// stdout carries the protocol; zap writes to stderr
	logger, err := logging.New(*verbose)
	if err != nil {
		log.Fatalf("componentdiff-mcp: %v", err)
	}
	defer logger.Sync()

	deps := mcpadapter.Deps{
		Docs:        filesystem.NewRepository(),
		Registry:    registry,
		Logger:      logger,
		DefaultsDir: filesystem.ExpandHome(cfg.DefaultsDir),
		CorpusDir:   filesystem.ExpandHome(cfg.CorpusDir),
		Threshold:   cfg.Threshold,
		Workers:     cfg.Workers,
	}

	history := sqlite.NewHistory()
	if err := history.Open(cfg.HistoryDB); err != nil {
		logger.Warn("run history unavailable", zap.String("path", cfg.HistoryDB), zap.Error(err))
	} else {
		defer history.Close()
		deps.History = history
	}

	mcpServer := server.NewMCPServer(
		"componentdiff-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, deps)
	if !*readOnly {
		mcpadapter.RegisterWriteTools(mcpServer, deps)
	}

	logger.Info("serving", zap.String("corpus", deps.CorpusDir), zap.String("defaults", deps.DefaultsDir))
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("componentdiff-mcp: %v", err)
	}
}
