package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"componentdiff/internal/application"
	"componentdiff/internal/domain"
	"componentdiff/internal/ports"
)

// AnalyzeResult contains the corpus analysis of one component type
type AnalyzeResult struct {
	Analysis *domain.Analysis
	Message  string
}

// AnalyzeComponentCommand reports how a component type is used across the corpus
type AnalyzeComponentCommand struct {
	docs          ports.DocumentStore
	logger        *zap.Logger
	ComponentType domain.ComponentType
	CorpusDir     string
}

// NewAnalyzeComponentCommand creates a new AnalyzeComponentCommand
func NewAnalyzeComponentCommand(docs ports.DocumentStore, logger *zap.Logger, componentType domain.ComponentType, corpusDir string) *AnalyzeComponentCommand {
	return &AnalyzeComponentCommand{
		docs:          docs,
		logger:        nopIfNil(logger),
		ComponentType: componentType,
		CorpusDir:     corpusDir,
	}
}

// Validate checks the command parameters
func (c *AnalyzeComponentCommand) Validate() error {
	if err := application.ValidateComponentType(c.ComponentType); err != nil {
		return err
	}
	return application.ValidateRequired("corpusDir", c.CorpusDir)
}

// Execute runs the analysis
func (c *AnalyzeComponentCommand) Execute(ctx context.Context) (*AnalyzeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	files, skipped, err := collectInstances(ctx, c.docs, nopIfNil(c.logger), c.ComponentType, c.CorpusDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan corpus: %w", err)
	}

	analysis := &domain.Analysis{
		Type:             c.ComponentType,
		Files:            files,
		ElementFrequency: domain.ElementFrequency(files),
		Skipped:          skipped,
	}

	return &AnalyzeResult{
		Analysis: analysis,
		Message: fmt.Sprintf("Found %d %s instances in %d files",
			analysis.InstanceCount(), c.ComponentType, len(files)),
	}, nil
}
