package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"componentdiff/internal/application"
	"componentdiff/internal/domain"
	"componentdiff/internal/ports"
)

// AdoptDefaultResult contains the default taken over from a corpus document
type AdoptDefaultResult struct {
	ComponentType domain.ComponentType
	SourcePath    string
	DefaultPath   string
	Default       *domain.Node
	Message       string
}

// AdoptDefaultCommand makes one document's first instance the new default,
// overwriting any existing default of that type
type AdoptDefaultCommand struct {
	docs          ports.DocumentStore
	logger        *zap.Logger
	ComponentType domain.ComponentType
	SourcePath    string
	DefaultsDir   string
}

// NewAdoptDefaultCommand creates a new AdoptDefaultCommand
func NewAdoptDefaultCommand(docs ports.DocumentStore, logger *zap.Logger, componentType domain.ComponentType, sourcePath, defaultsDir string) *AdoptDefaultCommand {
	return &AdoptDefaultCommand{
		docs:          docs,
		logger:        nopIfNil(logger),
		ComponentType: componentType,
		SourcePath:    sourcePath,
		DefaultsDir:   defaultsDir,
	}
}

// Validate checks the command parameters
func (c *AdoptDefaultCommand) Validate() error {
	if err := application.ValidateComponentType(c.ComponentType); err != nil {
		return err
	}
	if err := application.ValidateRequired("sourcePath", c.SourcePath); err != nil {
		return err
	}
	return application.ValidateRequired("defaultsDir", c.DefaultsDir)
}

// Execute runs the adopt command. A source without an instance writes nothing.
func (c *AdoptDefaultCommand) Execute(ctx context.Context) (*AdoptDefaultResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inst, err := c.docs.FirstInstance(c.SourcePath, c.ComponentType)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.SourcePath, err)
	}

	def := inst.Clone()
	def.Name = string(c.ComponentType)

	path := domain.DefaultPath(c.DefaultsDir, c.ComponentType)
	if err := c.docs.SaveDefault(path, def); err != nil {
		return nil, fmt.Errorf("failed to save default: %w", err)
	}
	nopIfNil(c.logger).Info("default adopted",
		zap.String("type", string(c.ComponentType)),
		zap.String("source", c.SourcePath),
		zap.String("file", path),
	)

	return &AdoptDefaultResult{
		ComponentType: c.ComponentType,
		SourcePath:    c.SourcePath,
		DefaultPath:   path,
		Default:       def,
		Message:       fmt.Sprintf("Copied %s from %s to %s", c.ComponentType, displayName(c.SourcePath), path),
	}, nil
}
