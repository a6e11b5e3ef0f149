package commands

import (
	"context"
	"fmt"

	"componentdiff/internal/application"
	"componentdiff/internal/domain"
	"componentdiff/internal/ports"
)

// DiffFileResult contains the comparison of one document against the default
type DiffFileResult struct {
	Result  domain.ComparisonResult
	Message string
}

// DiffFileCommand compares the first instance in one document against the default
type DiffFileCommand struct {
	docs          ports.DocumentStore
	ComponentType domain.ComponentType
	DefaultPath   string
	TargetPath    string
	Threshold     float64
}

// NewDiffFileCommand creates a new DiffFileCommand with the default threshold
func NewDiffFileCommand(docs ports.DocumentStore, componentType domain.ComponentType, defaultPath, targetPath string) *DiffFileCommand {
	return &DiffFileCommand{
		docs:          docs,
		ComponentType: componentType,
		DefaultPath:   defaultPath,
		TargetPath:    targetPath,
		Threshold:     domain.SelectionThreshold,
	}
}

// Validate checks the command parameters
func (c *DiffFileCommand) Validate() error {
	if err := application.ValidateComponentType(c.ComponentType); err != nil {
		return err
	}
	if err := application.ValidateRequired("defaultPath", c.DefaultPath); err != nil {
		return err
	}
	if err := application.ValidateRequired("targetPath", c.TargetPath); err != nil {
		return err
	}
	return application.ValidateThreshold(c.Threshold)
}

// Execute runs the diff command
func (c *DiffFileCommand) Execute(ctx context.Context) (*DiffFileResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	def, err := loadDefault(c.docs, c.DefaultPath, c.ComponentType)
	if err != nil {
		return nil, err
	}

	inst, err := c.docs.FirstInstance(c.TargetPath, c.ComponentType)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c.TargetPath, err)
	}

	result := domain.NewComparisonResult(c.TargetPath, def, inst, c.Threshold)
	summary := result.Summary()

	return &DiffFileResult{
		Result: result,
		Message: fmt.Sprintf("%s: %s similar (%d different, %d missing, %d extra)",
			result.DisplayName(), result.FormattedSimilarity(), summary.Different, summary.Missing, summary.Extra),
	}, nil
}
