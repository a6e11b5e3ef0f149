package commands

import (
	"context"
	"fmt"

	"componentdiff/internal/domain"
	"componentdiff/internal/ports"
)

// EditDefaultResult contains the outcome of an edit
type EditDefaultResult struct {
	DefaultPath string
	Message     string
}

// EditDefaultCommand opens an existing default document in the user's editor
type EditDefaultCommand struct {
	opener        ports.EditorOpener
	ComponentType domain.ComponentType
	DefaultsDir   string
}

// NewEditDefaultCommand creates a new EditDefaultCommand
func NewEditDefaultCommand(opener ports.EditorOpener, componentType domain.ComponentType, defaultsDir string) *EditDefaultCommand {
	return &EditDefaultCommand{
		opener:        opener,
		ComponentType: componentType,
		DefaultsDir:   defaultsDir,
	}
}

// Execute blocks until the editor exits
func (c *EditDefaultCommand) Execute(ctx context.Context) (*EditDefaultResult, error) {
	path, err := EnsureDefaultExists(c.DefaultsDir, c.ComponentType)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.opener.OpenFile(path); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	return &EditDefaultResult{
		DefaultPath: path,
		Message:     fmt.Sprintf("Edited %s", path),
	}, nil
}
