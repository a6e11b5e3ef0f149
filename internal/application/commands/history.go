package commands

import (
	"context"
	"fmt"

	"componentdiff/internal/application"
	"componentdiff/internal/domain"
	"componentdiff/internal/ports"
)

const defaultRunLimit = 20

// ListRunsResult contains recorded comparison runs, newest first
type ListRunsResult struct {
	Runs    []domain.Run
	Message string
}

// ListRunsCommand lists recorded comparison runs
type ListRunsCommand struct {
	history       ports.RunHistory
	ComponentType domain.ComponentType // Empty lists every type
	Limit         int
}

// NewListRunsCommand creates a new ListRunsCommand
func NewListRunsCommand(history ports.RunHistory, componentType domain.ComponentType, limit int) *ListRunsCommand {
	return &ListRunsCommand{
		history:       history,
		ComponentType: componentType,
		Limit:         limit,
	}
}

// Execute runs the list command
func (c *ListRunsCommand) Execute(ctx context.Context) (*ListRunsResult, error) {
	if c.ComponentType != "" {
		if err := application.ValidateComponentType(c.ComponentType); err != nil {
			return nil, err
		}
	}

	limit := c.Limit
	if limit <= 0 {
		limit = defaultRunLimit
	}

	runs, err := c.history.ListRuns(c.ComponentType, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	return &ListRunsResult{
		Runs:    runs,
		Message: fmt.Sprintf("%d runs", len(runs)),
	}, nil
}

// ShowRunCommand returns the per-file rows of one recorded run
type ShowRunCommand struct {
	history ports.RunHistory
	RunID   string
}

// NewShowRunCommand creates a new ShowRunCommand
func NewShowRunCommand(history ports.RunHistory, runID string) *ShowRunCommand {
	return &ShowRunCommand{history: history, RunID: runID}
}

// Execute runs the show command
func (c *ShowRunCommand) Execute(ctx context.Context) ([]domain.RunResult, error) {
	if err := application.ValidateRequired("runID", c.RunID); err != nil {
		return nil, err
	}

	rows, err := c.history.RunResults(c.RunID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.NotFoundError{What: "run " + c.RunID, Path: "history"}
	}
	return rows, nil
}
