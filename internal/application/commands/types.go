package commands

import (
	"context"
	"fmt"
	"os"

	"componentdiff/internal/application"
	"componentdiff/internal/domain"
	"componentdiff/internal/ports"
)

// TypeInfo describes one component type and its default document
type TypeInfo struct {
	Type        domain.ComponentType
	Known       bool
	Strategy    string // "table" for a rule table, "copy" for the generic fallback
	DefaultPath string
	HasDefault  bool
}

// ListTypesCommand lists the component types the tool knows about
type ListTypesCommand struct {
	docs        ports.DocumentStore
	registry    *domain.Registry
	DefaultsDir string
}

// NewListTypesCommand creates a new ListTypesCommand
func NewListTypesCommand(docs ports.DocumentStore, registry *domain.Registry, defaultsDir string) *ListTypesCommand {
	return &ListTypesCommand{
		docs:        docs,
		registry:    registry,
		DefaultsDir: defaultsDir,
	}
}

// Execute runs the list command. Types with a default on disk but no strategy are included.
func (c *ListTypesCommand) Execute(ctx context.Context) ([]TypeInfo, error) {
	if err := application.ValidateRequired("defaultsDir", c.DefaultsDir); err != nil {
		return nil, err
	}

	defaults, err := c.docs.ListDefaults(c.DefaultsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list defaults: %w", err)
	}
	onDisk := make(map[domain.ComponentType]bool, len(defaults))
	for _, path := range defaults {
		if t, ok := domain.TypeFromDefaultFile(path); ok {
			onDisk[t] = true
		}
	}

	types := synthesisTypes(c.registry)
	seen := make(map[domain.ComponentType]bool, len(types))
	for _, t := range types {
		seen[t] = true
	}
	for _, path := range defaults {
		if t, ok := domain.TypeFromDefaultFile(path); ok && !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}

	infos := make([]TypeInfo, 0, len(types))
	for _, t := range types {
		strategy := "copy"
		if _, ok := c.registry.Lookup(t); ok {
			strategy = "table"
		}
		infos = append(infos, TypeInfo{
			Type:        t,
			Known:       t.IsKnown(),
			Strategy:    strategy,
			DefaultPath: domain.DefaultPath(c.DefaultsDir, t),
			HasDefault:  onDisk[t],
		})
	}
	return infos, nil
}

// EnsureDefaultExists returns the default path of t, or a NotFoundError when it is absent
func EnsureDefaultExists(defaultsDir string, t domain.ComponentType) (string, error) {
	if err := application.ValidateComponentType(t); err != nil {
		return "", err
	}
	path := domain.DefaultPath(defaultsDir, t)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", &domain.NotFoundError{What: fmt.Sprintf("%s default", t), Path: defaultsDir}
		}
		return "", fmt.Errorf("failed to stat default: %w", err)
	}
	return path, nil
}
