package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"componentdiff/internal/application"
	"componentdiff/internal/domain"
	"componentdiff/internal/ports"
)

// ApplyDefaultResult contains the result of applying a default to one document
type ApplyDefaultResult struct {
	TargetPath    string
	BackupCreated bool
	Message       string
}

// ApplyDefaultCommand replaces the first instance in a document with the default
type ApplyDefaultCommand struct {
	docs          ports.DocumentStore
	logger        *zap.Logger
	ComponentType domain.ComponentType
	DefaultPath   string
	TargetPath    string
}

// NewApplyDefaultCommand creates a new ApplyDefaultCommand
func NewApplyDefaultCommand(docs ports.DocumentStore, logger *zap.Logger, componentType domain.ComponentType, defaultPath, targetPath string) *ApplyDefaultCommand {
	return &ApplyDefaultCommand{
		docs:          docs,
		logger:        nopIfNil(logger),
		ComponentType: componentType,
		DefaultPath:   defaultPath,
		TargetPath:    targetPath,
	}
}

// Validate checks the command parameters
func (c *ApplyDefaultCommand) Validate() error {
	if err := application.ValidateComponentType(c.ComponentType); err != nil {
		return err
	}
	if err := application.ValidateRequired("defaultPath", c.DefaultPath); err != nil {
		return err
	}
	return application.ValidateRequired("targetPath", c.TargetPath)
}

// Execute runs the apply command. The default is loaded before the target is touched.
func (c *ApplyDefaultCommand) Execute(ctx context.Context) (*ApplyDefaultResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	def, err := loadDefault(c.docs, c.DefaultPath, c.ComponentType)
	if err != nil {
		return nil, err
	}

	backup, err := applyOne(c.docs, c.ComponentType, def, c.TargetPath)
	if err != nil {
		return nil, err
	}
	nopIfNil(c.logger).Info("default applied", zap.String("file", c.TargetPath), zap.Bool("backup_created", backup))

	msg := fmt.Sprintf("Applied %s default to %s", c.ComponentType, c.TargetPath)
	if backup {
		msg += fmt.Sprintf(" (backup: %s)", domain.BackupPath(c.TargetPath))
	}
	return &ApplyDefaultResult{
		TargetPath:    c.TargetPath,
		BackupCreated: backup,
		Message:       msg,
	}, nil
}

// ApplyBatchResult contains the outcome of applying a default to many documents
type ApplyBatchResult struct {
	Attempted      int
	Succeeded      int
	BackupsCreated int
	Failures       []domain.Diagnostic
	Message        string
}

// ApplyBatchCommand applies the default to every target, continuing past failures
type ApplyBatchCommand struct {
	docs          ports.DocumentStore
	logger        *zap.Logger
	ComponentType domain.ComponentType
	DefaultPath   string
	Targets       []string
}

// NewApplyBatchCommand creates a new ApplyBatchCommand
func NewApplyBatchCommand(docs ports.DocumentStore, logger *zap.Logger, componentType domain.ComponentType, defaultPath string, targets []string) *ApplyBatchCommand {
	return &ApplyBatchCommand{
		docs:          docs,
		logger:        nopIfNil(logger),
		ComponentType: componentType,
		DefaultPath:   defaultPath,
		Targets:       targets,
	}
}

// SelectedTargets returns the files of a compare report that are pre-selected for apply
func SelectedTargets(report *domain.CompareReport) []string {
	var targets []string
	for _, r := range report.Selected() {
		targets = append(targets, r.FilePath)
	}
	return targets
}

// Validate checks the command parameters
func (c *ApplyBatchCommand) Validate() error {
	if err := application.ValidateComponentType(c.ComponentType); err != nil {
		return err
	}
	return application.ValidateRequired("defaultPath", c.DefaultPath)
}

// Execute runs the batch apply.
//
// An invalid default aborts before any target is touched. On cancellation the
// counts so far are returned together with ctx.Err().
func (c *ApplyBatchCommand) Execute(ctx context.Context) (*ApplyBatchResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	logger := nopIfNil(c.logger)

	def, err := loadDefault(c.docs, c.DefaultPath, c.ComponentType)
	if err != nil {
		return nil, err
	}

	result := &ApplyBatchResult{}
	for _, target := range c.Targets {
		if err := ctx.Err(); err != nil {
			result.Message = c.summary(result)
			return result, err
		}

		result.Attempted++
		backup, err := applyOne(c.docs, c.ComponentType, def, target)
		if err != nil {
			logger.Warn("apply failed", zap.String("file", target), zap.Error(err))
			result.Failures = append(result.Failures, domain.Diagnostic{
				Path:   target,
				Reason: "apply failed",
				Err:    err,
			})
			continue
		}

		result.Succeeded++
		if backup {
			result.BackupsCreated++
		}
		logger.Debug("default applied", zap.String("file", target), zap.Bool("backup_created", backup))
	}

	result.Message = c.summary(result)
	logger.Info("batch apply finished",
		zap.Int("attempted", result.Attempted),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", len(result.Failures)),
	)
	return result, nil
}

func (c *ApplyBatchCommand) summary(r *ApplyBatchResult) string {
	return fmt.Sprintf("Applied %s default to %d/%d files", c.ComponentType, r.Succeeded, r.Attempted)
}

// applyOne writes a copy of def, renamed to the component type, over the target's first instance
func applyOne(docs ports.DocumentStore, t domain.ComponentType, def *domain.Node, target string) (bool, error) {
	replacement := def.Clone()
	replacement.Name = string(t)

	backup, err := docs.ReplaceFirstInstance(target, t, replacement)
	if err != nil {
		return false, &application.ApplyError{Path: target, Err: err}
	}
	return backup, nil
}
