package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"componentdiff/internal/application"
	"componentdiff/internal/domain"
	"componentdiff/internal/ports"
)

// CompareCorpusResult contains a ranked comparison of a corpus against a default
type CompareCorpusResult struct {
	*domain.CompareReport
	RunID   string // Empty unless the run was recorded
	Message string
}

// CompareCorpusCommand scores the first instance of a component in every corpus
// document against the default and ranks the results
type CompareCorpusCommand struct {
	docs    ports.DocumentStore
	history ports.RunHistory
	logger  *zap.Logger

	ComponentType domain.ComponentType
	DefaultPath   string
	CorpusDir     string
	Threshold     float64
	Workers       int
}

// NewCompareCorpusCommand creates a new CompareCorpusCommand with the default threshold
func NewCompareCorpusCommand(docs ports.DocumentStore, logger *zap.Logger, componentType domain.ComponentType, defaultPath, corpusDir string) *CompareCorpusCommand {
	return &CompareCorpusCommand{
		docs:          docs,
		logger:        nopIfNil(logger),
		ComponentType: componentType,
		DefaultPath:   defaultPath,
		CorpusDir:     corpusDir,
		Threshold:     domain.SelectionThreshold,
		Workers:       1,
	}
}

// WithHistory records every completed run into h
func (c *CompareCorpusCommand) WithHistory(h ports.RunHistory) *CompareCorpusCommand {
	c.history = h
	return c
}

// Validate checks the command parameters
func (c *CompareCorpusCommand) Validate() error {
	if err := application.ValidateComponentType(c.ComponentType); err != nil {
		return err
	}
	if err := application.ValidateRequired("defaultPath", c.DefaultPath); err != nil {
		return err
	}
	if err := application.ValidateRequired("corpusDir", c.CorpusDir); err != nil {
		return err
	}
	if err := application.ValidateThreshold(c.Threshold); err != nil {
		return err
	}
	if c.Workers < 0 {
		return &application.ValidationError{
			Field:   "workers",
			Message: fmt.Sprintf("must not be negative, got: %d", c.Workers),
		}
	}
	return nil
}

// Execute runs the batch comparison.
//
// A default that cannot be loaded yields an empty report with one diagnostic.
// Per-file failures are diagnostics too; only cancellation and an unreadable
// corpus directory are returned as errors.
func (c *CompareCorpusCommand) Execute(ctx context.Context) (*CompareCorpusResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	logger := nopIfNil(c.logger)

	report := &domain.CompareReport{
		ComponentType: c.ComponentType,
		DefaultPath:   c.DefaultPath,
		CorpusDir:     c.CorpusDir,
		StartedAt:     time.Now(),
	}

	def, err := loadDefault(c.docs, c.DefaultPath, c.ComponentType)
	if err != nil {
		logger.Warn("default unavailable", zap.String("file", c.DefaultPath), zap.Error(err))
		report.Skipped = append(report.Skipped, domain.Diagnostic{
			Path:   c.DefaultPath,
			Reason: "default unavailable",
			Err:    err,
		})
		report.Duration = time.Since(report.StartedAt)
		return &CompareCorpusResult{
			CompareReport: report,
			Message:       fmt.Sprintf("No %s default at %s", c.ComponentType, c.DefaultPath),
		}, nil
	}

	paths, err := c.docs.ListDocuments(c.CorpusDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list corpus: %w", err)
	}

	outcomes, err := c.compareAll(ctx, def, paths)
	if err != nil {
		return nil, err
	}

	for _, o := range outcomes {
		if o.diag != nil {
			report.Skipped = append(report.Skipped, *o.diag)
			continue
		}
		report.Results = append(report.Results, o.result)
	}
	domain.RankResults(report.Results)
	report.Duration = time.Since(report.StartedAt)

	logger.Info("comparison finished",
		zap.String("type", string(c.ComponentType)),
		zap.Int("compared", len(report.Results)),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("selected", len(report.Selected())),
		zap.Duration("duration", report.Duration),
	)

	result := &CompareCorpusResult{
		CompareReport: report,
		Message: fmt.Sprintf("Compared %d files against %s default (%d below %.0f%%, %d skipped)",
			len(report.Results), c.ComponentType, len(report.Selected()), c.Threshold, len(report.Skipped)),
	}

	if c.history != nil {
		runID := uuid.NewString()
		run, rows := domain.NewRun(runID, report)
		if err := c.history.RecordRun(run, rows); err != nil {
			logger.Warn("failed to record run", zap.String("run", runID), zap.Error(err))
		} else {
			result.RunID = runID
		}
	}

	return result, nil
}

type fileOutcome struct {
	result domain.ComparisonResult
	diag   *domain.Diagnostic
}

// compareAll fills one outcome per path, index-aligned with paths
func (c *CompareCorpusCommand) compareAll(ctx context.Context, def *domain.Node, paths []string) ([]fileOutcome, error) {
	outcomes := make([]fileOutcome, len(paths))

	if c.Workers <= 1 {
		for i, path := range paths {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			outcomes[i] = c.compareFile(def, path)
		}
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = c.compareFile(def, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return outcomes, nil
}

func (c *CompareCorpusCommand) compareFile(def *domain.Node, path string) fileOutcome {
	inst, err := c.docs.FirstInstance(path, c.ComponentType)
	if err != nil {
		d := diagnose(path, c.ComponentType, err)
		nopIfNil(c.logger).Warn("skipping document", zap.String("file", path), zap.String("reason", d.Reason), zap.Error(err))
		return fileOutcome{diag: &d}
	}
	return fileOutcome{result: domain.NewComparisonResult(path, def, inst, c.Threshold)}
}
