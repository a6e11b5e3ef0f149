package commands

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"componentdiff/internal/application"
	"componentdiff/internal/domain"
	"componentdiff/internal/ports"
)

// SynthesizeResult contains a freshly written default
type SynthesizeResult struct {
	ComponentType domain.ComponentType
	DefaultPath   string
	Default       *domain.Node
	FileCount     int
	InstanceCount int
	Skipped       []domain.Diagnostic
	Message       string
}

// SynthesizeDefaultCommand aggregates every instance of a type across the corpus
// into a new default and writes it to the defaults directory
type SynthesizeDefaultCommand struct {
	docs          ports.DocumentStore
	registry      *domain.Registry
	logger        *zap.Logger
	ComponentType domain.ComponentType
	CorpusDir     string
	DefaultsDir   string
}

// NewSynthesizeDefaultCommand creates a new SynthesizeDefaultCommand
func NewSynthesizeDefaultCommand(docs ports.DocumentStore, registry *domain.Registry, logger *zap.Logger, componentType domain.ComponentType, corpusDir, defaultsDir string) *SynthesizeDefaultCommand {
	return &SynthesizeDefaultCommand{
		docs:          docs,
		registry:      registry,
		logger:        nopIfNil(logger),
		ComponentType: componentType,
		CorpusDir:     corpusDir,
		DefaultsDir:   defaultsDir,
	}
}

// Validate checks the command parameters
func (c *SynthesizeDefaultCommand) Validate() error {
	if err := application.ValidateComponentType(c.ComponentType); err != nil {
		return err
	}
	if err := application.ValidateRequired("corpusDir", c.CorpusDir); err != nil {
		return err
	}
	return application.ValidateRequired("defaultsDir", c.DefaultsDir)
}

// Execute runs the synthesize command. Zero instances is an ErrNoInstances error
// and nothing is written.
func (c *SynthesizeDefaultCommand) Execute(ctx context.Context) (*SynthesizeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	logger := nopIfNil(c.logger)

	files, skipped, err := collectInstances(ctx, c.docs, logger, c.ComponentType, c.CorpusDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan corpus: %w", err)
	}

	var instances []*domain.Node
	for _, f := range files {
		instances = append(instances, f.Instances...)
	}

	return synthesizeAndSave(c.docs, c.registry, logger, c.ComponentType, c.DefaultsDir, instances, len(files), skipped)
}

// SynthesizeAllResult contains the outcome of synthesizing every type
type SynthesizeAllResult struct {
	Written []*SynthesizeResult
	Empty   []domain.ComponentType // Types without any instance in the corpus
	Failed  []domain.Diagnostic    // Types whose default could not be written
	Skipped []domain.Diagnostic
	Message string
}

// SynthesizeAllCommand synthesizes a default for every known or configured type.
// Each document is parsed once.
type SynthesizeAllCommand struct {
	docs        ports.DocumentStore
	registry    *domain.Registry
	logger      *zap.Logger
	CorpusDir   string
	DefaultsDir string
}

// NewSynthesizeAllCommand creates a new SynthesizeAllCommand
func NewSynthesizeAllCommand(docs ports.DocumentStore, registry *domain.Registry, logger *zap.Logger, corpusDir, defaultsDir string) *SynthesizeAllCommand {
	return &SynthesizeAllCommand{
		docs:        docs,
		registry:    registry,
		logger:      nopIfNil(logger),
		CorpusDir:   corpusDir,
		DefaultsDir: defaultsDir,
	}
}

// Validate checks the command parameters
func (c *SynthesizeAllCommand) Validate() error {
	if err := application.ValidateRequired("corpusDir", c.CorpusDir); err != nil {
		return err
	}
	return application.ValidateRequired("defaultsDir", c.DefaultsDir)
}

// Execute runs the synthesize-all command
func (c *SynthesizeAllCommand) Execute(ctx context.Context) (*SynthesizeAllResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	logger := nopIfNil(c.logger)
	types := synthesisTypes(c.registry)

	paths, err := c.docs.ListDocuments(c.CorpusDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan corpus: %w", err)
	}

	result := &SynthesizeAllResult{}
	instances := make(map[domain.ComponentType][]*domain.Node)
	fileCounts := make(map[domain.ComponentType]int)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root, err := c.docs.ParseDocument(path)
		if err != nil {
			logger.Warn("skipping document", zap.String("file", path), zap.Error(err))
			result.Skipped = append(result.Skipped, diagnose(path, "", err))
			continue
		}
		for _, t := range types {
			if found := root.FindAll(string(t)); len(found) > 0 {
				instances[t] = append(instances[t], found...)
				fileCounts[t]++
			}
		}
	}

	for _, t := range types {
		res, err := synthesizeAndSave(c.docs, c.registry, logger, t, c.DefaultsDir, instances[t], fileCounts[t], nil)
		if errors.Is(err, domain.ErrNoInstances) {
			result.Empty = append(result.Empty, t)
			continue
		}
		if err != nil {
			logger.Warn("default not written", zap.String("type", string(t)), zap.Error(err))
			result.Failed = append(result.Failed, domain.Diagnostic{
				Path:   domain.DefaultPath(c.DefaultsDir, t),
				Reason: "synthesis failed",
				Err:    err,
			})
			continue
		}
		result.Written = append(result.Written, res)
	}

	result.Message = fmt.Sprintf("Wrote %d defaults to %s (%d types without instances, %d failed)",
		len(result.Written), c.DefaultsDir, len(result.Empty), len(result.Failed))
	return result, nil
}

// synthesisTypes returns the known types plus any type with a registered strategy
func synthesisTypes(registry *domain.Registry) []domain.ComponentType {
	seen := make(map[domain.ComponentType]bool)
	var types []domain.ComponentType
	for _, t := range domain.KnownTypes {
		seen[t] = true
		types = append(types, t)
	}

	var extra []domain.ComponentType
	for _, t := range registry.Types() {
		if !seen[t] {
			extra = append(extra, t)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(types, extra...)
}

func synthesizeAndSave(docs ports.DocumentStore, registry *domain.Registry, logger *zap.Logger, t domain.ComponentType, defaultsDir string, instances []*domain.Node, fileCount int, skipped []domain.Diagnostic) (*SynthesizeResult, error) {
	def, err := registry.Synthesize(t, instances)
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize default: %w", err)
	}

	path := domain.DefaultPath(defaultsDir, t)
	if err := docs.SaveDefault(path, def); err != nil {
		return nil, fmt.Errorf("failed to save default: %w", err)
	}

	logger.Info("default synthesized",
		zap.String("type", string(t)),
		zap.String("file", path),
		zap.Int("instances", len(instances)),
	)

	return &SynthesizeResult{
		ComponentType: t,
		DefaultPath:   path,
		Default:       def,
		FileCount:     fileCount,
		InstanceCount: len(instances),
		Skipped:       skipped,
		Message:       fmt.Sprintf("Wrote %s from %d instances in %d files", path, len(instances), fileCount),
	}, nil
}
