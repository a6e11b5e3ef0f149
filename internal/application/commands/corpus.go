package commands

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"componentdiff/internal/application"
	"componentdiff/internal/domain"
	"componentdiff/internal/ports"
)

func nopIfNil(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// loadDefault reads the default document and returns the component it holds.
// A document whose root is not the component falls back to its first nested instance.
func loadDefault(docs ports.DocumentStore, path string, t domain.ComponentType) (*domain.Node, error) {
	root, err := docs.LoadDefault(path)
	if err != nil {
		return nil, &application.DefaultError{Path: path, Reason: "cannot load", Err: err}
	}
	if inst := root.Find(string(t)); inst != nil {
		return inst, nil
	}
	return root, nil
}

// diagnose turns a per-file error into a diagnostic with a readable reason
func diagnose(path string, t domain.ComponentType, err error) domain.Diagnostic {
	reason := "read failed"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		reason = "no " + string(t) + " instance"
	case errors.Is(err, domain.ErrParse):
		reason = "parse failed"
	}
	return domain.Diagnostic{Path: path, Reason: reason, Err: err}
}

func displayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// collectInstances gathers every instance of t from each corpus document.
// Files without instances are left out; unreadable files become diagnostics.
func collectInstances(ctx context.Context, docs ports.DocumentStore, logger *zap.Logger, t domain.ComponentType, corpusDir string) ([]domain.FileInstances, []domain.Diagnostic, error) {
	paths, err := docs.ListDocuments(corpusDir)
	if err != nil {
		return nil, nil, err
	}

	var files []domain.FileInstances
	var skipped []domain.Diagnostic
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		instances, err := docs.Instances(path, t)
		if err != nil {
			d := diagnose(path, t, err)
			logger.Warn("skipping document", zap.String("file", path), zap.String("reason", d.Reason), zap.Error(err))
			skipped = append(skipped, d)
			continue
		}
		if len(instances) == 0 {
			continue
		}

		files = append(files, domain.FileInstances{
			Name:      displayName(path),
			Path:      path,
			Instances: instances,
		})
	}
	return files, skipped, nil
}
