package ports

import "componentdiff/internal/domain"

// RunHistory persists batch comparison summaries for later audit
type RunHistory interface {
	// Lifecycle
	Open(dbPath string) error
	Close() error

	// RecordRun stores a run and its per-file rows atomically
	RecordRun(run domain.Run, results []domain.RunResult) error

	// ListRuns returns the most recent runs first. An empty componentType lists all types.
	ListRuns(componentType domain.ComponentType, limit int) ([]domain.Run, error)

	// RunResults returns the per-file rows of a run, best similarity first
	RunResults(runID string) ([]domain.RunResult, error)
}

// HistoryTx represents a transaction for atomic history writes
type HistoryTx interface {
	InsertRun(run domain.Run) error
	InsertResult(result domain.RunResult) error

	Commit() error
	Rollback() error
}
