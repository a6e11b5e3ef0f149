package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"componentdiff/internal/domain"
	"componentdiff/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// History implements ports.RunHistory using SQLite
type History struct {
	db     *sql.DB
	dbPath string
}

// Ensure History implements RunHistory
var _ ports.RunHistory = (*History)(nil)

// NewHistory creates a new SQLite run history
func NewHistory() *History {
	return &History{}
}

// Open creates or opens the history database at dbPath
func (h *History) Open(dbPath string) error {
	// Expand ~ in path
	if len(dbPath) > 0 && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}
	h.dbPath = dbPath

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	h.db = db

	// Pragmas + schema in single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			component_type TEXT NOT NULL,
			default_path TEXT NOT NULL,
			corpus_dir TEXT NOT NULL,
			started_at INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			compared INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			selected INTEGER NOT NULL,
			mean_similarity REAL NOT NULL
		);
		CREATE TABLE IF NOT EXISTS run_results (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			file_path TEXT NOT NULL,
			similarity REAL NOT NULL,
			selected INTEGER NOT NULL,
			identical INTEGER NOT NULL,
			different INTEGER NOT NULL,
			missing INTEGER NOT NULL,
			extra INTEGER NOT NULL,
			PRIMARY KEY (run_id, file_path)
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_type_started ON runs(component_type, started_at);
	`)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to setup database: %w", err)
	}

	if err := h.checkSchema(); err != nil {
		db.Close()
		return err
	}

	return nil
}

// Close closes the database connection
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// Path returns the database file in use
func (h *History) Path() string {
	return h.dbPath
}

// checkSchema stamps a fresh database and refuses one written by another schema
func (h *History) checkSchema() error {
	var version string
	err := h.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&version)
	if err == sql.ErrNoRows {
		_, err = h.db.Exec(`INSERT INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion)
		if err != nil {
			return fmt.Errorf("failed to update metadata: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("history schema version %s is not supported (want %s)", version, schemaVersion)
	}
	return nil
}

// RecordRun stores a run and its per-file rows in a single transaction
func (h *History) RecordRun(run domain.Run, results []domain.RunResult) error {
	tx, err := h.BeginTx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := tx.InsertRun(run); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert run: %w", err)
	}
	for _, r := range results {
		if err := tx.InsertResult(r); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert result for %s: %w", r.FilePath, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns up to limit runs, newest first. An empty componentType lists all types.
func (h *History) ListRuns(componentType domain.ComponentType, limit int) ([]domain.Run, error) {
	rows, err := h.db.Query(`
		SELECT id, component_type, default_path, corpus_dir, started_at, duration_ns,
		       compared, skipped, selected, mean_similarity
		FROM runs
		WHERE ? = '' OR component_type = ?
		ORDER BY started_at DESC, id
		LIMIT ?
	`, string(componentType), string(componentType), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		var r domain.Run
		var ct string
		var startedAt, durationNs int64
		if err := rows.Scan(&r.ID, &ct, &r.DefaultPath, &r.CorpusDir, &startedAt, &durationNs,
			&r.Compared, &r.Skipped, &r.Selected, &r.MeanSimilarity); err != nil {
			return nil, err
		}
		r.ComponentType = domain.ComponentType(ct)
		r.StartedAt = time.Unix(0, startedAt).UTC()
		r.Duration = time.Duration(durationNs)
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// RunResults returns the per-file rows of a run, best similarity first
func (h *History) RunResults(runID string) ([]domain.RunResult, error) {
	rows, err := h.db.Query(`
		SELECT run_id, file_path, similarity, selected, identical, different, missing, extra
		FROM run_results
		WHERE run_id = ?
		ORDER BY similarity DESC, file_path
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.RunResult
	for rows.Next() {
		var r domain.RunResult
		if err := rows.Scan(&r.RunID, &r.FilePath, &r.Similarity, &r.Selected,
			&r.Identical, &r.Different, &r.Missing, &r.Extra); err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// BeginTx starts a new transaction
func (h *History) BeginTx() (ports.HistoryTx, error) {
	tx, err := h.db.Begin()
	if err != nil {
		return nil, err
	}
	return &historyTx{tx: tx}, nil
}
