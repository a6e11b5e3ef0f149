package sqlite

import (
	"database/sql"

	"componentdiff/internal/domain"
	"componentdiff/internal/ports"
)

// historyTx implements ports.HistoryTx
type historyTx struct {
	tx *sql.Tx
}

// Ensure historyTx implements HistoryTx
var _ ports.HistoryTx = (*historyTx)(nil)

// InsertRun adds a run summary
func (t *historyTx) InsertRun(run domain.Run) error {
	_, err := t.tx.Exec(`
		INSERT INTO runs (id, component_type, default_path, corpus_dir, started_at, duration_ns,
		                  compared, skipped, selected, mean_similarity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.ComponentType), run.DefaultPath, run.CorpusDir,
		run.StartedAt.UnixNano(), int64(run.Duration),
		run.Compared, run.Skipped, run.Selected, run.MeanSimilarity)
	return err
}

// InsertResult adds one per-file row
func (t *historyTx) InsertResult(r domain.RunResult) error {
	_, err := t.tx.Exec(`
		INSERT OR REPLACE INTO run_results (run_id, file_path, similarity, selected,
		                                    identical, different, missing, extra)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.RunID, r.FilePath, r.Similarity, r.Selected,
		r.Identical, r.Different, r.Missing, r.Extra)
	return err
}

// Commit commits the transaction
func (t *historyTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *historyTx) Rollback() error {
	return t.tx.Rollback()
}
