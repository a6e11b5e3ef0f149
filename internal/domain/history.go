package domain

import "time"

// Run is the persisted summary of one batch comparison
type Run struct {
	ID             string
	ComponentType  ComponentType
	DefaultPath    string
	CorpusDir      string
	StartedAt      time.Time
	Duration       time.Duration
	Compared       int
	Skipped        int
	Selected       int
	MeanSimilarity float64
}

// RunResult is the persisted per-file row of a run
type RunResult struct {
	RunID      string
	FilePath   string
	Similarity float64
	Selected   bool
	Identical  int
	Different  int
	Missing    int
	Extra      int
}

// NewRun summarizes a compare report under the given run ID
func NewRun(id string, report *CompareReport) (Run, []RunResult) {
	run := Run{
		ID:             id,
		ComponentType:  report.ComponentType,
		DefaultPath:    report.DefaultPath,
		CorpusDir:      report.CorpusDir,
		StartedAt:      report.StartedAt,
		Duration:       report.Duration,
		Compared:       len(report.Results),
		Skipped:        len(report.Skipped),
		Selected:       len(report.Selected()),
		MeanSimilarity: report.MeanSimilarity(),
	}

	results := make([]RunResult, 0, len(report.Results))
	for _, r := range report.Results {
		s := r.Summary()
		results = append(results, RunResult{
			RunID:      id,
			FilePath:   r.FilePath,
			Similarity: r.Similarity,
			Selected:   r.Selected,
			Identical:  s.Identical,
			Different:  s.Different,
			Missing:    s.Missing,
			Extra:      s.Extra,
		})
	}
	return run, results
}
