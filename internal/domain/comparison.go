package domain

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ComparisonResult is the outcome of comparing one document's instance against the default
type ComparisonResult struct {
	FileName    string
	FilePath    string
	Instance    *Node
	Similarity  float64
	Differences []Difference
	Selected    bool // Pre-selected for batch apply
}

// FormattedSimilarity renders the score with one decimal, e.g. "87.5%"
func (r ComparisonResult) FormattedSimilarity() string {
	return fmt.Sprintf("%.1f%%", r.Similarity)
}

// DisplayName returns the file name without its extension
func (r ComparisonResult) DisplayName() string {
	return strings.TrimSuffix(r.FileName, filepath.Ext(r.FileName))
}

// Summary counts the result's differences per kind
func (r ComparisonResult) Summary() DifferenceSummary {
	return Summarize(r.Differences)
}

// Compare scores and classifies actual against the default instance.
// Both sides are flattened once and share the same similarity predicate.
func Compare(defaultInstance, actual *Node) (float64, []Difference) {
	expected := Flatten(defaultInstance)
	got := Flatten(actual)
	return Similarity(expected, got), FindDifferences(expected, got)
}

// NewComparisonResult compares instance against the default and fills a result for path
func NewComparisonResult(path string, defaultInstance, instance *Node, threshold float64) ComparisonResult {
	similarity, diffs := Compare(defaultInstance, instance)
	return ComparisonResult{
		FileName:    filepath.Base(path),
		FilePath:    path,
		Instance:    instance,
		Similarity:  similarity,
		Differences: diffs,
		Selected:    similarity < threshold,
	}
}

// RankResults sorts by descending similarity, then by file path
func RankResults(results []ComparisonResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].FilePath < results[j].FilePath
	})
}

// Diagnostic records a file that was skipped or failed, and why
type Diagnostic struct {
	Path   string
	Reason string
	Err    error
}

// String renders "path: reason"
func (d Diagnostic) String() string {
	if d.Err != nil {
		return fmt.Sprintf("%s: %s: %v", d.Path, d.Reason, d.Err)
	}
	return fmt.Sprintf("%s: %s", d.Path, d.Reason)
}

// CompareReport is the ranked result set of one batch comparison
type CompareReport struct {
	ComponentType ComponentType
	DefaultPath   string
	CorpusDir     string
	Results       []ComparisonResult
	Skipped       []Diagnostic
	StartedAt     time.Time
	Duration      time.Duration
}

// Selected returns the results pre-selected for batch apply
func (r *CompareReport) Selected() []ComparisonResult {
	var selected []ComparisonResult
	for _, res := range r.Results {
		if res.Selected {
			selected = append(selected, res)
		}
	}
	return selected
}

// MeanSimilarity averages the similarity over all results (0 with no results)
func (r *CompareReport) MeanSimilarity() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	var sum float64
	for _, res := range r.Results {
		sum += res.Similarity
	}
	return sum / float64(len(r.Results))
}
