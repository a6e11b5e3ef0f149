package commands

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"componentdiff/internal/adapters/filesystem"
	"componentdiff/internal/domain"
)

const ratesDefault = `<?xml version="1.0" encoding="utf-8"?>
<rates>
  <feed>100</feed>
  <plunge>50</plunge>
  <mode>Fast</mode>
</rates>
`

// job wraps a rates body into a script document
func job(ratesBody string) string {
	return "<script>\n  <header><name>job</name></header>\n  <operation>\n    <rates>" +
		ratesBody + "</rates>\n  </operation>\n</script>\n"
}

type testCorpus struct {
	dir         string
	corpusDir   string
	defaultsDir string
	defaultPath string
}

// setupCorpus creates a defaults dir with a rates default and a corpus with:
// same.xml (identical), close.xml (feed within tolerance, mode case differs),
// drift.xml (one different, one missing, one extra), nofeed.xml (no rates),
// broken.xml (malformed) and notes.txt (ignored).
func setupCorpus(t *testing.T) testCorpus {
	t.Helper()

	dir := t.TempDir()
	tc := testCorpus{
		dir:         dir,
		corpusDir:   filepath.Join(dir, "corpus"),
		defaultsDir: filepath.Join(dir, "default_components"),
	}
	tc.defaultPath = domain.DefaultPath(tc.defaultsDir, domain.TypeRates)

	mustMkdir(t, tc.corpusDir)
	mustMkdir(t, tc.defaultsDir)
	mustWrite(t, tc.defaultPath, ratesDefault)

	mustWrite(t, filepath.Join(tc.corpusDir, "same.xml"), job("<feed>100</feed><plunge>50</plunge><mode>Fast</mode>"))
	mustWrite(t, filepath.Join(tc.corpusDir, "close.xml"), job("<feed>103</feed><plunge>50</plunge><mode>FAST</mode>"))
	mustWrite(t, filepath.Join(tc.corpusDir, "drift.xml"), job("<feed>200</feed><mode>Fast</mode><coolant>on</coolant>"))
	mustWrite(t, filepath.Join(tc.corpusDir, "nofeed.xml"), "<script><tool><external>01</external></tool></script>")
	mustWrite(t, filepath.Join(tc.corpusDir, "broken.xml"), `<script><rates feed="1></rates></script>`)
	mustWrite(t, filepath.Join(tc.corpusDir, "notes.txt"), "not a document")

	return tc
}

func (tc testCorpus) path(name string) string {
	return filepath.Join(tc.corpusDir, name)
}

func newRepo() *filesystem.Repository {
	return filesystem.NewRepository()
}

func mustMkdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// memoryHistory is an in-memory ports.RunHistory
type memoryHistory struct {
	mu      sync.Mutex
	runs    []domain.Run
	results map[string][]domain.RunResult
	failErr error
}

func newMemoryHistory() *memoryHistory {
	return &memoryHistory{results: make(map[string][]domain.RunResult)}
}

func (h *memoryHistory) Open(string) error { return nil }
func (h *memoryHistory) Close() error      { return nil }

func (h *memoryHistory) RecordRun(run domain.Run, results []domain.RunResult) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failErr != nil {
		return h.failErr
	}
	h.runs = append(h.runs, run)
	h.results[run.ID] = results
	return nil
}

func (h *memoryHistory) ListRuns(t domain.ComponentType, limit int) ([]domain.Run, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var runs []domain.Run
	for i := len(h.runs) - 1; i >= 0 && len(runs) < limit; i-- {
		if t == "" || h.runs[i].ComponentType == t {
			runs = append(runs, h.runs[i])
		}
	}
	return runs, nil
}

func (h *memoryHistory) RunResults(runID string) ([]domain.RunResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.results[runID], nil
}
