package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"componentdiff/internal/domain"
)

func TestWriteAnalysis(t *testing.T) {
	files := []domain.FileInstances{
		{
			Name: "job1",
			Instances: []*domain.Node{
				domain.NewNode("rates",
					domain.NewLeaf("feed", "100"),
					domain.NewNode("spindle", domain.NewLeaf("speed", "5000")),
				),
			},
		},
		{
			Name: "job2",
			Instances: []*domain.Node{
				domain.NewNode("rates", domain.NewLeaf("feed", "120")),
				domain.NewNode("rates", domain.NewLeaf("feed", "130")),
			},
		},
	}
	a := &domain.Analysis{
		Type:             domain.TypeRates,
		Files:            files,
		ElementFrequency: domain.ElementFrequency(files),
	}

	var sb strings.Builder
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	require.NoError(t, WriteAnalysis(&sb, a, now))

	want := `Component Analysis Report: RATES
Generated: 2026-10-16 09:30:00
==================================================

Element Frequency:
  feed: 3 occurrences
  spindle: 1 occurrences

File Details:

job1:
  Component #1:
    feed: 100
    spindle:
      speed: 5000

job2:
  Component #1:
    feed: 120
  Component #2:
    feed: 130
`
	assert.Equal(t, want, sb.String())
}

func TestAnalysisFileName(t *testing.T) {
	assert.Equal(t, "component_report_gouge_check.txt", AnalysisFileName(domain.TypeGougeCheck))
}

func TestWriteCompare(t *testing.T) {
	def := domain.NewNode("rates", domain.NewLeaf("feed", "100"), domain.NewLeaf("plunge", "50"))
	r := &domain.CompareReport{
		ComponentType: domain.TypeRates,
		DefaultPath:   "rates_default.xml",
		Results: []domain.ComparisonResult{
			domain.NewComparisonResult("/c/a.xml", def, def.Clone(), 90),
			domain.NewComparisonResult("/c/b.xml", def, domain.NewNode("rates", domain.NewLeaf("feed", "300")), 90),
		},
		Skipped: []domain.Diagnostic{{Path: "/c/x.xml", Reason: "parse failed"}},
	}

	var sb strings.Builder
	require.NoError(t, WriteCompare(&sb, r))
	out := sb.String()

	assert.Contains(t, out, "   100.0%  a ")
	assert.Contains(t, out, "*    0.0%  b ")
	assert.Contains(t, out, "1 different, 1 missing, 0 extra")
	assert.Contains(t, out, "skipped /c/x.xml: parse failed")
	assert.Contains(t, out, "2 compared, 1 selected, 1 skipped")
}

func TestWriteDiff(t *testing.T) {
	def := domain.NewNode("rates", domain.NewLeaf("feed", "100"), domain.NewLeaf("mode", "fast"))
	res := domain.NewComparisonResult("/c/a.xml", def, domain.NewNode("rates", domain.NewLeaf("feed", "100"), domain.NewLeaf("ramp", "2")), 90)

	var sb strings.Builder
	require.NoError(t, WriteDiff(&sb, res, false))
	out := sb.String()
	assert.NotContains(t, out, "rates/feed")
	assert.Contains(t, out, "Missing   rates/mode: fast -> (missing)")
	assert.Contains(t, out, "Extra     rates/ramp: (not in default) -> 2")

	sb.Reset()
	require.NoError(t, WriteDiff(&sb, res, true))
	assert.Contains(t, sb.String(), "Identical rates/feed: 100 -> 100")
}

func TestWriteRunResults(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteRunResults(&sb, []domain.RunResult{
		{FilePath: "a.xml", Similarity: 87.5, Selected: true, Different: 1},
	}))
	assert.Equal(t, "*   87.5%  a.xml  (1 different, 0 missing, 0 extra)\n", sb.String())
}
