// Package report renders comparison, analysis and history results as plain text.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"componentdiff/internal/domain"
)

const ruleWidth = 50

// AnalysisFileName returns "component_report_<type>.txt"
func AnalysisFileName(t domain.ComponentType) string {
	return "component_report_" + string(t) + ".txt"
}

// WriteAnalysis renders the per-type corpus report: title, generation time,
// direct-child element frequency and the nested structure of every instance.
func WriteAnalysis(w io.Writer, a *domain.Analysis, now time.Time) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Component Analysis Report: %s\n", strings.ToUpper(string(a.Type)))
	fmt.Fprintf(&sb, "Generated: %s\n", now.Format("2006-01-02 15:04:05"))
	sb.WriteString(strings.Repeat("=", ruleWidth) + "\n")

	sb.WriteString("\nElement Frequency:\n")
	for _, ec := range a.ElementFrequency {
		fmt.Fprintf(&sb, "  %s: %d occurrences\n", ec.Name, ec.Count)
	}

	sb.WriteString("\nFile Details:\n")
	for _, f := range a.Files {
		fmt.Fprintf(&sb, "\n%s:\n", f.Name)
		for i, inst := range f.Instances {
			fmt.Fprintf(&sb, "  Component #%d:\n", i+1)
			writeStructure(&sb, inst, "    ")
		}
	}

	if len(a.Skipped) > 0 {
		sb.WriteString("\nSkipped:\n")
		for _, d := range a.Skipped {
			fmt.Fprintf(&sb, "  %s\n", d)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeStructure(sb *strings.Builder, n *domain.Node, indent string) {
	for _, c := range n.Children {
		if c.IsLeaf() {
			fmt.Fprintf(sb, "%s%s: %s\n", indent, c.Name, c.Text)
			continue
		}
		fmt.Fprintf(sb, "%s%s:\n", indent, c.Name)
		writeStructure(sb, c, indent+"  ")
	}
}

// WriteCompare renders a ranked comparison, one line per file
func WriteCompare(w io.Writer, r *domain.CompareReport) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s against %s\n", r.ComponentType, r.DefaultPath)
	for _, res := range r.Results {
		mark := " "
		if res.Selected {
			mark = "*"
		}
		s := res.Summary()
		fmt.Fprintf(&sb, "%s %7s  %-30s  %d different, %d missing, %d extra\n",
			mark, res.FormattedSimilarity(), res.DisplayName(), s.Different, s.Missing, s.Extra)
	}
	for _, d := range r.Skipped {
		fmt.Fprintf(&sb, "skipped %s\n", d)
	}
	fmt.Fprintf(&sb, "%d compared, %d selected, %d skipped\n", len(r.Results), len(r.Selected()), len(r.Skipped))

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteDiff renders the classified differences of one result.
// Identical paths are only listed when all is true.
func WriteDiff(w io.Writer, res domain.ComparisonResult, all bool) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s  %s\n", res.DisplayName(), res.FormattedSimilarity())
	for _, d := range res.Differences {
		if d.Kind == domain.Identical && !all {
			continue
		}
		fmt.Fprintf(&sb, "  %-9s %s: %s -> %s\n", d.Kind, d.Path, d.DefaultValue, d.ActualValue)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteRuns renders recorded runs, newest first
func WriteRuns(w io.Writer, runs []domain.Run) error {
	var sb strings.Builder
	for _, r := range runs {
		fmt.Fprintf(&sb, "%s  %s  %-18s compared=%d selected=%d skipped=%d mean=%.1f%%  %s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04"), r.ComponentType,
			r.Compared, r.Selected, r.Skipped, r.MeanSimilarity, r.CorpusDir)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// WriteRunResults renders the per-file rows of one run
func WriteRunResults(w io.Writer, rows []domain.RunResult) error {
	var sb strings.Builder
	for _, r := range rows {
		mark := " "
		if r.Selected {
			mark = "*"
		}
		fmt.Fprintf(&sb, "%s %6.1f%%  %s  (%d different, %d missing, %d extra)\n",
			mark, r.Similarity, r.FilePath, r.Different, r.Missing, r.Extra)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
