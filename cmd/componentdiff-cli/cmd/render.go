package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"componentdiff/internal/application/commands"
	"componentdiff/internal/domain"
)

var (
	// Colors
	primary   = lipgloss.Color("#7C3AED") // Purple
	secondary = lipgloss.Color("#10B981") // Green
	muted     = lipgloss.Color("#6B7280") // Gray
	warning   = lipgloss.Color("#F59E0B") // Amber
	danger    = lipgloss.Color("#EF4444") // Red

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primary)
	mutedStyle    = lipgloss.NewStyle().Foreground(muted)
	matchStyle    = lipgloss.NewStyle().Foreground(secondary)
	exactStyle    = lipgloss.NewStyle().Foreground(secondary).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(danger)
	warningStyle  = lipgloss.NewStyle().Foreground(warning)

	kindStyles = map[domain.DifferenceKind]lipgloss.Style{
		domain.Identical: mutedStyle,
		domain.Different: warningStyle,
		domain.Missing:   selectedStyle,
		domain.Extra:     lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")), // Blue
	}
)

func similarityStyle(res domain.ComparisonResult) lipgloss.Style {
	switch {
	case res.Selected:
		return selectedStyle
	case res.Similarity == 100:
		return exactStyle
	default:
		return matchStyle
	}
}

func renderCompare(w io.Writer, r *domain.CompareReport) {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s against %s", r.ComponentType, r.DefaultPath)) + "\n")
	for _, res := range r.Results {
		mark := " "
		if res.Selected {
			mark = selectedStyle.Render("*")
		}
		s := res.Summary()
		sim := similarityStyle(res).Render(fmt.Sprintf("%7s", res.FormattedSimilarity()))
		detail := mutedStyle.Render(fmt.Sprintf("%d different, %d missing, %d extra", s.Different, s.Missing, s.Extra))
		fmt.Fprintf(&sb, "%s %s  %-30s  %s\n", mark, sim, res.DisplayName(), detail)
	}
	for _, d := range r.Skipped {
		sb.WriteString(warningStyle.Render("skipped "+d.String()) + "\n")
	}
	fmt.Fprintf(&sb, "%d compared, %s, %d skipped\n",
		len(r.Results), selectedStyle.Render(fmt.Sprintf("%d selected", len(r.Selected()))), len(r.Skipped))

	io.WriteString(w, sb.String())
}

func renderDiff(w io.Writer, res domain.ComparisonResult, all bool) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s  %s\n", titleStyle.Render(res.DisplayName()), similarityStyle(res).Render(res.FormattedSimilarity()))
	for _, d := range res.Differences {
		if d.Kind == domain.Identical && !all {
			continue
		}
		kind := kindStyles[d.Kind].Render(fmt.Sprintf("%-9s", d.Kind))
		fmt.Fprintf(&sb, "  %s %s: %s -> %s\n", kind, d.Path, d.DefaultValue, d.ActualValue)
	}

	io.WriteString(w, sb.String())
}

func renderTypes(w io.Writer, infos []commands.TypeInfo) {
	var sb strings.Builder
	for _, info := range infos {
		status := mutedStyle.Render("no default")
		if info.HasDefault {
			status = matchStyle.Render(info.DefaultPath)
		}
		fmt.Fprintf(&sb, "%-20s %-6s %s\n", info.Type, info.Strategy, status)
	}
	io.WriteString(w, sb.String())
}

func renderDiagnostics(w io.Writer, label string, diags []domain.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, warningStyle.Render(label+" "+d.String()))
	}
}
