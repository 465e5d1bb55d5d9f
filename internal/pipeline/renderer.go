package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/ppiankov/paperverify/internal/model"
)

// statusGlyphs maps each status to its table glyph
var statusGlyphs = map[model.Status]string{
	model.StatusExactMatch: "✅",
	model.StatusCloseMatch: "⚠️",
	model.StatusMismatch:   "❌",
	model.StatusUnverified: "❓",
}

// Renderer formats verification reports for the terminal and for files
type Renderer struct {
	quiet bool
}

// NewRenderer creates a renderer. In quiet mode only mismatches are shown.
func NewRenderer(quiet bool) *Renderer {
	return &Renderer{quiet: quiet}
}

// RenderConsole writes the results table and summary to w
func (r *Renderer) RenderConsole(w io.Writer, report *model.Report) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"", "Line", "Claim", "Context", "Result"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: 40},
		{Number: 5, WidthMax: 40},
	})

	for _, res := range report.Results {
		// Unverified rows only add noise
		if res.Status == model.StatusUnverified {
			continue
		}
		if r.quiet && res.Status != model.StatusMismatch {
			continue
		}

		matched := "-"
		if res.Matched != nil {
			matched = fmt.Sprintf("%v (%s)", res.Matched.Value, sourceStem(res.Matched.SourceFile))
		}

		t.AppendRow(table.Row{
			statusGlyphs[res.Status],
			res.Claim.LineNumber,
			fmt.Sprintf("%v", res.Claim.Value),
			snippet(res.Claim.Context, 40),
			matched,
		})
	}

	t.Render()

	summary := report.Summarize()
	fmt.Fprintln(w)
	switch {
	case summary.Mismatch == 0:
		fmt.Fprintln(w, "All verified claims match!")
	case summary.Mismatch <= 2:
		fmt.Fprintf(w, "Found %d potential mismatch(es)\n", summary.Mismatch)
	default:
		fmt.Fprintf(w, "Found %d mismatches!\n", summary.Mismatch)
	}
	fmt.Fprintf(w, "Checked: %d | Exact: %d | Close: %d | Mismatch: %d | Unverified: %d\n",
		summary.Total, summary.Exact, summary.Close, summary.Mismatch, summary.Unverified)

	if report.LLM != nil && report.LLM.SummaryMD != "" {
		fmt.Fprintf(w, "\nSummary (%s/%s):\n%s\n", report.LLM.Provider, report.LLM.Model, report.LLM.SummaryMD)
	}
}

// GenerateMarkdown builds the persisted markdown report: a summary count
// block followed by a per-claim table (Unverified rows omitted)
func (r *Renderer) GenerateMarkdown(report *model.Report) string {
	summary := report.Summarize()

	var b strings.Builder
	b.WriteString("# Paper Verification Report\n\n")
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- **Total claims checked**: %d\n", summary.Total)
	fmt.Fprintf(&b, "- **Exact matches**: %d ✅\n", summary.Exact)
	fmt.Fprintf(&b, "- **Close matches**: %d ⚠️\n", summary.Close)
	fmt.Fprintf(&b, "- **Mismatches**: %d ❌\n", summary.Mismatch)
	fmt.Fprintf(&b, "- **Unverified**: %d\n", summary.Unverified)
	b.WriteString("\n## Details\n\n")
	b.WriteString("| Line | Claim | Status | Matched Value | Source |\n")
	b.WriteString("|------|-------|--------|---------------|--------|\n")

	for _, res := range report.Results {
		if res.Status == model.StatusUnverified {
			continue
		}

		matched, source := "-", "-"
		if res.Matched != nil {
			matched = fmt.Sprintf("%v", res.Matched.Value)
			source = sourceStem(res.Matched.SourceFile)
		}
		fmt.Fprintf(&b, "| %d | %v | %s | %s | %s |\n",
			res.Claim.LineNumber, res.Claim.Value, statusGlyphs[res.Status], matched, source)
	}

	if report.LLM != nil && report.LLM.SummaryMD != "" {
		fmt.Fprintf(&b, "\n## Summary (%s/%s)\n\n%s\n", report.LLM.Provider, report.LLM.Model, report.LLM.SummaryMD)
	}

	return b.String()
}

// SaveMarkdown writes the markdown report to path
func (r *Renderer) SaveMarkdown(report *model.Report, path string) error {
	return os.WriteFile(path, []byte(r.GenerateMarkdown(report)), 0o644)
}

// sourceStem returns the base name of a source file without its extension
func sourceStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// snippet trims context for display
func snippet(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max]
}
