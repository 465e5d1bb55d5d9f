package pipeline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ppiankov/paperverify/internal/model"
)

func sampleReport() *model.Report {
	zero := 0.0
	diff := 8.7
	return &model.Report{
		DocumentPath: "paper.tex",
		TolerancePct: 1.0,
		Observations: 5,
		Sources:      2,
		Results: []model.VerificationResult{
			{
				Claim:         model.Claim{Value: 2.44, LineNumber: 3, Context: "MAE of 2.44"},
				Status:        model.StatusExactMatch,
				Matched:       &model.Observation{Value: 2.44, SourceFile: "results/xgboost_etth1.json"},
				DifferencePct: &zero,
			},
			{
				Claim:         model.Claim{Value: 2.1, LineNumber: 12, Context: "MAE of 2.1"},
				Status:        model.StatusMismatch,
				Matched:       &model.Observation{Value: 2.3, SourceFile: "results/xgboost_etth1.json"},
				DifferencePct: &diff,
			},
			{
				Claim:  model.Claim{Value: 77.7, LineNumber: 99, Context: "accuracy 77.7"},
				Status: model.StatusUnverified,
			},
		},
	}
}

func TestGenerateMarkdown(t *testing.T) {
	r := NewRenderer(false)
	md := r.GenerateMarkdown(sampleReport())

	for _, want := range []string{
		"# Paper Verification Report",
		"- **Total claims checked**: 3",
		"- **Exact matches**: 1",
		"- **Mismatches**: 1",
		"- **Unverified**: 1",
		"| Line | Claim | Status | Matched Value | Source |",
		"| 3 | 2.44 |",
		"| 12 | 2.1 |",
		"xgboost_etth1",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Expected markdown to contain %q", want)
		}
	}

	// Unverified rows are omitted from the details table
	if strings.Contains(md, "| 99 |") {
		t.Error("Expected no table row for the unverified claim")
	}
}

func TestGenerateMarkdown_IncludesLLMSummary(t *testing.T) {
	report := sampleReport()
	report.LLM = &model.LLMSummary{Provider: "openai", Model: "gpt-4o-mini", SummaryMD: "One claim disagrees."}

	r := NewRenderer(false)
	md := r.GenerateMarkdown(report)

	if !strings.Contains(md, "## Summary (openai/gpt-4o-mini)") {
		t.Error("Expected the summary section header")
	}
	if !strings.Contains(md, "One claim disagrees.") {
		t.Error("Expected the summary body")
	}
}

func TestRenderConsole(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(false)
	r.RenderConsole(&buf, sampleReport())

	out := buf.String()
	if !strings.Contains(out, "2.44") {
		t.Error("Expected the exact-match row to be rendered")
	}
	if !strings.Contains(out, "Found 1 potential mismatch(es)") {
		t.Errorf("Expected the mismatch summary line, got:\n%s", out)
	}
	if !strings.Contains(out, "Checked: 3 | Exact: 1 | Close: 0 | Mismatch: 1 | Unverified: 1") {
		t.Errorf("Expected the count line, got:\n%s", out)
	}
}

func TestRenderConsole_QuietShowsOnlyMismatches(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(true)
	r.RenderConsole(&buf, sampleReport())

	out := buf.String()
	if strings.Contains(out, "2.44") {
		t.Error("Expected the exact-match row to be hidden in quiet mode")
	}
	if !strings.Contains(out, "2.1") {
		t.Error("Expected the mismatch row to remain visible")
	}
}

func TestRenderConsole_AllMatching(t *testing.T) {
	zero := 0.0
	report := &model.Report{
		Results: []model.VerificationResult{
			{
				Claim:         model.Claim{Value: 2.44, LineNumber: 3},
				Status:        model.StatusExactMatch,
				Matched:       &model.Observation{Value: 2.44, SourceFile: "r.json"},
				DifferencePct: &zero,
			},
		},
	}

	var buf bytes.Buffer
	NewRenderer(false).RenderConsole(&buf, report)

	if !strings.Contains(buf.String(), "All verified claims match!") {
		t.Error("Expected the all-clear summary line")
	}
}

func TestSourceStem(t *testing.T) {
	if got := sourceStem("results/xgboost_etth1.json"); got != "xgboost_etth1" {
		t.Errorf("Expected 'xgboost_etth1', got '%s'", got)
	}
}

func TestSnippet(t *testing.T) {
	if got := snippet("  short  ", 40); got != "short" {
		t.Errorf("Expected trimmed 'short', got '%s'", got)
	}
	long := strings.Repeat("x", 60)
	if got := snippet(long, 40); len(got) != 40 {
		t.Errorf("Expected 40-char snippet, got %d chars", len(got))
	}
}
