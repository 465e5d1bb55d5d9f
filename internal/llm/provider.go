package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/paperverify/internal/model"
)

// Provider defines the interface for LLM backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a prose summary of a verification report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)
}

// SummarizeRequest contains the input for report summarization
type SummarizeRequest struct {
	// Report is the verification report to summarize
	Report model.Report

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the generated summary
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	Provider  string // "openai" or "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string // For OpenAI-compatible endpoints
	Timeout   int    // Seconds
	MaxTokens int
}

// NewProvider creates the configured provider, or nil when disabled
func NewProvider(cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		return NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
}

// BuildPrompt constructs the summarization prompt. The summary describes the
// already-computed verification outcome; it never re-verifies anything.
func BuildPrompt(report model.Report) string {
	summary := report.Summarize()

	var b strings.Builder
	fmt.Fprintf(&b, `You are summarizing a numeric-verification report for an academic paper.
The verification has already happened; describe its outcome, do not re-check any value.

Document: %s
Result values indexed: %d (from %d source files)
Tolerance for close matches: %.2f%%

Verification counts:
- Exact matches: %d
- Close matches: %d
- Mismatches: %d
- Unverified claims: %d

`, report.DocumentPath, report.Observations, report.Sources, report.TolerancePct,
		summary.Exact, summary.Close, summary.Mismatch, summary.Unverified)

	mismatches := 0
	for _, res := range report.Results {
		if res.Status != model.StatusMismatch {
			continue
		}
		if mismatches == 0 {
			b.WriteString("Mismatched claims:\n")
		}
		mismatches++
		if mismatches > 10 {
			fmt.Fprintf(&b, "... and %d more\n", summary.Mismatch-10)
			break
		}
		fmt.Fprintf(&b, "- line %d: paper says %v, results contain %v (%.1f%% diff)\n",
			res.Claim.LineNumber, res.Claim.Value, res.Matched.Value, *res.DifferencePct)
	}

	b.WriteString("\nProvide a 3-4 sentence summary of the verification outcome, highlighting mismatches first.")
	return b.String()
}
