package llm

import (
	"context"
	"fmt"

	"github.com/ppiankov/paperverify/internal/model"
	"github.com/ppiankov/paperverify/internal/worker"
)

// Summarizer attaches an optional prose summary to a finished report.
// Summaries are generated strictly after verification and can never change
// a claim's classification.
type Summarizer struct {
	provider Provider
	limiter  *worker.Limiter // nil means no throttling
	config   Config
}

// NewSummarizer creates a summarizer for the configured provider.
// Returns nil if no provider is configured.
func NewSummarizer(cfg Config, limiter *worker.Limiter) (*Summarizer, error) {
	provider, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}

	return &Summarizer{
		provider: provider,
		limiter:  limiter,
		config:   cfg,
	}, nil
}

// Summarize generates the summary for a report
func (s *Summarizer) Summarize(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:    report,
		Model:     s.config.Model,
		MaxTokens: s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.provider.Name(), err)
	}

	return &model.LLMSummary{
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
	}, nil
}
