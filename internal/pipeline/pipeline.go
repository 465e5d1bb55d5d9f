package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ppiankov/paperverify/internal/cache"
	"github.com/ppiankov/paperverify/internal/extract"
	"github.com/ppiankov/paperverify/internal/index"
	"github.com/ppiankov/paperverify/internal/ingest"
	"github.com/ppiankov/paperverify/internal/llm"
	"github.com/ppiankov/paperverify/internal/model"
	"github.com/ppiankov/paperverify/internal/verify"
	"github.com/ppiankov/paperverify/internal/worker"
)

// Pipeline orchestrates the complete check: extract claims, ingest results,
// verify, and optionally summarize
type Pipeline struct {
	extractor  *extract.ClaimExtractor
	registry   *ingest.Registry
	summarizer *llm.Summarizer // nil if disabled
	config     *model.Config
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var obsCache *cache.ObservationCache
	if cfg.Cache.Enabled {
		obsCache = cache.NewObservationCache()
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		limiter := worker.NewLimiter(cfg.LLM.RequestsPerSecond, cfg.LLM.BurstSize)
		s, err := llm.NewSummarizer(llm.Config{
			Provider: cfg.LLM.Provider,
			Model:    cfg.LLM.Model,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
		}, limiter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Pipeline{
		extractor:  extract.NewClaimExtractor(),
		registry:   ingest.NewRegistry(obsCache),
		summarizer: summarizer,
		config:     cfg,
	}
}

// Check verifies all numeric claims in the document against the result
// files under resultsDir. A missing document or results directory is fatal;
// individual unreadable result sources degrade to diagnostics in the report.
func (p *Pipeline) Check(ctx context.Context, documentPath, resultsDir string) (*model.Report, error) {
	raw, err := os.ReadFile(documentPath)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if _, err := os.Stat(resultsDir); err != nil {
		return nil, fmt.Errorf("results directory: %w", err)
	}

	// 1. Extract claims from the document
	claims := p.extractor.Scan(string(raw))

	// 2. Ingest result sources into the index
	observations, diagnostics, sources := p.registry.LoadDirectory(resultsDir)
	ix := index.New()
	ix.IngestAll(observations)

	// 3. Resolve each claim through the tolerance ladder
	verifier := verify.NewVerifier(ix, p.config.Tolerance.Pct)
	results := verifier.VerifyAll(claims)

	report := &model.Report{
		DocumentPath: documentPath,
		ResultsDir:   resultsDir,
		CheckedAt:    time.Now().UTC(),
		TolerancePct: p.config.Tolerance.Pct,
		Observations: ix.Len(),
		Sources:      sources,
		Diagnostics:  diagnostics,
		Results:      results,
	}

	// 4. Optional summary, after verification; a failure here is a warning
	if p.summarizer != nil {
		summary, err := p.summarizer.Summarize(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary failed: %v\n", err)
		} else {
			report.LLM = summary
		}
	}

	return report, nil
}
