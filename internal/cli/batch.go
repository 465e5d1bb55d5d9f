package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/paperverify/internal/model"
	"github.com/ppiankov/paperverify/internal/pipeline"
	"github.com/ppiankov/paperverify/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Check multiple papers against one results directory in parallel",
	Long: `Batch reads paper paths from the input file (one per line, # comments
allowed) and checks each against the same results directory. Documents are
processed concurrently; result files shared between papers are parsed once
thanks to the observation cache. One markdown report is written per paper.

Example:
  paperverify batch papers.txt --results ./results
  paperverify batch papers.txt -r ./results --concurrency 8 --output-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&resultsDir, "results", "r", "", "path to results directory (required)")
	batchCmd.Flags().Float64VarP(&tolerance, "tolerance", "t", 1.0, "tolerance percentage for close matches")
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: CPU count)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./paperverify-reports", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-observation cache")
	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "append an LLM summary to each report")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	_ = batchCmd.MarkFlagRequired("results")
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	documents, err := readDocumentList(args[0])
	if err != nil {
		return fmt.Errorf("read document list: %w", err)
	}
	if len(documents) == 0 {
		return fmt.Errorf("no documents listed in %s", args[0])
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Checking %d papers with %d workers...\n\n", len(documents), cfg.Concurrency.Workers)

	// One pipeline for the whole batch: the observation cache makes shared
	// result files parse once
	p := pipeline.NewPipeline(cfg)
	pool := worker.NewPool(cfg.Concurrency.Workers, func(ctx context.Context, doc string) (*model.Report, error) {
		return p.Check(ctx, doc, resultsDir)
	})

	results := pool.Process(ctx, documents)

	renderer := pipeline.NewRenderer(quiet)
	failed, mismatched := 0, 0

	for _, res := range results {
		if res.Err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.DocumentPath, res.Err)
			continue
		}

		summary := res.Report.Summarize()
		if summary.Mismatch > 0 {
			mismatched++
		}

		reportFile := filepath.Join(outputDir, documentStem(res.DocumentPath)+".md")
		if err := renderer.SaveMarkdown(res.Report, reportFile); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: save report: %v\n", res.DocumentPath, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (exact: %d, close: %d, mismatch: %d, unverified: %d)\n",
			res.DocumentPath, summary.Exact, summary.Close, summary.Mismatch, summary.Unverified)
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d | Failed: %d | With mismatches: %d | Reports: %s\n",
		len(results), failed, mismatched, outputDir)

	if failed > 0 || mismatched > 0 {
		return fmt.Errorf("%d paper(s) failed, %d with mismatches", failed, mismatched)
	}
	return nil
}

// readDocumentList reads paper paths from a file, one per line
func readDocumentList(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var documents []string
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		documents = append(documents, line)
	}
	return documents, nil
}

// documentStem returns a filename-safe stem for a document path
func documentStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
