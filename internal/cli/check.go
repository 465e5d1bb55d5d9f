package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/paperverify/internal/model"
	"github.com/ppiankov/paperverify/internal/pipeline"
)

var (
	resultsDir string
	tolerance  float64
	reportPath string
	quiet      bool
	noCache    bool
	llmEnabled bool
	llmModel   string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <paper>",
	Short: "Check a paper's numeric claims against result files",
	Long: `Check extracts every numeric claim from the paper and resolves it against
the values found in the results directory:
- Exact match: the value appears verbatim in the results
- Close match: within the configured tolerance
- Mismatch: evidence exists but outside 10% of any recorded value
- Unverified: no evidence at any tier

Exits with code 1 if any claim is a mismatch.

Example:
  paperverify check paper.tex --results ./results
  paperverify check paper.tex -r ./results -t 0.5 -o report.md
  paperverify check paper.tex -r ./results --llm --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVarP(&resultsDir, "results", "r", "", "path to results directory (required)")
	checkCmd.Flags().Float64VarP(&tolerance, "tolerance", "t", 1.0, "tolerance percentage for close matches")
	checkCmd.Flags().StringVarP(&reportPath, "report", "o", "", "save markdown report to file")
	checkCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only show mismatches")
	checkCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the parsed-observation cache")
	checkCmd.Flags().BoolVar(&llmEnabled, "llm", false, "append an LLM summary to the report")
	checkCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	_ = checkCmd.MarkFlagRequired("results")
}

func runCheck(cmd *cobra.Command, args []string) error {
	paper := args[0]

	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Paper:     %s\n", paper)
		fmt.Fprintf(os.Stderr, "Results:   %s\n", resultsDir)
		fmt.Fprintf(os.Stderr, "Tolerance: %.2f%%\n", cfg.Tolerance.Pct)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)

	report, err := p.Check(context.Background(), paper, resultsDir)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	printDiagnostics(report)

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d numeric claims\n", len(report.Results))
		fmt.Fprintf(os.Stderr, "✓ Indexed %d values from %d sources\n", report.Observations, report.Sources)
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(quiet)
	renderer.RenderConsole(os.Stdout, report)

	if reportPath != "" {
		if err := renderer.SaveMarkdown(report, reportPath); err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		fmt.Fprintf(os.Stderr, "\nReport saved to %s\n", reportPath)
	}

	if mismatches := report.Summarize().Mismatch; mismatches > 0 {
		return fmt.Errorf("%d claim(s) mismatch the recorded results", mismatches)
	}
	return nil
}

// buildConfig assembles the runtime config from defaults, viper, and flags
func buildConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg := model.DefaultConfig()

	// Flags win over config file values
	cfg.Tolerance.Pct = viper.GetFloat64("tolerance.pct")
	if cmd.Flags().Changed("tolerance") {
		cfg.Tolerance.Pct = tolerance
	}
	if viper.IsSet("concurrency.workers") {
		cfg.Concurrency.Workers = viper.GetInt("concurrency.workers")
	}

	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.Quiet = quiet

	if llmEnabled {
		cfg.LLM.Provider = "openai"
		cfg.LLM.Model = llmModel
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	}

	return cfg, nil
}

// printDiagnostics reports skipped result sources as warnings
func printDiagnostics(report *model.Report) {
	if quiet {
		return
	}
	for _, d := range report.Diagnostics {
		fmt.Fprintf(os.Stderr, "Warning: could not load %s: %s\n", d.Source, d.Detail)
	}
}
