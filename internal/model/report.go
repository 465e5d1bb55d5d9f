package model

import "time"

// Report represents the complete verification report for one document
type Report struct {
	DocumentPath string    `json:"document_path"`
	ResultsDir   string    `json:"results_dir"`
	CheckedAt    time.Time `json:"checked_at"`
	TolerancePct float64   `json:"tolerance_pct"`

	Observations int          `json:"observations"` // Values loaded into the index
	Sources      int          `json:"sources"`      // Result files ingested successfully
	Diagnostics  []Diagnostic `json:"diagnostics,omitempty"`

	Results []VerificationResult `json:"results"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional summary (never affects statuses)
}

// Summary holds the per-status counts for a report
type Summary struct {
	Total      int `json:"total"`
	Exact      int `json:"exact"`
	Close      int `json:"close"`
	Mismatch   int `json:"mismatch"`
	Unverified int `json:"unverified"`
}

// Summarize tallies the results by status
func (r *Report) Summarize() Summary {
	s := Summary{Total: len(r.Results)}
	for _, res := range r.Results {
		switch res.Status {
		case StatusExactMatch:
			s.Exact++
		case StatusCloseMatch:
			s.Close++
		case StatusMismatch:
			s.Mismatch++
		default:
			s.Unverified++
		}
	}
	return s
}

// LLMSummary contains the optional model-generated prose summary.
// It is produced after verification and can never change a classification.
type LLMSummary struct {
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	SummaryMD string `json:"summary_md,omitempty"`
}
