package model

// Status classifies the outcome of verifying one claim.
// The four values are mutually exclusive and exhaustive.
type Status string

const (
	StatusExactMatch Status = "exact"      // Claim value found verbatim in the results
	StatusCloseMatch Status = "close"      // Within the configured tolerance
	StatusMismatch   Status = "mismatch"   // Evidence exists but outside acceptable tolerance
	StatusUnverified Status = "unverified" // No evidence at any tier
)

// VerificationResult is produced exactly once per claim.
// Matched and DifferencePct are set only for statuses where they are
// semantically defined (never for Unverified).
type VerificationResult struct {
	Claim         Claim        `json:"claim"`
	Status        Status       `json:"status"`
	Matched       *Observation `json:"matched,omitempty"`
	DifferencePct *float64     `json:"difference_pct,omitempty"`
	Message       string       `json:"message"`
}
