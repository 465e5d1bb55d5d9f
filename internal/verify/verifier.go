package verify

import (
	"fmt"
	"math"

	"github.com/ppiankov/paperverify/internal/index"
	"github.com/ppiankov/paperverify/internal/model"
	"github.com/ppiankov/paperverify/internal/score"
)

// wideTolerancePct is the fixed tolerance of the mismatch tier. A claim
// landing only here has evidence, but outside acceptable bounds; it is
// independent of the configured close-match tolerance.
const wideTolerancePct = 10.0

// Verifier resolves claims against the value index through a three-tier
// tolerance ladder: exact, close (configured tolerance), wide (fixed 10%).
// The first satisfied tier is terminal; no tier raises.
type Verifier struct {
	index        *index.Index
	scorer       *score.Scorer
	tolerancePct float64
}

// NewVerifier creates a verifier over a fully built index
func NewVerifier(ix *index.Index, tolerancePct float64) *Verifier {
	return &Verifier{
		index:        ix,
		scorer:       score.NewScorer(),
		tolerancePct: tolerancePct,
	}
}

// Verify classifies a single claim
func (v *Verifier) Verify(claim model.Claim) model.VerificationResult {
	// Tier 1: exact
	if exact := v.index.ExactMatch(claim.Value); len(exact) > 0 {
		best := v.scorer.Select(claim, exact)
		zero := 0.0
		return model.VerificationResult{
			Claim:         claim,
			Status:        model.StatusExactMatch,
			Matched:       &best,
			DifferencePct: &zero,
			Message:       fmt.Sprintf("Exact match in %s", best.SourceFile),
		}
	}

	// Tier 2: within configured tolerance
	if closeMatches := v.index.FuzzyMatch(claim.Value, v.tolerancePct); len(closeMatches) > 0 {
		best := v.scorer.Select(claim, closeMatches)
		diff := differencePct(claim, best)
		return model.VerificationResult{
			Claim:         claim,
			Status:        model.StatusCloseMatch,
			Matched:       &best,
			DifferencePct: &diff,
			Message:       fmt.Sprintf("Close match (%.1f%% diff) in %s", diff, best.SourceFile),
		}
	}

	// Tier 3: wide net, evidence outside acceptable tolerance
	if wide := v.index.FuzzyMatch(claim.Value, wideTolerancePct); len(wide) > 0 {
		best := v.scorer.Select(claim, wide)
		diff := differencePct(claim, best)
		return model.VerificationResult{
			Claim:         claim,
			Status:        model.StatusMismatch,
			Matched:       &best,
			DifferencePct: &diff,
			Message:       fmt.Sprintf("Mismatch! Actual value is %v (%.1f%% diff)", best.Value, diff),
		}
	}

	return model.VerificationResult{
		Claim:   claim,
		Status:  model.StatusUnverified,
		Message: "No matching value found in results",
	}
}

// VerifyAll classifies each claim independently, preserving order
func (v *Verifier) VerifyAll(claims []model.Claim) []model.VerificationResult {
	results := make([]model.VerificationResult, 0, len(claims))
	for _, c := range claims {
		results = append(results, v.Verify(c))
	}
	return results
}

// differencePct computes the relative difference between claim and match.
// The denominator is the matched observation's value, not the claim's;
// downstream consumers depend on this exact formula.
func differencePct(claim model.Claim, matched model.Observation) float64 {
	return math.Abs(matched.Value-claim.Value) / math.Abs(matched.Value) * 100
}
