package score

import (
	"strings"

	"github.com/ppiankov/paperverify/internal/model"
)

// Scoring weights for candidate disambiguation
const (
	metricMatchPoints = 10 // Claim's metric hint equals the candidate's metric
	modelMatchPoints  = 10 // Claim's model hint overlaps the candidate's model
	locatorHintPoints = 5  // Metric hint appears in the candidate's locator
)

// Scorer ranks equally-tiered candidate observations for a claim using
// contextual overlap
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Select picks the best candidate for the claim. Candidates must be
// non-empty; a single candidate is returned without scoring. Ties break to
// the first-encountered candidate, so identical inputs always yield the
// identical choice.
func (s *Scorer) Select(claim model.Claim, candidates []model.Observation) model.Observation {
	if len(candidates) == 1 {
		return candidates[0]
	}

	best := candidates[0]
	bestScore := s.score(claim, candidates[0])

	for _, cand := range candidates[1:] {
		if sc := s.score(claim, cand); sc > bestScore {
			best = cand
			bestScore = sc
		}
	}

	return best
}

// score computes the additive contextual-overlap score for one candidate
func (s *Scorer) score(claim model.Claim, cand model.Observation) int {
	score := 0

	if claim.MetricHint != "" && cand.Metric != "" &&
		strings.EqualFold(claim.MetricHint, cand.Metric) {
		score += metricMatchPoints
	}

	if claim.ModelHint != "" && cand.Model != "" {
		claimModel := strings.ToLower(claim.ModelHint)
		candModel := strings.ToLower(cand.Model)
		if strings.Contains(candModel, claimModel) || strings.Contains(claimModel, candModel) {
			score += modelMatchPoints
		}
	}

	if claim.MetricHint != "" &&
		strings.Contains(strings.ToLower(cand.Locator), strings.ToLower(claim.MetricHint)) {
		score += locatorHintPoints
	}

	return score
}
