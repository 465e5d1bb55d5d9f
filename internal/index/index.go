package index

import (
	"math"

	"github.com/ppiankov/paperverify/internal/model"
)

// keyPrecision is the number of fractional digits used for exact-match keys
const keyPrecision = 1e6

// Index holds all normalized observations and supports exact (rounded-key)
// and tolerance-bounded fuzzy lookup. It is built once, in full, before any
// verification query runs, and is read-only afterwards.
type Index struct {
	observations []model.Observation
	exact        map[float64][]model.Observation
}

// New creates an empty index
func New() *Index {
	return &Index{
		exact: make(map[float64][]model.Observation),
	}
}

// Key returns the exact-lookup key for a value: the value rounded to six
// fractional digits
func Key(value float64) float64 {
	return math.Round(value*keyPrecision) / keyPrecision
}

// Ingest appends an observation and indexes it under its rounded key.
// Observations sharing a key are preserved in insertion order.
func (ix *Index) Ingest(obs model.Observation) {
	ix.observations = append(ix.observations, obs)
	k := Key(obs.Value)
	ix.exact[k] = append(ix.exact[k], obs)
}

// IngestAll ingests a batch of observations in order
func (ix *Index) IngestAll(observations []model.Observation) {
	for _, obs := range observations {
		ix.Ingest(obs)
	}
}

// Rebuild reconstructs the exact-match buckets from the observation
// collection. Rebuilding from the same collection always yields the same
// buckets in the same order.
func (ix *Index) Rebuild() {
	ix.exact = make(map[float64][]model.Observation)
	for _, obs := range ix.observations {
		k := Key(obs.Value)
		ix.exact[k] = append(ix.exact[k], obs)
	}
}

// ExactMatch returns all observations sharing the rounded key of value,
// in insertion order. Empty if none.
func (ix *Index) ExactMatch(value float64) []model.Observation {
	return ix.exact[Key(value)]
}

// FuzzyMatch returns all observations within tolerancePct of value, in
// insertion order. The relative difference is taken against the observed
// value, so zero-valued observations are never candidates.
//
// This is a full linear scan: fine at the corpus sizes of this domain
// (hundreds to low thousands of values), a known limitation beyond that.
func (ix *Index) FuzzyMatch(value float64, tolerancePct float64) []model.Observation {
	var matches []model.Observation
	for _, obs := range ix.observations {
		if obs.Value == 0 {
			continue
		}
		diffPct := math.Abs(obs.Value-value) / math.Abs(obs.Value) * 100
		if diffPct <= tolerancePct {
			matches = append(matches, obs)
		}
	}
	return matches
}

// Len returns the number of observations held
func (ix *Index) Len() int {
	return len(ix.observations)
}

// Observations returns the full ordered observation collection
func (ix *Index) Observations() []model.Observation {
	return ix.observations
}
