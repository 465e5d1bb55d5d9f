package verify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/paperverify/internal/index"
	"github.com/ppiankov/paperverify/internal/model"
)

func buildIndex(observations ...model.Observation) *index.Index {
	ix := index.New()
	ix.IngestAll(observations)
	return ix
}

func TestVerifier_ExactMatch(t *testing.T) {
	ix := buildIndex(model.Observation{Value: 2.44, SourceFile: "results.json"})
	v := NewVerifier(ix, 1.0)

	res := v.Verify(model.Claim{Value: 2.44})

	assert.Equal(t, model.StatusExactMatch, res.Status)
	require.NotNil(t, res.Matched)
	assert.Equal(t, 2.44, res.Matched.Value)
	require.NotNil(t, res.DifferencePct)
	assert.Equal(t, 0.0, *res.DifferencePct)
	assert.Equal(t, "Exact match in results.json", res.Message)
}

func TestVerifier_CloseMatch(t *testing.T) {
	ix := buildIndex(model.Observation{Value: 2.4404, SourceFile: "results.json"})
	v := NewVerifier(ix, 1.0)

	res := v.Verify(model.Claim{Value: 2.44})

	assert.Equal(t, model.StatusCloseMatch, res.Status)
	require.NotNil(t, res.Matched)
	assert.Equal(t, 2.4404, res.Matched.Value)
	require.NotNil(t, res.DifferencePct)
	assert.InDelta(t, 0.0164, *res.DifferencePct, 0.001)
}

func TestVerifier_Mismatch(t *testing.T) {
	// 2.10 vs 2.30 is an 8.7% difference: outside the close tolerance,
	// inside the fixed 10% wide net
	ix := buildIndex(model.Observation{Value: 2.30, SourceFile: "results.json"})
	v := NewVerifier(ix, 1.0)

	res := v.Verify(model.Claim{Value: 2.10})

	assert.Equal(t, model.StatusMismatch, res.Status)
	require.NotNil(t, res.Matched)
	assert.Equal(t, 2.30, res.Matched.Value)
	require.NotNil(t, res.DifferencePct)
	assert.InDelta(t, 8.6957, *res.DifferencePct, 0.001)
	assert.Contains(t, res.Message, "Mismatch!")
}

func TestVerifier_DifferenceRelativeToMatchedValue(t *testing.T) {
	// Relative to the matched value the difference is 20%; relative to the
	// claim it would be 25%. The matched value is the denominator.
	ix := buildIndex(model.Observation{Value: 5.0, SourceFile: "results.json"})
	v := NewVerifier(ix, 25.0)

	res := v.Verify(model.Claim{Value: 4.0})

	require.NotNil(t, res.DifferencePct)
	assert.InDelta(t, 20.0, *res.DifferencePct, 1e-9)
}

func TestVerifier_Unverified(t *testing.T) {
	// 2.10 vs 2.50 is a 16% difference: beyond even the wide net
	ix := buildIndex(model.Observation{Value: 2.50, SourceFile: "results.json"})
	v := NewVerifier(ix, 1.0)

	res := v.Verify(model.Claim{Value: 2.10})

	assert.Equal(t, model.StatusUnverified, res.Status)
	assert.Nil(t, res.Matched)
	assert.Nil(t, res.DifferencePct)
	assert.Equal(t, "No matching value found in results", res.Message)
}

func TestVerifier_EmptyIndexIsUnverified(t *testing.T) {
	v := NewVerifier(index.New(), 1.0)

	res := v.Verify(model.Claim{Value: 2.44})
	assert.Equal(t, model.StatusUnverified, res.Status)
}

func TestVerifier_ExactTierWinsOverClose(t *testing.T) {
	ix := buildIndex(
		model.Observation{Value: 2.4404, SourceFile: "near.json"},
		model.Observation{Value: 2.44, SourceFile: "exact.json"},
	)
	v := NewVerifier(ix, 1.0)

	res := v.Verify(model.Claim{Value: 2.44})

	assert.Equal(t, model.StatusExactMatch, res.Status)
	require.NotNil(t, res.Matched)
	assert.Equal(t, "exact.json", res.Matched.SourceFile)
}

func TestVerifier_DisambiguatesByMetricHint(t *testing.T) {
	ix := buildIndex(
		model.Observation{Value: 2.44, SourceFile: "a.json", Metric: "rmse"},
		model.Observation{Value: 2.44, SourceFile: "b.json", Metric: "mae"},
	)
	v := NewVerifier(ix, 1.0)

	res := v.Verify(model.Claim{Value: 2.44, MetricHint: "mae"})

	require.NotNil(t, res.Matched)
	assert.Equal(t, "b.json", res.Matched.SourceFile)
}

func TestVerifier_DuplicateObservationsDoNotChangeTier(t *testing.T) {
	ix := buildIndex(
		model.Observation{Value: 2.30, SourceFile: "a.json"},
		model.Observation{Value: 2.30, SourceFile: "a.json"},
		model.Observation{Value: 2.30, SourceFile: "a.json"},
	)
	v := NewVerifier(ix, 1.0)

	res := v.Verify(model.Claim{Value: 2.10})
	assert.Equal(t, model.StatusMismatch, res.Status)
}

func TestVerifier_VerifyAllPreservesOrder(t *testing.T) {
	ix := buildIndex(model.Observation{Value: 2.44, SourceFile: "results.json"})
	v := NewVerifier(ix, 1.0)

	claims := []model.Claim{
		{Value: 2.44, LineNumber: 3},
		{Value: 99.9, LineNumber: 7},
	}
	results := v.VerifyAll(claims)

	require.Len(t, results, 2)
	assert.Equal(t, 3, results[0].Claim.LineNumber)
	assert.Equal(t, model.StatusExactMatch, results[0].Status)
	assert.Equal(t, 7, results[1].Claim.LineNumber)
	assert.Equal(t, model.StatusUnverified, results[1].Status)
}
