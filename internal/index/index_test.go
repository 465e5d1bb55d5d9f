package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/paperverify/internal/model"
)

func TestKey_Rounding(t *testing.T) {
	assert.Equal(t, 2.44, Key(2.44))
	assert.Equal(t, 2.0, Key(2.0000004))
	assert.Equal(t, 1.234568, Key(1.23456789))
	assert.Equal(t, -2.44, Key(-2.44))
}

func TestIndex_ExactMatch(t *testing.T) {
	ix := New()
	ix.Ingest(model.Observation{Value: 2.44, SourceFile: "results.json"})

	matches := ix.ExactMatch(2.44)
	require.Len(t, matches, 1)
	assert.Equal(t, 2.44, matches[0].Value)
	assert.Equal(t, "results.json", matches[0].SourceFile)

	// Sub-precision noise rounds to the same key
	assert.Len(t, ix.ExactMatch(2.4400001), 1)

	assert.Empty(t, ix.ExactMatch(2.45))
}

func TestIndex_BucketsPreserveInsertionOrder(t *testing.T) {
	ix := New()
	ix.Ingest(model.Observation{Value: 2.44, SourceFile: "a.json"})
	ix.Ingest(model.Observation{Value: 2.44, SourceFile: "b.json"})
	ix.Ingest(model.Observation{Value: 2.44, SourceFile: "c.json"})

	matches := ix.ExactMatch(2.44)
	require.Len(t, matches, 3)
	assert.Equal(t, "a.json", matches[0].SourceFile)
	assert.Equal(t, "b.json", matches[1].SourceFile)
	assert.Equal(t, "c.json", matches[2].SourceFile)
}

func TestIndex_FuzzyMatch(t *testing.T) {
	ix := New()
	ix.Ingest(model.Observation{Value: 2.4404, SourceFile: "results.json"})

	// 2.44 vs 2.4404 differs by about 0.016% of the observed value
	matches := ix.FuzzyMatch(2.44, 1.0)
	require.Len(t, matches, 1)
	assert.Equal(t, 2.4404, matches[0].Value)

	assert.Empty(t, ix.FuzzyMatch(2.44, 0.01))
	assert.Empty(t, ix.FuzzyMatch(5.0, 1.0))
}

func TestIndex_FuzzyMatch_SkipsZeroObservations(t *testing.T) {
	ix := New()
	ix.Ingest(model.Observation{Value: 0, SourceFile: "results.json"})

	assert.Empty(t, ix.FuzzyMatch(0.0001, 100.0))
}

func TestIndex_FuzzyMatch_WiderToleranceIsSuperset(t *testing.T) {
	ix := New()
	for _, v := range []float64{2.10, 2.12, 2.30, 2.50, 9.99} {
		ix.Ingest(model.Observation{Value: v})
	}

	tight := ix.FuzzyMatch(2.10, 1.0)
	wide := ix.FuzzyMatch(2.10, 10.0)

	require.NotEmpty(t, tight)
	for _, obs := range tight {
		assert.Contains(t, wide, obs)
	}
	assert.Greater(t, len(wide), len(tight))
}

func TestIndex_RebuildIsIdempotent(t *testing.T) {
	ix := New()
	ix.IngestAll([]model.Observation{
		{Value: 2.44, SourceFile: "a.json"},
		{Value: 2.44, SourceFile: "b.json"},
		{Value: 3.51, SourceFile: "c.json"},
	})

	before := ix.ExactMatch(2.44)
	ix.Rebuild()
	after := ix.ExactMatch(2.44)

	assert.Equal(t, before, after)
	assert.Equal(t, 3, ix.Len())
}

func TestIndex_ObservationsKeepIngestOrder(t *testing.T) {
	ix := New()
	ix.IngestAll([]model.Observation{
		{Value: 3.0, SourceFile: "a.json"},
		{Value: 1.0, SourceFile: "b.json"},
		{Value: 2.0, SourceFile: "c.json"},
	})

	obs := ix.Observations()
	require.Len(t, obs, 3)
	assert.Equal(t, []float64{3.0, 1.0, 2.0}, []float64{obs[0].Value, obs[1].Value, obs[2].Value})
}
