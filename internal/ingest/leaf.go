package ingest

import (
	"fmt"
	"sort"

	"github.com/ppiankov/paperverify/internal/model"
)

// maxListLen guards against descending into bulk data arrays (raw series,
// per-sample outputs); summary metrics never live in lists that long
const maxListLen = 100

// walkLeaves recursively collects numeric leaf values from decoded JSON or
// YAML data. Map keys are visited in sorted order so the resulting
// observation order is stable across runs.
func walkLeaves(data any, sourceFile, path, modelName, dataset string, out *[]model.Observation) {
	switch v := data.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			childPath := k
			if path != "" {
				childPath = path + "." + k
			}
			walkLeaves(v[k], sourceFile, childPath, modelName, dataset, out)
		}
	case []any:
		if len(v) > maxListLen {
			return
		}
		for i, item := range v {
			walkLeaves(item, sourceFile, fmt.Sprintf("%s[%d]", path, i), modelName, dataset, out)
		}
	default:
		if value, ok := numericValue(data); ok {
			*out = append(*out, model.Observation{
				Value:      value,
				SourceFile: sourceFile,
				Locator:    path,
				Model:      modelName,
				Dataset:    dataset,
				Metric:     guessMetric(path),
			})
		}
	}
}

// numericValue converts the numeric leaf types produced by encoding/json
// and yaml.v3 to float64
func numericValue(data any) (float64, bool) {
	switch v := data.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
