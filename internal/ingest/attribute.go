package ingest

import (
	"path/filepath"
	"strings"
)

// Fixed vocabularies used for filename attribution
var (
	knownModels   = []string{"xgboost", "arima", "chronos", "moirai", "dlinear", "patchtst", "timesfm"}
	knownDatasets = []string{"etth1", "etth2", "exchange", "traffic", "weather"}
)

// parseFilename extracts model and dataset attribution from a filename like
// "xgboost_etth1.json". Tokens are matched against the fixed vocabularies;
// the last matching token per category wins.
func parseFilename(path string) (modelName, dataset string) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	tokens := strings.Split(strings.ReplaceAll(strings.ToLower(stem), "-", "_"), "_")

	for _, token := range tokens {
		for _, m := range knownModels {
			if strings.Contains(token, m) {
				modelName = token
			}
		}
		for _, d := range knownDatasets {
			if strings.Contains(token, d) {
				dataset = token
			}
		}
	}

	return modelName, dataset
}

// guessMetric guesses the metric type from a locator path or column name
func guessMetric(locator string) string {
	lower := strings.ToLower(locator)
	for _, metric := range []string{"mae", "rmse", "smape", "latency", "vram"} {
		if strings.Contains(lower, metric) {
			return metric
		}
	}
	return ""
}
