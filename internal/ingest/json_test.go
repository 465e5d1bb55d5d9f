package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestJSONAdapter_Load(t *testing.T) {
	adapter := NewJSONAdapter()
	path := writeTestFile(t, t.TempDir(), "xgboost_etth1.json",
		`{"mae": 2.1, "rmse": 3.5, "runs": {"fold1": {"mae": 2.2}}, "samples": [1, 2, 3]}`)

	observations, err := adapter.Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Map keys are walked sorted: mae, rmse, runs, samples
	if len(observations) != 6 {
		t.Fatalf("Expected 6 observations, got %d", len(observations))
	}

	first := observations[0]
	if first.Value != 2.1 || first.Locator != "mae" || first.Metric != "mae" {
		t.Errorf("Unexpected first observation: %+v", first)
	}
	if first.Model != "xgboost" || first.Dataset != "etth1" {
		t.Errorf("Expected filename attribution xgboost/etth1, got %s/%s", first.Model, first.Dataset)
	}

	nested := observations[2]
	if nested.Value != 2.2 || nested.Locator != "runs.fold1.mae" {
		t.Errorf("Unexpected nested observation: %+v", nested)
	}

	if observations[3].Locator != "samples[0]" || observations[3].Value != 1 {
		t.Errorf("Unexpected list observation: %+v", observations[3])
	}
}

func TestJSONAdapter_SkipsNonNumericLeaves(t *testing.T) {
	adapter := NewJSONAdapter()
	path := writeTestFile(t, t.TempDir(), "results.json",
		`{"model": "xgboost", "converged": true, "note": null, "mae": 2.0}`)

	observations, err := adapter.Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(observations) != 1 {
		t.Fatalf("Expected 1 observation, got %d", len(observations))
	}
	if observations[0].Value != 2.0 {
		t.Errorf("Expected value 2.0, got %v", observations[0].Value)
	}
}

func TestJSONAdapter_SkipsLongLists(t *testing.T) {
	adapter := NewJSONAdapter()

	entries := make([]string, 101)
	for i := range entries {
		entries[i] = "1.5"
	}
	content := `{"mae": 2.0, "series": [` + strings.Join(entries, ",") + `]}`
	path := writeTestFile(t, t.TempDir(), "results.json", content)

	observations, err := adapter.Load(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(observations) != 1 {
		t.Errorf("Expected bulk series to be skipped, got %d observations", len(observations))
	}
}

func TestJSONAdapter_MalformedFile(t *testing.T) {
	adapter := NewJSONAdapter()
	path := writeTestFile(t, t.TempDir(), "results.json", `{not json`)

	if _, err := adapter.Load(path); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}
