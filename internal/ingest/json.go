package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ppiankov/paperverify/internal/model"
)

// JSONAdapter loads numeric leaves from JSON result files
type JSONAdapter struct{}

// NewJSONAdapter creates a new JSON adapter
func NewJSONAdapter() *JSONAdapter {
	return &JSONAdapter{}
}

func (a *JSONAdapter) Name() string { return "json" }

func (a *JSONAdapter) Extensions() []string { return []string{".json"} }

// Load decodes the file and walks every numeric leaf, attributing model and
// dataset from the filename
func (a *JSONAdapter) Load(path string) ([]model.Observation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	modelName, dataset := parseFilename(path)

	var observations []model.Observation
	walkLeaves(data, path, "", modelName, dataset, &observations)
	return observations, nil
}
