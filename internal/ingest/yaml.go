package ingest

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ppiankov/paperverify/internal/model"
)

// YAMLAdapter loads numeric leaves from YAML result files
type YAMLAdapter struct{}

// NewYAMLAdapter creates a new YAML adapter
func NewYAMLAdapter() *YAMLAdapter {
	return &YAMLAdapter{}
}

func (a *YAMLAdapter) Name() string { return "yaml" }

func (a *YAMLAdapter) Extensions() []string { return []string{".yaml", ".yml"} }

// Load decodes the file and walks every numeric leaf, attributing model and
// dataset from the filename. An empty document yields no observations.
func (a *YAMLAdapter) Load(path string) ([]model.Observation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	modelName, dataset := parseFilename(path)

	var observations []model.Observation
	walkLeaves(data, path, "", modelName, dataset, &observations)
	return observations, nil
}
