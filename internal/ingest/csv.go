package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ppiankov/paperverify/internal/model"
)

// CSVAdapter loads numeric cells from CSV result files. The first record is
// treated as the header row; metric attribution comes from the column name.
type CSVAdapter struct{}

// NewCSVAdapter creates a new CSV adapter
func NewCSVAdapter() *CSVAdapter {
	return &CSVAdapter{}
}

func (a *CSVAdapter) Name() string { return "csv" }

func (a *CSVAdapter) Extensions() []string { return []string{".csv"} }

func (a *CSVAdapter) Load(path string) ([]model.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // Tolerate ragged rows

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	var observations []model.Observation

	for rowNum, record := range records[1:] {
		for col, val := range record {
			value, err := strconv.ParseFloat(val, 64)
			if err != nil {
				continue
			}
			colName := fmt.Sprintf("col%d", col)
			if col < len(header) {
				colName = header[col]
			}
			observations = append(observations, model.Observation{
				Value:      value,
				SourceFile: path,
				Locator:    fmt.Sprintf("row_%d.%s", rowNum, colName),
				Metric:     guessMetric(colName),
			})
		}
	}

	return observations, nil
}
