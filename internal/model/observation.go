package model

// Observation represents a numeric value loaded from a result source
type Observation struct {
	Value      float64 `json:"value"`
	SourceFile string  `json:"source_file"`       // File the value came from
	Locator    string  `json:"locator"`           // Position within the source (JSON path, table cell, ...)
	Model      string  `json:"model,omitempty"`   // Best-effort attribution from the filename
	Dataset    string  `json:"dataset,omitempty"` // Best-effort attribution from the filename
	Metric     string  `json:"metric,omitempty"`  // Guessed from the locator or column name
}

// Diagnostic records a non-fatal ingestion failure for one source
type Diagnostic struct {
	Source string `json:"source"`
	Detail string `json:"detail"`
}
