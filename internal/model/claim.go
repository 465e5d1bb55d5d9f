package model

// Claim represents a numeric assertion extracted from the paper
type Claim struct {
	Value      float64 `json:"value"`                 // Parsed numeric value
	RawText    string  `json:"raw_text"`              // Token as it appears in the document
	LineNumber int     `json:"line_number"`           // 1-based line in the document
	Context    string  `json:"context"`               // Surrounding text used for hint detection
	MetricHint string  `json:"metric_hint,omitempty"` // e.g. "mae", "latency"
	ModelHint  string  `json:"model_hint,omitempty"`  // e.g. "xgboost", "chronos-tiny"
}
