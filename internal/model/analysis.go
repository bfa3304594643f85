package model

import "encoding/json"

// AnalyzeRequest is the payload sent to the analysis service.
type AnalyzeRequest struct {
	Query            string         `json:"query"`
	AvailableColumns []string       `json:"available_columns"`
	SampleData       []Record       `json:"sample_data"`
	Provider         string         `json:"provider,omitempty"`
	Model            string         `json:"model,omitempty"`
	Profile          map[string]any `json:"profile,omitempty"`
}

// AnalyzeResponse is the analysis service envelope.
type AnalyzeResponse struct {
	Success bool            `json:"success"`
	Data    *SearchAnalysis `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// SearchAnalysis is the payload of a successful search-query analysis.
// Filters stays raw so a missing or non-list field can be told apart from an
// empty one during validation.
type SearchAnalysis struct {
	Interpretation string          `json:"interpretation"`
	Filters        json.RawMessage `json:"filters"`
}

// ServiceFilter is one filter element as the analysis service sends it. Value
// stays raw because the service may send strings or bare numbers.
type ServiceFilter struct {
	Column   string           `json:"column"`
	Operator string           `json:"operator"`
	Value    *json.RawMessage `json:"value"`
}
