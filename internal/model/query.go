package model

// Filter operators understood by the filter engine.
const (
	OpEquals       = "equals"
	OpContains     = "contains"
	OpGreater      = "greater"
	OpLess         = "less"
	OpGreaterEqual = "greaterEqual"
	OpLessEqual    = "lessEqual"
)

// Operators lists every valid operator name.
var Operators = []string{OpEquals, OpContains, OpGreater, OpLess, OpGreaterEqual, OpLessEqual}

// ValidOperator reports whether op names a known operator.
func ValidOperator(op string) bool {
	for _, known := range Operators {
		if op == known {
			return true
		}
	}
	return false
}

// FilterCondition is one column/operator/value predicate. ID is used only for
// identity towards consumers, never for evaluation.
type FilterCondition struct {
	ID       string `json:"id"`
	Column   string `json:"column"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// InterpretationResult is the outcome of interpreting one query. It is created
// fresh per submission and never mutated after construction.
type InterpretationResult struct {
	Query           string            `json:"query"`
	Interpretation  string            `json:"interpretation"`
	Filters         []FilterCondition `json:"filters"`
	Success         bool              `json:"success"`
	Error           string            `json:"error,omitempty"`
	Source          string            `json:"source"` // "analysis" or "pattern"
	DatasetID       string            `json:"dataset_id,omitempty"`
	DatasetRevision int64             `json:"dataset_revision,omitempty"`
}

// AggregatedRow is one chart-ready group, keyed by the X-axis column's
// stringified value.
type AggregatedRow struct {
	GroupKey string  `json:"group_key"`
	Value    float64 `json:"value"`
	Count    int     `json:"count"`
	Average  float64 `json:"average"`
}

// QueryJobSpec is the struct for POST /api/v1/queries.
type QueryJobSpec struct {
	DatasetID string `json:"datasetId"`
	Query     string `json:"query"`
	XAxis     string `json:"xAxis"`
	YAxis     string `json:"yAxis"`
	Provider  string `json:"provider,omitempty"`
	Model     string `json:"model,omitempty"`
	Timeout   string `json:"timeout,omitempty"` // e.g., "30s"
}

// QueryResult is what the result endpoint returns for a completed job.
type QueryResult struct {
	JobID          string               `json:"job_id"`
	Interpretation InterpretationResult `json:"interpretation"`
	RowCount       int                  `json:"row_count"` // rows surviving the filters
	Groups         []AggregatedRow      `json:"groups"`
}
