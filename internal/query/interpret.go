package query

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"go-table-insights/internal/model"
)

// How many sample rows travel to the analysis service at most.
const maxSampleRows = 2

// Interpretation texts for the two fallback outcomes.
const (
	fallbackNote = "Matched filters directly from the query text."
	guidanceText = `Could not interpret the query. Try something like "sales > 15000" or "status contains active".`
)

// Analyzer is the slice of the analysis service the interpreter needs.
type Analyzer interface {
	AnalyzeSearchQuery(ctx context.Context, req model.AnalyzeRequest) (*model.AnalyzeResponse, error)
}

// Interpreter turns a free-form query into filter conditions: it asks the
// analysis service first and degrades to the pattern matcher on any failure.
// A nil analyzer means pattern matching only.
type Interpreter struct {
	analyzer Analyzer
	provider string
	model    string
}

// NewInterpreter builds an interpreter. provider and modelName are forwarded
// to the analysis service untouched.
func NewInterpreter(analyzer Analyzer, provider, modelName string) *Interpreter {
	return &Interpreter{analyzer: analyzer, provider: provider, model: modelName}
}

// Interpret resolves query against columns. It never returns an error: every
// path, including transport failures and malformed service responses, ends in
// a well-formed InterpretationResult.
func (it *Interpreter) Interpret(ctx context.Context, query string, columns []string, sample []model.Record) model.InterpretationResult {
	if len(sample) > maxSampleRows {
		sample = sample[:maxSampleRows]
	}

	if it.analyzer == nil {
		return it.fallback(query, columns, "analysis service not configured")
	}

	resp, err := it.analyzer.AnalyzeSearchQuery(ctx, model.AnalyzeRequest{
		Query:            query,
		AvailableColumns: columns,
		SampleData:       sample,
		Provider:         it.provider,
		Model:            it.model,
	})
	if err != nil {
		slog.Warn("analysis call failed, using pattern fallback", "query", query, "error", err)
		return it.fallback(query, columns, err.Error())
	}
	if !resp.Success {
		reason := resp.Error
		if reason == "" {
			reason = "analysis service reported failure"
		}
		return it.fallback(query, columns, reason)
	}
	if resp.Data == nil {
		return it.fallback(query, columns, "analysis response missing payload")
	}

	filters, err := normalizeFilters(resp.Data.Filters)
	if err != nil {
		slog.Warn("analysis returned malformed filters, using pattern fallback", "query", query, "error", err)
		return it.fallback(query, columns, err.Error())
	}
	if len(filters) == 0 {
		return it.fallback(query, columns, "analysis returned no filters")
	}

	interpretation := resp.Data.Interpretation
	if interpretation == "" {
		interpretation = fmt.Sprintf("Applied %d filter(s) from the analysis service.", len(filters))
	}
	return model.InterpretationResult{
		Query:          query,
		Interpretation: interpretation,
		Filters:        filters,
		Success:        true,
		Source:         "analysis",
	}
}

// fallback runs the pattern matcher. One or more matches become a successful
// result; none is terminal for the query and carries the guidance text plus
// the reason the service path failed.
func (it *Interpreter) fallback(query string, columns []string, reason string) model.InterpretationResult {
	filters := Match(query, columns)
	if len(filters) > 0 {
		return model.InterpretationResult{
			Query:          query,
			Interpretation: fallbackNote,
			Filters:        filters,
			Success:        true,
			Source:         "pattern",
		}
	}
	return model.InterpretationResult{
		Query:          query,
		Interpretation: guidanceText,
		Filters:        []model.FilterCondition{},
		Success:        false,
		Error:          reason,
		Source:         "pattern",
	}
}

// normalizeFilters validates the service's filters field. A missing or
// non-list field substitutes an empty list; an element with an empty column or
// operator or an undefined value invalidates the response wholesale. Accepted
// elements get fresh ids so uniqueness never depends on the service.
func normalizeFilters(raw json.RawMessage) ([]model.FilterCondition, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var elements []model.ServiceFilter
	if err := json.Unmarshal(raw, &elements); err != nil {
		// Not a list: substitute empty.
		return nil, nil
	}

	filters := make([]model.FilterCondition, 0, len(elements))
	for i, el := range elements {
		if el.Column == "" || el.Operator == "" || el.Value == nil || string(*el.Value) == "null" {
			return nil, fmt.Errorf("analysis filter %d is missing column, operator, or value", i)
		}
		filters = append(filters, model.FilterCondition{
			ID:       uuid.New().String(),
			Column:   el.Column,
			Operator: el.Operator,
			Value:    stringifyValue(*el.Value),
		})
	}
	return filters, nil
}

// stringifyValue renders a raw JSON filter value ("North", 100, 99.5, true)
// as the engine's string form.
func stringifyValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
