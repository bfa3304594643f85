package query

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-table-insights/internal/model"
)

type stubAnalyzer struct {
	resp *model.AnalyzeResponse
	err  error
	got  model.AnalyzeRequest
}

func (s *stubAnalyzer) AnalyzeSearchQuery(_ context.Context, req model.AnalyzeRequest) (*model.AnalyzeResponse, error) {
	s.got = req
	return s.resp, s.err
}

func rawFilters(t *testing.T, filters string) json.RawMessage {
	t.Helper()
	return json.RawMessage(filters)
}

func TestInterpretAnalysisSuccess(t *testing.T) {
	stub := &stubAnalyzer{resp: &model.AnalyzeResponse{
		Success: true,
		Data: &model.SearchAnalysis{
			Interpretation: "Rows where sales exceed 15000.",
			Filters:        rawFilters(t, `[{"column":"sales","operator":"greater","value":15000}]`),
		},
	}}
	it := NewInterpreter(stub, "deepseek", "chat")

	res := it.Interpret(context.Background(), "sales > 15000", []string{"sales"}, nil)
	require.True(t, res.Success)
	assert.Equal(t, "analysis", res.Source)
	assert.Equal(t, "Rows where sales exceed 15000.", res.Interpretation)
	require.Len(t, res.Filters, 1)
	assert.Equal(t, "sales", res.Filters[0].Column)
	assert.Equal(t, model.OpGreater, res.Filters[0].Operator)
	assert.Equal(t, "15000", res.Filters[0].Value)
	assert.NotEmpty(t, res.Filters[0].ID)

	assert.Equal(t, "deepseek", stub.got.Provider)
	assert.Equal(t, "chat", stub.got.Model)
	assert.Equal(t, []string{"sales"}, stub.got.AvailableColumns)
}

func TestInterpretNilAnalyzerFallsBack(t *testing.T) {
	it := NewInterpreter(nil, "", "")

	res := it.Interpret(context.Background(), "sales > 100", []string{"sales"}, nil)
	require.True(t, res.Success)
	assert.Equal(t, "pattern", res.Source)
	require.Len(t, res.Filters, 1)
	assert.Equal(t, model.OpGreater, res.Filters[0].Operator)
}

func TestInterpretTransportErrorFallsBack(t *testing.T) {
	stub := &stubAnalyzer{err: errors.New("connection refused")}
	it := NewInterpreter(stub, "deepseek", "")

	res := it.Interpret(context.Background(), "sales > 100", []string{"sales"}, nil)
	require.True(t, res.Success)
	assert.Equal(t, "pattern", res.Source)
	require.Len(t, res.Filters, 1)
}

func TestInterpretServiceFailureCarriesReason(t *testing.T) {
	stub := &stubAnalyzer{resp: &model.AnalyzeResponse{Success: false, Error: "provider quota exceeded"}}
	it := NewInterpreter(stub, "deepseek", "")

	res := it.Interpret(context.Background(), "gibberish query", []string{"sales"}, nil)
	assert.False(t, res.Success)
	assert.Equal(t, "provider quota exceeded", res.Error)
	assert.NotNil(t, res.Filters)
	assert.Empty(t, res.Filters)
}

func TestInterpretMalformedFilterElementFallsBack(t *testing.T) {
	stub := &stubAnalyzer{resp: &model.AnalyzeResponse{
		Success: true,
		Data: &model.SearchAnalysis{
			Filters: rawFilters(t, `[{"column":"","operator":"greater","value":1}]`),
		},
	}}
	it := NewInterpreter(stub, "deepseek", "")

	res := it.Interpret(context.Background(), "sales > 100", []string{"sales"}, nil)
	require.True(t, res.Success)
	assert.Equal(t, "pattern", res.Source)
}

func TestInterpretZeroServiceFiltersFallsBack(t *testing.T) {
	stub := &stubAnalyzer{resp: &model.AnalyzeResponse{
		Success: true,
		Data:    &model.SearchAnalysis{Interpretation: "nothing to filter", Filters: rawFilters(t, `[]`)},
	}}
	it := NewInterpreter(stub, "deepseek", "")

	res := it.Interpret(context.Background(), "sales > 100", []string{"sales"}, nil)
	require.True(t, res.Success)
	assert.Equal(t, "pattern", res.Source)
}

func TestInterpretNeverErrors(t *testing.T) {
	// No analyzer and no interpretable query: still a well-formed result.
	it := NewInterpreter(nil, "", "")

	res := it.Interpret(context.Background(), "what is the meaning of life", []string{"sales"}, nil)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Interpretation)
	assert.NotEmpty(t, res.Error)
	assert.NotNil(t, res.Filters)
	assert.Empty(t, res.Filters)
}

func TestInterpretTruncatesSample(t *testing.T) {
	stub := &stubAnalyzer{resp: &model.AnalyzeResponse{
		Success: true,
		Data: &model.SearchAnalysis{
			Filters: rawFilters(t, `[{"column":"sales","operator":"greater","value":"1"}]`),
		},
	}}
	it := NewInterpreter(stub, "deepseek", "")

	sample := []model.Record{{"a": "1"}, {"a": "2"}, {"a": "3"}}
	it.Interpret(context.Background(), "sales > 1", []string{"sales"}, sample)
	assert.Len(t, stub.got.SampleData, 2)
}

func TestNormalizeFiltersNullAndNonList(t *testing.T) {
	filters, err := normalizeFilters(nil)
	require.NoError(t, err)
	assert.Nil(t, filters)

	filters, err = normalizeFilters(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Nil(t, filters)

	filters, err = normalizeFilters(json.RawMessage(`{"column":"sales"}`))
	require.NoError(t, err)
	assert.Nil(t, filters)
}

func TestNormalizeFiltersValueKinds(t *testing.T) {
	filters, err := normalizeFilters(json.RawMessage(
		`[{"column":"a","operator":"equals","value":"North"},` +
			`{"column":"b","operator":"greater","value":99.5},` +
			`{"column":"c","operator":"equals","value":true}]`))
	require.NoError(t, err)
	require.Len(t, filters, 3)
	assert.Equal(t, "North", filters[0].Value)
	assert.Equal(t, "99.5", filters[1].Value)
	assert.Equal(t, "true", filters[2].Value)
}

func TestNormalizeFiltersNullValueInvalidates(t *testing.T) {
	_, err := normalizeFilters(json.RawMessage(`[{"column":"a","operator":"equals","value":null}]`))
	assert.Error(t, err)
}
