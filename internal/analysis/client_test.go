package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-table-insights/internal/model"
)

func TestAnalyzeSearchQuery(t *testing.T) {
	var got model.AnalyzeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/analyze-search-query", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"interpretation":"High sales rows.","filters":[{"column":"sales","operator":"greater","value":15000}]}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	resp, err := c.AnalyzeSearchQuery(context.Background(), model.AnalyzeRequest{
		Query:            "sales > 15000",
		AvailableColumns: []string{"sales"},
		Provider:         "deepseek",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Data)
	assert.True(t, resp.Success)
	assert.Equal(t, "High sales rows.", resp.Data.Interpretation)

	assert.Equal(t, "sales > 15000", got.Query)
	assert.Equal(t, []string{"sales"}, got.AvailableColumns)
	assert.Equal(t, "deepseek", got.Provider)
}

func TestAnalyzeSearchQueryBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.AnalyzeSearchQuery(context.Background(), model.AnalyzeRequest{Query: "q"})
	assert.Error(t, err)
}

func TestAnalyzeSearchQueryBadBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.AnalyzeSearchQuery(context.Background(), model.AnalyzeRequest{Query: "q"})
	assert.Error(t, err)
}

func TestAnalyzeSearchQueryUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.AnalyzeSearchQuery(context.Background(), model.AnalyzeRequest{Query: "q"})
	assert.Error(t, err)
}
