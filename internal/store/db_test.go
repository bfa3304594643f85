package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-table-insights/internal/model"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { Close() })
}

func TestSaveAndListDatasets(t *testing.T) {
	setupTestDB(t)

	d := &model.Dataset{
		ID:       "ds-1",
		Name:     "sales",
		Columns:  []string{"region", "sales"},
		Rows:     [][]string{{"north", "100"}},
		Revision: 1,
	}
	require.NoError(t, SaveDataset(d))

	datasets, err := ListDatasets()
	require.NoError(t, err)
	require.Len(t, datasets, 1)
	assert.Equal(t, "sales", datasets[0]["name"])
	assert.Equal(t, 1, datasets[0]["rowCount"])

	// Upsert with a new revision replaces the row.
	d.Revision = 2
	d.Name = "sales v2"
	require.NoError(t, SaveDataset(d))
	datasets, err = ListDatasets()
	require.NoError(t, err)
	require.Len(t, datasets, 1)
	assert.Equal(t, "sales v2", datasets[0]["name"])

	require.NoError(t, DeleteDataset("ds-1"))
	datasets, err = ListDatasets()
	require.NoError(t, err)
	assert.Empty(t, datasets)
}

func TestJobLifecycle(t *testing.T) {
	setupTestDB(t)

	spec := model.QueryJobSpec{DatasetID: "ds-1", Query: "sales > 100", XAxis: "region", YAxis: "sales"}
	require.NoError(t, SaveJob("job-1", spec))

	status, err := GetJobStatus("job-1")
	require.NoError(t, err)
	assert.Equal(t, "pending", status)

	require.NoError(t, UpdateJobStatus("job-1", "running"))
	status, err = GetJobStatus("job-1")
	require.NoError(t, err)
	assert.Equal(t, "running", status)

	job, err := GetJob("job-1")
	require.NoError(t, err)
	assert.Equal(t, spec, job["spec"])

	jobs, err := ListJobs()
	require.NoError(t, err)
	assert.Len(t, jobs, 1)

	require.NoError(t, DeleteJob("job-1"))
	_, err = GetJobStatus("job-1")
	assert.Error(t, err)
}

func TestJobErrors(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, SaveJobError("job-1", errors.New("interpretation timed out")))
	require.NoError(t, SaveJobError("job-1", nil))

	jobErrors, err := GetJobErrors("job-1")
	require.NoError(t, err)
	require.Len(t, jobErrors, 1)
	assert.Equal(t, "interpretation timed out", jobErrors[0]["message"])
}

func TestInterpretationRoundTrip(t *testing.T) {
	setupTestDB(t)

	result := model.InterpretationResult{
		Query:          "sales > 100",
		Interpretation: "Rows with high sales.",
		Filters: []model.FilterCondition{
			{ID: "f1", Column: "sales", Operator: model.OpGreater, Value: "100"},
		},
		Success: true,
		Source:  "analysis",
	}
	require.NoError(t, SaveInterpretation("job-1", result))

	got, err := GetInterpretation("job-1")
	require.NoError(t, err)
	assert.Equal(t, result, *got)

	_, err = GetInterpretation("missing")
	assert.Error(t, err)
}

func TestResultRoundTrip(t *testing.T) {
	setupTestDB(t)

	groups := []model.AggregatedRow{
		{GroupKey: "north", Value: 400, Count: 2, Average: 200},
	}
	require.NoError(t, SaveResult("job-1", 2, groups))

	rowCount, got, err := GetResult("job-1")
	require.NoError(t, err)
	assert.Equal(t, 2, rowCount)
	assert.Equal(t, groups, got)
}

func TestQueryLogs(t *testing.T) {
	setupTestDB(t)

	require.NoError(t, SaveQueryLog("job-1", "interpreting", "info", "started", map[string]interface{}{"query": "sales > 100"}))
	require.NoError(t, SaveQueryLog("job-1", "filtering", "info", "done", nil))

	logs, err := GetQueryLogs("job-1", 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "interpreting", logs[0]["stage"])
	assert.Equal(t, "filtering", logs[1]["stage"])

	logs, err = GetQueryLogs("job-1", 1)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}
