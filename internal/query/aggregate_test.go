package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-table-insights/internal/model"
)

func TestAggregateSumsAndAverages(t *testing.T) {
	rows := []model.Record{
		rec("region", "north", "sales", "100"),
		rec("region", "north", "sales", "300"),
		rec("region", "south", "sales", "50"),
	}

	out := Aggregate(rows, "region", "sales")
	require.Len(t, out, 2)

	assert.Equal(t, "north", out[0].GroupKey)
	assert.Equal(t, 400.0, out[0].Value)
	assert.Equal(t, 2, out[0].Count)
	assert.Equal(t, 200.0, out[0].Average)

	assert.Equal(t, "south", out[1].GroupKey)
	assert.Equal(t, 50.0, out[1].Value)
	assert.Equal(t, 1, out[1].Count)
	assert.Equal(t, 50.0, out[1].Average)
}

func TestAggregateAverageUsesNumericCountOnly(t *testing.T) {
	rows := []model.Record{
		rec("region", "north", "sales", "100"),
		rec("region", "north", "sales", "n/a"),
		rec("region", "north", "sales", "300"),
	}

	out := Aggregate(rows, "region", "sales")
	require.Len(t, out, 1)
	assert.Equal(t, 400.0, out[0].Value)
	assert.Equal(t, 3, out[0].Count)
	assert.Equal(t, 200.0, out[0].Average)
}

func TestAggregateNonNumericGroupDegradesToCount(t *testing.T) {
	rows := []model.Record{
		rec("region", "north", "status", "active"),
		rec("region", "north", "status", "closed"),
		rec("region", "south", "status", "active"),
	}

	out := Aggregate(rows, "region", "status")
	require.Len(t, out, 2)
	assert.Equal(t, 2.0, out[0].Value)
	assert.Equal(t, 0.0, out[0].Average)
	assert.Equal(t, 1.0, out[1].Value)
}

func TestAggregateNumericKeySort(t *testing.T) {
	rows := []model.Record{
		rec("month", "10", "sales", "1"),
		rec("month", "2", "sales", "1"),
		rec("month", "1", "sales", "1"),
	}

	out := Aggregate(rows, "month", "sales")
	require.Len(t, out, 3)
	assert.Equal(t, "1", out[0].GroupKey)
	assert.Equal(t, "2", out[1].GroupKey)
	assert.Equal(t, "10", out[2].GroupKey)
}

func TestAggregateLexicographicKeySort(t *testing.T) {
	rows := []model.Record{
		rec("team", "bravo", "score", "1"),
		rec("team", "alpha", "score", "2"),
	}

	out := Aggregate(rows, "team", "score")
	require.Len(t, out, 2)
	assert.Equal(t, "alpha", out[0].GroupKey)
	assert.Equal(t, "bravo", out[1].GroupKey)
}

func TestAggregateEmptyInput(t *testing.T) {
	assert.Nil(t, Aggregate(nil, "x", "y"))
	assert.Nil(t, Aggregate([]model.Record{}, "x", "y"))
}

func TestAggregateMissingColumns(t *testing.T) {
	rows := []model.Record{rec("a", "1", "b", "2")}
	assert.Nil(t, Aggregate(rows, "missing", "b"))
	assert.Nil(t, Aggregate(rows, "a", "missing"))
}

func TestAggregateEmptyKeyIsAGroup(t *testing.T) {
	rows := []model.Record{
		rec("region", "", "sales", "5"),
		rec("region", "north", "sales", "10"),
	}

	out := Aggregate(rows, "region", "sales")
	require.Len(t, out, 2)
	assert.Equal(t, "", out[0].GroupKey)
	assert.Equal(t, 5.0, out[0].Value)
}
