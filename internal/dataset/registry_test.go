package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-table-insights/internal/model"
)

func TestRegistryPutAssignsIDAndRevision(t *testing.T) {
	r := NewRegistry()

	d := r.Put(&model.Dataset{Name: "sales"})
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, int64(1), d.Revision)
	assert.False(t, d.CreatedAt.IsZero())

	got, ok := r.Get(d.ID)
	require.True(t, ok)
	assert.Equal(t, d, got)
}

func TestRegistryPutBumpsRevision(t *testing.T) {
	r := NewRegistry()

	first := r.Put(&model.Dataset{Name: "sales"})
	second := r.Put(&model.Dataset{ID: first.ID, Name: "sales v2"})
	assert.Equal(t, int64(2), second.Revision)
}

func TestRegistryRevisionSurvivesDelete(t *testing.T) {
	r := NewRegistry()

	first := r.Put(&model.Dataset{Name: "sales"})
	r.Delete(first.ID)
	_, ok := r.Get(first.ID)
	assert.False(t, ok)

	again := r.Put(&model.Dataset{ID: first.ID, Name: "sales again"})
	assert.Equal(t, int64(2), again.Revision)
}

func TestRegistrySnapshotMissing(t *testing.T) {
	r := NewRegistry()
	_, err := r.Snapshot("nope")
	assert.Error(t, err)
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	r.Put(&model.Dataset{Name: "a"})
	r.Put(&model.Dataset{Name: "b"})
	assert.Len(t, r.List(), 2)
}
