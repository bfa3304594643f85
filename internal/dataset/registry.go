package dataset

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-table-insights/internal/model"
)

// Registry holds the live dataset snapshots. Each id carries a monotonically
// increasing revision; replacing a dataset bumps it, so interpretation results
// computed against an older snapshot can be detected and discarded.
type Registry struct {
	mu        sync.RWMutex
	datasets  map[string]*model.Dataset
	revisions map[string]int64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		datasets:  make(map[string]*model.Dataset),
		revisions: make(map[string]int64),
	}
}

// Put registers d, assigning an id when missing and bumping the revision for
// its id. The stored snapshot is returned.
func (r *Registry) Put(d *model.Dataset) *model.Dataset {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	r.revisions[d.ID]++
	d.Revision = r.revisions[d.ID]
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	r.datasets[d.ID] = d
	return d
}

// Get returns the current snapshot for id.
func (r *Registry) Get(id string) (*model.Dataset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.datasets[id]
	return d, ok
}

// Delete removes the snapshot for id. The revision counter survives so a
// re-uploaded dataset with the same id never resets to an old revision.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.datasets, id)
}

// List returns all snapshots ordered by creation time, newest first.
func (r *Registry) List() []*model.Dataset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Dataset, 0, len(r.datasets))
	for _, d := range r.datasets {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Snapshot returns the dataset for id or an error naming it.
func (r *Registry) Snapshot(id string) (*model.Dataset, error) {
	d, ok := r.Get(id)
	if !ok {
		return nil, fmt.Errorf("dataset not found: %s", id)
	}
	return d, nil
}
