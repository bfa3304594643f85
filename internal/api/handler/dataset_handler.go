package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-table-insights/internal/dataset"
	"go-table-insights/internal/query"
	"go-table-insights/internal/store"
)

// Handler carries the shared dependencies of the API handlers.
type Handler struct {
	Registry *dataset.Registry
	Runner   *query.Runner
}

// CreateDatasetRequest is the body for POST /api/v1/datasets.
type CreateDatasetRequest struct {
	Name   string         `json:"name"`
	Source dataset.Source `json:"source"`
}

// CreateDataset registers a new dataset
// @Summary Register a dataset
// @Description Load a tabular source (csv, xlsx, json) and register it for querying
// @Tags datasets
// @Accept json
// @Produce json
// @Param dataset body CreateDatasetRequest true "Dataset source"
// @Success 200 {object} map[string]interface{} "Dataset registered"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /datasets [post]
func (h *Handler) CreateDataset(w http.ResponseWriter, r *http.Request) {
	var req CreateDatasetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}
	if req.Source.URL == "" {
		http.Error(w, "Source URL is required", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		req.Name = req.Source.URL
	}

	d, err := dataset.Load(r.Context(), req.Name, req.Source)
	if err != nil {
		http.Error(w, "Failed to load dataset: "+err.Error(), http.StatusBadRequest)
		return
	}

	d = h.Registry.Put(d)
	if err := store.SaveDataset(d); err != nil {
		http.Error(w, "Failed to save dataset", http.StatusInternalServerError)
		return
	}

	resp := map[string]interface{}{
		"message":   "Dataset registered successfully!",
		"id":        d.ID,
		"name":      d.Name,
		"columns":   d.Columns,
		"rowCount":  len(d.Rows),
		"revision":  d.Revision,
		"createdAt": time.Now().UTC(),
	}
	writeJSON(w, resp)
}

// ListDatasets lists all registered datasets
// @Summary List datasets
// @Tags datasets
// @Produce json
// @Success 200 {array} map[string]interface{} "List of datasets"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /datasets [get]
func (h *Handler) ListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := store.ListDatasets()
	if err != nil {
		http.Error(w, "Failed to fetch datasets", http.StatusInternalServerError)
		return
	}
	writeJSON(w, datasets)
}

// GetDataset returns one dataset's metadata
// @Summary Get dataset
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} map[string]interface{} "Dataset details"
// @Failure 404 {object} map[string]interface{} "Dataset not found"
// @Router /datasets/{id} [get]
func (h *Handler) GetDataset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "/api/v1/datasets/", "")
	if !ok {
		return
	}
	d, found := h.Registry.Get(id)
	if !found {
		http.Error(w, "Dataset not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]interface{}{
		"id":        d.ID,
		"name":      d.Name,
		"sourceUrl": d.SourceURL,
		"columns":   d.Columns,
		"rowCount":  len(d.Rows),
		"revision":  d.Revision,
		"createdAt": d.CreatedAt,
	})
}

// GetDatasetRecords returns a preview of a dataset's rows
// @Summary Preview dataset records
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Param limit query int false "Maximum records to return"
// @Success 200 {object} map[string]interface{} "Dataset records"
// @Failure 404 {object} map[string]interface{} "Dataset not found"
// @Router /datasets/{id}/records [get]
func (h *Handler) GetDatasetRecords(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "/api/v1/datasets/", "/records")
	if !ok {
		return
	}
	d, found := h.Registry.Get(id)
	if !found {
		http.Error(w, "Dataset not found", http.StatusNotFound)
		return
	}

	limit := 100 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records := d.Sample(limit)
	writeJSON(w, map[string]interface{}{
		"dataset_id": id,
		"records":    records,
		"count":      len(records),
		"limit":      limit,
	})
}

// DeleteDataset removes a dataset
// @Summary Delete dataset
// @Tags datasets
// @Produce json
// @Param id path string true "Dataset ID"
// @Success 200 {object} map[string]interface{} "Dataset deleted"
// @Failure 404 {object} map[string]interface{} "Dataset not found"
// @Router /datasets/{id} [delete]
func (h *Handler) DeleteDataset(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "/api/v1/datasets/", "")
	if !ok {
		return
	}
	if _, found := h.Registry.Get(id); !found {
		http.Error(w, "Dataset not found", http.StatusNotFound)
		return
	}
	h.Registry.Delete(id)
	if err := store.DeleteDataset(id); err != nil {
		http.Error(w, "Failed to delete dataset", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{
		"message": "Dataset deleted successfully",
		"id":      id,
	})
}

// pathID extracts the id segment between prefix and suffix from the URL path.
func pathID(w http.ResponseWriter, r *http.Request, prefix, suffix string) (string, bool) {
	path := r.URL.Path
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		http.Error(w, "Invalid path", http.StatusBadRequest)
		return "", false
	}
	id := path[len(prefix) : len(path)-len(suffix)]
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "ID is required", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
