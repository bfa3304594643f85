package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"go-table-insights/internal/model"
	"go-table-insights/internal/store"
)

// CreateQuery creates a new query job
// @Summary Create a query job
// @Description Interpret a free-form query against a dataset, apply the resulting filters, and aggregate for charting
// @Tags queries
// @Accept json
// @Produce json
// @Param query body model.QueryJobSpec true "Query job"
// @Success 200 {object} map[string]interface{} "Query job created"
// @Failure 400 {object} map[string]interface{} "Invalid request payload"
// @Failure 404 {object} map[string]interface{} "Dataset not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /queries [post]
func (h *Handler) CreateQuery(w http.ResponseWriter, r *http.Request) {
	var spec model.QueryJobSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON payload", http.StatusBadRequest)
		return
	}

	if spec.DatasetID == "" {
		http.Error(w, "datasetId is required", http.StatusBadRequest)
		return
	}
	if spec.Query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}
	if _, found := h.Registry.Get(spec.DatasetID); !found {
		http.Error(w, "Dataset not found", http.StatusNotFound)
		return
	}

	jobID := uuid.New().String()
	if err := store.SaveJob(jobID, spec); err != nil {
		http.Error(w, "Failed to save query job", http.StatusInternalServerError)
		return
	}

	// Run asynchronously; the runner enforces its own bounded timeout.
	go h.Runner.Run(context.Background(), jobID, spec)

	writeJSON(w, map[string]interface{}{
		"message":   "Query job created successfully!",
		"jobID":     jobID,
		"status":    "pending",
		"createdAt": time.Now().UTC(),
	})
}

// ListQueries lists all query jobs
// @Summary List query jobs
// @Tags queries
// @Produce json
// @Success 200 {array} map[string]interface{} "List of query jobs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /queries [get]
func (h *Handler) ListQueries(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.ListJobs()
	if err != nil {
		http.Error(w, "Failed to fetch query jobs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, jobs)
}

// GetQuery returns one query job
// @Summary Get query job
// @Tags queries
// @Produce json
// @Param id path string true "Query job ID"
// @Success 200 {object} map[string]interface{} "Query job details"
// @Failure 404 {object} map[string]interface{} "Query job not found"
// @Router /queries/{id} [get]
func (h *Handler) GetQuery(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(w, r, "/api/v1/queries/", "")
	if !ok {
		return
	}
	job, err := store.GetJob(jobID)
	if err != nil {
		http.Error(w, "Query job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, job)
}

// GetQueryResult returns the interpretation and aggregated groups of a job
// @Summary Get query result
// @Tags queries
// @Produce json
// @Param id path string true "Query job ID"
// @Success 200 {object} model.QueryResult "Query result"
// @Failure 404 {object} map[string]interface{} "Result not available"
// @Router /queries/{id}/result [get]
func (h *Handler) GetQueryResult(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(w, r, "/api/v1/queries/", "/result")
	if !ok {
		return
	}

	interp, err := store.GetInterpretation(jobID)
	if err != nil {
		http.Error(w, "Result not available", http.StatusNotFound)
		return
	}
	rowCount, groups, err := store.GetResult(jobID)
	if err != nil {
		http.Error(w, "Result not available", http.StatusNotFound)
		return
	}

	writeJSON(w, model.QueryResult{
		JobID:          jobID,
		Interpretation: *interp,
		RowCount:       rowCount,
		Groups:         groups,
	})
}

// GetQueryLogs returns log entries recorded for a job
// @Summary Get query job logs
// @Tags queries
// @Produce json
// @Param id path string true "Query job ID"
// @Param limit query int false "Maximum log entries to return"
// @Success 200 {object} map[string]interface{} "Query job logs"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /queries/{id}/logs [get]
func (h *Handler) GetQueryLogs(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(w, r, "/api/v1/queries/", "/logs")
	if !ok {
		return
	}

	limit := 100 // default
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	logs, err := store.GetQueryLogs(jobID, limit)
	if err != nil {
		http.Error(w, "Failed to retrieve logs", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{
		"job_id": jobID,
		"logs":   logs,
		"count":  len(logs),
		"limit":  limit,
	})
}

// GetQueryErrors returns errors recorded for a job
// @Summary Get query job errors
// @Tags queries
// @Produce json
// @Param id path string true "Query job ID"
// @Success 200 {object} map[string]interface{} "Query job errors"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /queries/{id}/errors [get]
func (h *Handler) GetQueryErrors(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(w, r, "/api/v1/queries/", "/errors")
	if !ok {
		return
	}
	errors, err := store.GetJobErrors(jobID)
	if err != nil {
		http.Error(w, "Failed to retrieve errors", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{
		"job_id": jobID,
		"errors": errors,
		"count":  len(errors),
	})
}

// CancelQuery cancels a pending or running query job
// @Summary Cancel query job
// @Tags queries
// @Produce json
// @Param id path string true "Query job ID"
// @Success 200 {object} map[string]interface{} "Query job cancelled"
// @Failure 400 {object} map[string]interface{} "Job not cancellable"
// @Failure 404 {object} map[string]interface{} "Query job not found"
// @Router /queries/{id}/cancel [patch]
func (h *Handler) CancelQuery(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(w, r, "/api/v1/queries/", "/cancel")
	if !ok {
		return
	}

	status, err := store.GetJobStatus(jobID)
	if err != nil {
		http.Error(w, "Query job not found", http.StatusNotFound)
		return
	}
	if status == "completed" || status == "failed" || status == "cancelled" {
		http.Error(w, fmt.Sprintf("Job is already %s and cannot be cancelled", status), http.StatusBadRequest)
		return
	}

	if err := store.UpdateJobStatus(jobID, "cancelled"); err != nil {
		http.Error(w, "Failed to cancel job", http.StatusInternalServerError)
		return
	}
	store.SaveQueryLog(jobID, "job", "info", "Query job cancelled by user", map[string]interface{}{
		"previous_status": status,
	})

	writeJSON(w, map[string]interface{}{
		"message": "Query job cancelled successfully",
		"job_id":  jobID,
		"status":  "cancelled",
	})
}

// DeleteQuery deletes a query job and everything recorded for it
// @Summary Delete query job
// @Tags queries
// @Produce json
// @Param id path string true "Query job ID"
// @Success 200 {object} map[string]interface{} "Query job deleted"
// @Failure 404 {object} map[string]interface{} "Query job not found"
// @Router /queries/{id} [delete]
func (h *Handler) DeleteQuery(w http.ResponseWriter, r *http.Request) {
	jobID, ok := pathID(w, r, "/api/v1/queries/", "")
	if !ok {
		return
	}
	if _, err := store.GetJob(jobID); err != nil {
		http.Error(w, "Query job not found", http.StatusNotFound)
		return
	}
	if err := store.DeleteJob(jobID); err != nil {
		http.Error(w, "Failed to delete query job", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]interface{}{
		"message": "Query job deleted successfully",
		"job_id":  jobID,
	})
}
