package query

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go-table-insights/internal/dataset"
	"go-table-insights/internal/model"
	"go-table-insights/internal/store"
	"go-table-insights/pkg/utils"
)

// Runner executes query jobs: interpret → filter → aggregate against one
// dataset snapshot, with status and results persisted per stage.
type Runner struct {
	Registry       *dataset.Registry
	Interpreter    *Interpreter
	DefaultTimeout time.Duration
}

// NewRunner builds a runner over the given registry and interpreter.
func NewRunner(registry *dataset.Registry, interpreter *Interpreter, defaultTimeout time.Duration) *Runner {
	return &Runner{Registry: registry, Interpreter: interpreter, DefaultTimeout: defaultTimeout}
}

// Run executes one query job end to end.
func (r *Runner) Run(ctx context.Context, jobID string, spec model.QueryJobSpec) (err error) {
	start := time.Now()
	slog.Info("starting query job", "job_id", jobID, "dataset_id", spec.DatasetID, "query", spec.Query)

	store.UpdateJobStatus(jobID, "running")
	defer func() {
		if err != nil {
			store.UpdateJobStatus(jobID, "failed")
			store.SaveJobError(jobID, err)
			slog.Error("query job failed", "job_id", jobID, "error", err)
		}
	}()

	timeout := utils.ParseDuration(spec.Timeout, r.DefaultTimeout)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	snap, err := r.Registry.Snapshot(spec.DatasetID)
	if err != nil {
		return err
	}

	// --- INTERPRETATION STAGE ---
	store.UpdateJobStatus(jobID, "interpreting")
	store.SaveQueryLog(jobID, "interpretation", "info", "Starting interpretation stage", map[string]interface{}{
		"query":   spec.Query,
		"columns": len(snap.Columns),
	})

	result := r.Interpreter.Interpret(ctx, spec.Query, snap.Columns, snap.Sample(maxSampleRows))
	result.DatasetID = snap.ID
	result.DatasetRevision = snap.Revision
	store.SaveInterpretation(jobID, result)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("job cancelled during interpretation: %w", err)
	}

	if !result.Success {
		// Terminal for this query: no filters are applied and no result rows
		// are produced, but the job itself ran to completion.
		store.SaveQueryLog(jobID, "interpretation", "warning", "No interpretable filters found", map[string]interface{}{
			"reason": result.Error,
		})
		store.SaveResult(jobID, 0, nil)
		store.UpdateJobStatus(jobID, "completed")
		return nil
	}
	store.SaveQueryLog(jobID, "interpretation", "info", "Interpretation stage completed", map[string]interface{}{
		"filters": len(result.Filters),
		"source":  result.Source,
	})

	// The dataset may have been replaced while the analysis call was in
	// flight; a result computed against an older snapshot is never applied.
	current, ok := r.Registry.Get(spec.DatasetID)
	if !ok || current.Revision != result.DatasetRevision {
		return fmt.Errorf("dataset %s changed while interpreting, discarding stale result", spec.DatasetID)
	}

	// --- FILTER STAGE ---
	store.UpdateJobStatus(jobID, "filtering")
	rows := Apply(snap.Records(), result.Filters)
	store.SaveQueryLog(jobID, "filter", "info", "Filter stage completed", map[string]interface{}{
		"rows_in":  len(snap.Rows),
		"rows_out": len(rows),
	})

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("job cancelled during filtering: %w", err)
	}

	// --- AGGREGATION STAGE ---
	store.UpdateJobStatus(jobID, "aggregating")
	groups := Aggregate(rows, spec.XAxis, spec.YAxis)
	store.SaveQueryLog(jobID, "aggregation", "info", "Aggregation stage completed", map[string]interface{}{
		"x_axis": spec.XAxis,
		"y_axis": spec.YAxis,
		"groups": len(groups),
	})

	if err := store.SaveResult(jobID, len(rows), groups); err != nil {
		return fmt.Errorf("failed to save query result: %w", err)
	}
	store.UpdateJobStatus(jobID, "completed")

	slog.Info("query job completed",
		"job_id", jobID,
		"filters", len(result.Filters),
		"rows", len(rows),
		"groups", len(groups),
		"duration", time.Since(start))
	return nil
}
