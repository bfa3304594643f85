package store

import (
	"database/sql"
	"encoding/json"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"go-table-insights/internal/model"
)

var db *sql.DB

// InitDB opens the sqlite database and creates the schema.
func InitDB(dbPath string) error {
	var err error
	db, err = sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS datasets (
			id TEXT PRIMARY KEY,
			name TEXT,
			source_url TEXT,
			columns TEXT,
			row_count INTEGER,
			revision INTEGER,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS query_jobs (
			id TEXT PRIMARY KEY,
			spec TEXT,
			status TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS job_errors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT,
			error_message TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS interpretations (
			job_id TEXT PRIMARY KEY,
			result TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS query_results (
			job_id TEXT PRIMARY KEY,
			row_count INTEGER,
			groups TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS query_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			job_id TEXT,
			stage TEXT,
			level TEXT,
			message TEXT,
			details TEXT,
			created_at DATETIME
		);`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func Close() error {
	if db == nil {
		return nil
	}
	return db.Close()
}

// ------------------- Datasets -------------------

// SaveDataset upserts dataset metadata (not the rows themselves; those live in
// the registry).
func SaveDataset(d *model.Dataset) error {
	columnsJSON, err := json.Marshal(d.Columns)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO datasets (id, name, source_url, columns, row_count, revision, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, source_url = excluded.source_url,
			columns = excluded.columns, row_count = excluded.row_count, revision = excluded.revision`,
		d.ID, d.Name, d.SourceURL, string(columnsJSON), len(d.Rows), d.Revision, d.CreatedAt)
	return err
}

// ListDatasets returns metadata for every stored dataset.
func ListDatasets() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, name, source_url, columns, row_count, revision, created_at
		FROM datasets ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var datasets []map[string]interface{}
	for rows.Next() {
		var id, name, sourceURL, columnsJSON string
		var rowCount int
		var revision int64
		var createdAt time.Time
		if err := rows.Scan(&id, &name, &sourceURL, &columnsJSON, &rowCount, &revision, &createdAt); err != nil {
			return nil, err
		}
		var columns []string
		if err := json.Unmarshal([]byte(columnsJSON), &columns); err != nil {
			return nil, err
		}
		datasets = append(datasets, map[string]interface{}{
			"id":        id,
			"name":      name,
			"sourceUrl": sourceURL,
			"columns":   columns,
			"rowCount":  rowCount,
			"revision":  revision,
			"createdAt": createdAt,
		})
	}
	return datasets, rows.Err()
}

// DeleteDataset removes dataset metadata.
func DeleteDataset(id string) error {
	_, err := db.Exec(`DELETE FROM datasets WHERE id = ?`, id)
	return err
}

// ------------------- Query jobs -------------------

// SaveJob stores a new query job.
func SaveJob(jobID string, spec model.QueryJobSpec) error {
	specJSON, err := json.Marshal(spec)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = db.Exec(`INSERT INTO query_jobs (id, spec, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		jobID, string(specJSON), "pending", now, now)
	return err
}

// UpdateJobStatus updates a job's status.
func UpdateJobStatus(jobID string, status string) error {
	now := time.Now().UTC()
	_, err := db.Exec(`UPDATE query_jobs SET status = ?, updated_at = ? WHERE id = ?`, status, now, jobID)
	return err
}

// ListJobs returns all query jobs with basic info.
func ListJobs() ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT id, status, created_at, updated_at FROM query_jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []map[string]interface{}
	for rows.Next() {
		var id, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &status, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, map[string]interface{}{
			"id":        id,
			"status":    status,
			"createdAt": createdAt,
			"updatedAt": updatedAt,
		})
	}
	return jobs, rows.Err()
}

// GetJob fetches the full job spec and status.
func GetJob(jobID string) (map[string]interface{}, error) {
	var specJSON, status string
	var createdAt, updatedAt time.Time

	err := db.QueryRow(`SELECT spec, status, created_at, updated_at FROM query_jobs WHERE id = ?`, jobID).
		Scan(&specJSON, &status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var spec model.QueryJobSpec
	if err := json.Unmarshal([]byte(specJSON), &spec); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"id":        jobID,
		"spec":      spec,
		"status":    status,
		"createdAt": createdAt,
		"updatedAt": updatedAt,
	}, nil
}

// GetJobStatus returns only the status of a job.
func GetJobStatus(jobID string) (string, error) {
	var status string
	err := db.QueryRow(`SELECT status FROM query_jobs WHERE id = ?`, jobID).Scan(&status)
	return status, err
}

// DeleteJob removes a job and everything recorded for it.
func DeleteJob(jobID string) error {
	for _, stmt := range []string{
		`DELETE FROM query_logs WHERE job_id = ?`,
		`DELETE FROM job_errors WHERE job_id = ?`,
		`DELETE FROM interpretations WHERE job_id = ?`,
		`DELETE FROM query_results WHERE job_id = ?`,
		`DELETE FROM query_jobs WHERE id = ?`,
	} {
		if _, err := db.Exec(stmt, jobID); err != nil {
			return err
		}
	}
	return nil
}

// ------------------- Errors -------------------

// SaveJobError records an error for a job.
func SaveJobError(jobID string, err error) error {
	if err == nil {
		return nil
	}
	now := time.Now().UTC()
	_, e := db.Exec(`INSERT INTO job_errors (job_id, error_message, created_at) VALUES (?, ?, ?)`,
		jobID, err.Error(), now)
	return e
}

// GetJobErrors returns all errors recorded for a job.
func GetJobErrors(jobID string) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT error_message, created_at FROM job_errors WHERE job_id = ? ORDER BY created_at`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var errors []map[string]interface{}
	for rows.Next() {
		var message string
		var createdAt time.Time
		if err := rows.Scan(&message, &createdAt); err != nil {
			return nil, err
		}
		errors = append(errors, map[string]interface{}{
			"message":   message,
			"createdAt": createdAt,
		})
	}
	return errors, rows.Err()
}

// ------------------- Interpretations & results -------------------

// SaveInterpretation stores the interpretation outcome for a job.
func SaveInterpretation(jobID string, result model.InterpretationResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT OR REPLACE INTO interpretations (job_id, result, created_at) VALUES (?, ?, ?)`,
		jobID, string(resultJSON), time.Now().UTC())
	return err
}

// GetInterpretation fetches the interpretation outcome for a job.
func GetInterpretation(jobID string) (*model.InterpretationResult, error) {
	var resultJSON string
	err := db.QueryRow(`SELECT result FROM interpretations WHERE job_id = ?`, jobID).Scan(&resultJSON)
	if err != nil {
		return nil, err
	}
	var result model.InterpretationResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SaveResult stores the aggregated groups for a job.
func SaveResult(jobID string, rowCount int, groups []model.AggregatedRow) error {
	groupsJSON, err := json.Marshal(groups)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT OR REPLACE INTO query_results (job_id, row_count, groups, created_at) VALUES (?, ?, ?, ?)`,
		jobID, rowCount, string(groupsJSON), time.Now().UTC())
	return err
}

// GetResult fetches the aggregated groups for a job.
func GetResult(jobID string) (int, []model.AggregatedRow, error) {
	var rowCount int
	var groupsJSON string
	err := db.QueryRow(`SELECT row_count, groups FROM query_results WHERE job_id = ?`, jobID).
		Scan(&rowCount, &groupsJSON)
	if err != nil {
		return 0, nil, err
	}
	var groups []model.AggregatedRow
	if err := json.Unmarshal([]byte(groupsJSON), &groups); err != nil {
		return 0, nil, err
	}
	return rowCount, groups, nil
}

// ------------------- Logs -------------------

// SaveQueryLog records one structured log entry for a job stage.
func SaveQueryLog(jobID, stage, level, message string, details map[string]interface{}) error {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return err
	}
	_, err = db.Exec(`INSERT INTO query_logs (job_id, stage, level, message, details, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		jobID, stage, level, message, string(detailsJSON), time.Now().UTC())
	return err
}

// GetQueryLogs returns up to limit log entries for a job, oldest first.
func GetQueryLogs(jobID string, limit int) ([]map[string]interface{}, error) {
	rows, err := db.Query(`SELECT stage, level, message, details, created_at FROM query_logs
		WHERE job_id = ? ORDER BY id LIMIT ?`, jobID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []map[string]interface{}
	for rows.Next() {
		var stage, level, message, detailsJSON string
		var createdAt time.Time
		if err := rows.Scan(&stage, &level, &message, &detailsJSON, &createdAt); err != nil {
			return nil, err
		}
		var details map[string]interface{}
		if err := json.Unmarshal([]byte(detailsJSON), &details); err != nil {
			details = nil
		}
		logs = append(logs, map[string]interface{}{
			"stage":     stage,
			"level":     level,
			"message":   message,
			"details":   details,
			"createdAt": createdAt,
		})
	}
	return logs, rows.Err()
}
