package dataset

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go-table-insights/internal/model"
	"go-table-insights/pkg/utils"
)

// Source describes where a dataset comes from.
type Source struct {
	Type string `json:"type"` // csv, xlsx, json
	URL  string `json:"url"`  // local path or http(s) URL
}

// Load reads one tabular source into a Dataset. The source type is taken from
// src.Type, or guessed from the file extension when empty. All cells are
// normalized to strings; short rows are padded and long rows truncated to the
// header width so every row has exactly len(columns) cells.
func Load(ctx context.Context, name string, src Source) (*model.Dataset, error) {
	typ := strings.ToLower(src.Type)
	if typ == "" {
		typ = guessType(src.URL)
	}

	start := time.Now()
	var (
		d   *model.Dataset
		err error
	)
	switch typ {
	case "csv":
		d, err = loadCSV(ctx, src.URL)
	case "xlsx", "excel":
		d, err = loadXLSX(ctx, src.URL)
	case "json", "api":
		d, err = loadJSON(ctx, src.URL)
	default:
		return nil, fmt.Errorf("unknown source type: %s", src.Type)
	}
	if err != nil {
		return nil, err
	}

	d.Name = name
	d.SourceURL = src.URL
	normalizeRows(d)
	slog.Info("dataset loaded",
		"name", name,
		"type", typ,
		"columns", len(d.Columns),
		"rows", len(d.Rows),
		"duration", time.Since(start))
	return d, nil
}

func guessType(pathOrURL string) string {
	switch strings.ToLower(filepath.Ext(pathOrURL)) {
	case ".xlsx", ".xls":
		return "xlsx"
	case ".json":
		return "json"
	default:
		return "csv"
	}
}

// normalizeRows pads short rows and truncates long ones to the header width.
func normalizeRows(d *model.Dataset) {
	width := len(d.Columns)
	for i, row := range d.Rows {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			d.Rows[i] = padded
		case len(row) > width:
			d.Rows[i] = row[:width]
		}
	}
}

// openSource opens a local path or fetches an http(s) URL.
func openSource(ctx context.Context, pathOrURL string) (io.ReadCloser, error) {
	if strings.HasPrefix(pathOrURL, "http") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, pathOrURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to GET source: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("source returned status %d", resp.StatusCode)
		}
		return resp.Body, nil
	}

	file, err := os.Open(pathOrURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open source file: %w", err)
	}
	return file, nil
}

// ------------------- CSV -------------------

func loadCSV(ctx context.Context, pathOrURL string) (*model.Dataset, error) {
	reader, err := openSource(ctx, pathOrURL)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	csvReader := csv.NewReader(reader)
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	columns := make([]string, len(headers))
	for i, h := range headers {
		columns[i] = utils.CleanHeader(h)
	}

	d := &model.Dataset{Columns: columns}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		row, err := csvReader.Read()
		if err == io.EOF {
			return d, nil
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}
		d.Rows = append(d.Rows, row)
	}
}

// ------------------- JSON -------------------

// loadJSON accepts an array of flat objects. Columns are the union of keys in
// first-seen order; values are stringified.
func loadJSON(ctx context.Context, pathOrURL string) (*model.Dataset, error) {
	reader, err := openSource(ctx, pathOrURL)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON body: %w", err)
	}

	var items []map[string]interface{}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}

	d := &model.Dataset{}
	seen := make(map[string]bool)
	for _, item := range items {
		keys := make([]string, 0, len(item))
		for key := range item {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
		// Map iteration order is random; keep column order reproducible.
		sort.Strings(keys)
		d.Columns = append(d.Columns, keys...)
	}
	for _, item := range items {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		row := make([]string, len(d.Columns))
		for i, col := range d.Columns {
			row[i] = utils.Stringify(item[col])
		}
		d.Rows = append(d.Rows, row)
	}
	return d, nil
}
