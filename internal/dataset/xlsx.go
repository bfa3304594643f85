package dataset

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"go-table-insights/internal/model"
	"go-table-insights/pkg/utils"
)

// loadXLSX reads the first sheet of an Excel workbook. The first row is the
// header; remaining rows become cells.
func loadXLSX(ctx context.Context, pathOrURL string) (*model.Dataset, error) {
	reader, err := openSource(ctx, pathOrURL)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read XLSX rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows found in XLSX file")
	}

	columns := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		columns[i] = utils.CleanHeader(h)
	}

	d := &model.Dataset{Columns: columns}
	for _, row := range rows[1:] {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		d.Rows = append(d.Rows, row)
	}
	return d, nil
}
