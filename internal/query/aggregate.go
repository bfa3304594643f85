package query

import (
	"sort"

	"go-table-insights/internal/model"
	"go-table-insights/pkg/utils"
)

// Aggregate groups rows by the stringified xColumn cell and reduces yColumn
// per group: count is the number of rows, value the sum of the numeric Y
// cells, average that sum divided by the count of numeric cells seen. A group
// with no numeric Y cells degrades to a frequency count: value becomes the row
// count and average stays 0. Output is recomputed on every call and sorted by
// group key, numerically when both compared keys parse as numbers.
func Aggregate(rows []model.Record, xColumn, yColumn string) []model.AggregatedRow {
	if len(rows) == 0 {
		return nil
	}
	if _, ok := rows[0][xColumn]; !ok {
		return nil
	}
	if _, ok := rows[0][yColumn]; !ok {
		return nil
	}

	type group struct {
		sum     float64
		count   int
		numeric int
	}
	groups := make(map[string]*group)
	for _, rec := range rows {
		key := rec[xColumn]
		g := groups[key]
		if g == nil {
			g = &group{}
			groups[key] = g
		}
		g.count++
		if n, ok := utils.ParseNumber(rec[yColumn]); ok {
			g.sum += n
			g.numeric++
		}
	}

	out := make([]model.AggregatedRow, 0, len(groups))
	for key, g := range groups {
		row := model.AggregatedRow{GroupKey: key, Count: g.count}
		if g.numeric > 0 {
			row.Value = g.sum
			row.Average = g.sum / float64(g.numeric)
		} else {
			row.Value = float64(g.count)
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		return lessGroupKey(out[i].GroupKey, out[j].GroupKey)
	})
	return out
}

// lessGroupKey orders two group keys numerically when both parse as numbers,
// lexicographically otherwise.
func lessGroupKey(a, b string) bool {
	an, aok := utils.ParseNumber(a)
	bn, bok := utils.ParseNumber(b)
	if aok && bok && an != bn {
		return an < bn
	}
	return a < b
}
