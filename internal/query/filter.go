package query

import (
	"strings"

	"go-table-insights/internal/model"
	"go-table-insights/pkg/utils"
)

// Apply evaluates filters over rows. Filters combine with AND: a row survives
// only when it satisfies every condition. The input is not mutated and the
// relative order of surviving rows is preserved.
func Apply(rows []model.Record, filters []model.FilterCondition) []model.Record {
	out := make([]model.Record, 0, len(rows))
	for _, rec := range rows {
		if matchesAll(rec, filters) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesAll(rec model.Record, filters []model.FilterCondition) bool {
	for _, f := range filters {
		if !matches(rec, f) {
			return false
		}
	}
	return true
}

// matches evaluates one condition against one record. An unknown column or an
// empty cell never matches, regardless of operator.
func matches(rec model.Record, f model.FilterCondition) bool {
	cell, ok := rec[f.Column]
	if !ok || cell == "" {
		return false
	}

	switch f.Operator {
	case model.OpEquals:
		return strings.EqualFold(cell, f.Value)
	case model.OpContains:
		return strings.Contains(strings.ToLower(cell), strings.ToLower(f.Value))
	case model.OpGreater, model.OpLess, model.OpGreaterEqual, model.OpLessEqual:
		return matchesOrdered(cell, f.Value, f.Operator)
	default:
		return false
	}
}

// matchesOrdered runs the coercion cascade for the ordered operators: numeric
// comparison when both sides parse as numbers, else calendar comparison when
// both sides parse as dates, else no match.
func matchesOrdered(cell, value, op string) bool {
	if cn, ok := utils.ParseNumber(cell); ok {
		if vn, ok := utils.ParseNumber(value); ok {
			return ordered(op, compareFloats(cn, vn))
		}
	}
	if ct, ok := utils.ParseTime(cell); ok {
		if vt, ok := utils.ParseTime(value); ok {
			return ordered(op, ct.Compare(vt))
		}
	}
	return false
}

func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func ordered(op string, cmp int) bool {
	switch op {
	case model.OpGreater:
		return cmp > 0
	case model.OpLess:
		return cmp < 0
	case model.OpGreaterEqual:
		return cmp >= 0
	case model.OpLessEqual:
		return cmp <= 0
	default:
		return false
	}
}
