package query

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"go-table-insights/internal/model"
)

// operatorPattern pairs a filter operator with the regex that extracts a
// (column token, value) pair for it from the query text.
type operatorPattern struct {
	operator string
	re       *regexp.Regexp
}

// Two-character operators are scanned before their one-character prefixes and
// every match claims its span, so "sales >= 100" yields exactly one
// greaterEqual filter instead of a greaterEqual plus a spurious greater.
var operatorPatterns = []operatorPattern{
	{model.OpGreaterEqual, regexp.MustCompile(`(\w+)\s*(?:>=|at least)\s*"?([\w./-]+)"?`)},
	{model.OpLessEqual, regexp.MustCompile(`(\w+)\s*(?:<=|at most)\s*"?([\w./-]+)"?`)},
	{model.OpGreater, regexp.MustCompile(`(\w+)\s*(?:>|greater than|more than|over|above)\s*"?([\w./-]+)"?`)},
	{model.OpLess, regexp.MustCompile(`(\w+)\s*(?:<|less than|below|under)\s*"?([\w./-]+)"?`)},
	{model.OpEquals, regexp.MustCompile(`(\w+)\s*(?:=|equals|is)\s*"?([\w./-]+)"?`)},
	{model.OpContains, regexp.MustCompile(`(\w+)\s+(?:contains|includes|has)\s+"?([\w./-]+)"?`)},
}

type span struct{ start, end int }

func overlaps(claimed []span, s span) bool {
	for _, c := range claimed {
		if s.start < c.end && c.start < s.end {
			return true
		}
	}
	return false
}

// Match scans the lower-cased query with the operator patterns and returns one
// FilterCondition per extracted pair whose column token resolves to a real
// column. An empty result means no interpretable filters, not a failure.
func Match(query string, columns []string) []model.FilterCondition {
	q := strings.ToLower(query)

	var (
		filters []model.FilterCondition
		claimed []span
	)
	for _, p := range operatorPatterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(q, -1) {
			s := span{m[0], m[1]}
			if overlaps(claimed, s) {
				continue
			}
			claimed = append(claimed, s)

			token := q[m[2]:m[3]]
			value := q[m[4]:m[5]]
			column, ok := resolveColumn(token, columns)
			if !ok {
				continue
			}
			filters = append(filters, model.FilterCondition{
				ID:       uuid.New().String(),
				Column:   column,
				Operator: p.operator,
				Value:    value,
			})
		}
	}
	return filters
}

// resolveColumn maps a query token to a real column by case-insensitive
// substring containment in either direction. The first column in table order
// that qualifies wins.
func resolveColumn(token string, columns []string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if t == "" {
		return "", false
	}
	for _, col := range columns {
		c := strings.ToLower(col)
		if strings.Contains(t, c) || strings.Contains(c, t) {
			return col, true
		}
	}
	return "", false
}
