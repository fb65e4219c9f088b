package course

import (
	"encoding/json"

	"github.com/honeycarbs/course-aggregator/internal/domain"
)

// Filter keeps courses whose fields equal every filter value and whose
// derived price lies in the range. A nil or empty filter set and nil range keep all.
func Filter(courses []domain.NormalizedCourse, filters map[string]any, pr *domain.PriceRange) []domain.NormalizedCourse {
	out := make([]domain.NormalizedCourse, 0, len(courses))
	for _, c := range courses {
		if Matches(c, filters, pr) {
			out = append(out, c)
		}
	}
	return out
}

// Matches reports whether one course passes the field filters and price range
func Matches(c domain.NormalizedCourse, filters map[string]any, pr *domain.PriceRange) bool {
	for name, want := range filters {
		got, ok := c.Field(name)
		if !ok || !equalValue(got, want) {
			return false
		}
	}
	if pr != nil && !pr.Contains(c.NumericPrice) {
		return false
	}
	return true
}

// equalValue compares strictly: strings case-sensitively, bools as bools,
// numbers as float64. Mismatched kinds never match.
func equalValue(got, want any) bool {
	switch w := want.(type) {
	case string:
		g, ok := got.(string)
		return ok && g == w
	case bool:
		g, ok := got.(bool)
		return ok && g == w
	case nil:
		return got == nil
	}

	wn, ok := toFloat(want)
	if !ok {
		return false
	}
	gn, ok := toFloat(got)
	return ok && gn == wn
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
