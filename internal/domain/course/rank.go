package course

import (
	"cmp"
	"slices"

	"github.com/honeycarbs/course-aggregator/internal/domain"
)

// Rank sorts a copy of courses descending by key; ties keep their input order.
// An empty key returns the input order unchanged.
func Rank(courses []domain.NormalizedCourse, key domain.SortKey) []domain.NormalizedCourse {
	out := slices.Clone(courses)
	if key == domain.SortNone {
		return out
	}
	slices.SortStableFunc(out, func(a, b domain.NormalizedCourse) int {
		return cmp.Compare(sortValue(b, key), sortValue(a, key))
	})
	return out
}

func sortValue(c domain.NormalizedCourse, key domain.SortKey) float64 {
	switch key {
	case domain.SortPrice:
		return c.NumericPrice
	case domain.SortRating:
		if c.Rating != nil {
			return *c.Rating
		}
	case domain.SortReviews:
		if c.ReviewCount != nil {
			return float64(*c.ReviewCount)
		}
	}
	return 0
}
