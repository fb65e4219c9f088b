package course

import (
	"context"

	"github.com/honeycarbs/course-aggregator/internal/domain"
)

// Provider represents an external course catalog (Coursera, Udemy, edX, ...)
type Provider interface {
	// e.g. "coursera" or "udemy"; used as the bucket key
	Name() string

	// Search returns normalized courses matching any of the skills, at most limit of them
	Search(ctx context.Context, skills []string, limit int) ([]domain.NormalizedCourse, error)
}
