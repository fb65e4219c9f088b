package repository

import (
	"context"

	"github.com/honeycarbs/course-aggregator/internal/domain"
)

// CourseRepository defines the interface for catalog snapshot storage
type CourseRepository interface {
	UpsertCourses(ctx context.Context, courses []domain.CourseRef) error
	FindByIDs(ctx context.Context, ids []domain.CourseID) ([]domain.CourseRef, error)
	FindBySkills(ctx context.Context, skills []string, limit int) ([]domain.CourseRef, error)
}
