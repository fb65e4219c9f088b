package course_test

import (
	"context"
	"time"

	"github.com/honeycarbs/course-aggregator/internal/domain"
)

// mockProvider is a test provider that returns predefined results.
type mockProvider struct {
	name    string
	courses []domain.NormalizedCourse
	err     error
	delay   time.Duration
	// ignoreCtx makes the provider sleep through cancellation
	ignoreCtx bool
	panicMsg  string

	gotSkills []string
	gotLimit  int
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Search(ctx context.Context, skills []string, limit int) ([]domain.NormalizedCourse, error) {
	m.gotSkills = skills
	m.gotLimit = limit

	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	if m.delay > 0 {
		if m.ignoreCtx {
			time.Sleep(m.delay)
		} else {
			select {
			case <-time.After(m.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return m.courses, m.err
}

func newCourse(provider, id, title string, price domain.Price, rating *float64, lang *string) domain.NormalizedCourse {
	return domain.NormalizedCourse{
		Provider:         provider,
		ProviderCourseID: id,
		Title:            title,
		URL:              "https://example.com/" + id,
		Price:            price,
		Rating:           rating,
		Language:         lang,
	}
}
