package edx

import (
	"context"
	"fmt"

	"github.com/honeycarbs/course-aggregator/internal/domain"
	coursedomain "github.com/honeycarbs/course-aggregator/internal/domain/course"
	"github.com/honeycarbs/course-aggregator/pkg/edx"
)

const (
	Name = "edx"

	auditPrice    = "Free to audit, Certificate available"
	defaultStart  = "Self-paced"
	defaultPacing = "Self-paced"
)

// searchClient describes the subset of the edX client used by the provider.
type searchClient interface {
	SearchCourses(ctx context.Context, params edx.SearchParams) ([]edx.Course, error)
}

// Provider implements course.Provider using the edX catalog API
type Provider struct {
	client searchClient
}

// NewProvider builds an edX provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("edx provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return Name
}

// Search queries edX and returns normalized courses
func (p *Provider) Search(ctx context.Context, skills []string, limit int) ([]domain.NormalizedCourse, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("edx provider: client is nil")
	}

	courses, err := p.client.SearchCourses(ctx, edx.SearchParams{Skills: skills, Limit: limit})
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(courses) > limit {
		courses = courses[:limit]
	}

	out := make([]domain.NormalizedCourse, 0, len(courses))
	for _, c := range courses {
		out = append(out, Normalize(c))
	}
	return out, nil
}

// Normalize maps one edX course onto a NormalizedCourse
func Normalize(c edx.Course) domain.NormalizedCourse {
	nc := domain.NormalizedCourse{
		Provider:         Name,
		Title:            c.Title,
		Description:      c.ShortDescription,
		URL:              c.MarketingURL,
		ImageURL:         c.ImageURL,
		Price:            domain.TextPrice(auditPrice),
		StartDate:        domain.Ptr(defaultStart),
		Pacing:           domain.Ptr(defaultPacing),
		ProviderCourseID: c.ID.String(),
	}

	if c.Price.Present {
		if c.Price.IsNumber {
			nc.Price = domain.NumericPrice(c.Price.Number)
		} else {
			nc.Price = domain.TextPrice(c.Price.String())
		}
	}
	if c.Start.Present {
		nc.StartDate = domain.Ptr(c.Start.String())
	}
	if c.PacingType != nil {
		nc.Pacing = c.PacingType
	}

	return nc
}

var _ coursedomain.Provider = (*Provider)(nil)
