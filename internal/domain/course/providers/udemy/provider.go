package udemy

import (
	"context"
	"fmt"
	"net/url"

	"github.com/honeycarbs/course-aggregator/internal/domain"
	coursedomain "github.com/honeycarbs/course-aggregator/internal/domain/course"
	"github.com/honeycarbs/course-aggregator/pkg/udemy"
)

const (
	Name = "udemy"

	siteURL      = "https://www.udemy.com"
	defaultPrice = "Free"
)

var site, _ = url.Parse(siteURL)

// searchClient describes the subset of the Udemy client used by the provider.
type searchClient interface {
	SearchCourses(ctx context.Context, params udemy.SearchParams) ([]udemy.Course, error)
}

// Provider implements course.Provider using the Udemy API
type Provider struct {
	client searchClient
}

// NewProvider builds a Udemy provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("udemy provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return Name
}

// Search queries Udemy and returns normalized courses
func (p *Provider) Search(ctx context.Context, skills []string, limit int) ([]domain.NormalizedCourse, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("udemy provider: client is nil")
	}

	courses, err := p.client.SearchCourses(ctx, udemy.SearchParams{Skills: skills, Limit: limit})
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

// Normalize maps one Udemy course onto a NormalizedCourse
func Normalize(c udemy.Course) domain.NormalizedCourse {
	nc := domain.NormalizedCourse{
		Provider:         Name,
		Title:            c.Title,
		Description:      c.Headline,
		URL:              absoluteURL(c.URL),
		ImageURL:         c.Image480x270,
		Price:            domain.TextPrice(defaultPrice),
		ProviderCourseID: c.ID.String(),
	}

	switch {
	case !c.Price.Present:
	case c.Price.IsNumber:
		nc.Price = domain.TextPrice("$" + c.Price.String())
	default:
		nc.Price = domain.TextPrice(c.Price.String())
	}

	if v, ok := c.AvgRating.Float(); ok {
		nc.Rating = domain.Ptr(v)
	}
	if n, ok := c.NumReviews.Int(); ok {
		nc.ReviewCount = domain.Ptr(n)
	}

	return nc
}

// absoluteURL resolves Udemy's site-relative course paths; unparsable input gives ""
func absoluteURL(raw string) string {
	if raw == "" {
		return ""
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return site.ResolveReference(ref).String()
}

var _ coursedomain.Provider = (*Provider)(nil)
