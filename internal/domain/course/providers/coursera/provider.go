package coursera

import (
	"context"
	"fmt"
	"strings"

	"github.com/honeycarbs/course-aggregator/internal/domain"
	coursedomain "github.com/honeycarbs/course-aggregator/internal/domain/course"
	"github.com/honeycarbs/course-aggregator/pkg/coursera"
)

const (
	Name = "coursera"

	learnURL        = "https://www.coursera.org/learn/"
	defaultDuration = "Flexible"
	defaultLanguage = "English"
	defaultStart    = "Self-paced"
	auditPrice      = "Free to audit, Certificate available"
)

// searchClient describes the subset of the Coursera client used by the provider.
type searchClient interface {
	SearchCourses(ctx context.Context, params coursera.SearchParams) ([]coursera.Course, error)
}

// Provider implements course.Provider using the Coursera API
type Provider struct {
	client searchClient
}

// NewProvider builds a Coursera provider
func NewProvider(client searchClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("coursera provider: client is required")
	}
	return &Provider{client: client}, nil
}

// Name returns provider identifier
func (p *Provider) Name() string {
	return Name
}

// Search queries Coursera and returns normalized courses
func (p *Provider) Search(ctx context.Context, skills []string, limit int) ([]domain.NormalizedCourse, error) {
	if p == nil || p.client == nil {
		return nil, fmt.Errorf("coursera provider: client is nil")
	}

	courses, err := p.client.SearchCourses(ctx, coursera.SearchParams{Skills: skills, Limit: limit})
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

// Normalize maps one Coursera element onto a NormalizedCourse
func Normalize(c coursera.Course) domain.NormalizedCourse {
	nc := domain.NormalizedCourse{
		Provider:         Name,
		Title:            c.Name,
		Description:      c.Description,
		ImageURL:         c.PartnerLogo,
		Price:            domain.TextPrice(auditPrice),
		Duration:         domain.Ptr(defaultDuration),
		Language:         domain.Ptr(defaultLanguage),
		Certificate:      domain.Ptr(len(c.Certificates) > 0),
		StartDate:        domain.Ptr(defaultStart),
		ProviderCourseID: c.ID.String(),
	}

	if slug := strings.TrimSpace(c.Slug); slug != "" {
		nc.URL = learnURL + slug
	}
	if c.Workload != nil {
		nc.Duration = c.Workload
	}
	if len(c.PrimaryLanguages) > 0 && c.PrimaryLanguages[0] != "" {
		nc.Language = domain.Ptr(c.PrimaryLanguages[0])
	}
	if c.StartDate.Present {
		nc.StartDate = domain.Ptr(c.StartDate.String())
	}

	return nc
}

var _ coursedomain.Provider = (*Provider)(nil)
