package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/course-aggregator/internal/domain"
	"github.com/honeycarbs/course-aggregator/internal/domain/course"
	"github.com/honeycarbs/course-aggregator/internal/repository"
	"github.com/honeycarbs/course-aggregator/pkg/logging"
)

// CourseSearchParams defines the arguments for the course_search tool
type CourseSearchParams struct {
	Skills           []string       `json:"skills" jsonschema:"Skills to search for, matched with OR by each provider"`
	LimitPerProvider int            `json:"limit_per_provider,omitempty" jsonschema:"Maximum courses per provider (default 5)"`
	SortBy           string         `json:"sort_by,omitempty" jsonschema:"Rank each provider's courses by price, rating or reviews (descending)"`
	Filters          map[string]any `json:"filters,omitempty" jsonschema:"Exact-match field filters keyed by field name, such as language or certificate"`
	MinPrice         *float64       `json:"min_price,omitempty" jsonschema:"Inclusive lower bound on numeric price"`
	MaxPrice         *float64       `json:"max_price,omitempty" jsonschema:"Inclusive upper bound on numeric price"`
	Persist          bool           `json:"persist,omitempty" jsonschema:"Store returned courses in the catalog graph"`
}

// ProviderResult is one provider's share of a course_search result
type ProviderResult struct {
	Provider string                    `json:"provider" jsonschema:"Provider name"`
	Error    string                    `json:"error,omitempty" jsonschema:"Failure message when the provider call failed"`
	Kind     string                    `json:"kind,omitempty" jsonschema:"Failure kind e.g. timeout or rate_limited"`
	Courses  []domain.NormalizedCourse `json:"courses" jsonschema:"Normalized courses"`
}

// CourseSearchResult is the structured response of course_search
type CourseSearchResult struct {
	Providers   []ProviderResult `json:"providers" jsonschema:"Per-provider results in configured order"`
	Total       int              `json:"total" jsonschema:"Courses across all providers"`
	Persisted   int              `json:"persisted,omitempty" jsonschema:"Courses written to the catalog"`
	CompletedAt time.Time        `json:"completed_at" jsonschema:"Timestamp when the search finished"`
	Message     string           `json:"message,omitempty" jsonschema:"Optional status message"`
}

const defaultLimitPerProvider = 5

type courseSearchTool struct {
	service course.Service
	catalog repository.CourseRepository
	logger  *logging.Logger
}

// WithCourseSearch registers the course_search tool
func WithCourseSearch(service course.Service, catalog repository.CourseRepository, logger *logging.Logger) Option {
	return func(reg *registry) {
		handler := courseSearchTool{service: service, catalog: catalog, logger: logger}
		sdkmcp.AddTool(reg.server, reg.add(&sdkmcp.Tool{
			Name:        "course_search",
			Description: "Search every configured course provider in parallel and return per-provider results",
		}), handler.handle)
	}
}

// Request converts tool arguments into a SearchRequest
func (p CourseSearchParams) Request() domain.SearchRequest {
	req := domain.SearchRequest{
		Skills:           p.Skills,
		LimitPerProvider: p.LimitPerProvider,
		SortBy:           domain.SortKey(strings.ToLower(strings.TrimSpace(p.SortBy))),
		Filters:          p.Filters,
	}
	if req.LimitPerProvider == 0 {
		req.LimitPerProvider = defaultLimitPerProvider
	}
	req.PriceRange = domain.NewPriceRange(p.MinPrice, p.MaxPrice)
	return req
}

func (t courseSearchTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *CourseSearchParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil {
		params = &CourseSearchParams{}
	}

	t.logger.Info("course_search request",
		"skills", params.Skills,
		"limit_per_provider", params.LimitPerProvider,
		"sort_by", params.SortBy,
		"filters", len(params.Filters),
		"persist", params.Persist,
	)

	if t.service == nil {
		return nil, nil, fmt.Errorf("course service not configured")
	}

	searchReq := params.Request()
	resp, err := t.service.Search(ctx, searchReq)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			return errorResult("[course_search] " + verr.Error()), nil, nil
		}
		t.logger.Error("course_search: search failed", "err", err)
		return nil, nil, fmt.Errorf("search failed: %w", err)
	}

	result := buildSearchResult(resp)

	if params.Persist && result.Total > 0 {
		persisted, err := t.persist(ctx, resp, searchReq.Skills)
		if err != nil {
			t.logger.Error("course_search: persist failed", "err", err)
			result.Message = fmt.Sprintf("courses returned but not persisted: %v", err)
		} else {
			result.Persisted = persisted
		}
	}

	return textResult(formatSearchResult(result)), result, nil
}

func (t courseSearchTool) persist(ctx context.Context, resp domain.AggregatedResponse, skills []string) (int, error) {
	if t.catalog == nil {
		return 0, fmt.Errorf("catalog store not configured")
	}

	now := time.Now().UTC()
	courses := resp.Courses()
	refs := make([]domain.CourseRef, 0, len(courses))
	for _, c := range courses {
		refs = append(refs, domain.CourseRef{
			ID:        domain.NewCourseID(c.Provider, c.ProviderCourseID),
			Course:    c,
			Skills:    skills,
			FetchedAt: now,
		})
	}

	if err := t.catalog.UpsertCourses(ctx, refs); err != nil {
		return 0, err
	}
	t.logger.Info("course_search: courses persisted", "count", len(refs))
	return len(refs), nil
}

func buildSearchResult(resp domain.AggregatedResponse) CourseSearchResult {
	result := CourseSearchResult{
		Providers:   make([]ProviderResult, 0, resp.Len()),
		CompletedAt: time.Now().UTC(),
	}
	for _, b := range resp.Buckets() {
		pr := ProviderResult{Provider: b.Provider, Kind: b.Kind, Courses: b.Courses}
		if b.Error != nil {
			pr.Error = *b.Error
		}
		result.Total += len(b.Courses)
		result.Providers = append(result.Providers, pr)
	}
	return result
}

func formatSearchResult(result CourseSearchResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[course_search] %d course(s) from %d provider(s)", result.Total, len(result.Providers))
	if result.Persisted > 0 {
		fmt.Fprintf(&sb, ", %d persisted", result.Persisted)
	}
	sb.WriteString("\n")

	for _, p := range result.Providers {
		if p.Error != "" {
			fmt.Fprintf(&sb, "\n%s: failed (%s)", p.Provider, p.Error)
			continue
		}
		fmt.Fprintf(&sb, "\n%s: %d course(s)", p.Provider, len(p.Courses))
		for _, c := range p.Courses {
			fmt.Fprintf(&sb, "\n  • %s [%s] %s", c.Title, c.Price.Text(), c.URL)
		}
	}

	if result.Message != "" {
		sb.WriteString("\n\n" + result.Message)
	}
	return sb.String()
}
