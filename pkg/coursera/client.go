package coursera

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/honeycarbs/course-aggregator/pkg/httpx"
)

const (
	defaultBaseURL = "https://api.coursera.org/api/courses.v1"
	defaultLimit   = 20

	searchFields = "name,slug,description,workload,primaryLanguages,subtitleLanguages,partnerLogo,certificates,startDate,closeDate,courseType"
	includes     = "partnerIds,instructorIds"
)

// NewClient instantiates a Coursera API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("coursera: api key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: http.DefaultTransport.(*http.Transport).Clone()}
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// SearchCourses queries Coursera for courses matching any of the skills
func (c *Client) SearchCourses(ctx context.Context, params SearchParams) ([]Course, error) {
	if c == nil {
		return nil, fmt.Errorf("coursera: client is nil")
	}

	u, err := c.buildSearchURL(params)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.apiKey)

	var payload searchResponse
	if err := httpx.GetJSON(ctx, c.httpClient, u, header, &payload); err != nil {
		return nil, fmt.Errorf("coursera: %w", err)
	}

	return payload.Elements, nil
}

func (c *Client) buildSearchURL(params SearchParams) (string, error) {
	if len(params.Skills) == 0 {
		return "", fmt.Errorf("coursera: at least one skill is required")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("coursera: parse base url: %w", err)
	}
	u.Path = path.Join(u.Path, "search")

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	values := url.Values{}
	values.Set("q", strings.Join(params.Skills, " OR "))
	values.Set("limit", strconv.Itoa(limit))
	values.Set("fields", searchFields)
	values.Set("includes", includes)

	u.RawQuery = values.Encode()
	return u.String(), nil
}
