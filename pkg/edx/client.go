package edx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/honeycarbs/course-aggregator/pkg/httpx"
)

const (
	defaultBaseURL = "https://api.edx.org/catalog/v1"
	defaultLimit   = 20

	courseFields = "title,short_description,marketing_url,image_url,price,start,end,pacing_type"
)

// NewClient instantiates an edX API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("edx: api key is required")
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

// SearchCourses queries the edX catalog for courses matching any of the skills
func (c *Client) SearchCourses(ctx context.Context, params SearchParams) ([]Course, error) {
	if c == nil {
		return nil, fmt.Errorf("edx: client is nil")
	}
	if len(params.Skills) == 0 {
		return nil, fmt.Errorf("edx: at least one skill is required")
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	values := url.Values{}
	values.Set("q", strings.Join(params.Skills, " OR "))
	values.Set("limit", strconv.Itoa(limit))
	values.Set("fields", courseFields)

	header := http.Header{}
	header.Set("X-Edx-Api-Key", c.apiKey)

	var payload coursesResponse
	if err := httpx.GetJSON(ctx, c.httpClient, c.baseURL+"/courses/?"+values.Encode(), header, &payload); err != nil {
		return nil, fmt.Errorf("edx: %w", err)
	}

	return payload.Results, nil
}
