package udemy

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
	defaultBaseURL = "https://www.udemy.com/api-2.0"
	defaultLimit   = 20

	courseFields = "title,headline,url,image_480x270,price,published_title,avg_rating,num_reviews"
)

// NewClient instantiates a Udemy API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("udemy: api key is required")
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

// SearchCourses lists Udemy courses matching any of the skills, by relevance
func (c *Client) SearchCourses(ctx context.Context, params SearchParams) ([]Course, error) {
	if c == nil {
		return nil, fmt.Errorf("udemy: client is nil")
	}
	if len(params.Skills) == 0 {
		return nil, fmt.Errorf("udemy: at least one skill is required")
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	values := url.Values{}
	values.Set("search", strings.Join(params.Skills, " OR "))
	values.Set("page_size", strconv.Itoa(limit))
	values.Set("ordering", "relevance")
	values.Set("fields[course]", courseFields)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.apiKey)

	var payload coursesResponse
	if err := httpx.GetJSON(ctx, c.httpClient, c.baseURL+"/courses/?"+values.Encode(), header, &payload); err != nil {
		return nil, fmt.Errorf("udemy: %w", err)
	}

	return payload.Results, nil
}
