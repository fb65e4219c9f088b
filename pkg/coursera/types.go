package coursera

import (
	"net/http"

	"github.com/honeycarbs/course-aggregator/pkg/httpx"
)

// Config defines Coursera API client settings
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client queries the Coursera courses.v1 search API
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// SearchParams describe a course search request
type SearchParams struct {
	Skills []string
	Limit  int
}

type searchResponse struct {
	Elements []Course `json:"elements"`
	Paging   struct {
		Next  string `json:"next"`
		Total int    `json:"total"`
	} `json:"paging"`
}

// Course is a Coursera catalog element as returned upstream.
type Course struct {
	ID               httpx.Flex `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	Description      string     `json:"description"`
	Workload         *string    `json:"workload"`
	PrimaryLanguages []string   `json:"primaryLanguages"`
	SubtitleLangs    []string   `json:"subtitleLanguages"`
	PartnerLogo      *string    `json:"partnerLogo"`
	Certificates     []any      `json:"certificates"`
	StartDate        httpx.Flex `json:"startDate"`
	CloseDate        httpx.Flex `json:"closeDate"`
	CourseType       string     `json:"courseType"`
}
