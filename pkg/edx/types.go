package edx

import (
	"net/http"

	"github.com/honeycarbs/course-aggregator/pkg/httpx"
)

// Config defines edX Catalog API client settings
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client queries the edX catalog v1 courses endpoint
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

type coursesResponse struct {
	Count   int      `json:"count"`
	Next    *string  `json:"next"`
	Results []Course `json:"results"`
}

// Course is an edX catalog course as returned upstream.
type Course struct {
	ID               httpx.Flex `json:"id"`
	Key              string     `json:"key"`
	Title            string     `json:"title"`
	ShortDescription string     `json:"short_description"`
	MarketingURL     string     `json:"marketing_url"`
	ImageURL         *string    `json:"image_url"`
	Price            httpx.Flex `json:"price"`
	Start            httpx.Flex `json:"start"`
	End              httpx.Flex `json:"end"`
	PacingType       *string    `json:"pacing_type"`
}
