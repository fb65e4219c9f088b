package udemy

import (
	"net/http"

	"github.com/honeycarbs/course-aggregator/pkg/httpx"
)

// Config defines Udemy Affiliate API client settings
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Client queries the Udemy api-2.0 course list
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
	Count    int      `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []Course `json:"results"`
}

// Course is a Udemy course record as returned upstream.
// Price may arrive as a number or as a formatted string.
type Course struct {
	ID             httpx.Flex `json:"id"`
	Title          string     `json:"title"`
	Headline       string     `json:"headline"`
	URL            string     `json:"url"`
	Image480x270   *string    `json:"image_480x270"`
	Price          httpx.Flex `json:"price"`
	PublishedTitle string     `json:"published_title"`
	AvgRating      httpx.Flex `json:"avg_rating"`
	NumReviews     httpx.Flex `json:"num_reviews"`
}
