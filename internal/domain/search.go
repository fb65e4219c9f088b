package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// SortKey selects the numeric key used to rank a provider bucket
type SortKey string

const (
	SortNone    SortKey = ""
	SortPrice   SortKey = "price"
	SortRating  SortKey = "rating"
	SortReviews SortKey = "reviews"
)

// Valid reports whether k is a known sort key (empty means no sorting)
func (k SortKey) Valid() bool {
	switch k {
	case SortNone, SortPrice, SortRating, SortReviews:
		return true
	}
	return false
}

// PriceRange is an inclusive bound on the derived numeric price
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PriceCeiling is the upper bound used when only a minimum price is given
const PriceCeiling = math.MaxFloat64

// NewPriceRange builds a range from optional bounds; a missing min is 0 and a
// missing max is PriceCeiling. Both missing means no range.
func NewPriceRange(lo, hi *float64) *PriceRange {
	if lo == nil && hi == nil {
		return nil
	}
	r := PriceRange{Min: 0, Max: PriceCeiling}
	if lo != nil {
		r.Min = *lo
	}
	if hi != nil {
		r.Max = *hi
	}
	return &r
}

// UnmarshalJSON leaves an omitted bound open
func (r *PriceRange) UnmarshalJSON(b []byte) error {
	var raw struct {
		Min *float64 `json:"min"`
		Max *float64 `json:"max"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*r = PriceRange{Min: 0, Max: PriceCeiling}
	if raw.Min != nil {
		r.Min = *raw.Min
	}
	if raw.Max != nil {
		r.Max = *raw.Max
	}
	return nil
}

// Contains reports whether v lies within [Min, Max]
func (r PriceRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// SearchRequest describes one aggregated course search
type SearchRequest struct {
	Skills           []string       `json:"skills"`
	LimitPerProvider int            `json:"limit_per_provider"`
	SortBy           SortKey        `json:"sort_by,omitempty"`
	Filters          map[string]any `json:"filters,omitempty"`
	PriceRange       *PriceRange    `json:"price_range,omitempty"`
}

// Validate checks the request before any provider is contacted
func (r SearchRequest) Validate() error {
	var problems []string

	if len(r.Skills) == 0 {
		problems = append(problems, "skills must not be empty")
	}
	for i, s := range r.Skills {
		if strings.TrimSpace(s) == "" {
			problems = append(problems, fmt.Sprintf("skills[%d] is blank", i))
		}
	}
	if r.LimitPerProvider <= 0 {
		problems = append(problems, fmt.Sprintf("limit_per_provider must be positive, got %d", r.LimitPerProvider))
	}
	if !r.SortBy.Valid() {
		problems = append(problems, fmt.Sprintf("sort_by must be one of price, rating, reviews, got %q", r.SortBy))
	}
	if r.PriceRange != nil && r.PriceRange.Min > r.PriceRange.Max {
		problems = append(problems, fmt.Sprintf("price_range min %v exceeds max %v", r.PriceRange.Min, r.PriceRange.Max))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ValidationError rejects a malformed SearchRequest as a whole
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid search request: " + strings.Join(e.Problems, "; ")
}

// Bucket is one provider's slice of an AggregatedResponse
type Bucket struct {
	Provider string             `json:"-"`
	Error    *string            `json:"error"`
	Kind     string             `json:"-"`
	Courses  []NormalizedCourse `json:"courses"`
}

// Failed reports whether the provider call ended in an error
func (b Bucket) Failed() bool {
	return b.Error != nil
}

// AggregatedResponse maps provider name to its bucket, in configured provider order
type AggregatedResponse struct {
	buckets []Bucket
}

// NewAggregatedResponse builds a response from buckets already in provider order
func NewAggregatedResponse(buckets []Bucket) AggregatedResponse {
	out := make([]Bucket, len(buckets))
	for i, b := range buckets {
		if b.Courses == nil {
			b.Courses = []NormalizedCourse{}
		}
		out[i] = b
	}
	return AggregatedResponse{buckets: out}
}

// Buckets returns the buckets in configured provider order
func (r AggregatedResponse) Buckets() []Bucket {
	return r.buckets
}

// Providers lists provider names in configured order
func (r AggregatedResponse) Providers() []string {
	names := make([]string, 0, len(r.buckets))
	for _, b := range r.buckets {
		names = append(names, b.Provider)
	}
	return names
}

// Get returns the bucket of the named provider
func (r AggregatedResponse) Get(provider string) (Bucket, bool) {
	for _, b := range r.buckets {
		if b.Provider == provider {
			return b, true
		}
	}
	return Bucket{}, false
}

// Len returns the number of provider buckets
func (r AggregatedResponse) Len() int {
	return len(r.buckets)
}

// Courses flattens every successful bucket, keeping provider order
func (r AggregatedResponse) Courses() []NormalizedCourse {
	var out []NormalizedCourse
	for _, b := range r.buckets {
		out = append(out, b.Courses...)
	}
	return out
}

// MarshalJSON writes {"<provider>": {"error": ..., "courses": [...]}, ...} in order
func (r AggregatedResponse) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, b := range r.buckets {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(b.Provider)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(b)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
