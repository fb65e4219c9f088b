package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// CourseID uniquely identifies a stored course
type CourseID = uuid.UUID

// catalogNamespace seeds deterministic course IDs
var catalogNamespace = uuid.MustParse("6f1c0d9e-3a52-4b8e-9d0e-2c7a51f4e8b3")

// NewCourseID derives a stable ID from provider and upstream course ID
func NewCourseID(provider, providerCourseID string) CourseID {
	return uuid.NewSHA1(catalogNamespace, []byte(provider+":"+providerCourseID))
}

// Price holds a raw upstream price, either numeric or descriptive text
type Price struct {
	amount  float64
	text    string
	numeric bool
}

// NumericPrice builds a Price from an upstream number
func NumericPrice(v float64) Price {
	return Price{amount: v, numeric: true}
}

// TextPrice builds a Price from an upstream string such as "$49.99"
func TextPrice(s string) Price {
	return Price{text: s}
}

// Numeric reports the raw number and whether the price arrived as one
func (p Price) Numeric() (float64, bool) {
	return p.amount, p.numeric
}

// Text returns the raw string form; numeric prices are formatted
func (p Price) Text() string {
	if p.numeric {
		return strconv.FormatFloat(p.amount, 'f', -1, 64)
	}
	return p.text
}

// Raw returns the price as it arrived upstream (float64 or string)
func (p Price) Raw() any {
	if p.numeric {
		return p.amount
	}
	return p.text
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Raw())
}

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*p = Price{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = TextPrice(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*p = NumericPrice(f)
	return nil
}

// NormalizedCourse is the provider-agnostic course record
type NormalizedCourse struct {
	Provider         string   `json:"provider"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	URL              string   `json:"url"`
	ImageURL         *string  `json:"image_url,omitempty"`
	Price            Price    `json:"price"`
	NumericPrice     float64  `json:"numeric_price"`
	Rating           *float64 `json:"rating,omitempty"`
	ReviewCount      *int     `json:"reviews,omitempty"`
	Language         *string  `json:"language,omitempty"`
	Duration         *string  `json:"duration,omitempty"`
	Certificate      *bool    `json:"certificate,omitempty"`
	StartDate        *string  `json:"start_date,omitempty"`
	Pacing           *string  `json:"pacing,omitempty"`
	ProviderCourseID string   `json:"provider_id"`
}

// Field resolves a filterable field by name; ok is false when the field is absent
func (c NormalizedCourse) Field(name string) (value any, ok bool) {
	switch name {
	case "provider":
		return c.Provider, true
	case "title":
		return c.Title, true
	case "description":
		return c.Description, true
	case "url":
		return c.URL, true
	case "provider_id", "provider_course_id":
		return c.ProviderCourseID, true
	case "price":
		return c.Price.Raw(), true
	case "image_url":
		return deref(c.ImageURL)
	case "language":
		return deref(c.Language)
	case "duration":
		return deref(c.Duration)
	case "start_date":
		return deref(c.StartDate)
	case "pacing":
		return deref(c.Pacing)
	case "certificate":
		return deref(c.Certificate)
	case "rating":
		return deref(c.Rating)
	case "reviews":
		if c.ReviewCount == nil {
			return nil, false
		}
		return float64(*c.ReviewCount), true
	default:
		return nil, false
	}
}

func deref[T any](p *T) (any, bool) {
	if p == nil {
		return nil, false
	}
	return *p, true
}

// Ptr returns a pointer to v, used by the provider mapping tables
func Ptr[T any](v T) *T {
	return &v
}

// CourseRef is a stored catalog course with its lookup key
type CourseRef struct {
	ID        CourseID
	Course    NormalizedCourse
	Skills    []string
	FetchedAt time.Time
}
