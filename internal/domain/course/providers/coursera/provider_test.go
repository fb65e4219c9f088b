package coursera

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	coursedomain "github.com/honeycarbs/course-aggregator/internal/domain/course"
	"github.com/honeycarbs/course-aggregator/pkg/coursera"
)

func decode(t *testing.T, raw string) coursera.Course {
	t.Helper()
	var c coursera.Course
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return c
}

func TestNormalize_FullRecord(t *testing.T) {
	c := decode(t, `{
		"id": "Gtv4Xb1-EeS-ViIACwYKVQ",
		"name": "Machine Learning",
		"slug": "machine-learning",
		"description": "Intro to ML",
		"workload": "4-6 hours/week",
		"primaryLanguages": ["es"],
		"partnerLogo": "https://img/logo.png",
		"certificates": ["VerifiedCert"],
		"startDate": 1700000000000
	}`)

	nc := Normalize(c)

	if nc.Provider != "coursera" || nc.Title != "Machine Learning" || nc.Description != "Intro to ML" {
		t.Errorf("unexpected text fields %+v", nc)
	}
	if nc.URL != "https://www.coursera.org/learn/machine-learning" {
		t.Errorf("unexpected url %q", nc.URL)
	}
	if *nc.Duration != "4-6 hours/week" || *nc.Language != "es" || !*nc.Certificate {
		t.Errorf("unexpected optional fields duration=%s language=%s cert=%v", *nc.Duration, *nc.Language, *nc.Certificate)
	}
	if *nc.StartDate != "1700000000000" {
		t.Errorf("expected numeric start date as text, got %q", *nc.StartDate)
	}
	if *nc.ImageURL != "https://img/logo.png" || nc.ProviderCourseID != "Gtv4Xb1-EeS-ViIACwYKVQ" {
		t.Errorf("unexpected image or id %+v", nc)
	}
	if nc.Price.Text() != "Free to audit, Certificate available" {
		t.Errorf("unexpected price %q", nc.Price.Text())
	}
}

func TestNormalize_Defaults(t *testing.T) {
	nc := Normalize(decode(t, `{"id": 7, "primaryLanguages": []}`))

	if nc.Title != "" || nc.URL != "" {
		t.Errorf("expected empty title and url, got %q %q", nc.Title, nc.URL)
	}
	if *nc.Duration != "Flexible" || *nc.Language != "English" || *nc.StartDate != "Self-paced" {
		t.Errorf("unexpected defaults %s %s %s", *nc.Duration, *nc.Language, *nc.StartDate)
	}
	if *nc.Certificate {
		t.Error("expected no certificate")
	}
	if nc.ImageURL != nil {
		t.Error("expected absent image")
	}
	if nc.ProviderCourseID != "7" {
		t.Errorf("expected numeric id as text, got %q", nc.ProviderCourseID)
	}
}

type fakeClient struct {
	courses []coursera.Course
	err     error
}

func (f *fakeClient) SearchCourses(ctx context.Context, params coursera.SearchParams) ([]coursera.Course, error) {
	return f.courses, f.err
}

func TestSearch_TruncatesToLimit(t *testing.T) {
	p, _ := NewProvider(&fakeClient{courses: make([]coursera.Course, 5)})

	out, err := p.Search(context.Background(), []string{"go"}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Errorf("expected 2 courses, got %d", len(out))
	}
}

func TestSearch_RateLimitedThroughClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client, _ := coursera.NewClient(coursera.Config{APIKey: "k", BaseURL: srv.URL, HTTPClient: srv.Client()})
	p, _ := NewProvider(client)

	_, err := p.Search(context.Background(), []string{"go"}, 1)
	if !errors.Is(coursedomain.Classify(Name, err), coursedomain.ErrRateLimited) {
		t.Errorf("expected rate limited, got %v", err)
	}
}

func TestNewProvider_RequiresClient(t *testing.T) {
	if _, err := NewProvider(nil); err == nil {
		t.Error("expected error for nil client")
	}
}
