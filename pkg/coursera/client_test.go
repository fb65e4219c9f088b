package coursera

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/honeycarbs/course-aggregator/pkg/httpx"
)

func TestSearchCourses_BuildsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/courses.v1/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "python OR sql" {
			t.Errorf("expected skills joined with OR, got %q", q.Get("q"))
		}
		if q.Get("limit") != "2" {
			t.Errorf("expected limit 2, got %q", q.Get("limit"))
		}
		if q.Get("fields") != searchFields || q.Get("includes") != includes {
			t.Errorf("unexpected field selection %q / %q", q.Get("fields"), q.Get("includes"))
		}
		if r.Header.Get("Authorization") != "Bearer key" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"elements":[{"id":"abc","name":"Python","slug":"python","startDate":1700000000000}],"paging":{"total":1}}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "key", BaseURL: srv.URL + "/api/courses.v1/", HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	courses, err := c.SearchCourses(context.Background(), SearchParams{Skills: []string{"python", "sql"}, Limit: 2})
	if err != nil {
		t.Fatalf("SearchCourses: %v", err)
	}
	if len(courses) != 1 || courses[0].Slug != "python" {
		t.Fatalf("unexpected courses %+v", courses)
	}
	if !courses[0].StartDate.IsNumber {
		t.Error("expected numeric start date to decode")
	}
}

func TestSearchCourses_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, _ := NewClient(Config{APIKey: "bad", BaseURL: srv.URL, HTTPClient: srv.Client()})
	_, err := c.SearchCourses(context.Background(), SearchParams{Skills: []string{"go"}, Limit: 1})

	var se *httpx.StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 status error, got %v", err)
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Error("expected error without api key")
	}
}
