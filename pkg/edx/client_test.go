package edx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchCourses_BuildsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/catalog/v1/courses/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "statistics" || q.Get("limit") != "4" || q.Get("fields") != courseFields {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if r.Header.Get("X-Edx-Api-Key") != "key" {
			t.Errorf("expected api key header, got %q", r.Header.Get("X-Edx-Api-Key"))
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("edx must not send a bearer token")
		}
		_, _ = w.Write([]byte(`{"count":1,"results":[{"id":"course-v1:HarvardX+STAT110","title":"Statistics","pacing_type":"instructor_paced"}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "key", BaseURL: srv.URL + "/catalog/v1", HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	courses, err := c.SearchCourses(context.Background(), SearchParams{Skills: []string{"statistics"}, Limit: 4})
	if err != nil {
		t.Fatalf("SearchCourses: %v", err)
	}
	if len(courses) != 1 || courses[0].PacingType == nil || *courses[0].PacingType != "instructor_paced" {
		t.Fatalf("unexpected courses %+v", courses)
	}
	if courses[0].Price.Present {
		t.Error("absent price must not be present")
	}
}
