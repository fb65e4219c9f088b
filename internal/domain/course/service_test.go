package course_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/honeycarbs/course-aggregator/internal/domain"
	"github.com/honeycarbs/course-aggregator/internal/domain/course"
)

func TestService_Search_Scenario(t *testing.T) {
	a := &mockProvider{
		name: "coursera",
		courses: []domain.NormalizedCourse{
			newCourse("coursera", "c1", "Python Basics", domain.TextPrice("Free to audit, Certificate available"), domain.Ptr(4.2), domain.Ptr("English")),
			newCourse("coursera", "c2", "Python for Data", domain.NumericPrice(49), domain.Ptr(4.8), domain.Ptr("English")),
		},
	}
	b := &mockProvider{name: "udemy", delay: 2 * time.Second}
	c := &mockProvider{
		name: "edx",
		courses: []domain.NormalizedCourse{
			newCourse("edx", "e1", "Professional Python", domain.TextPrice("$149"), nil, domain.Ptr("English")),
		},
	}

	svc, err := course.NewService(
		course.WithProviders(a, b, c),
		course.WithTimeout(100*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := svc.Search(context.Background(), domain.SearchRequest{
		Skills:           []string{"python"},
		LimitPerProvider: 2,
		SortBy:           domain.SortRating,
		Filters:          map[string]any{"language": "English"},
		PriceRange:       &domain.PriceRange{Min: 0, Max: 100},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Len() != 3 {
		t.Fatalf("expected 3 buckets, got %d", resp.Len())
	}
	if got := strings.Join(resp.Providers(), ","); got != "coursera,udemy,edx" {
		t.Errorf("expected configured order, got %s", got)
	}

	ab, _ := resp.Get("coursera")
	if ab.Failed() {
		t.Fatalf("coursera should succeed, got error %s", *ab.Error)
	}
	if len(ab.Courses) != 2 {
		t.Fatalf("expected 2 coursera courses, got %d", len(ab.Courses))
	}
	if ab.Courses[0].ProviderCourseID != "c2" || ab.Courses[1].ProviderCourseID != "c1" {
		t.Errorf("expected rating desc [c2 c1], got [%s %s]", ab.Courses[0].ProviderCourseID, ab.Courses[1].ProviderCourseID)
	}

	bb, _ := resp.Get("udemy")
	if !bb.Failed() {
		t.Fatal("udemy should time out")
	}
	if bb.Kind != string(course.KindTimeout) {
		t.Errorf("expected timeout kind, got %s", bb.Kind)
	}
	if len(bb.Courses) != 0 {
		t.Errorf("expected no udemy courses, got %d", len(bb.Courses))
	}

	cb, _ := resp.Get("edx")
	if cb.Failed() {
		t.Errorf("edx should not fail, got %s", *cb.Error)
	}
	if len(cb.Courses) != 0 {
		t.Errorf("expected edx course above 100 to be filtered out, got %d", len(cb.Courses))
	}

	if a.gotLimit != 2 || len(a.gotSkills) != 1 || a.gotSkills[0] != "python" {
		t.Errorf("provider got skills=%v limit=%d", a.gotSkills, a.gotLimit)
	}
}

func TestService_Search_SlowProviderIsolated(t *testing.T) {
	fast := &mockProvider{
		name:    "fast",
		courses: []domain.NormalizedCourse{newCourse("fast", "f1", "Go", domain.NumericPrice(10), nil, nil)},
	}
	slow := &mockProvider{name: "slow", delay: 5 * time.Second, ignoreCtx: true}

	svc, err := course.NewService(course.WithProviders(slow, fast), course.WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	start := time.Now()
	resp, err := svc.Search(context.Background(), domain.SearchRequest{Skills: []string{"go"}, LimitPerProvider: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("search waited for the slow provider: %v", elapsed)
	}

	sb, _ := resp.Get("slow")
	if !sb.Failed() || len(sb.Courses) != 0 {
		t.Errorf("expected slow bucket to fail with no courses")
	}
	fb, _ := resp.Get("fast")
	if fb.Failed() || len(fb.Courses) != 1 {
		t.Errorf("expected fast bucket untouched, got %+v", fb)
	}
}

func TestService_Search_FailureKinds(t *testing.T) {
	svc, err := course.NewService(course.WithProviders(
		&mockProvider{name: "auth", err: &course.ProviderError{Kind: course.KindAuthentication}},
		&mockProvider{name: "boom", panicMsg: "nil map"},
		&mockProvider{name: "ok"},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := svc.Search(context.Background(), domain.SearchRequest{Skills: []string{"rust"}, LimitPerProvider: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Len() != 3 {
		t.Fatalf("expected one bucket per provider, got %d", resp.Len())
	}

	auth, _ := resp.Get("auth")
	if auth.Kind != string(course.KindAuthentication) {
		t.Errorf("expected authentication kind, got %q", auth.Kind)
	}
	boom, _ := resp.Get("boom")
	if !boom.Failed() || !strings.Contains(*boom.Error, "panicked") {
		t.Errorf("expected panic captured as bucket error, got %+v", boom)
	}
	ok, _ := resp.Get("ok")
	if ok.Failed() || ok.Courses == nil {
		t.Errorf("expected empty non-nil courses for ok bucket, got %+v", ok)
	}
}

func TestService_Search_NoSortKeepsOrder(t *testing.T) {
	courses := []domain.NormalizedCourse{
		newCourse("p", "1", "a", domain.NumericPrice(30), domain.Ptr(1.0), nil),
		newCourse("p", "2", "b", domain.NumericPrice(10), domain.Ptr(5.0), nil),
		newCourse("p", "3", "c", domain.NumericPrice(20), domain.Ptr(3.0), nil),
	}
	svc, _ := course.NewService(course.WithProviders(&mockProvider{name: "p", courses: courses}))

	resp, err := svc.Search(context.Background(), domain.SearchRequest{Skills: []string{"x"}, LimitPerProvider: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := resp.Get("p")
	for i, want := range []string{"1", "2", "3"} {
		if b.Courses[i].ProviderCourseID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, b.Courses[i].ProviderCourseID)
		}
	}
	if b.Courses[0].NumericPrice != 30 {
		t.Errorf("expected derived price to be filled, got %v", b.Courses[0].NumericPrice)
	}
}

func TestService_Search_PriceStrategy(t *testing.T) {
	courses := []domain.NormalizedCourse{
		newCourse("p", "1", "a", domain.TextPrice("2-day money back, $49"), nil, nil),
	}
	cases := []struct {
		strategy string
		want     float64
	}{
		{"literal", 249},
		{"first_token", 2},
	}
	for _, tc := range cases {
		t.Run(tc.strategy, func(t *testing.T) {
			parser, err := course.ParsePriceStrategy(tc.strategy)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			svc, _ := course.NewService(
				course.WithProviders(&mockProvider{name: "p", courses: courses}),
				course.WithPriceParser(parser),
			)
			resp, _ := svc.Search(context.Background(), domain.SearchRequest{Skills: []string{"x"}, LimitPerProvider: 1})
			b, _ := resp.Get("p")
			if b.Courses[0].NumericPrice != tc.want {
				t.Errorf("expected %v, got %v", tc.want, b.Courses[0].NumericPrice)
			}
		})
	}
}

func TestService_Search_Validation(t *testing.T) {
	p := &mockProvider{name: "p"}
	svc, _ := course.NewService(course.WithProviders(p))

	cases := []struct {
		name string
		req  domain.SearchRequest
	}{
		{"empty skills", domain.SearchRequest{LimitPerProvider: 1}},
		{"blank skill", domain.SearchRequest{Skills: []string{" "}, LimitPerProvider: 1}},
		{"zero limit", domain.SearchRequest{Skills: []string{"go"}}},
		{"unknown sort", domain.SearchRequest{Skills: []string{"go"}, LimitPerProvider: 1, SortBy: "title"}},
		{"inverted range", domain.SearchRequest{Skills: []string{"go"}, LimitPerProvider: 1, PriceRange: &domain.PriceRange{Min: 10, Max: 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), tc.req)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
		})
	}
	if p.gotSkills != nil {
		t.Error("provider must not be called for invalid requests")
	}
}

func TestService_Search_JSONShape(t *testing.T) {
	svc, _ := course.NewService(course.WithProviders(
		&mockProvider{name: "udemy", err: errors.New("bad gateway")},
		&mockProvider{name: "coursera", courses: []domain.NormalizedCourse{
			newCourse("coursera", "c1", "Go", domain.TextPrice("Free"), nil, nil),
		}},
	))
	resp, _ := svc.Search(context.Background(), domain.SearchRequest{Skills: []string{"go"}, LimitPerProvider: 1})

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(raw)
	if !strings.HasPrefix(s, `{"udemy":{"error":"udemy: upstream error: bad gateway","courses":[]}`) {
		t.Errorf("unexpected JSON prefix: %s", s)
	}
	if !strings.Contains(s, `"coursera":{"error":null,"courses":[{`) {
		t.Errorf("expected coursera bucket with null error: %s", s)
	}
}

func TestNewService_Errors(t *testing.T) {
	if _, err := course.NewService(); err == nil {
		t.Error("expected error without providers")
	}
	if _, err := course.NewService(course.WithProviders(&mockProvider{name: "a"}, &mockProvider{name: "a"})); err == nil {
		t.Error("expected error for duplicate provider names")
	}
	if _, err := course.NewService(course.WithProviders(&mockProvider{name: "a"}), course.WithTimeout(0)); err == nil {
		t.Error("expected error for non-positive timeout")
	}
}
