package neo4j

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/honeycarbs/course-aggregator/internal/domain"
)

func TestCourseParams_FillsIdentityAndSkills(t *testing.T) {
	ref := domain.CourseRef{
		Course: domain.NormalizedCourse{
			Provider:         "udemy",
			ProviderCourseID: "42",
			Title:            "Go",
			Price:            domain.NumericPrice(19.5),
			ReviewCount:      domain.Ptr(10),
		},
		Skills: []string{" Go ", "", "Concurrency"},
	}

	params := courseParams(ref)

	if params["id"] != domain.NewCourseID("udemy", "42").String() {
		t.Errorf("expected deterministic id, got %v", params["id"])
	}
	skills := params["skills"].([]string)
	if len(skills) != 2 || skills[0] != "go" || skills[1] != "concurrency" {
		t.Errorf("unexpected skills %v", skills)
	}
	if params["reviews"] != int64(10) || params["rating"] != nil || params["price"] != 19.5 {
		t.Errorf("unexpected optional values %v %v %v", params["reviews"], params["rating"], params["price"])
	}
	if params["fetchedAt"].(int64) <= 0 {
		t.Error("expected fetchedAt to default to now")
	}
}

func TestCourseFromProps(t *testing.T) {
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Millisecond)

	ref, ok := courseFromProps(map[string]any{
		"id":               id.String(),
		"provider":         "edx",
		"providerCourseId": "course-v1:X",
		"title":            "Stats",
		"price":            "Free to audit, Certificate available",
		"rating":           4.2,
		"reviews":          int64(5),
		"certificate":      true,
		"language":         "English",
		"fetchedAt":        now,
	})
	if !ok {
		t.Fatal("expected props to map")
	}
	if ref.ID != id || ref.Course.Title != "Stats" || ref.Course.Provider != "edx" {
		t.Errorf("unexpected ref %+v", ref)
	}
	if ref.Course.Price.Text() != "Free to audit, Certificate available" {
		t.Errorf("unexpected price %v", ref.Course.Price.Raw())
	}
	if *ref.Course.Rating != 4.2 || *ref.Course.ReviewCount != 5 || !*ref.Course.Certificate || *ref.Course.Language != "English" {
		t.Errorf("unexpected optional fields %+v", ref.Course)
	}
	if ref.Course.ImageURL != nil {
		t.Error("expected absent image")
	}
	if !ref.FetchedAt.Equal(now) {
		t.Errorf("unexpected fetchedAt %v", ref.FetchedAt)
	}

	if _, ok := courseFromProps(map[string]any{"id": "not-a-uuid"}); ok {
		t.Error("expected invalid id to be skipped")
	}
}
