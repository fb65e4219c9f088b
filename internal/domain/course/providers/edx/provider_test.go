package edx

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	coursedomain "github.com/honeycarbs/course-aggregator/internal/domain/course"
	"github.com/honeycarbs/course-aggregator/pkg/edx"
)

func TestNormalize_FullRecord(t *testing.T) {
	var c edx.Course
	err := json.Unmarshal([]byte(`{
		"id": "course-v1:MITx+6.00.1x",
		"title": "Intro to CS",
		"short_description": "Python basics",
		"marketing_url": "https://www.edx.org/course/intro-cs",
		"image_url": "https://img/cs.png",
		"price": 75,
		"start": "2026-01-15T00:00:00Z",
		"pacing_type": "instructor_paced"
	}`), &c)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	nc := Normalize(c)
	if nc.Title != "Intro to CS" || nc.Description != "Python basics" || nc.URL != "https://www.edx.org/course/intro-cs" {
		t.Errorf("unexpected text fields %+v", nc)
	}
	if v, ok := nc.Price.Numeric(); !ok || v != 75 {
		t.Errorf("expected numeric price 75, got %v", nc.Price.Raw())
	}
	if *nc.StartDate != "2026-01-15T00:00:00Z" || *nc.Pacing != "instructor_paced" {
		t.Errorf("unexpected schedule %s %s", *nc.StartDate, *nc.Pacing)
	}
	if nc.ProviderCourseID != "course-v1:MITx+6.00.1x" {
		t.Errorf("unexpected id %q", nc.ProviderCourseID)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	var c edx.Course
	_ = json.Unmarshal([]byte(`{"id": "x", "start": null}`), &c)

	nc := Normalize(c)
	if nc.Price.Text() != "Free to audit, Certificate available" {
		t.Errorf("unexpected default price %q", nc.Price.Text())
	}
	if *nc.StartDate != "Self-paced" || *nc.Pacing != "Self-paced" {
		t.Errorf("unexpected defaults %s %s", *nc.StartDate, *nc.Pacing)
	}
	if nc.URL != "" || nc.ImageURL != nil {
		t.Error("expected empty url and absent image")
	}
}

type fakeClient struct {
	err error
}

func (f *fakeClient) SearchCourses(ctx context.Context, params edx.SearchParams) ([]edx.Course, error) {
	<-ctx.Done()
	return nil, f.err
}

func TestSearch_PropagatesContextError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, _ := NewProvider(&fakeClient{err: context.Canceled})
	_, err := p.Search(ctx, []string{"go"}, 1)
	if !errors.Is(coursedomain.Classify(Name, err), coursedomain.ErrCanceled) {
		t.Errorf("expected canceled, got %v", err)
	}
}
