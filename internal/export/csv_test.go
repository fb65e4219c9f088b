package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/honeycarbs/course-aggregator/internal/domain"
)

func TestWriteCSV_SkipsFailedBuckets(t *testing.T) {
	errMsg := "udemy: request timed out: context deadline exceeded"
	resp := domain.NewAggregatedResponse([]domain.Bucket{
		{
			Provider: "coursera",
			Courses: []domain.NormalizedCourse{{
				Provider:         "coursera",
				ProviderCourseID: "c1",
				Title:            "Machine\nLearning",
				URL:              "https://www.coursera.org/learn/ml",
				Price:            domain.TextPrice("Free to audit, Certificate available"),
				Language:         domain.Ptr("English"),
			}},
		},
		{Provider: "udemy", Error: &errMsg},
		{
			Provider: "edx",
			Courses: []domain.NormalizedCourse{{
				Provider:         "edx",
				ProviderCourseID: "e1",
				Title:            "Stats, Intro",
				Price:            domain.NumericPrice(149),
				NumericPrice:     149,
				Rating:           domain.Ptr(4.5),
				ReviewCount:      domain.Ptr(12),
			}},
		},
	})

	var buf bytes.Buffer
	if err := WriteCSV(&buf, resp); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "provider" || len(records[0]) != len(Header) {
		t.Errorf("unexpected header %v", records[0])
	}

	first := records[1]
	if first[0] != "coursera" || first[2] != "Machine Learning" || first[5] != "0" || first[6] != "" || first[8] != "English" {
		t.Errorf("unexpected coursera row %v", first)
	}

	second := records[2]
	if second[0] != "edx" || second[2] != "Stats, Intro" || second[4] != "149" || second[6] != "4.5" || second[7] != "12" {
		t.Errorf("unexpected edx row %v", second)
	}
}

func TestWriteCSV_EmptyResponse(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, domain.NewAggregatedResponse(nil)); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if got := buf.String(); got != "provider,provider_course_id,title,url,price,numeric_price,rating,reviews,language\n" {
		t.Errorf("unexpected output %q", got)
	}
}
