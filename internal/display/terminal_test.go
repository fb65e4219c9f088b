package display

import (
	"strings"
	"testing"

	"github.com/honeycarbs/course-aggregator/internal/domain"
)

func TestFormatCourse_ShowsTitleProviderAndURL(t *testing.T) {
	c := domain.NormalizedCourse{
		Provider: "udemy",
		Title:    "Go: The Complete Developer's Guide",
		URL:      "https://www.udemy.com/course/go-the-complete-developers-guide/",
		Price:    domain.TextPrice("$84.99"),
		Rating:   domain.Ptr(4.6),
	}

	output := NewTerminalFormatter().FormatCourse(c)

	for _, want := range []string{"[UDEMY]", c.Title, c.URL, "$84.99", "4.6★"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestFormatCourse_HidesAbsentFields(t *testing.T) {
	output := NewTerminalFormatter().FormatCourse(domain.NormalizedCourse{Provider: "edx", Title: "Stats"})

	if strings.Contains(output, "reviews") || strings.Contains(output, "★") {
		t.Errorf("absent rating and reviews should not be shown, got:\n%s", output)
	}
}

func TestFormatResponse_ShowsFailedBucket(t *testing.T) {
	errMsg := "udemy: rate limit exceeded: status 429"
	resp := domain.NewAggregatedResponse([]domain.Bucket{
		{Provider: "coursera", Courses: []domain.NormalizedCourse{{Provider: "coursera", Title: "ML"}}},
		{Provider: "udemy", Error: &errMsg},
		{Provider: "edx"},
	})

	output := NewTerminalFormatter().FormatResponse(resp)

	if !strings.Contains(output, "== coursera (1)") {
		t.Errorf("expected coursera header, got:\n%s", output)
	}
	if !strings.Contains(output, "error: "+errMsg) {
		t.Errorf("expected udemy error, got:\n%s", output)
	}
	if !strings.Contains(output, "== edx (no courses)") {
		t.Errorf("expected empty edx bucket, got:\n%s", output)
	}
	if strings.Index(output, "coursera") > strings.Index(output, "udemy") {
		t.Error("buckets should keep provider order")
	}
}

func TestTruncateText(t *testing.T) {
	f := NewTerminalFormatter()
	testCases := []struct {
		text   string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a longer description", 10, "a longe..."},
		{"abc", 2, "..."},
	}

	for _, tc := range testCases {
		if got := f.TruncateText(tc.text, tc.maxLen); got != tc.want {
			t.Errorf("TruncateText(%q, %d) = %q, want %q", tc.text, tc.maxLen, got, tc.want)
		}
	}
}
