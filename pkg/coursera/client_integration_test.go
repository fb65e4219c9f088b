package coursera

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestSearchCoursesIntegration(t *testing.T) {
	apiKey := os.Getenv("COURSERA_API_KEY")
	if apiKey == "" {
		t.Skip("COURSERA_API_KEY must be set to run this test")
	}

	client, err := NewClient(Config{
		APIKey:  apiKey,
		BaseURL: os.Getenv("COURSERA_BASE_URL"),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	courses, err := client.SearchCourses(ctx, SearchParams{Skills: []string{"python"}, Limit: 5})
	if err != nil {
		t.Fatalf("SearchCourses: %v", err)
	}

	if len(courses) == 0 {
		t.Log("Coursera search returned zero courses; check query or credentials")
		return
	}

	for i, c := range courses {
		t.Logf("Result %d: %s (%s)", i+1, c.Name, c.Slug)
	}
}
