package udemy

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestSearchCoursesIntegration(t *testing.T) {
	apiKey := os.Getenv("UDEMY_API_KEY")
	if apiKey == "" {
		t.Skip("UDEMY_API_KEY must be set to run this test")
	}

	client, err := NewClient(Config{
		APIKey:  apiKey,
		BaseURL: os.Getenv("UDEMY_BASE_URL"),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	courses, err := client.SearchCourses(ctx, SearchParams{Skills: []string{"golang"}, Limit: 5})
	if err != nil {
		t.Fatalf("SearchCourses: %v", err)
	}

	if len(courses) == 0 {
		t.Log("Udemy search returned zero courses; check query or credentials")
		return
	}

	for i, c := range courses {
		t.Logf("Result %d: %s %s (%s)", i+1, c.Title, c.Price, c.URL)
	}
}
