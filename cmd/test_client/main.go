package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultEndpoint = "http://localhost:8080/mcp/stream"

func main() {
	ctx := context.Background()

	endpoint := os.Getenv("MCP_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "course-aggregator-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testCourseSearch(ctx, session)
	testCatalogGraph(ctx, session)

	// Writes to a real spreadsheet, so only runs when one is named
	if id := os.Getenv("TEST_SPREADSHEET_ID"); id != "" {
		testSheetsExport(ctx, session, id)
	}

	fmt.Println("\nAll tests completed")
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("✗ list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  - %s: %s\n", tool.Name, tool.Description)
	}
}

func testCourseSearch(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: course_search")

	// Test 1: plain search
	fmt.Println("\n  Test 1: skills only")
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "course_search",
		Arguments: map[string]any{
			"skills":             []string{"python", "machine learning"},
			"limit_per_provider": 3,
		},
	})
	if err != nil {
		log.Printf("✗ course_search failed: %v", err)
		return
	}
	printResult(result)

	// Test 2: ranked, filtered and price bounded, persisted to the catalog
	fmt.Println("\n  Test 2: sort, filter, price range, persist")
	result2, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "course_search",
		Arguments: map[string]any{
			"skills":    []string{"go"},
			"sort_by":   "rating",
			"filters":   map[string]any{"language": "English"},
			"max_price": 100,
			"persist":   true,
		},
	})
	if err != nil {
		log.Printf("✗ course_search (ranked) failed: %v", err)
		return
	}
	printResult(result2)
	printStructured(result2)

	// Test 3: rejected request
	fmt.Println("\n  Test 3: invalid sort_by")
	result3, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "course_search",
		Arguments: map[string]any{
			"skills":  []string{"go"},
			"sort_by": "title",
		},
	})
	if err != nil {
		log.Printf("✗ course_search (invalid) failed: %v", err)
		return
	}
	if !result3.IsError {
		log.Printf("✗ course_search accepted an invalid sort_by")
		return
	}
	printResult(result3)

	fmt.Println("\ncourse_search all tests passed")
}

func testCatalogGraph(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: catalog_graph")

	// Test 1: overview (no parameters)
	fmt.Println("\n  Test 1: overview")
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "catalog_graph",
		Arguments: map[string]any{},
	})
	if err != nil {
		log.Printf("✗ catalog_graph (overview) failed: %v", err)
		return
	}
	printResult(result)

	// Test 2: courses for one skill
	fmt.Println("\n  Test 2: by skill")
	result2, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "catalog_graph",
		Arguments: map[string]any{
			"skill": "go",
			"limit": 5,
		},
	})
	if err != nil {
		log.Printf("✗ catalog_graph (skill) failed: %v", err)
		return
	}
	printResult(result2)

	fmt.Println("\ncatalog_graph all tests passed")
}

func testSheetsExport(ctx context.Context, session *mcp.ClientSession, spreadsheetID string) {
	fmt.Println("\nTEST: sheets_export")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "sheets_export",
		Arguments: map[string]any{
			"search": map[string]any{
				"skills":             []string{"data analysis"},
				"limit_per_provider": 5,
				"sort_by":            "price",
			},
			"replace": true,
			"sheet": map[string]any{
				"spreadsheet_id": spreadsheetID,
				"tab":            "Courses",
			},
		},
	})
	if err != nil {
		log.Printf("✗ sheets_export failed: %v", err)
		return
	}
	printResult(result)

	fmt.Println("\nsheets_export passed")
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}

func printStructured(res *mcp.CallToolResult) {
	if res.StructuredContent == nil {
		return
	}
	data, err := json.MarshalIndent(res.StructuredContent, "", "  ")
	if err != nil {
		log.Printf("structured content: %v", err)
		return
	}
	fmt.Println(string(data))
}
