// Command assistant is a Gemini chat front end for the course MCP server.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mcpEndpoint := streamEndpoint(os.Getenv("MCP_URL"))

	apiKey := os.Getenv("GOOGLE_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		log.Fatal("GOOGLE_API_KEY or GEMINI_API_KEY environment variable must be set")
	}

	model := os.Getenv("GOOGLE_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	sheetsID := os.Getenv("GOOGLE_SHEETS_ID")

	rule := strings.Repeat("=", 80)
	fmt.Println("\n" + rule)
	fmt.Println("COURSE ASSISTANT CONFIGURATION")
	fmt.Println(rule)
	fmt.Printf("MCP Server URL: %s\n", mcpEndpoint)
	fmt.Printf("Google Model: %s\n", model)
	if sheetsID != "" {
		fmt.Printf("Google Sheets ID: %s\n", sheetsID)
	} else {
		fmt.Println("Google Sheets ID: Not set (exports need an ID in the request)")
	}
	fmt.Println(rule)

	agent, err := NewAgent(ctx, os.Stdout, mcpEndpoint, apiKey, model, sheetsID)
	if err != nil {
		log.Fatalf("Failed to create assistant: %v", err)
	}
	defer func() {
		if err := agent.Close(); err != nil {
			log.Printf("close: %v", err)
		}
	}()

	fmt.Printf("\nLoaded %d tools:\n", len(agent.tools))
	for i, tool := range agent.tools {
		fmt.Printf("  %d. %s - %s\n", i+1, tool.Name, truncate(strings.ReplaceAll(tool.Description, "\n", " "), 100))
	}

	if len(os.Args) > 1 {
		if err := agent.RunQuery(ctx, strings.Join(os.Args[1:], " ")); err != nil {
			log.Printf("Error: %v", err)
		}
		return
	}

	fmt.Println("\n" + rule)
	fmt.Println("COURSE ASSISTANT - INTERACTIVE MODE")
	fmt.Println(rule)
	fmt.Println("\nAsk for courses in plain language, e.g. \"cheapest English python courses under $30\".")
	fmt.Println("Type 'quit' or 'exit' to end the session.")

	inputs := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			inputs <- scanner.Text()
		}
		close(inputs)
	}()

	for {
		fmt.Print("\nYour request: ")

		select {
		case <-ctx.Done():
			fmt.Println("\n\nShutdown complete.")
			return
		case input, ok := <-inputs:
			if !ok {
				return
			}
			input = strings.TrimSpace(input)
			if input == "" {
				continue
			}
			switch strings.ToLower(input) {
			case "quit", "exit", "q":
				fmt.Println("\nGoodbye.")
				return
			}

			if err := agent.RunQuery(ctx, input); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return
				}
				fmt.Printf("\nAn error occurred: %v\n", err)
			}
		}
	}
}

// streamEndpoint appends the MCP stream path to a base URL
func streamEndpoint(base string) string {
	if base == "" {
		base = "http://localhost:8080"
	}
	if strings.HasSuffix(base, "/mcp/stream") {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/mcp/stream"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
