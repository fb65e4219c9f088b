package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/option"
)

const (
	maxIterations = 10
	toolTimeout   = 2 * time.Minute

	systemPromptTemplate = `You are a learning advisor helping users find online courses for the skills they want to build.

YOUR ROLE:
- Turn natural language requests into course searches across Coursera, Udemy and edX
- Compare courses on price, rating, reviews and language
- Ask a clarifying question only when the skills are unclear

AVAILABLE TOOLS:
- course_search: Search every configured provider in parallel; results come back per provider
- catalog_graph: Look up courses saved earlier, by skill or by course ID
- sheets_export: Export courses from a search or from the catalog to Google Sheets%s

TOOL USAGE GUIDELINES:

For course searches ("find courses", "learn", "best course for"):
1. Call course_search with the skills as separate entries
2. Use sort_by "rating", "reviews" or "price" when the user asks for best, most popular or cheapest
3. Use filters only for exact values such as {"language": "English"} or {"certificate": true}
4. Use max_price for budgets ("under $50" means max_price 50)
5. Set persist to true when the user wants to keep the results

For saved courses ("what did we save", "courses I kept for go"):
- ONLY call catalog_graph
- Do NOT run a new search

For exports ("put this in a sheet", "export"):
- Call sheets_export with exactly one of: the same search arguments, course_ids, or catalog_skills for saved courses

IMPORTANT RULES:
1. Report each provider separately; one provider failing does not mean the search failed
2. When a provider reports an error, say which one and why in plain language
3. Never make up courses, prices or ratings - only use tool responses
4. Keep the final answer short: the top picks first, then anything notable

Remember: rankings are per provider, so compare across providers yourself when the user asks for an overall best.`
)

// Agent drives a Gemini chat whose function calls are served by the course MCP server
type Agent struct {
	mcpSession *mcp.ClientSession
	gemini     *genai.Client
	model      *genai.GenerativeModel
	tools      []*mcp.Tool
	sheetsID   string
	out        io.Writer
}

// NewAgent connects to the MCP server and prepares the Gemini model with its tools
func NewAgent(ctx context.Context, out io.Writer, mcpEndpoint, apiKey, model, sheetsID string) (*Agent, error) {
	mcpClient := mcp.NewClient(&mcp.Implementation{
		Name:    "course-assistant",
		Version: "0.1.0",
	}, nil)

	fmt.Fprintf(out, "Connecting to MCP server at: %s\n", mcpEndpoint)

	session, err := mcpClient.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: mcpEndpoint,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MCP server at %s: %w", mcpEndpoint, err)
	}

	geminiClient, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		_ = session.Close()
		return nil, fmt.Errorf("failed to initialize Gemini: %w", err)
	}

	geminiModel := geminiClient.GenerativeModel(model)
	geminiModel.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt(sheetsID))},
	}

	toolsResp, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		_ = geminiClient.Close()
		_ = session.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	agent := &Agent{
		mcpSession: session,
		gemini:     geminiClient,
		model:      geminiModel,
		tools:      toolsResp.Tools,
		sheetsID:   sheetsID,
		out:        out,
	}
	agent.model.Tools = buildGeminiTools(agent.tools)

	return agent, nil
}

func systemPrompt(sheetsID string) string {
	if sheetsID == "" {
		return fmt.Sprintf(systemPromptTemplate, "")
	}
	instruction := fmt.Sprintf("\n\nFor sheets_export, ALWAYS use this Google Sheets ID: %s\n"+
		"Format: {\"search\": {...course_search arguments...}, \"replace\": true, \"sheet\": {\"spreadsheet_id\": \"%s\", \"tab\": \"Courses\"}}\n"+
		"DO NOT ask the user for the spreadsheet ID.", sheetsID, sheetsID)
	return fmt.Sprintf(systemPromptTemplate, instruction)
}

// Close releases the Gemini client and the MCP session
func (a *Agent) Close() error {
	var errs []error

	if err := a.gemini.Close(); err != nil {
		errs = append(errs, fmt.Errorf("gemini close error: %w", err))
	}
	if err := a.mcpSession.Close(); err != nil {
		errs = append(errs, fmt.Errorf("mcp session close error: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during close: %v", errs)
	}
	return nil
}

// RunQuery answers one user request, calling MCP tools until Gemini returns text
func (a *Agent) RunQuery(ctx context.Context, userQuery string) error {
	rule := strings.Repeat("=", 80)
	fmt.Fprintf(a.out, "\nUser Query: %s\n\n", userQuery)
	fmt.Fprintln(a.out, rule)

	chat := a.model.StartChat()
	parts := []genai.Part{genai.Text(userQuery)}

	for iteration := 1; iteration <= maxIterations; iteration++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if iteration == 1 {
			fmt.Fprintln(a.out, "[Agent] Analyzing your request...")
		} else {
			fmt.Fprintf(a.out, "[Agent] Processing step %d...\n", iteration)
		}

		resp, err := chat.SendMessage(ctx, parts...)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("gemini API error: %w", err)
		}

		var (
			text      strings.Builder
			responses []genai.Part
		)
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				switch p := part.(type) {
				case genai.FunctionCall:
					responses = append(responses, a.serveCall(ctx, p))
				case genai.Text:
					text.WriteString(string(p))
				}
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if len(responses) > 0 {
			parts = responses
			continue
		}

		if text.Len() > 0 {
			fmt.Fprintln(a.out, "\n"+rule)
			fmt.Fprintln(a.out, "FINAL RESPONSE:")
			fmt.Fprintln(a.out, rule+"\n")
			fmt.Fprintf(a.out, "%s\n\n", text.String())
			fmt.Fprintln(a.out, rule)
			return nil
		}

		if len(resp.Candidates) == 0 {
			return fmt.Errorf("unexpected response format from Gemini")
		}
	}

	return fmt.Errorf("max iterations reached")
}

func (a *Agent) serveCall(ctx context.Context, fc genai.FunctionCall) genai.Part {
	args := fc.Args
	if args == nil {
		args = map[string]any{}
	}

	fmt.Fprintln(a.out, "\n"+toolProgress(fc.Name))

	result, err := a.callTool(ctx, fc.Name, args)
	if err != nil {
		fmt.Fprintf(a.out, "[Error] Tool error: %v\n", err)
		return genai.FunctionResponse{
			Name:     fc.Name,
			Response: map[string]any{"error": err.Error()},
		}
	}

	fmt.Fprintf(a.out, "[Success] %s completed\n", toolDisplayName(fc.Name))
	return genai.FunctionResponse{Name: fc.Name, Response: result}
}

func (a *Agent) callTool(ctx context.Context, name string, args map[string]any) (map[string]any, error) {
	if !hasTool(a.tools, name) {
		return nil, fmt.Errorf("tool %s not found", name)
	}

	toolCtx, cancel := context.WithTimeout(ctx, toolTimeout)
	defer cancel()

	result, err := a.mcpSession.CallTool(toolCtx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return nil, err
	}
	return toolResponse(result), nil
}

func hasTool(tools []*mcp.Tool, name string) bool {
	for _, t := range tools {
		if t.Name == name {
			return true
		}
	}
	return false
}

func toolProgress(name string) string {
	switch name {
	case "course_search":
		return "[Tool] Searching course providers..."
	case "catalog_graph":
		return "[Tool] Querying saved courses..."
	case "sheets_export":
		return "[Tool] Exporting courses to Google Sheets..."
	default:
		return fmt.Sprintf("[Tool] Calling tool: %s...", name)
	}
}

func toolDisplayName(name string) string {
	switch name {
	case "course_search":
		return "Course search"
	case "catalog_graph":
		return "Catalog query"
	case "sheets_export":
		return "Google Sheets export"
	default:
		return name
	}
}
