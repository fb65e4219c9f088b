package main

import (
	"encoding/json"
	"strings"

	"github.com/google/generative-ai-go/genai"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// buildGeminiTools declares every MCP tool as a Gemini function
func buildGeminiTools(tools []*mcp.Tool) []*genai.Tool {
	out := make([]*genai.Tool, 0, len(tools))
	for _, tool := range tools {
		out = append(out, &genai.Tool{
			FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  convertSchema(normalizeSchema(tool.InputSchema)),
			}},
		})
	}
	return out
}

// normalizeSchema turns a typed schema value into the generic map form
func normalizeSchema(schema any) any {
	if schema == nil {
		return nil
	}
	if _, ok := schema.(map[string]any); ok {
		return schema
	}
	data, err := json.Marshal(schema)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil
	}
	return m
}

// convertSchema maps a JSON Schema object onto the Gemini subset
func convertSchema(schema any) *genai.Schema {
	schemaMap, ok := schema.(map[string]any)
	if !ok {
		return &genai.Schema{Type: genai.TypeObject}
	}

	result := &genai.Schema{Type: schemaType(schemaMap["type"])}

	if desc, ok := schemaMap["description"].(string); ok {
		result.Description = desc
	}

	if required, ok := schemaMap["required"].([]any); ok {
		for _, req := range required {
			if s, ok := req.(string); ok {
				result.Required = append(result.Required, s)
			}
		}
	}

	if properties, ok := schemaMap["properties"].(map[string]any); ok {
		result.Properties = make(map[string]*genai.Schema, len(properties))
		for name, prop := range properties {
			result.Properties[name] = convertSchema(prop)
		}
	}

	if items, ok := schemaMap["items"]; ok && result.Type == genai.TypeArray {
		result.Items = convertSchema(items)
	}

	return result
}

// schemaType reads "type", which may be a list such as ["null","number"] for pointers
func schemaType(v any) genai.Type {
	var name string
	switch t := v.(type) {
	case string:
		name = t
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && s != "null" {
				name = s
				break
			}
		}
	}

	switch name {
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	default:
		return genai.TypeObject
	}
}

// toolResponse packs an MCP result into the map Gemini expects as a function response
func toolResponse(result *mcp.CallToolResult) map[string]any {
	var texts []string
	for _, content := range result.Content {
		if text, ok := content.(*mcp.TextContent); ok {
			texts = append(texts, text.Text)
		}
	}

	summary := "Tool executed successfully"
	if len(texts) > 0 {
		summary = strings.Join(texts, "\n")
	}

	if result.IsError {
		return map[string]any{"error": summary}
	}

	resp := map[string]any{"result": summary}
	if result.StructuredContent != nil {
		resp["data"] = normalizeSchema(result.StructuredContent)
	}
	return resp
}
