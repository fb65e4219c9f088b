package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/honeycarbs/course-aggregator/pkg/logging"
)

// GraphReader runs read-only Cypher against the catalog
type GraphReader interface {
	ReadRecords(ctx context.Context, query string, params map[string]any) ([]*neo4j.Record, []string, error)
}

// CatalogGraphParams defines the arguments for the catalog_graph tool
type CatalogGraphParams struct {
	CourseID string `json:"course_id,omitempty" jsonschema:"Catalog course ID to inspect"`
	Skill    string `json:"skill,omitempty" jsonschema:"List stored courses that teach this skill"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Row cap for skill listings (default 20)"`
}

const (
	labelCountsQuery = "MATCH (n) RETURN labels(n) AS labels, count(n) AS count ORDER BY count DESC LIMIT 20"

	courseByIDQuery = `
		MATCH (c:Course {id: $courseId})
		OPTIONAL MATCH (c)-[:OFFERED_BY]->(p:Provider)
		OPTIONAL MATCH (c)-[:TEACHES]->(s:Skill)
		RETURN c, p.name AS provider, collect(DISTINCT s.name) AS skills
	`

	coursesBySkillQuery = `
		MATCH (c:Course)-[:TEACHES]->(:Skill {name: $skill})
		RETURN c.id AS id, c.provider AS provider, c.title AS title, c.price AS price, c.rating AS rating
		ORDER BY coalesce(c.rating, 0) DESC, c.title
		LIMIT $limit
	`
)

type catalogGraphTool struct {
	reader GraphReader
	logger *logging.Logger
}

// WithCatalogGraph registers the catalog_graph tool
func WithCatalogGraph(reader GraphReader, logger *logging.Logger) Option {
	return func(reg *registry) {
		handler := catalogGraphTool{reader: reader, logger: logger}
		sdkmcp.AddTool(reg.server, reg.add(&sdkmcp.Tool{
			Name:        "catalog_graph",
			Description: "Inspect the stored course catalog: label counts, one course by ID, or courses by skill",
		}), handler.handle)
	}
}

func (h catalogGraphTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *CatalogGraphParams) (*sdkmcp.CallToolResult, any, error) {
	if h.reader == nil {
		return errorResult("catalog_graph unavailable: Neo4j client not configured"), nil, nil
	}
	if params == nil {
		params = &CatalogGraphParams{}
	}

	query, queryParams, err := buildGraphQuery(*params)
	if err != nil {
		return errorResult("catalog_graph: " + err.Error()), nil, nil
	}

	h.logger.Debug("catalog_graph query", "course_id", params.CourseID, "skill", params.Skill)

	records, keys, err := h.reader.ReadRecords(ctx, query, queryParams)
	if err != nil {
		h.logger.Error("catalog_graph: query failed", "err", err)
		return nil, nil, err
	}

	return textResult(formatRecords(records, keys)), nil, nil
}

func buildGraphQuery(params CatalogGraphParams) (string, map[string]any, error) {
	switch {
	case params.CourseID != "" && params.Skill != "":
		return "", nil, fmt.Errorf("course_id and skill are mutually exclusive")
	case params.CourseID != "":
		if _, err := uuid.Parse(params.CourseID); err != nil {
			return "", nil, fmt.Errorf("invalid course_id %q", params.CourseID)
		}
		return courseByIDQuery, map[string]any{"courseId": params.CourseID}, nil
	case params.Skill != "":
		limit := params.Limit
		if limit <= 0 {
			limit = 20
		}
		skill := strings.ToLower(strings.TrimSpace(params.Skill))
		return coursesBySkillQuery, map[string]any{"skill": skill, "limit": limit}, nil
	default:
		return labelCountsQuery, nil, nil
	}
}

func formatRecords(records []*neo4j.Record, keys []string) string {
	if len(records) == 0 {
		return "Query executed successfully but returned no rows"
	}

	var sb strings.Builder
	sb.WriteString("Results:\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for i, record := range records {
		fmt.Fprintf(&sb, "Row %d:\n", i+1)
		for _, key := range keys {
			val, ok := record.Get(key)
			if !ok {
				fmt.Fprintf(&sb, "  %s: <not found>\n", key)
				continue
			}
			fmt.Fprintf(&sb, "  %s: %s\n", key, formatValue(val))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func formatValue(val any) string {
	if val == nil {
		return "null"
	}

	switch v := val.(type) {
	case neo4j.Node:
		propsJSON, _ := json.Marshal(v.Props)
		return fmt.Sprintf("Node%v %s", v.Labels, string(propsJSON))
	case neo4j.Relationship:
		propsJSON, _ := json.Marshal(v.Props)
		return fmt.Sprintf("Relationship[%s] %s", v.Type, string(propsJSON))
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, formatValue(item))
		}
		return "[" + strings.Join(items, ", ") + "]"
	case string:
		return fmt.Sprintf("%q", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%.2f", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		jsonBytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(jsonBytes)
	}
}
