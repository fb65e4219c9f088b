package mcp

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/course-aggregator/internal/domain/course"
	"github.com/honeycarbs/course-aggregator/internal/mcp/tools"
	"github.com/honeycarbs/course-aggregator/internal/repository"
	"github.com/honeycarbs/course-aggregator/pkg/logging"
	n4j "github.com/honeycarbs/course-aggregator/pkg/neo4j"
)

type ToolRegistry struct {
	logger *logging.Logger
}

// Resources holds everything the tools and REST handlers depend on
type Resources struct {
	CourseService course.Service
	Catalog       repository.CourseRepository
	SheetsClient  tools.SheetsClient
	Neo4jClient   *n4j.Client // nil when the catalog store is disabled
}

func NewToolRegistry(logger *logging.Logger) *ToolRegistry {
	return &ToolRegistry{logger: logger}
}

// RegisterAll installs every course tool and returns their names
func (r *ToolRegistry) RegisterAll(server *sdkmcp.Server, res *Resources) []string {
	var graph tools.GraphReader
	if res.Neo4jClient != nil {
		graph = res.Neo4jClient
	}

	names := tools.Register(server,
		tools.WithCourseSearch(res.CourseService, res.Catalog, r.logger),
		tools.WithSheetsExport(res.SheetsClient, res.CourseService, res.Catalog, r.logger),
		tools.WithCatalogGraph(graph, r.logger),
	)

	r.logger.Info("MCP tools registered", "tools", names)
	return names
}
