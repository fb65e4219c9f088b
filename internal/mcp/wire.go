//go:build wireinject
// +build wireinject

package mcp

import (
	"context"

	"github.com/google/wire"

	"github.com/honeycarbs/course-aggregator/internal/config"
	"github.com/honeycarbs/course-aggregator/internal/domain/course"
	"github.com/honeycarbs/course-aggregator/pkg/logging"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(ctx context.Context, cfg config.Config, log *logging.Logger) (*Resources, func(), error) {
	wire.Build(
		// Course providers and aggregator
		provideCourseProviders,
		provideTimeout,
		providePriceParser,
		course.NewServiceWithDeps,

		// Optional catalog store - Neo4j
		provideNeo4jClient,
		provideCatalog,

		// Optional export - Google Sheets
		provideSheetsClient,

		newResources,
	)

	return nil, nil, nil
}
