package mcp

import (
	"context"
	"time"

	"github.com/honeycarbs/course-aggregator/internal/config"
	"github.com/honeycarbs/course-aggregator/internal/domain/course"
	"github.com/honeycarbs/course-aggregator/internal/domain/course/providers"
	"github.com/honeycarbs/course-aggregator/internal/mcp/tools"
	"github.com/honeycarbs/course-aggregator/internal/repository"
	storage "github.com/honeycarbs/course-aggregator/internal/storage/neo4j"
	"github.com/honeycarbs/course-aggregator/pkg/logging"
	n4j "github.com/honeycarbs/course-aggregator/pkg/neo4j"
	sheetsclient "github.com/honeycarbs/course-aggregator/pkg/sheets"
)

// provideCourseProviders builds adapters in COURSE_PROVIDERS order
func provideCourseProviders(cfg config.Config) ([]course.Provider, error) {
	return providers.Build(cfg)
}

func provideTimeout(cfg config.Config) time.Duration {
	return cfg.ProviderTimeout
}

func providePriceParser(cfg config.Config) (course.PriceParser, error) {
	return course.ParsePriceStrategy(cfg.PriceParsing)
}

// provideNeo4jClient connects to the optional catalog store; a nil client disables catalog features
func provideNeo4jClient(ctx context.Context, cfg config.Config, log *logging.Logger) (*n4j.Client, func()) {
	if !cfg.Neo4jEnabled() {
		return nil, func() {}
	}

	client, err := n4j.NewClient(ctx, n4j.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
	})
	if err != nil {
		log.Warn("neo4j unavailable, catalog features disabled", "uri", cfg.Neo4j.URI, "err", err)
		return nil, func() {}
	}
	if err := client.EnsureSchema(ctx); err != nil {
		log.Warn("neo4j schema setup failed", "err", err)
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(ctx); err != nil {
			log.Warn("neo4j close failed", "err", err)
		}
	}
	return client, cleanup
}

func provideCatalog(client *n4j.Client) repository.CourseRepository {
	if client == nil {
		return unavailableCatalog{}
	}
	return storage.NewCourseRepository(client)
}

// provideSheetsClient returns a client that reports itself unconfigured when Sheets is off
func provideSheetsClient(ctx context.Context, cfg config.Config, log *logging.Logger) tools.SheetsClient {
	if !cfg.SheetsEnabled() {
		return unavailableSheets{reason: "GOOGLE_SHEETS_CREDENTIALS_PATH not set"}
	}

	client, err := sheetsclient.NewClient(ctx, sheetsclient.Config{CredentialsPath: cfg.Sheets.CredentialsPath})
	if err != nil {
		log.Warn("google sheets unavailable", "err", err)
		return unavailableSheets{reason: err.Error()}
	}
	return &sheetsClientAdapter{client: client}
}

func newResources(
	courseService course.Service,
	catalog repository.CourseRepository,
	sheetsClient tools.SheetsClient,
	neo4jClient *n4j.Client,
) *Resources {
	return &Resources{
		CourseService: courseService,
		Catalog:       catalog,
		SheetsClient:  sheetsClient,
		Neo4jClient:   neo4jClient,
	}
}
