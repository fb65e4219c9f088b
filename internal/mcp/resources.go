package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/honeycarbs/course-aggregator/internal/config"
	"github.com/honeycarbs/course-aggregator/internal/domain"
	"github.com/honeycarbs/course-aggregator/internal/mcp/tools"
	"github.com/honeycarbs/course-aggregator/pkg/logging"
)

// ErrCatalogUnavailable is returned by catalog calls when Neo4j is not configured
var ErrCatalogUnavailable = errors.New("catalog store not configured (NEO4J_URI not set or unreachable)")

// initializeResources wires everything and logs which optional integrations are live
func initializeResources(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Resources, func(), error) {
	res, cleanup, err := InitializeResources(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize resources: %w", err)
	}

	logger.Info("course providers initialized",
		"providers", res.CourseService.Providers(),
		"timeout", cfg.ProviderTimeout,
		"price_parsing", cfg.PriceParsing,
	)
	if res.Neo4jClient != nil {
		logger.Info("Neo4j client initialized", "uri", cfg.Neo4j.URI)
	}
	if _, ok := res.SheetsClient.(unavailableSheets); !ok {
		logger.Info("Google Sheets client initialized")
	}

	return res, cleanup, nil
}

type unavailableCatalog struct{}

func (unavailableCatalog) UpsertCourses(ctx context.Context, courses []domain.CourseRef) error {
	return ErrCatalogUnavailable
}

func (unavailableCatalog) FindByIDs(ctx context.Context, ids []domain.CourseID) ([]domain.CourseRef, error) {
	return nil, ErrCatalogUnavailable
}

func (unavailableCatalog) FindBySkills(ctx context.Context, skills []string, limit int) ([]domain.CourseRef, error) {
	return nil, ErrCatalogUnavailable
}

type unavailableSheets struct {
	reason string
}

func (s unavailableSheets) Export(ctx context.Context, w tools.SheetsWrite) (tools.SheetsExportResult, error) {
	return tools.SheetsExportResult{
		SpreadsheetID: w.Sheet.SpreadsheetID,
		Tab:           w.Sheet.Tab,
		Message:       "Google Sheets client not configured",
	}, fmt.Errorf("sheets: client not configured: %s", s.reason)
}
