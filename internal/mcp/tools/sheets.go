package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/course-aggregator/internal/domain"
	"github.com/honeycarbs/course-aggregator/internal/domain/course"
	"github.com/honeycarbs/course-aggregator/internal/export"
	"github.com/honeycarbs/course-aggregator/internal/repository"
	"github.com/honeycarbs/course-aggregator/pkg/logging"
)

// SheetTarget addresses the destination tab
type SheetTarget struct {
	SpreadsheetID string `json:"spreadsheet_id" jsonschema:"Google Sheets document ID"`
	Tab           string `json:"tab,omitempty" jsonschema:"Tab name, Sheet1 when empty"`
}

// SheetsWrite is a fully rendered table handed to the Sheets client
type SheetsWrite struct {
	Sheet   SheetTarget
	Replace bool
	Header  []string
	Rows    [][]string
}

// SheetsClient writes rendered course rows to a spreadsheet
type SheetsClient interface {
	Export(ctx context.Context, w SheetsWrite) (SheetsExportResult, error)
}

// SheetsExportParams defines the arguments for the sheets_export tool
type SheetsExportParams struct {
	Search    *CourseSearchParams `json:"search,omitempty" jsonschema:"Run a live search and export its courses"`
	CourseIDs []string            `json:"course_ids,omitempty" jsonschema:"Catalog course IDs to export instead of searching"`
	Skills    []string            `json:"catalog_skills,omitempty" jsonschema:"Export stored courses teaching any of these skills"`
	Limit     int                 `json:"limit,omitempty" jsonschema:"Row cap for catalog_skills (default 100)"`
	Replace   bool                `json:"replace,omitempty" jsonschema:"Clear the tab and write a header row before the courses"`
	Sheet     SheetTarget         `json:"sheet" jsonschema:"Destination sheet information"`
}

// SheetsExportResult describes the summary returned after export
type SheetsExportResult struct {
	SpreadsheetID string    `json:"spreadsheet_id" jsonschema:"Target spreadsheet ID"`
	Tab           string    `json:"tab,omitempty" jsonschema:"Target tab name"`
	WrittenRows   int       `json:"written_rows" jsonschema:"How many rows were written"`
	Mode          string    `json:"mode" jsonschema:"append or replace"`
	Source        string    `json:"source" jsonschema:"search or catalog"`
	CompletedAt   time.Time `json:"completed_at" jsonschema:"Timestamp when export finished"`
	Message       string    `json:"message,omitempty" jsonschema:"Optional status message"`
}

type sheetsExportTool struct {
	sheets  SheetsClient
	service course.Service
	catalog repository.CourseRepository
	logger  *logging.Logger
}

// WithSheetsExport registers the sheets_export tool
func WithSheetsExport(sheets SheetsClient, service course.Service, catalog repository.CourseRepository, logger *logging.Logger) Option {
	return func(reg *registry) {
		handler := sheetsExportTool{sheets: sheets, service: service, catalog: catalog, logger: logger}
		sdkmcp.AddTool(reg.server, reg.add(&sdkmcp.Tool{
			Name:        "sheets_export",
			Description: "Export courses from a live search or from the catalog to Google Sheets",
		}), handler.handle)
	}
}

func (t sheetsExportTool) handle(ctx context.Context, req *sdkmcp.CallToolRequest, params *SheetsExportParams) (*sdkmcp.CallToolResult, any, error) {
	if params == nil || params.Sheet.SpreadsheetID == "" {
		return errorResult("[sheets_export] sheet.spreadsheet_id is required"), nil, nil
	}
	if countSources(params) != 1 {
		return errorResult("[sheets_export] provide exactly one of search, course_ids or catalog_skills"), nil, nil
	}
	if t.sheets == nil {
		return nil, nil, fmt.Errorf("sheets client not configured")
	}

	var (
		rows   [][]string
		source string
		err    error
	)
	switch {
	case params.Search != nil:
		source = "search"
		rows, err = t.searchRows(ctx, *params.Search)
	case len(params.CourseIDs) > 0:
		source = "catalog"
		rows, err = t.catalogRows(ctx, params.CourseIDs)
	default:
		source = "catalog"
		rows, err = t.skillRows(ctx, params.Skills, params.Limit)
	}
	if err != nil {
		t.logger.Error("sheets_export: failed to collect rows", "source", source, "err", err)
		return errorResult("[sheets_export] " + err.Error()), nil, nil
	}

	t.logger.Info("sheets_export request",
		"spreadsheet_id", params.Sheet.SpreadsheetID,
		"tab", params.Sheet.Tab,
		"source", source,
		"rows", len(rows),
		"replace", params.Replace,
	)

	result, err := t.sheets.Export(ctx, SheetsWrite{
		Sheet:   params.Sheet,
		Replace: params.Replace,
		Header:  export.Header,
		Rows:    rows,
	})
	result.Source = source
	if err != nil {
		t.logger.Error("sheets_export: write failed", "err", err)
		return nil, nil, fmt.Errorf("sheets export failed: %w", err)
	}

	msg := fmt.Sprintf("[sheets_export] mode=%s source=%s wrote %d row(s) to spreadsheet_id=%q tab=%q",
		result.Mode, result.Source, result.WrittenRows, result.SpreadsheetID, result.Tab)
	return textResult(msg), result, nil
}

func countSources(p *SheetsExportParams) int {
	n := 0
	if p.Search != nil {
		n++
	}
	if len(p.CourseIDs) > 0 {
		n++
	}
	if len(p.Skills) > 0 {
		n++
	}
	return n
}

func (t sheetsExportTool) searchRows(ctx context.Context, params CourseSearchParams) ([][]string, error) {
	if t.service == nil {
		return nil, fmt.Errorf("course service not configured")
	}
	resp, err := t.service.Search(ctx, params.Request())
	if err != nil {
		return nil, err
	}
	return export.Rows(resp), nil
}

func (t sheetsExportTool) catalogRows(ctx context.Context, rawIDs []string) ([][]string, error) {
	if t.catalog == nil {
		return nil, fmt.Errorf("catalog store not configured")
	}

	ids := make([]domain.CourseID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid course id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}

	refs, err := t.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return refRows(refs), nil
}

const defaultExportLimit = 100

func (t sheetsExportTool) skillRows(ctx context.Context, skills []string, limit int) ([][]string, error) {
	if t.catalog == nil {
		return nil, fmt.Errorf("catalog store not configured")
	}
	if limit <= 0 {
		limit = defaultExportLimit
	}

	refs, err := t.catalog.FindBySkills(ctx, skills, limit)
	if err != nil {
		return nil, err
	}
	return refRows(refs), nil
}

func refRows(refs []domain.CourseRef) [][]string {
	rows := make([][]string, 0, len(refs))
	for _, ref := range refs {
		rows = append(rows, export.Row(ref.Course))
	}
	return rows
}
