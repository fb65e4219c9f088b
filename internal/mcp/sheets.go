package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/course-aggregator/internal/mcp/tools"
	sheetsclient "github.com/honeycarbs/course-aggregator/pkg/sheets"
)

// sheetsWriter is the part of the Sheets client used for exports
type sheetsWriter interface {
	WriteTable(ctx context.Context, target sheetsclient.Target, header []string, rows [][]any, mode sheetsclient.Mode) (int, error)
}

type sheetsClientAdapter struct {
	client sheetsWriter
}

func (a *sheetsClientAdapter) Export(ctx context.Context, w tools.SheetsWrite) (tools.SheetsExportResult, error) {
	mode := sheetsclient.ModeAppend
	if w.Replace {
		mode = sheetsclient.ModeReplace
	}

	result := tools.SheetsExportResult{
		SpreadsheetID: w.Sheet.SpreadsheetID,
		Tab:           w.Sheet.Tab,
		Mode:          string(mode),
	}

	written, err := a.client.WriteTable(ctx, sheetsclient.Target{
		SpreadsheetID: w.Sheet.SpreadsheetID,
		Tab:           w.Sheet.Tab,
	}, w.Header, convertRowsToValues(w.Rows), mode)
	if err != nil {
		return result, err
	}

	result.WrittenRows = written
	result.CompletedAt = time.Now().UTC()
	if written == 0 {
		result.Message = "no rows to export"
	} else {
		result.Message = fmt.Sprintf("successfully exported %d row(s)", written)
	}
	return result, nil
}

func convertRowsToValues(rows [][]string) [][]any {
	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = make([]any, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}
	return values
}
