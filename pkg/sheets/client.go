package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type Client struct {
	service *sheets.Service
}

type Config struct {
	CredentialsPath string
	CredentialsJSON []byte
}

// Mode selects how rows land in the tab
type Mode string

const (
	ModeAppend  Mode = "append"  // insert after the last row
	ModeReplace Mode = "replace" // clear the tab, then write header and rows from A1
)

// Target addresses a tab inside a spreadsheet
type Target struct {
	SpreadsheetID string
	Tab           string // default Sheet1
}

func (t Target) tab() string {
	if t.Tab == "" {
		return "Sheet1"
	}
	return t.Tab
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opts []option.ClientOption

	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	} else if len(cfg.CredentialsJSON) > 0 {
		opts = append(opts, option.WithCredentialsJSON(cfg.CredentialsJSON))
	} else {
		return nil, fmt.Errorf("sheets: credentials path or JSON is required")
	}
	opts = append(opts, option.WithScopes(sheets.SpreadsheetsScope))

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to create service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// WriteTable writes header plus rows into the target tab and returns the row count written
func (c *Client) WriteTable(ctx context.Context, target Target, header []string, rows [][]any, mode Mode) (int, error) {
	if c == nil || c.service == nil {
		return 0, fmt.Errorf("sheets: service is nil")
	}
	if target.SpreadsheetID == "" {
		return 0, fmt.Errorf("sheets: spreadsheet id is required")
	}

	switch mode {
	case ModeReplace:
		if err := c.clear(ctx, target.SpreadsheetID, target.tab()+"!A:Z"); err != nil {
			return 0, fmt.Errorf("sheets: failed to clear tab: %w", err)
		}
		values := make([][]any, 0, len(rows)+1)
		values = append(values, headerRow(header))
		values = append(values, rows...)
		if err := c.update(ctx, target.SpreadsheetID, target.tab()+"!A1", values); err != nil {
			return 0, fmt.Errorf("sheets: failed to write rows: %w", err)
		}
	case ModeAppend, "":
		if len(rows) == 0 {
			return 0, nil
		}
		if err := c.append(ctx, target.SpreadsheetID, target.tab()+"!A1", rows); err != nil {
			return 0, fmt.Errorf("sheets: failed to append rows: %w", err)
		}
	default:
		return 0, fmt.Errorf("sheets: unknown mode %q", mode)
	}

	return len(rows), nil
}

func headerRow(header []string) []any {
	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	return row
}

func (c *Client) append(ctx context.Context, spreadsheetID, range_ string, values [][]any) error {
	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := c.service.Spreadsheets.Values.Append(spreadsheetID, range_, valueRange).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()

	return err
}

func (c *Client) update(ctx context.Context, spreadsheetID, range_ string, values [][]any) error {
	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := c.service.Spreadsheets.Values.Update(spreadsheetID, range_, valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()

	return err
}

func (c *Client) clear(ctx context.Context, spreadsheetID, range_ string) error {
	_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, range_, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}
