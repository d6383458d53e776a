package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/lucasfauno/printdesk/internal/common"
)

// SheetsClient implements Client against a Google spreadsheet with a history
// sheet and an inventory sheet.
type SheetsClient struct {
	service        *sheets.Service
	logger         *slog.Logger
	config         Config
	historySheetID int64
}

// NewSheetsClient creates a ledger client and verifies the spreadsheet is
// reachable. Both worksheets must already exist; this client never creates
// or restructures sheets.
func NewSheetsClient(ctx context.Context, config Config, logger *slog.Logger) (*SheetsClient, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	client := &SheetsClient{
		service: service,
		logger:  logger,
		config:  config,
	}

	if err := client.resolveSheets(ctx); err != nil {
		return nil, err
	}

	return client, nil
}

// createSheetsService creates a Google Sheets API service using either a
// service account key or OAuth2 refresh-token credentials.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// resolveSheets verifies the spreadsheet is accessible and records the
// numeric sheet id of the history sheet, which row deletion needs.
func (c *SheetsClient) resolveSheets(ctx context.Context) error {
	opCtx, cancel := c.opCtx(ctx)
	defer cancel()

	doc, err := c.service.Spreadsheets.Get(c.config.SpreadsheetID).Context(opCtx).Do()
	if err != nil {
		return fmt.Errorf("%w: unable to access spreadsheet %s: %v",
			common.ErrLedgerUnavailable, c.config.SpreadsheetID, err)
	}

	found := false
	for _, sheet := range doc.Sheets {
		if sheet.Properties.Title == c.config.HistorySheet {
			c.historySheetID = sheet.Properties.SheetId
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: spreadsheet has no sheet named %q",
			common.ErrLedgerInconsistent, c.config.HistorySheet)
	}

	return nil
}

// opCtx bounds each remote call. A hung network call blocks the whole user
// action, so every round-trip gets a deadline.
func (c *SheetsClient) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.config.RequestTimeout)
}

// ListRolls implements Client.
func (c *SheetsClient) ListRolls(ctx context.Context) ([]map[string]string, error) {
	opCtx, cancel := c.opCtx(ctx)
	defer cancel()

	resp, err := c.service.Spreadsheets.Values.
		Get(c.config.SpreadsheetID, c.config.InventorySheet).
		Context(opCtx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: listing rolls: %v", common.ErrLedgerUnavailable, err)
	}

	if len(resp.Values) == 0 {
		return nil, nil
	}

	header := make([]string, 0, len(resp.Values[0]))
	for _, cell := range resp.Values[0] {
		header = append(header, asString(cell))
	}

	records := make([]map[string]string, 0, len(resp.Values)-1)
	for _, row := range resp.Values[1:] {
		if len(row) == 0 {
			continue
		}
		record := make(map[string]string, len(header))
		for i, key := range header {
			if i < len(row) {
				record[key] = asString(row[i])
			}
		}
		records = append(records, record)
	}

	c.logger.Debug("listed inventory rolls", "count", len(records))
	return records, nil
}

// AppendRoll implements Client.
func (c *SheetsClient) AppendRoll(ctx context.Context, fields []any) error {
	return c.appendRow(ctx, c.config.InventorySheet, fields)
}

// AppendHistory implements Client.
func (c *SheetsClient) AppendHistory(ctx context.Context, fields []any) error {
	return c.appendRow(ctx, c.config.HistorySheet, fields)
}

func (c *SheetsClient) appendRow(ctx context.Context, sheet string, fields []any) error {
	opCtx, cancel := c.opCtx(ctx)
	defer cancel()

	valueRange := &sheets.ValueRange{Values: [][]any{fields}}
	_, err := c.service.Spreadsheets.Values.
		Append(c.config.SpreadsheetID, sheet+"!A1", valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(opCtx).Do()
	if err != nil {
		return fmt.Errorf("%w: appending to %s: %v", common.ErrLedgerUnavailable, sheet, err)
	}

	c.logger.Debug("appended row", "sheet", sheet, "columns", len(fields))
	return nil
}

// FindRowByID implements Client. The lookup is a full scan of the ID column
// for the id's string form, matching how the sheet is searched by hand.
func (c *SheetsClient) FindRowByID(ctx context.Context, id string) (int64, error) {
	opCtx, cancel := c.opCtx(ctx)
	defer cancel()

	resp, err := c.service.Spreadsheets.Values.
		Get(c.config.SpreadsheetID, c.config.InventorySheet+"!A:A").
		Context(opCtx).Do()
	if err != nil {
		return 0, fmt.Errorf("%w: searching for roll %s: %v", common.ErrLedgerUnavailable, id, err)
	}

	for i, row := range resp.Values {
		if len(row) > 0 && asString(row[0]) == id {
			return int64(i + 1), nil
		}
	}

	return 0, fmt.Errorf("%w: id %s", common.ErrRollNotFound, id)
}

// ReadCell implements Client. An empty cell reads as an empty string.
func (c *SheetsClient) ReadCell(ctx context.Context, row, col int64) (string, error) {
	opCtx, cancel := c.opCtx(ctx)
	defer cancel()

	cell := cellRange(c.config.InventorySheet, row, col)
	resp, err := c.service.Spreadsheets.Values.
		Get(c.config.SpreadsheetID, cell).
		Context(opCtx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", common.ErrLedgerUnavailable, cell, err)
	}

	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return asString(resp.Values[0][0]), nil
}

// WriteCell implements Client.
func (c *SheetsClient) WriteCell(ctx context.Context, row, col int64, value any) error {
	opCtx, cancel := c.opCtx(ctx)
	defer cancel()

	cell := cellRange(c.config.InventorySheet, row, col)
	valueRange := &sheets.ValueRange{Values: [][]any{{value}}}
	_, err := c.service.Spreadsheets.Values.
		Update(c.config.SpreadsheetID, cell, valueRange).
		ValueInputOption("USER_ENTERED").
		Context(opCtx).Do()
	if err != nil {
		return fmt.Errorf("%w: writing %s: %v", common.ErrLedgerUnavailable, cell, err)
	}

	return nil
}

// ListHistory implements Client.
func (c *SheetsClient) ListHistory(ctx context.Context) ([][]string, error) {
	opCtx, cancel := c.opCtx(ctx)
	defer cancel()

	resp, err := c.service.Spreadsheets.Values.
		Get(c.config.SpreadsheetID, c.config.HistorySheet).
		Context(opCtx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: listing history: %v", common.ErrLedgerUnavailable, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, asString(cell))
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// DeleteHistoryRow implements Client. The row is the 1-based physical sheet
// row; translating from a visual index is the caller's job.
func (c *SheetsClient) DeleteHistoryRow(ctx context.Context, row int64) error {
	if row < 1 {
		return fmt.Errorf("%w: row %d out of range", common.ErrInvalidInput, row)
	}

	opCtx, cancel := c.opCtx(ctx)
	defer cancel()

	request := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    c.historySheetID,
					Dimension:  "ROWS",
					StartIndex: row - 1,
					EndIndex:   row,
				},
			},
		}},
	}

	_, err := c.service.Spreadsheets.BatchUpdate(c.config.SpreadsheetID, request).
		Context(opCtx).Do()
	if err != nil {
		return fmt.Errorf("%w: deleting history row %d: %v", common.ErrLedgerUnavailable, row, err)
	}

	c.logger.Debug("deleted history row", "row", row)
	return nil
}

// cellRange builds an A1-notation reference for a single cell.
func cellRange(sheet string, row, col int64) string {
	return fmt.Sprintf("%s!%s%d", sheet, columnLetter(col), row)
}

// columnLetter converts a 1-based column number to its A1 letter form.
func columnLetter(col int64) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}

func asString(cell any) string {
	if s, ok := cell.(string); ok {
		return s
	}
	return fmt.Sprint(cell)
}
