package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"expensetracker/internal/core"
	"expensetracker/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client mirrors the expense collection into one sheet of a spreadsheet.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ sheets.SnapshotWriter = (*Client)(nil)

// Credentials selects the service account used for the Sheets API. JSON wins
// over File; with neither set GOOGLE_APPLICATION_CREDENTIALS is consulted.
type Credentials struct {
	JSON string
	File string
}

func New(ctx context.Context, spreadsheetID, sheetName string, creds Credentials) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = "Expenses"
	}

	svc, err := newSheetsService(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, creds Credentials) (*gsheet.Service, error) {
	credentialsJSON, err := resolveCredentials(creds)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Creating Google Sheets service with Service Account",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func resolveCredentials(creds Credentials) ([]byte, error) {
	json := strings.TrimSpace(creds.JSON)
	file := strings.TrimSpace(creds.File)
	if json == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case json != "":
		return []byte(json), nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// WriteSnapshot clears the sheet's A:D columns and writes the full collection.
func (c *Client) WriteSnapshot(ctx context.Context, expenses []core.Expense) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	clearRange := sheetRange(c.sheetName, "A:D")
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("clear %s: %w", clearRange, err)
	}

	rows := snapshotRows(expenses)
	writeRange := sheetRange(c.sheetName, fmt.Sprintf("A1:D%d", len(rows)))
	vr := &gsheet.ValueRange{Values: rows}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", writeRange, err)
	}

	slog.InfoContext(ctx, "Mirrored expenses to Google Sheets",
		"spreadsheet_id", c.spreadsheetID,
		"sheet", c.sheetName,
		"rows", len(expenses))
	return nil
}
