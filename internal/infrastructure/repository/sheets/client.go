package sheets

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Worksheet names and column layout are a compatibility surface with the
// human-maintained spreadsheet. Do not reorder columns or rename sheets
// without migrating the sheet itself.
const (
	fixturesSheet = "fixtures"
	resultsSheet  = "results"

	fixturesRange = fixturesSheet + "!A2:H"
	resultsRange  = resultsSheet + "!A:I"

	fixtureStateColumn = "H"
)

// sheetReadTimeout bounds the detached fetch behind the single-flight group.
const sheetReadTimeout = 15 * time.Second

type Config struct {
	SpreadsheetID   string
	CredentialsFile string
}

// NewService builds a Sheets API client. With no credentials file configured
// it falls back to application default credentials.
func NewService(ctx context.Context, cfg Config) (*gsheets.Service, error) {
	opts := []option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("build sheets service: %w", err)
	}
	return svc, nil
}
