package sheets

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ovaskainen/snooker-score-bot/internal/domain/snooker"
	"github.com/ovaskainen/snooker-score-bot/internal/usecase"
	gsheets "google.golang.org/api/sheets/v4"
)

// ResultRepository owns the write path to the spreadsheet: result rows are
// appended to the results sheet, then the fixture's state cell is flipped.
type ResultRepository struct {
	svc           *gsheets.Service
	spreadsheetID string
	fixtures      *FixtureRepository
}

func NewResultRepository(svc *gsheets.Service, spreadsheetID string, fixtures *FixtureRepository) *ResultRepository {
	return &ResultRepository{svc: svc, spreadsheetID: spreadsheetID, fixtures: fixtures}
}

func (r *ResultRepository) AppendRows(ctx context.Context, rows []snooker.ResultRow) error {
	if len(rows) == 0 {
		return nil
	}

	values := make([][]any, 0, len(rows))
	for _, row := range rows {
		values = append(values, []any{
			row.RecordedAt.UTC().Format(time.RFC3339),
			row.Source,
			strconv.Itoa(row.Round),
			row.FixtureID,
			row.Kind,
			row.Player,
			strconv.Itoa(row.Player1Score),
			strconv.Itoa(row.Player2Score),
			strconv.Itoa(row.Points),
		})
	}

	_, err := r.svc.Spreadsheets.Values.
		Append(r.spreadsheetID, resultsRange, &gsheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: append result rows: %v", usecase.ErrStoreUnavailable, err)
	}
	return nil
}

// MarkComplete re-reads the fixture's state cell and then updates it. The
// Sheets API has no conditional write, so two near-simultaneous completions
// can both pass the check; last write wins. Human-paced SMS traffic makes the
// window academic, and the row count check keeps retries detectable.
func (r *ResultRepository) MarkComplete(ctx context.Context, fixtureID string) error {
	rows, err := r.fixtures.readFixtures(ctx)
	if err != nil {
		return err
	}

	var target *fixtureRow
	for i := range rows {
		if rows[i].fixture.ID == fixtureID {
			target = &rows[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: fixture=%s", usecase.ErrFixtureNotFound, fixtureID)
	}
	if target.fixture.State != snooker.StateUnplayed {
		return fmt.Errorf("%w: fixture=%s", usecase.ErrAlreadyComplete, fixtureID)
	}

	cell := fmt.Sprintf("%s!%s%d", fixturesSheet, fixtureStateColumn, target.sheetRow)
	_, err = r.svc.Spreadsheets.Values.
		Update(r.spreadsheetID, cell, &gsheets.ValueRange{Values: [][]any{{snooker.StateComplete}}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: update fixture state: %v", usecase.ErrStoreUnavailable, err)
	}
	return nil
}

// ListSummaries reads back the summary rows of every committed result. Break
// rows are skipped; the caller only needs the final scorelines.
func (r *ResultRepository) ListSummaries(ctx context.Context) ([]snooker.ResultRow, error) {
	resp, err := r.svc.Spreadsheets.Values.
		Get(r.spreadsheetID, resultsSheet+"!A2:I").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read results sheet: %v", usecase.ErrStoreUnavailable, err)
	}

	out := make([]snooker.ResultRow, 0, len(resp.Values))
	for _, raw := range resp.Values {
		if cellString(raw, 4) != snooker.RowKindSummary {
			continue
		}
		recordedAt, _ := time.Parse(time.RFC3339, cellString(raw, 0))
		out = append(out, snooker.ResultRow{
			RecordedAt:   recordedAt,
			Source:       cellString(raw, 1),
			Round:        cellInt(raw, 2),
			FixtureID:    cellString(raw, 3),
			Kind:         snooker.RowKindSummary,
			Player:       cellString(raw, 5),
			Player1Score: cellInt(raw, 6),
			Player2Score: cellInt(raw, 7),
			Points:       cellInt(raw, 8),
		})
	}
	return out, nil
}

// CountRows counts persisted rows for a fixture. Used as the idempotency
// check when a commit is retried after a partial failure.
func (r *ResultRepository) CountRows(ctx context.Context, fixtureID string) (int, error) {
	resp, err := r.svc.Spreadsheets.Values.
		Get(r.spreadsheetID, resultsSheet+"!D2:D").
		Context(ctx).
		Do()
	if err != nil {
		return 0, fmt.Errorf("%w: read results sheet: %v", usecase.ErrStoreUnavailable, err)
	}

	count := 0
	for _, row := range resp.Values {
		if cellString(row, 0) == fixtureID {
			count++
		}
	}
	return count, nil
}
