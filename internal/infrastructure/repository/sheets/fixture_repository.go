package sheets

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ovaskainen/snooker-score-bot/internal/domain/snooker"
	"github.com/ovaskainen/snooker-score-bot/internal/platform/resilience"
	"github.com/ovaskainen/snooker-score-bot/internal/usecase"
	gsheets "google.golang.org/api/sheets/v4"
)

// FixtureRepository reads fixtures from the spreadsheet. Every call re-reads
// the sheet so the view is never staler than one request; concurrent readers
// share one fetch through the single-flight group.
type FixtureRepository struct {
	svc           *gsheets.Service
	spreadsheetID string
	defaultFormat snooker.Format
	flight        resilience.SingleFlight
}

// NewFixtureRepository builds the read side. defaultFormat fills in rows whose
// best_of or reds cells are blank.
func NewFixtureRepository(svc *gsheets.Service, spreadsheetID string, defaultFormat snooker.Format) *FixtureRepository {
	return &FixtureRepository{svc: svc, spreadsheetID: spreadsheetID, defaultFormat: defaultFormat}
}

// fixtureRow pairs a parsed fixture with its 1-based sheet row, which the
// result repository needs to address the state cell.
type fixtureRow struct {
	fixture  snooker.Fixture
	sheetRow int
}

func (r *FixtureRepository) GetByID(ctx context.Context, id string) (snooker.Fixture, bool, error) {
	rows, err := r.readFixtures(ctx)
	if err != nil {
		return snooker.Fixture{}, false, err
	}

	for _, row := range rows {
		if row.fixture.ID == id {
			return row.fixture, true, nil
		}
	}
	return snooker.Fixture{}, false, nil
}

func (r *FixtureRepository) ListAll(ctx context.Context) ([]snooker.Fixture, error) {
	rows, err := r.readFixtures(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]snooker.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.fixture)
	}
	return out, nil
}

func (r *FixtureRepository) ListOpen(ctx context.Context, round int) ([]snooker.Fixture, error) {
	rows, err := r.readFixtures(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]snooker.Fixture, 0, len(rows))
	for _, row := range rows {
		if row.fixture.Round == round && row.fixture.State == snooker.StateUnplayed {
			out = append(out, row.fixture)
		}
	}
	return out, nil
}

// CurrentRound is the lowest round with an open fixture, falling back to the
// highest round on the sheet once everything is complete.
func (r *FixtureRepository) CurrentRound(ctx context.Context) (int, error) {
	rows, err := r.readFixtures(ctx)
	if err != nil {
		return 0, err
	}

	lowestOpen := 0
	highest := 0
	for _, row := range rows {
		if row.fixture.Round > highest {
			highest = row.fixture.Round
		}
		if row.fixture.State == snooker.StateUnplayed && (lowestOpen == 0 || row.fixture.Round < lowestOpen) {
			lowestOpen = row.fixture.Round
		}
	}
	if lowestOpen > 0 {
		return lowestOpen, nil
	}
	return highest, nil
}

func (r *FixtureRepository) readFixtures(ctx context.Context) ([]fixtureRow, error) {
	out, err, _ := r.flight.Do(fixturesRange, func() (any, error) {
		// The fetch is shared by every caller that joins the flight, so it
		// must not die with the winning caller's context. Detach, but keep
		// the call bounded.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sheetReadTimeout)
		defer cancel()

		resp, err := r.svc.Spreadsheets.Values.Get(r.spreadsheetID, fixturesRange).Context(fetchCtx).Do()
		if err != nil {
			return nil, fmt.Errorf("%w: read fixtures sheet: %v", usecase.ErrStoreUnavailable, err)
		}
		return parseFixtureRows(resp.Values, r.defaultFormat), nil
	})
	if err != nil {
		return nil, err
	}

	rows, ok := out.([]fixtureRow)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected fixture payload type %T", usecase.ErrStoreUnavailable, out)
	}
	return rows, nil
}

// parseFixtureRows maps sheet values to fixtures. Columns: id, round, group,
// player1, player2, best_of, reds, state. Rows with a blank id are skipped;
// malformed numeric cells zero out rather than fail the whole sheet.
func parseFixtureRows(values [][]any, defaultFormat snooker.Format) []fixtureRow {
	rows := make([]fixtureRow, 0, len(values))
	for i, raw := range values {
		id := cellString(raw, 0)
		if id == "" {
			continue
		}

		state := cellString(raw, 7)
		if state == "" {
			state = snooker.StateUnplayed
		}

		format := snooker.Format{
			BestOf: cellInt(raw, 5),
			Reds:   cellInt(raw, 6),
		}
		if format.BestOf == 0 {
			format.BestOf = defaultFormat.BestOf
		}
		if format.Reds == 0 {
			format.Reds = defaultFormat.Reds
		}

		rows = append(rows, fixtureRow{
			sheetRow: i + 2, // values start at sheet row 2, below the header
			fixture: snooker.Fixture{
				ID:      id,
				Round:   cellInt(raw, 1),
				Group:   cellString(raw, 2),
				Player1: cellString(raw, 3),
				Player2: cellString(raw, 4),
				Format:  format,
				State:   state,
			},
		})
	}
	return rows
}

func cellString(row []any, idx int) string {
	if idx >= len(row) {
		return ""
	}
	s, _ := row[idx].(string)
	return strings.TrimSpace(s)
}

func cellInt(row []any, idx int) int {
	value := cellString(row, idx)
	if value == "" {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
