package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ovaskainen/snooker-score-bot/internal/domain/snooker"
	"github.com/ovaskainen/snooker-score-bot/internal/platform/logging"
)

// ResultService owns the commit path: a validated report becomes result rows
// plus a fixture state flip. Commit is the only writer in the system.
type ResultService struct {
	fixtures snooker.FixtureRepository
	results  snooker.ResultRepository
	source   string
	now      func() time.Time
	logger   *logging.Logger
}

func NewResultService(fixtures snooker.FixtureRepository, results snooker.ResultRepository, source string, logger *logging.Logger) *ResultService {
	if logger == nil {
		logger = logging.Default()
	}
	if source == "" {
		source = "api"
	}

	return &ResultService{
		fixtures: fixtures,
		results:  results,
		source:   source,
		now:      time.Now,
		logger:   logger,
	}
}

// Commit validates the report against the fixture's format and persists it:
// one row per break, one summary row, then the fixture flips to complete. The
// source string records where the report came from; empty falls back to the
// service default.
//
// A commit that appended rows but crashed before the state flip leaves rows
// behind; the retry detects them via the row count and skips straight to the
// flip instead of appending duplicates.
func (s *ResultService) Commit(ctx context.Context, fixtureID string, report snooker.ScoreReport, source string) error {
	ctx, span := startSpan(ctx, "usecase.ResultService.Commit")
	defer span.End()

	if source == "" {
		source = s.source
	}

	fixture, ok, err := s.fixtures.GetByID(ctx, fixtureID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: fixture=%s", ErrFixtureNotFound, fixtureID)
	}
	if fixture.State != snooker.StateUnplayed {
		return fmt.Errorf("%w: fixture=%s", ErrAlreadyComplete, fixtureID)
	}

	if err := snooker.ValidateReport(report, fixture.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInconsistentWithFormat, err)
	}

	existing, err := retryTransient(ctx, func() (int, error) {
		return s.results.CountRows(ctx, fixtureID)
	})
	if err != nil {
		return err
	}

	if existing > 0 {
		s.logger.WarnContext(ctx, "found rows from an earlier partial commit, skipping append",
			"fixture_id", fixtureID, "rows", existing)
	} else {
		rows := s.buildRows(fixture, report, source)
		if _, err := retryTransient(ctx, func() (struct{}, error) {
			return struct{}{}, s.results.AppendRows(ctx, rows)
		}); err != nil {
			return err
		}
	}

	if _, err := retryTransient(ctx, func() (struct{}, error) {
		return struct{}{}, s.results.MarkComplete(ctx, fixtureID)
	}); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "match recorded",
		"fixture_id", fixtureID, "scoreline", report.Scoreline(), "source", source)
	return nil
}

func (s *ResultService) buildRows(fixture snooker.Fixture, report snooker.ScoreReport, source string) []snooker.ResultRow {
	recordedAt := s.now()
	rows := make([]snooker.ResultRow, 0, len(report.Breaks)+1)

	for _, b := range report.Breaks {
		name, _ := fixture.PlayerName(b.Player)
		rows = append(rows, snooker.ResultRow{
			RecordedAt: recordedAt,
			Source:     source,
			Round:      fixture.Round,
			FixtureID:  fixture.ID,
			Kind:       snooker.RowKindBreak,
			Player:     name,
			Points:     b.Points,
		})
	}

	winner, _ := fixture.PlayerName(report.WinnerLabel())
	rows = append(rows, snooker.ResultRow{
		RecordedAt:   recordedAt,
		Source:       source,
		Round:        fixture.Round,
		FixtureID:    fixture.ID,
		Kind:         snooker.RowKindSummary,
		Player:       winner,
		Player1Score: report.Player1Score,
		Player2Score: report.Player2Score,
	})

	return rows
}

// retryTransient runs fn, retrying exactly once when the store reports a
// transient failure. Anything else passes through on the first attempt.
func retryTransient[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	out, err := fn()
	if err == nil || !errors.Is(err, ErrStoreUnavailable) || ctx.Err() != nil {
		return out, err
	}
	return fn()
}
