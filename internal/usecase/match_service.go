package usecase

import (
	"context"
	"fmt"

	"github.com/ovaskainen/snooker-score-bot/internal/domain/snooker"
	"github.com/ovaskainen/snooker-score-bot/internal/platform/logging"
)

// MatchSummary is a fixture joined with its recorded scoreline, when one
// exists. HasResult is false for fixtures that have not been played yet.
type MatchSummary struct {
	Fixture      snooker.Fixture
	Player1Score int
	Player2Score int
	HasResult    bool
}

// MatchService serves the match listing: every fixture, played or not, with
// the final frame scores attached for the completed ones. This is the read
// path that lets a committed result be queried back out.
type MatchService struct {
	fixtures snooker.FixtureRepository
	results  snooker.ResultRepository
	logger   *logging.Logger
}

func NewMatchService(fixtures snooker.FixtureRepository, results snooker.ResultRepository, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{fixtures: fixtures, results: results, logger: logger}
}

// ListMatches returns every fixture with its recorded scoreline where one has
// been committed.
func (s *MatchService) ListMatches(ctx context.Context) ([]MatchSummary, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.ListMatches")
	defer span.End()

	fixtures, err := s.fixtures.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	scores, err := s.summariesByFixture(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]MatchSummary, 0, len(fixtures))
	for _, f := range fixtures {
		out = append(out, joinSummary(f, scores))
	}
	return out, nil
}

// GetMatch returns one fixture with its recorded scoreline. Unlike the open
// fixture lookup, completed fixtures resolve here.
func (s *MatchService) GetMatch(ctx context.Context, id string) (MatchSummary, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.GetMatch")
	defer span.End()

	fixture, ok, err := s.fixtures.GetByID(ctx, id)
	if err != nil {
		return MatchSummary{}, err
	}
	if !ok {
		return MatchSummary{}, fmt.Errorf("%w: fixture=%s", ErrFixtureNotFound, id)
	}

	scores, err := s.summariesByFixture(ctx)
	if err != nil {
		return MatchSummary{}, err
	}
	return joinSummary(fixture, scores), nil
}

// summariesByFixture indexes summary rows by fixture id. With a duplicate the
// later row wins, mirroring the append-only store where the newest row is the
// authoritative one.
func (s *MatchService) summariesByFixture(ctx context.Context) (map[string]snooker.ResultRow, error) {
	rows, err := s.results.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}

	byFixture := make(map[string]snooker.ResultRow, len(rows))
	for _, row := range rows {
		byFixture[row.FixtureID] = row
	}
	return byFixture, nil
}

func joinSummary(f snooker.Fixture, scores map[string]snooker.ResultRow) MatchSummary {
	summary := MatchSummary{Fixture: f}
	if row, ok := scores[f.ID]; ok {
		summary.Player1Score = row.Player1Score
		summary.Player2Score = row.Player2Score
		summary.HasResult = true
	}
	return summary
}
