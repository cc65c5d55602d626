package usecase

import (
	"context"
	"fmt"

	"github.com/ovaskainen/snooker-score-bot/internal/domain/snooker"
	"github.com/ovaskainen/snooker-score-bot/internal/platform/logging"
)

// FixtureService serves the read side of the query API.
type FixtureService struct {
	fixtures snooker.FixtureRepository
	logger   *logging.Logger
}

func NewFixtureService(fixtures snooker.FixtureRepository, logger *logging.Logger) *FixtureService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureService{fixtures: fixtures, logger: logger}
}

// CurrentRoundFixtures returns the current round number and its open fixtures.
func (s *FixtureService) CurrentRoundFixtures(ctx context.Context) (int, []snooker.Fixture, error) {
	ctx, span := startSpan(ctx, "usecase.FixtureService.CurrentRoundFixtures")
	defer span.End()

	round, err := s.fixtures.CurrentRound(ctx)
	if err != nil {
		return 0, nil, err
	}

	open, err := s.fixtures.ListOpen(ctx, round)
	if err != nil {
		return 0, nil, err
	}
	return round, open, nil
}

// GetOpenFixture returns a fixture by id. A fixture that is already complete
// is reported as not found, matching the query API contract.
func (s *FixtureService) GetOpenFixture(ctx context.Context, id string) (snooker.Fixture, error) {
	ctx, span := startSpan(ctx, "usecase.FixtureService.GetOpenFixture")
	defer span.End()

	fixture, ok, err := s.fixtures.GetByID(ctx, id)
	if err != nil {
		return snooker.Fixture{}, err
	}
	if !ok || fixture.State != snooker.StateUnplayed {
		return snooker.Fixture{}, fmt.Errorf("%w: fixture=%s", ErrFixtureNotFound, id)
	}
	return fixture, nil
}
