package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ovaskainen/snooker-score-bot/internal/domain/snooker"
	"github.com/ovaskainen/snooker-score-bot/internal/usecase"
)

// Store keeps fixtures and result rows in memory. It backs dev runs and tests,
// and implements both snooker.FixtureRepository and snooker.ResultRepository.
type Store struct {
	mu       sync.RWMutex
	fixtures map[string]snooker.Fixture
	order    []string
	rows     []snooker.ResultRow
}

func NewStore(fixtures []snooker.Fixture) *Store {
	byID := make(map[string]snooker.Fixture, len(fixtures))
	order := make([]string, 0, len(fixtures))
	for _, f := range fixtures {
		if f.State == "" {
			f.State = snooker.StateUnplayed
		}
		byID[f.ID] = f
		order = append(order, f.ID)
	}

	return &Store{fixtures: byID, order: order}
}

func (s *Store) GetByID(_ context.Context, id string) (snooker.Fixture, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.fixtures[id]
	return f, ok, nil
}

func (s *Store) ListAll(_ context.Context) ([]snooker.Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]snooker.Fixture, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.fixtures[id])
	}
	return out, nil
}

func (s *Store) ListOpen(_ context.Context, round int) ([]snooker.Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]snooker.Fixture, 0, len(s.order))
	for _, id := range s.order {
		f := s.fixtures[id]
		if f.Round == round && f.State == snooker.StateUnplayed {
			out = append(out, f)
		}
	}
	return out, nil
}

// CurrentRound is the lowest round that still has an open fixture; when every
// fixture is complete it falls back to the highest round on record.
func (s *Store) CurrentRound(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lowestOpen := 0
	highest := 0
	for _, f := range s.fixtures {
		if f.Round > highest {
			highest = f.Round
		}
		if f.State == snooker.StateUnplayed && (lowestOpen == 0 || f.Round < lowestOpen) {
			lowestOpen = f.Round
		}
	}
	if lowestOpen > 0 {
		return lowestOpen, nil
	}
	return highest, nil
}

func (s *Store) AppendRows(_ context.Context, rows []snooker.ResultRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows = append(s.rows, rows...)
	return nil
}

// MarkComplete compare-and-swaps the fixture state under the store lock, so a
// second completion attempt always fails even for near-simultaneous callers.
func (s *Store) MarkComplete(_ context.Context, fixtureID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.fixtures[fixtureID]
	if !ok {
		return fmt.Errorf("%w: fixture=%s", usecase.ErrFixtureNotFound, fixtureID)
	}
	if f.State != snooker.StateUnplayed {
		return fmt.Errorf("%w: fixture=%s", usecase.ErrAlreadyComplete, fixtureID)
	}

	f.State = snooker.StateComplete
	s.fixtures[fixtureID] = f
	return nil
}

func (s *Store) CountRows(_ context.Context, fixtureID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, row := range s.rows {
		if row.FixtureID == fixtureID {
			count++
		}
	}
	return count, nil
}

func (s *Store) ListSummaries(_ context.Context) ([]snooker.ResultRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]snooker.ResultRow, 0, len(s.rows))
	for _, row := range s.rows {
		if row.Kind == snooker.RowKindSummary {
			out = append(out, row)
		}
	}
	return out, nil
}

// Rows returns a copy of all persisted rows, in insertion order. Test helper.
func (s *Store) Rows() []snooker.ResultRow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]snooker.ResultRow, len(s.rows))
	copy(out, s.rows)
	return out
}
