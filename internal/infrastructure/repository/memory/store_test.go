package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/ovaskainen/snooker-score-bot/internal/domain/snooker"
	"github.com/ovaskainen/snooker-score-bot/internal/usecase"
)

func TestStoreFixtureReads(t *testing.T) {
	ctx := context.Background()
	store := NewStore(SeedFixtures())

	t.Run("get by id", func(t *testing.T) {
		fixture, ok, err := store.GetByID(ctx, "y98ad")
		if err != nil || !ok {
			t.Fatalf("unexpected result: ok=%v err=%v", ok, err)
		}
		if fixture.Player1 != "Nikula Pasi" || fixture.Player2 != "Korhonen Ville" {
			t.Fatalf("unexpected players: %q vs %q", fixture.Player1, fixture.Player2)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, ok, err := store.GetByID(ctx, "nope")
		if err != nil || ok {
			t.Fatalf("unexpected result: ok=%v err=%v", ok, err)
		}
	})

	t.Run("list open filters state and round", func(t *testing.T) {
		open, err := store.ListOpen(ctx, 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(open) != 3 {
			t.Fatalf("unexpected open count: got=%d want=3", len(open))
		}
		for _, f := range open {
			if f.Round != 3 || f.State != snooker.StateUnplayed {
				t.Fatalf("unexpected fixture in open list: %+v", f)
			}
		}
	})

	t.Run("current round is lowest with open fixtures", func(t *testing.T) {
		round, err := store.CurrentRound(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if round != 3 {
			t.Fatalf("unexpected round: got=%d want=3", round)
		}
	})
}

func TestStoreMarkComplete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(SeedFixtures())

	if err := store.MarkComplete(ctx, "y98ad"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fixture, _, err := store.GetByID(ctx, "y98ad")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fixture.State != snooker.StateComplete {
		t.Fatalf("unexpected state: got=%q want=%q", fixture.State, snooker.StateComplete)
	}

	if err := store.MarkComplete(ctx, "y98ad"); !errors.Is(err, usecase.ErrAlreadyComplete) {
		t.Fatalf("unexpected error on second completion: %v", err)
	}
	if err := store.MarkComplete(ctx, "nope"); !errors.Is(err, usecase.ErrFixtureNotFound) {
		t.Fatalf("unexpected error for unknown fixture: %v", err)
	}
}

func TestStoreRowCounting(t *testing.T) {
	ctx := context.Background()
	store := NewStore(SeedFixtures())

	rows := []snooker.ResultRow{
		{FixtureID: "y98ad", Kind: snooker.RowKindBreak, Player: "Nikula Pasi", Points: 50},
		{FixtureID: "y98ad", Kind: snooker.RowKindSummary, Player: "Nikula Pasi", Player1Score: 2, Player2Score: 1},
	}
	if err := store.AppendRows(ctx, rows); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	count, err := store.CountRows(ctx, "y98ad")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Fatalf("unexpected count: got=%d want=2", count)
	}

	count, err = store.CountRows(ctx, "b31fe")
	if err != nil || count != 0 {
		t.Fatalf("unexpected count for other fixture: got=%d err=%v", count, err)
	}
}
