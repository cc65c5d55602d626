package snooker

import (
	"context"
	"time"
)

// ResultRow is one persisted line of the results store. Summary rows carry the
// final frame scores, break rows carry one break each; both are tagged with the
// reporting source and the write timestamp.
type ResultRow struct {
	RecordedAt   time.Time
	Source       string
	Round        int
	FixtureID    string
	Kind         string
	Player       string
	Player1Score int
	Player2Score int
	Points       int
}

const (
	RowKindSummary = "summary"
	RowKindBreak   = "break"
)

// FixtureRepository exposes the read path over the fixture store.
type FixtureRepository interface {
	GetByID(ctx context.Context, id string) (Fixture, bool, error)
	ListAll(ctx context.Context) ([]Fixture, error)
	ListOpen(ctx context.Context, round int) ([]Fixture, error)
	CurrentRound(ctx context.Context) (int, error)
}

// ResultRepository owns the write path: appending result rows and flipping the
// fixture state. MarkComplete must fail for a fixture that is not unplayed.
// ListSummaries serves the completed-match read path.
type ResultRepository interface {
	AppendRows(ctx context.Context, rows []ResultRow) error
	MarkComplete(ctx context.Context, fixtureID string) error
	CountRows(ctx context.Context, fixtureID string) (int, error)
	ListSummaries(ctx context.Context) ([]ResultRow, error)
}
