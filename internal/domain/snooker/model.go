package snooker

import (
	"fmt"
	"strings"
)

const (
	StateUnplayed = "unplayed"
	StateComplete = "complete"
)

// Player labels used in score reports and persisted break rows. A report never
// carries free-form names; it refers to the fixture's players by these labels.
const (
	PlayerOne = "player1"
	PlayerTwo = "player2"
)

// Format describes how a match is contested.
type Format struct {
	BestOf int
	Reds   int
}

// FramesToWin returns the frame count that decides the match.
func (f Format) FramesToWin() int {
	return f.BestOf/2 + 1
}

// MaxBreak returns the highest break achievable with the configured reds count:
// each red is worth a potential red+black (8) on top of the final colours (27).
func (f Format) MaxBreak() int {
	return f.Reds*8 + 27
}

// Fixture is a scheduled match between two players of a group. Fixtures are
// created by an external registration process and only ever transition
// unplayed -> complete here.
type Fixture struct {
	ID      string
	Round   int
	Group   string
	Player1 string
	Player2 string
	Format  Format
	State   string
}

// PlayerName resolves a report label to the fixture's player name.
func (f Fixture) PlayerName(label string) (string, bool) {
	switch label {
	case PlayerOne:
		return f.Player1, true
	case PlayerTwo:
		return f.Player2, true
	default:
		return "", false
	}
}

// Surname returns the leading word of a "Lastname Firstname" entry, or the
// whole name when it is a single word.
func Surname(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

// Break is a single scoring sequence by one of the match players.
type Break struct {
	Player string
	Points int
}

// ScoreReport is the structured outcome of one reported match. It is built per
// request, persisted as rows, then discarded.
type ScoreReport struct {
	FixtureID    string
	Player1Score int
	Player2Score int
	Breaks       []Break
}

func (r ScoreReport) Scoreline() string {
	return fmt.Sprintf("%d-%d", r.Player1Score, r.Player2Score)
}

// WinnerLabel returns the label of the player with more frames. Validation
// guarantees the scores are never level in an accepted report.
func (r ScoreReport) WinnerLabel() string {
	if r.Player2Score > r.Player1Score {
		return PlayerTwo
	}
	return PlayerOne
}

// HighestBreak returns the top break of the report, or false when no breaks
// were reported.
func (r ScoreReport) HighestBreak() (Break, bool) {
	var best Break
	found := false
	for _, b := range r.Breaks {
		if !found || b.Points > best.Points {
			best = b
			found = true
		}
	}
	return best, found
}
