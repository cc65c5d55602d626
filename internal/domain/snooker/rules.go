package snooker

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeScore    = errors.New("frame scores must be zero or greater")
	ErrScoreSumTooHigh  = errors.New("frame total exceeds the match format")
	ErrScoreOverWinCap  = errors.New("frame score exceeds frames needed to win")
	ErrNoWinner         = errors.New("scores are level, a completed match has a winner")
	ErrUnknownBreaker   = errors.New("break credited to a player outside the match")
	ErrNegativeBreak    = errors.New("break points must be zero or greater")
	ErrBreakOverMaximum = errors.New("break points exceed the maximum for the reds count")
)

// ValidateReport checks a structurally valid report against the fixture's
// format. The language model is a best-effort parser; every accepted report
// passes this deterministic rule layer regardless of what the model produced.
func ValidateReport(report ScoreReport, format Format) error {
	if report.Player1Score < 0 || report.Player2Score < 0 {
		return fmt.Errorf("%w: got %s", ErrNegativeScore, report.Scoreline())
	}
	if sum := report.Player1Score + report.Player2Score; sum > format.BestOf {
		return fmt.Errorf("%w: %d frames reported, best of %d", ErrScoreSumTooHigh, sum, format.BestOf)
	}
	framesToWin := format.FramesToWin()
	if report.Player1Score > framesToWin || report.Player2Score > framesToWin {
		return fmt.Errorf("%w: %s, first to %d", ErrScoreOverWinCap, report.Scoreline(), framesToWin)
	}
	if report.Player1Score != framesToWin && report.Player2Score != framesToWin {
		return fmt.Errorf("%w: %s, first to %d", ErrNoWinner, report.Scoreline(), framesToWin)
	}

	maxBreak := format.MaxBreak()
	for _, b := range report.Breaks {
		if b.Player != PlayerOne && b.Player != PlayerTwo {
			return fmt.Errorf("%w: %q", ErrUnknownBreaker, b.Player)
		}
		if b.Points < 0 {
			return fmt.Errorf("%w: got %d", ErrNegativeBreak, b.Points)
		}
		if b.Points > maxBreak {
			return fmt.Errorf("%w: %d with %d reds (max %d)", ErrBreakOverMaximum, b.Points, format.Reds, maxBreak)
		}
	}

	return nil
}
