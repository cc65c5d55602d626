package snooker

import (
	"errors"
	"testing"
)

func TestValidateReportAcceptsDecidedMatches(t *testing.T) {
	cases := []struct {
		name   string
		format Format
		report ScoreReport
	}{
		{"best of 3 decided 2-1", Format{BestOf: 3, Reds: 15}, ScoreReport{Player1Score: 2, Player2Score: 1}},
		{"best of 3 whitewash", Format{BestOf: 3, Reds: 15}, ScoreReport{Player1Score: 0, Player2Score: 2}},
		{"best of 5 decided 3-1", Format{BestOf: 5, Reds: 15}, ScoreReport{Player1Score: 3, Player2Score: 1}},
		{"best of 7 full distance", Format{BestOf: 7, Reds: 10}, ScoreReport{Player1Score: 4, Player2Score: 3}},
		{
			"break at the maximum for 15 reds",
			Format{BestOf: 3, Reds: 15},
			ScoreReport{Player1Score: 2, Player2Score: 0, Breaks: []Break{{Player: PlayerOne, Points: 147}}},
		},
		{
			"break at the maximum for six reds",
			Format{BestOf: 3, Reds: 6},
			ScoreReport{Player1Score: 2, Player2Score: 0, Breaks: []Break{{Player: PlayerTwo, Points: 75}}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateReport(tc.report, tc.format); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateReportRejections(t *testing.T) {
	cases := []struct {
		name    string
		format  Format
		report  ScoreReport
		wantErr error
	}{
		{
			"negative score",
			Format{BestOf: 3, Reds: 15},
			ScoreReport{Player1Score: -1, Player2Score: 2},
			ErrNegativeScore,
		},
		{
			"sum exceeds best of",
			Format{BestOf: 3, Reds: 15},
			ScoreReport{Player1Score: 4, Player2Score: 1},
			ErrScoreSumTooHigh,
		},
		{
			"score above the win cap",
			Format{BestOf: 5, Reds: 15},
			ScoreReport{Player1Score: 4, Player2Score: 0},
			ErrScoreOverWinCap,
		},
		{
			"nobody reached frames to win",
			Format{BestOf: 5, Reds: 15},
			ScoreReport{Player1Score: 2, Player2Score: 1},
			ErrNoWinner,
		},
		{
			"level scores",
			Format{BestOf: 3, Reds: 15},
			ScoreReport{Player1Score: 1, Player2Score: 1},
			ErrNoWinner,
		},
		{
			"break by an outsider",
			Format{BestOf: 3, Reds: 15},
			ScoreReport{Player1Score: 2, Player2Score: 0, Breaks: []Break{{Player: "referee", Points: 30}}},
			ErrUnknownBreaker,
		},
		{
			"negative break",
			Format{BestOf: 3, Reds: 15},
			ScoreReport{Player1Score: 2, Player2Score: 0, Breaks: []Break{{Player: PlayerOne, Points: -5}}},
			ErrNegativeBreak,
		},
		{
			"break over 147 with 15 reds",
			Format{BestOf: 3, Reds: 15},
			ScoreReport{Player1Score: 2, Player2Score: 0, Breaks: []Break{{Player: PlayerOne, Points: 148}}},
			ErrBreakOverMaximum,
		},
		{
			"break over 107 with 10 reds",
			Format{BestOf: 3, Reds: 10},
			ScoreReport{Player1Score: 2, Player2Score: 0, Breaks: []Break{{Player: PlayerTwo, Points: 110}}},
			ErrBreakOverMaximum,
		},
		{
			"break over 75 with six reds",
			Format{BestOf: 3, Reds: 6},
			ScoreReport{Player1Score: 2, Player2Score: 0, Breaks: []Break{{Player: PlayerOne, Points: 76}}},
			ErrBreakOverMaximum,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateReport(tc.report, tc.format)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.wantErr)
			}
		})
	}
}

func TestFormatDerivedValues(t *testing.T) {
	cases := []struct {
		format      Format
		framesToWin int
		maxBreak    int
	}{
		{Format{BestOf: 3, Reds: 15}, 2, 147},
		{Format{BestOf: 5, Reds: 10}, 3, 107},
		{Format{BestOf: 7, Reds: 6}, 4, 75},
	}

	for _, tc := range cases {
		if got := tc.format.FramesToWin(); got != tc.framesToWin {
			t.Fatalf("FramesToWin(%+v): got=%d want=%d", tc.format, got, tc.framesToWin)
		}
		if got := tc.format.MaxBreak(); got != tc.maxBreak {
			t.Fatalf("MaxBreak(%+v): got=%d want=%d", tc.format, got, tc.maxBreak)
		}
	}
}

func TestSurname(t *testing.T) {
	if got := Surname("Nikula Pasi"); got != "Nikula" {
		t.Fatalf("unexpected surname: got=%q want=%q", got, "Nikula")
	}
	if got := Surname("Ronnie"); got != "Ronnie" {
		t.Fatalf("unexpected surname: got=%q want=%q", got, "Ronnie")
	}
	if got := Surname("  "); got != "" {
		t.Fatalf("unexpected surname for blank name: got=%q", got)
	}
}

func TestScoreReportHelpers(t *testing.T) {
	report := ScoreReport{
		Player1Score: 1,
		Player2Score: 2,
		Breaks: []Break{
			{Player: PlayerOne, Points: 34},
			{Player: PlayerTwo, Points: 61},
			{Player: PlayerOne, Points: 12},
		},
	}

	if got := report.Scoreline(); got != "1-2" {
		t.Fatalf("unexpected scoreline: got=%q", got)
	}
	if got := report.WinnerLabel(); got != PlayerTwo {
		t.Fatalf("unexpected winner: got=%q", got)
	}

	best, ok := report.HighestBreak()
	if !ok || best.Points != 61 || best.Player != PlayerTwo {
		t.Fatalf("unexpected highest break: got=%+v ok=%v", best, ok)
	}

	if _, ok := (ScoreReport{}).HighestBreak(); ok {
		t.Fatal("expected no highest break for an empty report")
	}
}
