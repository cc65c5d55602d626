package memory

import "github.com/ovaskainen/snooker-score-bot/internal/domain/snooker"

// SeedFixtures returns a small dev-mode fixture list mirroring the layout of
// the production sheet: one group per letter, names as "Lastname Firstname".
func SeedFixtures() []snooker.Fixture {
	format := snooker.Format{BestOf: 3, Reds: 15}

	return []snooker.Fixture{
		{ID: "y98ad", Round: 3, Group: "A", Player1: "Nikula Pasi", Player2: "Korhonen Ville", Format: format, State: snooker.StateUnplayed},
		{ID: "b31fe", Round: 3, Group: "A", Player1: "Salmi Juho", Player2: "Lahtinen Eero", Format: format, State: snooker.StateUnplayed},
		{ID: "c77d0", Round: 3, Group: "B", Player1: "Heikkinen Antti", Player2: "Rantanen Mika", Format: format, State: snooker.StateUnplayed},
		{ID: "d02b9", Round: 2, Group: "B", Player1: "Virtanen Olli", Player2: "Heikkinen Antti", Format: format, State: snooker.StateComplete},
	}
}
