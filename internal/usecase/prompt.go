package usecase

import (
	"fmt"
	"strings"

	"github.com/ovaskainen/snooker-score-bot/internal/domain/snooker"
)

const reportSchemaName = "snooker_score_report"

// reportSchema describes the exact shape of a score report for the model's
// structured-output mode. The enum on the player field constrains breaks to
// the two fixture labels; the rule layer re-checks everything regardless.
func reportSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"player1_score", "player2_score", "breaks"},
		"properties": map[string]any{
			"player1_score": map[string]any{"type": "integer"},
			"player2_score": map[string]any{"type": "integer"},
			"breaks": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"required":             []string{"player", "points"},
					"properties": map[string]any{
						"player": map[string]any{
							"type": "string",
							"enum": []string{snooker.PlayerOne, snooker.PlayerTwo},
						},
						"points": map[string]any{"type": "integer"},
					},
				},
			},
		},
	}
}

func buildSystemPrompt(fixture snooker.Fixture, strict bool) string {
	var b strings.Builder

	b.WriteString("The passage reports the outcome of one snooker match: frames won by each player and, optionally, breaks made during the match. Extract that information as JSON.\n\n")
	fmt.Fprintf(&b, "The match is between %q (label %s) and %q (label %s), best of %d frames, %d reds.\n",
		fixture.Player1, snooker.PlayerOne, fixture.Player2, snooker.PlayerTwo, fixture.Format.BestOf, fixture.Format.Reds)
	b.WriteString("Report frame counts won by each player, not points. Refer to players only by their labels. ")
	b.WriteString("A player may be mentioned by surname or given name alone. ")
	b.WriteString("If no break is mentioned in the passage, return an empty breaks array. Never invent breaks or scores that are not in the passage.\n")

	if strict {
		b.WriteString("\nYour previous reply did not conform to the schema. Return only a JSON object with integer player1_score, integer player2_score and a breaks array of {player, points} objects. No prose, no code fences.\n")
	}

	b.WriteString("\nExamples:\n")
	fmt.Fprintf(&b, "Passage: %q -> {\"player1_score\": 2, \"player2_score\": 1, \"breaks\": [{\"player\": \"player1\", \"points\": 45}]}\n",
		fixture.Player1+" - "+fixture.Player2+" 2-1. Break 45, "+snooker.Surname(fixture.Player1)+".")
	fmt.Fprintf(&b, "Passage: %q -> {\"player1_score\": 0, \"player2_score\": 2, \"breaks\": []}\n",
		snooker.Surname(fixture.Player2)+" won 2-0")

	return b.String()
}

func buildUserPrompt(rawText string) string {
	return "Passage: " + strings.TrimSpace(rawText)
}
