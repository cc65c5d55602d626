package httpapi

import (
	"net/http"
	"strings"

	"github.com/ovaskainen/snooker-score-bot/internal/usecase"
)

type matchDTO struct {
	ID           string    `json:"id"`
	Round        int       `json:"round"`
	Group        string    `json:"group"`
	Player1      string    `json:"player1"`
	Player2      string    `json:"player2"`
	Format       formatDTO `json:"format"`
	State        string    `json:"state"`
	Player1Score *int      `json:"player1Score,omitempty"`
	Player2Score *int      `json:"player2Score,omitempty"`
}

func matchToDTO(v usecase.MatchSummary) matchDTO {
	dto := matchDTO{
		ID:      v.Fixture.ID,
		Round:   v.Fixture.Round,
		Group:   v.Fixture.Group,
		Player1: v.Fixture.Player1,
		Player2: v.Fixture.Player2,
		Format: formatDTO{
			Reds:   v.Fixture.Format.Reds,
			BestOf: v.Fixture.Format.BestOf,
		},
		State: v.Fixture.State,
	}
	if v.HasResult {
		p1, p2 := v.Player1Score, v.Player2Score
		dto.Player1Score = &p1
		dto.Player2Score = &p2
	}
	return dto
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	matches, err := h.matchService.ListMatches(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatchByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchByID")
	defer span.End()

	id := strings.TrimSpace(r.PathValue("id"))
	match, err := h.matchService.GetMatch(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "fixture_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(match))
}
