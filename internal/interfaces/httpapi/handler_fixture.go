package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	round, fixtures, err := h.fixtureService.CurrentRoundFixtures(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureToDTO(f))
	}

	writeSuccess(ctx, w, http.StatusOK, roundFixturesDTO{Round: round, Matches: items})
}

func (h *Handler) GetFixtureByID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFixtureByID")
	defer span.End()

	id := strings.TrimSpace(r.PathValue("id"))
	fixture, err := h.fixtureService.GetOpenFixture(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get fixture failed", "fixture_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureToDTO(fixture))
}
