package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/ovaskainen/snooker-score-bot/internal/domain/snooker"
	"github.com/ovaskainen/snooker-score-bot/internal/usecase"
)

type breakRequest struct {
	Player string `json:"player" validate:"required,oneof=player1 player2"`
	Points int    `json:"points" validate:"min=0"`
}

type scoreRequest struct {
	ID           string         `json:"id" validate:"required"`
	Player1Score *int           `json:"player1_score" validate:"required,min=0"`
	Player2Score *int           `json:"player2_score" validate:"required,min=0"`
	Breaks       []breakRequest `json:"breaks" validate:"dive"`
}

type scoreRecordedDTO struct {
	FixtureID string `json:"fixtureId"`
	Scoreline string `json:"scoreline"`
	State     string `json:"state"`
}

// SubmitScore records a pre-structured result through the same commit path the
// SMS pipeline uses, minus the extraction step.
func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitScore")
	defer span.End()

	var req scoreRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	report := snooker.ScoreReport{
		FixtureID:    req.ID,
		Player1Score: *req.Player1Score,
		Player2Score: *req.Player2Score,
		Breaks:       make([]snooker.Break, 0, len(req.Breaks)),
	}
	for _, b := range req.Breaks {
		report.Breaks = append(report.Breaks, snooker.Break{Player: b.Player, Points: b.Points})
	}

	if err := h.resultService.Commit(ctx, req.ID, report, ""); err != nil {
		h.logger.WarnContext(ctx, "submit score failed", "fixture_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, scoreRecordedDTO{
		FixtureID: req.ID,
		Scoreline: report.Scoreline(),
		State:     snooker.StateComplete,
	})
}

// InboundSMS is the webhook for reported results. It always answers with a
// TwiML message once the form parses; pipeline failures become sender-facing
// replies, not HTTP errors.
func (h *Handler) InboundSMS(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InboundSMS")
	defer span.End()

	if err := r.ParseForm(); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: malformed form body: %v", usecase.ErrInvalidInput, err))
		return
	}

	sender := strings.TrimSpace(r.PostFormValue("From"))
	body := strings.TrimSpace(r.PostFormValue("Body"))
	if sender == "" || body == "" {
		writeError(ctx, w, fmt.Errorf("%w: From and Body are required", usecase.ErrInvalidInput))
		return
	}

	reply, err := h.conversation.HandleInbound(ctx, sender, body)
	if err != nil {
		h.logger.WarnContext(ctx, "inbound message not recorded", "sender", sender, "error", err)
	}

	writeTwiML(ctx, w, reply)
}
