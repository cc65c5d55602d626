package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/ovaskainen/snooker-score-bot/internal/domain/snooker"
	"github.com/ovaskainen/snooker-score-bot/internal/usecase"
)

type Handler struct {
	fixtureService *usecase.FixtureService
	matchService   *usecase.MatchService
	resultService  *usecase.ResultService
	conversation   *usecase.ConversationService
	logger         *slog.Logger
	validator      *validator.Validate
}

func NewHandler(
	fixtureService *usecase.FixtureService,
	matchService *usecase.MatchService,
	resultService *usecase.ResultService,
	conversation *usecase.ConversationService,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		fixtureService: fixtureService,
		matchService:   matchService,
		resultService:  resultService,
		conversation:   conversation,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type formatDTO struct {
	Reds   int `json:"reds"`
	BestOf int `json:"bestOf"`
}

type fixtureDTO struct {
	ID      string    `json:"id"`
	Group   string    `json:"group"`
	Player1 string    `json:"player1"`
	Player2 string    `json:"player2"`
	Format  formatDTO `json:"format"`
	State   string    `json:"state"`
}

type roundFixturesDTO struct {
	Round   int          `json:"round"`
	Matches []fixtureDTO `json:"matches"`
}

func fixtureToDTO(v snooker.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:      v.ID,
		Group:   v.Group,
		Player1: v.Player1,
		Player2: v.Player2,
		Format: formatDTO{
			Reds:   v.Format.Reds,
			BestOf: v.Format.BestOf,
		},
		State: v.State,
	}
}
