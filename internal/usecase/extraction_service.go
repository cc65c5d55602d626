package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/ovaskainen/snooker-score-bot/internal/domain/snooker"
	"github.com/ovaskainen/snooker-score-bot/internal/platform/logging"
)

// CompletionRequest is one structured-output chat completion. Schema is a JSON
// Schema document the model reply must conform to.
type CompletionRequest struct {
	System     string
	User       string
	SchemaName string
	Schema     map[string]any
}

// CompletionClient is implemented by the OpenAI client. It returns the raw
// JSON content of the model reply.
type CompletionClient interface {
	CompleteJSON(ctx context.Context, req CompletionRequest) ([]byte, error)
}

// ExtractionService turns free-text match reports into validated score
// reports. The model is a best-effort parser behind a strict schema boundary;
// nothing it produces is trusted until the deterministic rule layer accepts it.
type ExtractionService struct {
	client  CompletionClient
	timeout time.Duration
	logger  *logging.Logger
}

func NewExtractionService(client CompletionClient, timeout time.Duration, logger *logging.Logger) *ExtractionService {
	if logger == nil {
		logger = logging.Default()
	}
	if timeout <= 0 {
		timeout = 25 * time.Second
	}

	return &ExtractionService{
		client:  client,
		timeout: timeout,
		logger:  logger,
	}
}

// reportPayload mirrors the extraction schema. Pointer scores distinguish a
// missing field from a genuine zero.
type reportPayload struct {
	Player1Score *int `json:"player1_score"`
	Player2Score *int `json:"player2_score"`
	Breaks       []struct {
		Player string `json:"player"`
		Points int    `json:"points"`
	} `json:"breaks"`
}

// Extract parses rawText into a score report for the given fixture. A reply
// that does not conform to the schema is retried once with a stricter system
// prompt before ErrModelOutputInvalid is surfaced.
func (s *ExtractionService) Extract(ctx context.Context, rawText string, fixture snooker.Fixture) (snooker.ScoreReport, error) {
	ctx, span := startSpan(ctx, "usecase.ExtractionService.Extract")
	defer span.End()

	if s.client == nil {
		return snooker.ScoreReport{}, fmt.Errorf("%w: completion client is not configured", ErrDependencyUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report, err := s.extractOnce(ctx, rawText, fixture, false)
	if err != nil && errors.Is(err, ErrModelOutputInvalid) {
		s.logger.WarnContext(ctx, "model output invalid, retrying with strict prompt",
			"fixture_id", fixture.ID, "error", err)
		report, err = s.extractOnce(ctx, rawText, fixture, true)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return snooker.ScoreReport{}, fmt.Errorf("%w: after %s", ErrExtractionTimeout, s.timeout)
		}
		return snooker.ScoreReport{}, err
	}

	if err := snooker.ValidateReport(report, fixture.Format); err != nil {
		return snooker.ScoreReport{}, fmt.Errorf("%w: %w", ErrInconsistentWithFormat, err)
	}

	return report, nil
}

func (s *ExtractionService) extractOnce(ctx context.Context, rawText string, fixture snooker.Fixture, strict bool) (snooker.ScoreReport, error) {
	raw, err := s.client.CompleteJSON(ctx, CompletionRequest{
		System:     buildSystemPrompt(fixture, strict),
		User:       buildUserPrompt(rawText),
		SchemaName: reportSchemaName,
		Schema:     reportSchema(),
	})
	if err != nil {
		return snooker.ScoreReport{}, err
	}

	var payload reportPayload
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return snooker.ScoreReport{}, fmt.Errorf("%w: decode reply: %v", ErrModelOutputInvalid, err)
	}
	if payload.Player1Score == nil || payload.Player2Score == nil {
		return snooker.ScoreReport{}, fmt.Errorf("%w: frame scores are missing", ErrModelOutputInvalid)
	}

	report := snooker.ScoreReport{
		FixtureID:    fixture.ID,
		Player1Score: *payload.Player1Score,
		Player2Score: *payload.Player2Score,
		Breaks:       make([]snooker.Break, 0, len(payload.Breaks)),
	}
	for _, b := range payload.Breaks {
		report.Breaks = append(report.Breaks, snooker.Break{Player: b.Player, Points: b.Points})
	}

	return report, nil
}
