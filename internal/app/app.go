package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ovaskainen/snooker-score-bot/external/openai"
	"github.com/ovaskainen/snooker-score-bot/internal/config"
	"github.com/ovaskainen/snooker-score-bot/internal/domain/snooker"
	"github.com/ovaskainen/snooker-score-bot/internal/infrastructure/repository/memory"
	"github.com/ovaskainen/snooker-score-bot/internal/infrastructure/repository/sheets"
	"github.com/ovaskainen/snooker-score-bot/internal/interfaces/httpapi"
	"github.com/ovaskainen/snooker-score-bot/internal/platform/logging"
	"github.com/ovaskainen/snooker-score-bot/internal/usecase"
)

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	appLogger := logging.Default()

	fixtures, results, err := buildStore(ctx, cfg, appLogger)
	if err != nil {
		return nil, err
	}

	openaiClient := openai.NewClient(openai.ClientConfig{
		BaseURL:        cfg.OpenAIBaseURL,
		Token:          cfg.OpenAIToken,
		Model:          cfg.OpenAIModel,
		Timeout:        cfg.OpenAITimeout,
		MaxRetries:     cfg.OpenAIMaxRetries,
		Logger:         appLogger,
		CircuitBreaker: cfg.OpenAICircuitBreaker,
	})

	extraction := usecase.NewExtractionService(openaiClient, cfg.OpenAITimeout, appLogger)
	fixtureSvc := usecase.NewFixtureService(fixtures, appLogger)
	matchSvc := usecase.NewMatchService(fixtures, results, appLogger)
	resultSvc := usecase.NewResultService(fixtures, results, cfg.SourceLabel, appLogger)
	conversation := usecase.NewConversationService(
		fixtures,
		extraction,
		resultSvc,
		usecase.Replies("eng"),
		cfg.SourceLabel,
		appLogger,
	)

	handler := httpapi.NewHandler(fixtureSvc, matchSvc, resultSvc, conversation, logger)
	router := httpapi.NewRouter(handler, logger, cfg.APIKey, cfg.TwilioAuthToken, cfg.PublicBaseURL, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// buildStore picks the persistence backend: the spreadsheet when a sheet id is
// configured, otherwise the seeded in-memory store for dev runs.
func buildStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (snooker.FixtureRepository, snooker.ResultRepository, error) {
	if cfg.SheetID == "" {
		logger.Warn("no sheet id configured, using the seeded in-memory store")
		store := memory.NewStore(memory.SeedFixtures())
		return store, store, nil
	}

	svc, err := sheets.NewService(ctx, sheets.Config{
		SpreadsheetID:   cfg.SheetID,
		CredentialsFile: cfg.SheetCredentialsFile,
	})
	if err != nil {
		return nil, nil, err
	}

	defaultFormat := snooker.Format{BestOf: cfg.BestOf, Reds: cfg.Reds}
	fixtures := sheets.NewFixtureRepository(svc, cfg.SheetID, defaultFormat)
	results := sheets.NewResultRepository(svc, cfg.SheetID, fixtures)
	return fixtures, results, nil
}
