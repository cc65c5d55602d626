package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ovaskainen/snooker-score-bot/internal/platform/logging"
	"github.com/ovaskainen/snooker-score-bot/internal/platform/resilience"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	LogLevel           logging.Level

	// Shared secret for the programmatic query API (X-API-Key).
	APIKey string

	// Twilio webhook. The auth token enables X-Twilio-Signature verification;
	// leave it empty in dev to accept unsigned requests.
	TwilioAuthToken string
	PublicBaseURL   string

	// Fixture/result store. With SheetID unset the service runs on the seeded
	// in-memory store.
	SheetID              string
	SheetCredentialsFile string

	// Language model extraction.
	OpenAIBaseURL        string
	OpenAIToken          string
	OpenAIModel          string
	OpenAITimeout        time.Duration
	OpenAIMaxRetries     int
	OpenAICircuitBreaker resilience.CircuitBreakerConfig

	// Tournament variant. Reds is 10 or 15; the six-red variant overrides it
	// to 6 and caps breaks accordingly.
	Reds          int
	SixRedVariant bool
	BestOf        int

	// Label stamped on persisted result rows.
	SourceLabel string
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := getEnvAsDuration("HTTP_READ_TIMEOUT", 10*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	logLevel, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}

	apiKey := strings.TrimSpace(getEnv("API_KEY", ""))
	if appEnv == EnvProd && apiKey == "" {
		return Config{}, fmt.Errorf("API_KEY is required when APP_ENV=prod")
	}

	openAITimeout, err := getEnvAsDuration("OPENAI_TIMEOUT", 25*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse OPENAI_TIMEOUT: %w", err)
	}
	openAIMaxRetries, err := getEnvAsInt("OPENAI_MAX_RETRIES", 1)
	if err != nil {
		return Config{}, fmt.Errorf("parse OPENAI_MAX_RETRIES: %w", err)
	}
	circuitEnabled, err := strconv.ParseBool(getEnv("OPENAI_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse OPENAI_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailures, err := getEnvAsInt("OPENAI_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse OPENAI_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	circuitOpenTimeout, err := getEnvAsDuration("OPENAI_CIRCUIT_OPEN_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("parse OPENAI_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}

	sixRed, err := strconv.ParseBool(getEnv("SIX_RED_VARIANT", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SIX_RED_VARIANT: %w", err)
	}
	reds, err := getEnvAsInt("REDS_COUNT", 15)
	if err != nil {
		return Config{}, fmt.Errorf("parse REDS_COUNT: %w", err)
	}
	if reds != 10 && reds != 15 {
		return Config{}, fmt.Errorf("invalid REDS_COUNT %d: valid values are 10 and 15", reds)
	}
	if sixRed {
		reds = 6
	}
	bestOf, err := getEnvAsInt("BEST_OF", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse BEST_OF: %w", err)
	}
	if bestOf < 1 {
		return Config{}, fmt.Errorf("invalid BEST_OF %d: must be at least 1", bestOf)
	}

	return Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("SERVICE_NAME", "snooker-score-bot"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "")),
		LogLevel:           logLevel,
		APIKey:             apiKey,
		TwilioAuthToken:    strings.TrimSpace(getEnv("TWILIO_AUTH_TOKEN", "")),
		PublicBaseURL:      strings.TrimRight(strings.TrimSpace(getEnv("PUBLIC_BASE_URL", "")), "/"),

		SheetID:              strings.TrimSpace(getEnv("GOOGLESHEETS_SHEETID", "")),
		SheetCredentialsFile: strings.TrimSpace(getEnv("GOOGLE_APPLICATION_CREDENTIALS", "")),

		OpenAIBaseURL:    strings.TrimSpace(getEnv("OPENAI_BASE_URL", "")),
		OpenAIToken:      strings.TrimSpace(getEnv("OPENAI_API_KEY", "")),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITimeout:    openAITimeout,
		OpenAIMaxRetries: openAIMaxRetries,
		OpenAICircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          circuitEnabled,
			FailureThreshold: circuitFailures,
			OpenTimeout:      circuitOpenTimeout,
		},

		Reds:          reds,
		SixRedVariant: sixRed,
		BestOf:        bestOf,
		SourceLabel:   getEnv("RESULT_SOURCE_LABEL", "sms"),
	}, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s and %s", v, EnvDev, EnvProd)
	}
}

func parseLogLevel(v string) (logging.Level, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug, nil
	case "info", "":
		return logging.LevelInfo, nil
	case "warn", "warning":
		return logging.LevelWarn, nil
	case "error":
		return logging.LevelError, nil
	default:
		return logging.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", v)
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return strconv.Atoi(value)
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	return time.ParseDuration(value)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}
