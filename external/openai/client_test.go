package openai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/ovaskainen/snooker-score-bot/internal/platform/resilience"
	"github.com/ovaskainen/snooker-score-bot/internal/usecase"
	"github.com/stretchr/testify/require"
)

func completionRequest() usecase.CompletionRequest {
	return usecase.CompletionRequest{
		System:     "extract the score",
		User:       "Passage: Nikula beat Korhonen 2-1",
		SchemaName: "snooker_score_report",
		Schema:     map[string]any{"type": "object"},
	}
}

func chatReply(content string) string {
	return `{"choices":[{"message":{"content":` + content + `},"finish_reason":"stop"}]}`
}

func newTestClient(baseURL string, maxRetries int) *Client {
	return NewClient(ClientConfig{
		BaseURL:    baseURL,
		Token:      "sk-test",
		Model:      "gpt-4o-mini",
		Timeout:    2 * time.Second,
		MaxRetries: maxRetries,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          false,
			FailureThreshold: 5,
			OpenTimeout:      time.Second,
		},
	})
}

func TestNewClientLeavesCallerHTTPClientAlone(t *testing.T) {
	supplied := &http.Client{Timeout: 5 * time.Second}
	client := NewClient(ClientConfig{HTTPClient: supplied, Token: "sk-test", Timeout: 25 * time.Second})
	require.Same(t, supplied, client.httpClient)
	require.Equal(t, 5*time.Second, supplied.Timeout)

	untimed := &http.Client{}
	NewClient(ClientConfig{HTTPClient: untimed, Token: "sk-test"})
	require.Zero(t, untimed.Timeout, "caller-supplied client must not be mutated")

	defaulted := NewClient(ClientConfig{Token: "sk-test"})
	require.Equal(t, 25*time.Second, defaulted.httpClient.Timeout)
}

func TestCompleteJSONReturnsReplyContent(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var payload map[string]any
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "gpt-4o-mini", payload["model"])

		format, ok := payload["response_format"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "json_schema", format["type"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(chatReply(`"{\"player1_score\": 2, \"player2_score\": 1, \"breaks\": []}"`)))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0)
	raw, err := client.CompleteJSON(context.Background(), completionRequest())
	require.NoError(t, err)
	require.JSONEq(t, `{"player1_score": 2, "player2_score": 1, "breaks": []}`, string(raw))
	require.Equal(t, "Bearer sk-test", gotAuth)
}

func TestCompleteJSONRetryableStatusBecomesDependencyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0)
	_, err := client.CompleteJSON(context.Background(), completionRequest())
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
}

func TestCompleteJSONNonRetryableStatusIsTerminal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0)
	_, err := client.CompleteJSON(context.Background(), completionRequest())
	require.Error(t, err)
	require.False(t, errors.Is(err, usecase.ErrDependencyUnavailable))
}

func TestCompleteJSONRefusal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"","refusal":"cannot comply"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0)
	_, err := client.CompleteJSON(context.Background(), completionRequest())
	require.ErrorIs(t, err, usecase.ErrModelOutputInvalid)
}

func TestCompleteJSONEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 0)
	_, err := client.CompleteJSON(context.Background(), completionRequest())
	require.ErrorIs(t, err, usecase.ErrModelOutputInvalid)
}

func TestCompleteJSONCircuitBreakerOpensAfterFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{
		BaseURL:    srv.URL,
		Token:      "sk-test",
		MaxRetries: 0,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
		},
	})

	_, err := client.CompleteJSON(context.Background(), completionRequest())
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	require.Equal(t, int32(1), hits.Load())

	_, err = client.CompleteJSON(context.Background(), completionRequest())
	require.ErrorIs(t, err, usecase.ErrDependencyUnavailable)
	require.Equal(t, int32(1), hits.Load(), "open breaker must not let requests through")
}
