package httpapi

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestVerifyTwilioSignature(t *testing.T) {
	const authToken = "twilio-auth-token"
	const baseURL = "https://bot.example.com"

	form := url.Values{
		"From": {"+358401234567"},
		"Body": {"Nikula beat Korhonen 2-1"},
	}

	newSignedRequest := func(signature string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/scores/sms", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		if signature != "" {
			req.Header.Set("X-Twilio-Signature", signature)
		}
		return req
	}

	t.Run("accepts a valid signature", func(t *testing.T) {
		signature := twilioSignature(authToken, baseURL+"/scores/sms", form)
		rec := httptest.NewRecorder()
		VerifyTwilioSignature(authToken, baseURL, okHandler()).ServeHTTP(rec, newSignedRequest(signature))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("rejects a tampered body", func(t *testing.T) {
		tampered := url.Values{
			"From": {"+358401234567"},
			"Body": {"Korhonen beat Nikula 2-1"},
		}
		signature := twilioSignature(authToken, baseURL+"/scores/sms", tampered)
		rec := httptest.NewRecorder()
		VerifyTwilioSignature(authToken, baseURL, okHandler()).ServeHTTP(rec, newSignedRequest(signature))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a missing signature", func(t *testing.T) {
		rec := httptest.NewRecorder()
		VerifyTwilioSignature(authToken, baseURL, okHandler()).ServeHTTP(rec, newSignedRequest(""))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("skips verification with no token configured", func(t *testing.T) {
		rec := httptest.NewRecorder()
		VerifyTwilioSignature("", baseURL, okHandler()).ServeHTTP(rec, newSignedRequest(""))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAPIKeyFailsClosedWithoutKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/fixtures", nil)
	req.Header.Set("X-API-Key", "anything")
	rec := httptest.NewRecorder()

	RequireAPIKey("", okHandler()).ServeHTTP(rec, req)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORS(t *testing.T) {
	t.Run("allowed origin is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/fixtures", nil)
		req.Header.Set("Origin", "https://league.example.com")
		rec := httptest.NewRecorder()

		CORS([]string{"https://league.example.com"}, okHandler()).ServeHTTP(rec, req)
		require.Equal(t, "https://league.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unknown origin gets no CORS headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/fixtures", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()

		CORS([]string{"https://league.example.com"}, okHandler()).ServeHTTP(rec, req)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/fixtures", nil)
		req.Header.Set("Origin", "https://league.example.com")
		rec := httptest.NewRecorder()

		CORS([]string{"https://league.example.com"}, okHandler()).ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}
