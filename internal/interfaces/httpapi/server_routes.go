package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerWebhookRoutes(mux *http.ServeMux, handler *Handler, twilioAuthToken, publicBaseURL string) {
	mux.Handle("POST /scores/sms", VerifyTwilioSignature(twilioAuthToken, publicBaseURL, http.HandlerFunc(handler.InboundSMS)))
}

func registerQueryRoutes(mux *http.ServeMux, handler *Handler, apiKey string) {
	mux.Handle("GET /fixtures", RequireAPIKey(apiKey, http.HandlerFunc(handler.ListFixtures)))
	mux.Handle("GET /fixtures/{id}", RequireAPIKey(apiKey, http.HandlerFunc(handler.GetFixtureByID)))
	mux.Handle("GET /matches", RequireAPIKey(apiKey, http.HandlerFunc(handler.ListMatches)))
	mux.Handle("GET /matches/{id}", RequireAPIKey(apiKey, http.HandlerFunc(handler.GetMatchByID)))
	mux.Handle("POST /scores", RequireAPIKey(apiKey, http.HandlerFunc(handler.SubmitScore)))
}
