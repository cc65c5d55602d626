package httpapi

import (
	"context"
	"encoding/xml"
	"net/http"
)

// twimlResponse is the synchronous webhook reply format: the body of the
// Message element is sent back to the reporter as an SMS.
type twimlResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

func writeTwiML(ctx context.Context, w http.ResponseWriter, message string) {
	_, span := startSpan(ctx, "httpapi.writeTwiML")
	defer span.End()

	body, err := xml.Marshal(twimlResponse{Message: message})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(body)
}
