package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/quillpress/quillpress/internal/apperr"
)

// Envelope is the uniform response body. Data is null on failures and
// Timestamp is epoch milliseconds.
type Envelope struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp int64  `json:"timestamp"`
}

// RespondOK writes a success envelope.
func RespondOK(w http.ResponseWriter, data any) {
	writeEnvelope(w, http.StatusOK, Envelope{
		Code:    string(apperr.CodeSuccess),
		Message: "success",
		Data:    data,
	})
}

// RespondError writes a failure envelope. Business failures keep HTTP 200;
// only the two access failures surface as transport status codes.
func RespondError(w http.ResponseWriter, err error) {
	ae := apperr.From(err)

	status := http.StatusOK
	switch ae.Code {
	case apperr.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.CodeForbidden:
		status = http.StatusForbidden
	}

	writeEnvelope(w, status, Envelope{
		Code:    string(ae.Code),
		Message: ae.Message,
	})
}

func writeEnvelope(w http.ResponseWriter, status int, envelope Envelope) {
	envelope.Timestamp = time.Now().UnixMilli()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		slog.Error("write response failed", "err", err)
	}
}
