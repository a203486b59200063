package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/programari/backend/pkg/contract"
)

// maxBodyBytes caps request bodies of the creation endpoints.
const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, contract.ErrorBody{Message: message})
}

// writeInternalError logs err and answers with a bare 500.
func writeInternalError(w http.ResponseWriter, r *http.Request, ep contract.Endpoint, err error) {
	slog.Error("request failed",
		"endpoint", ep.Name,
		"request_id", RequestIDFromContext(r.Context()),
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}

// readBody reads at most maxBodyBytes. On failure the response has already
// been written and ok is false.
func readBody(w http.ResponseWriter, r *http.Request) (body []byte, ok bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	return body, true
}

// decodeInput validates body against ep's input shape. A validation failure
// is answered with 400 {message, field} carrying the first failed rule.
func decodeInput[T any](w http.ResponseWriter, r *http.Request, ep contract.Endpoint) (T, bool) {
	var zero T
	body, ok := readBody(w, r)
	if !ok {
		return zero, false
	}
	in, err := contract.Decode[T](ep.Input, body)
	if err != nil {
		var verr *contract.ValidationError
		if errors.As(err, &verr) {
			first := verr.First()
			writeJSON(w, http.StatusBadRequest, contract.ValidationFailure{
				Message: first.Message,
				Field:   first.Path,
			})
			return zero, false
		}
		writeInternalError(w, r, ep, err)
		return zero, false
	}
	return in, true
}
