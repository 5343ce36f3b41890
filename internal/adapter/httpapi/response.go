package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// maxRequestBodySize is the maximum allowed request body (1 MB).
const maxRequestBodySize = 1 << 20

// errorResponse is the envelope for all error responses.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

// writeError writes a structured error envelope. Non-AppError errors become
// opaque 500s so internals never leak to clients.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.HTTPStatus(), errorResponse{
			Error: errorDetail{Code: appErr.Code, Message: appErr.Message},
		})
		return
	}

	s.logger.Error("request failed", "error", err, "path", r.URL.Path)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: errorDetail{Code: ErrCodeInternal, Message: "an unexpected error occurred"},
	})
}

// decodeJSON reads the request body into dst, enforcing the size limit,
// rejecting unknown fields, and requiring a single JSON value.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return mapDecodeError(err)
	}
	if dec.More() {
		return newAppError(ErrCodeInvalidJSON, "request body must contain a single JSON value", nil)
	}
	return nil
}

// mapDecodeError translates a json.Decoder error into an AppError.
func mapDecodeError(err error) *AppError {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return newAppError(ErrCodeInvalidJSON, "request body must not exceed 1MB", err)
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return newAppError(ErrCodeInvalidJSON, "malformed JSON in request body", err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return newAppError(ErrCodeInvalidJSON, "invalid value for field "+typeErr.Field, err)
	}

	if strings.HasPrefix(err.Error(), "json: unknown field") {
		field := strings.TrimPrefix(err.Error(), "json: unknown field ")
		return newAppError(ErrCodeInvalidJSON, "unknown field in request body: "+field, err)
	}

	if errors.Is(err, io.EOF) {
		return newAppError(ErrCodeInvalidJSON, "request body must not be empty", err)
	}

	return newAppError(ErrCodeInvalidJSON, "invalid JSON in request body", err)
}
