package errors

import (
	"encoding/json"
	"net/http"
)

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// ErrorHandler writes a StandardError as the JSON response body.
type ErrorHandler struct {
	logger Logger
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

type errorBody struct {
	Code      ErrorCode    `json:"code"`
	Message   string       `json:"message"`
	Errors    []FieldError `json:"errors,omitempty"`
	RequestID string       `json:"requestId,omitempty"`
}

// Write normalizes err and responds. Server-side failures are answered with a
// generic message; details only reach the log.
func (h *ErrorHandler) Write(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := Normalize(err)
	status := stdErr.HTTPStatus()
	requestID := w.Header().Get("X-Request-ID")

	body := errorBody{
		Code:      stdErr.Code,
		Message:   stdErr.Message,
		Errors:    stdErr.Fields,
		RequestID: requestID,
	}
	if status >= http.StatusInternalServerError {
		body.Code = ErrCodeInternal
		body.Message = "Internal server error"
		body.Errors = nil
	}

	h.logError(r, stdErr, status, requestID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *ErrorHandler) logError(r *http.Request, stdErr *StandardError, status int, requestID string) {
	if h.logger == nil {
		return
	}
	fields := map[string]interface{}{
		"requestId": requestID,
		"method":    r.Method,
		"path":      r.URL.Path,
		"status":    status,
		"errorCode": string(stdErr.Code),
		"category":  GetErrorCategory(stdErr.Code),
		"retryable": stdErr.Retryable,
	}
	if stdErr.Details != "" {
		fields["details"] = stdErr.Details
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", fields)
		return
	}
	h.logger.Warn("request rejected", fields)
}
