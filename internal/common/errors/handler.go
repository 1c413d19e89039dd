// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler converts pipeline errors into the single HTTP failure shape.
type ErrorHandler struct {
	logger Logger
	status int
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// NewErrorHandler returns a handler that answers every failure with 400.
func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger, status: http.StatusBadRequest}
}

// HandleRequestError logs err once and writes {"error": <message>}. Headers
// already set on w (CORS) are preserved.
func (h *ErrorHandler) HandleRequestError(w http.ResponseWriter, r *http.Request, err error) *StandardError {
	stdErr := Normalize(err)

	h.logError(r, stdErr)
	WriteJSON(w, h.status, ErrorResponse{Error: stdErr.Message})

	return stdErr
}

func (h *ErrorHandler) logError(r *http.Request, stdErr *StandardError) {
	fields := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	if r != nil {
		fields["method"] = r.Method
		fields["path"] = r.URL.Path
	}
	for k, v := range stdErr.Metadata {
		fields[k] = v
	}
	h.logger.Error("request failed", fields)
}

// WriteJSON writes v as the JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
