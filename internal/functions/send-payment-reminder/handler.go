// internal/functions/send-payment-reminder/handler.go
package sendpaymentreminder

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"payment-reminder/internal/common/errors"
	"payment-reminder/internal/common/logger"
	"payment-reminder/internal/common/metrics"
	"payment-reminder/internal/common/observability"
)

var errNullBody = stderrors.New("request body is null")

// Executor runs one reminder. *Service implements it.
type Executor interface {
	Execute(ctx context.Context, req *ReminderRequest) (*Output, error)
}

// Handler is the HTTP entry point. Every method other than OPTIONS is
// treated as a send request.
type Handler struct {
	config       *Config
	service      Executor
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
	obs          *observability.Observability
}

func NewHandler(config *Config, service Executor, log logger.Logger, obs *observability.Observability) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	log = log.WithFields(map[string]interface{}{"function": FunctionName})
	return &Handler{
		config:       config,
		service:      service,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
		obs:          obs,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	h.setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		h.preflight(w)
		metrics.RemindersRequests.WithLabelValues(metrics.OutcomePreflight).Inc()
		return
	}

	ctx := r.Context()
	status := metrics.OutcomeSuccess
	defer func() {
		metrics.RemindersRequests.WithLabelValues(status).Inc()
		h.obs.RecordReminderProcessed(ctx, status)
		h.obs.RecordReminderDuration(ctx, time.Since(start), status)
	}()

	req, err := h.decode(w, r)
	if err == nil {
		_, err = h.service.Execute(ctx, req)
	}
	if err != nil {
		status = metrics.OutcomeError
		stdErr := h.errorHandler.HandleRequestError(w, r, err)
		metrics.RemindersFailures.WithLabelValues(string(stdErr.Code)).Inc()
		return
	}

	errors.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// preflight answers CORS preflight with a bare "ok" and no Content-Type.
func (h *Handler) preflight(w http.ResponseWriter) {
	w.Header()["Content-Type"] = nil
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "ok")
}

func (h *Handler) setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", h.config.AllowOrigin)
	w.Header().Set("Access-Control-Allow-Headers", h.config.AllowHeaders)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (*ReminderRequest, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.config.MaxBodyBytes))
	if err != nil {
		return nil, errors.NewRequestParseError(err)
	}

	var req *ReminderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, errors.NewRequestParseError(err)
	}
	if req == nil {
		return nil, errors.NewRequestParseError(errNullBody)
	}
	return req, nil
}
