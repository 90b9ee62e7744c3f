package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/AlibekovAA/movie-watchlist/internal/common/constants"
	commonerrors "github.com/AlibekovAA/movie-watchlist/internal/common/errors"
	"github.com/AlibekovAA/movie-watchlist/internal/common/httpmetrics"
	"github.com/AlibekovAA/movie-watchlist/internal/common/logger"
	"github.com/AlibekovAA/movie-watchlist/internal/observability/metrics"
)

type ErrorHandler struct {
	log *logger.Logger
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{log: log}
}

// HandleError translates err into a JSON error response. Domain errors
// answer with their own status and message; anything else is logged and
// answered with a generic 500 so driver or runtime details never reach
// the client.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	ctx := r.Context()

	domainErr, ok := commonerrors.AsDomainError(err)
	if !ok {
		domainErr = commonerrors.ErrInternal.WithCause(err)
	}

	status := domainErr.HTTPStatus()
	logFields := logger.Fields{
		"error_code": domainErr.Code(),
		"category":   string(domainErr.Category()),
		"status":     status,
		"path":       r.URL.Path,
		"action":     "domain_error",
	}

	if status >= http.StatusInternalServerError {
		h.log.WithFields(ctx, logFields).Errorf("request failed: %v", err)
	} else if h.log.ShouldLog(logger.DEBUG) {
		h.log.WithFields(ctx, logFields).Debugf("domain error: %s", domainErr.Error())
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(domainErr.Category()),
		domainErr.Code(),
		strconv.Itoa(status),
	).Inc()

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteError(w, status, domainErr.Message())
}

func HandleError(w http.ResponseWriter, r *http.Request, err error, log *logger.Logger) {
	NewErrorHandler(log).HandleError(w, r, err)
}

func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(constants.TraceIDKey).(string)
	return traceID
}
