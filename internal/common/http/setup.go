package http

import (
	"net/http"

	"github.com/AlibekovAA/movie-watchlist/internal/common/constants"
	"github.com/AlibekovAA/movie-watchlist/internal/common/httpmetrics"
	"github.com/AlibekovAA/movie-watchlist/internal/common/logger"
)

// BuildBaseHandler wraps the application router with the middleware every
// route shares, outermost first: security headers, CORS, panic recovery,
// trace id, body size limit, request metrics.
func BuildBaseHandler(log *logger.Logger, corsOrigin string, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	cors := CORSMiddleware(corsOrigin)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(cors(recovery(TraceIDMiddleware(maxRequestSize(metrics.Wrap(handler))))))
}
