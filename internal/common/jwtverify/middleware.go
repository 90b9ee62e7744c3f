package jwtverify

import (
	"context"
	"net/http"
	"strings"

	commonerrors "github.com/AlibekovAA/movie-watchlist/internal/common/errors"
	commonhttp "github.com/AlibekovAA/movie-watchlist/internal/common/http"
	"github.com/AlibekovAA/movie-watchlist/internal/common/logger"
)

type contextKey string

const claimsKey contextKey = "jwt_claims"

const bearerPrefix = "Bearer "

// Middleware rejects requests without a valid bearer token and attaches
// the verified claims to the request context.
func Middleware(verifier *Verifier, log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := Authenticate(r, verifier, log, false)
			if err != nil {
				commonhttp.HandleError(w, r, err, log)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// Authenticate extracts and verifies the request's token. With
// allowQuery the token may also come from the "token" query parameter,
// which is how browsers authenticate websocket handshakes.
func Authenticate(r *http.Request, verifier *Verifier, log *logger.Logger, allowQuery bool) (Claims, error) {
	ctx := r.Context()

	token, ok := BearerToken(r.Header.Get("Authorization"))
	if !ok && allowQuery {
		token = strings.TrimSpace(r.URL.Query().Get("token"))
		ok = token != ""
	}
	if !ok {
		log.WithFields(ctx, logger.Fields{
			"path":   r.URL.Path,
			"action": "authorize_no_token",
		}).Debug("authorize failed: no token")
		return Claims{}, commonerrors.ErrNoToken
	}

	claims, err := verifier.Verify(token)
	if err != nil {
		log.WithFields(ctx, logger.Fields{
			"path":   r.URL.Path,
			"reason": Reason(err),
			"action": "authorize_invalid_token",
		}).Warnf("authorize failed: %v", err)
		return Claims{}, commonerrors.ErrInvalidToken.WithCause(err)
	}

	return claims, nil
}

// BearerToken returns the credential of a "Bearer <token>" header value.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}

func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}
