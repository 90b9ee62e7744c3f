package jwtverify

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/movie-watchlist/internal/common/clock"
	"github.com/AlibekovAA/movie-watchlist/internal/observability/metrics"
)

var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
)

// Claims is the authenticated identity carried by an access token.
type Claims struct {
	ID    int64
	Email string
}

// TokenClaims is the signed payload: id, email, iat, exp and jti.
type TokenClaims struct {
	AccountID int64  `json:"id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
	clock  clock.Clock
	parser *jwt.Parser
}

func NewVerifier(secret string, clk clock.Clock) *Verifier {
	if clk == nil {
		clk = clock.NewRealClock()
	}

	return &Verifier{
		secret: []byte(secret),
		clock:  clk,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithTimeFunc(clk.Now),
		),
	}
}

// Verify checks signature and expiry and returns the claims. Errors are
// one of ErrTokenMalformed, ErrTokenSignatureInvalid or ErrTokenExpired.
func (v *Verifier) Verify(tokenString string) (Claims, error) {
	metrics.JWTValidationsTotal.Inc()

	claims, err := v.verify(tokenString)
	if err != nil {
		metrics.JWTValidationsFailed.WithLabelValues(Reason(err)).Inc()
		return Claims{}, err
	}

	return claims, nil
}

func (v *Verifier) verify(tokenString string) (Claims, error) {
	var tc TokenClaims
	parsed, err := v.parser.ParseWithClaims(tokenString, &tc, func(token *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}
	if !parsed.Valid {
		return Claims{}, ErrTokenMalformed
	}

	if tc.AccountID <= 0 || tc.Email == "" {
		return Claims{}, fmt.Errorf("%w: missing id or email claim", ErrTokenMalformed)
	}

	return Claims{ID: tc.AccountID, Email: tc.Email}, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrTokenSignatureInvalid, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}

// Reason names the failure kind for logs and metrics.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenSignatureInvalid):
		return "invalid_signature"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}

// Sign produces an HS256 token for the given claims. It lives next to
// Verify so both sides agree on the payload shape.
func Sign(secret string, accountID int64, email, jti string, issuedAt time.Time, ttl time.Duration) (string, error) {
	tc := TokenClaims{
		AccountID: accountID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString([]byte(secret))
}
