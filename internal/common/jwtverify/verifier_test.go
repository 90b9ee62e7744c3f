package jwtverify

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/movie-watchlist/internal/common/clock"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var issuedAt = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func signTestToken(t *testing.T) string {
	t.Helper()
	token, err := Sign(testSecret, 1, "ana@x.com", "jti-1", issuedAt, 24*time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return token
}

func TestVerifier_ValidToken(t *testing.T) {
	v := NewVerifier(testSecret, clock.NewMockClock(issuedAt.Add(time.Minute)))

	claims, err := v.Verify(signTestToken(t))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if claims.ID != 1 || claims.Email != "ana@x.com" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestVerifier_ExpiresAfterTTL(t *testing.T) {
	clk := clock.NewMockClock(issuedAt.Add(23 * time.Hour))
	v := NewVerifier(testSecret, clk)
	token := signTestToken(t)

	if _, err := v.Verify(token); err != nil {
		t.Fatalf("expected token to verify before expiry, got %v", err)
	}

	clk.Set(issuedAt.Add(24*time.Hour + time.Second))
	_, err := v.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
	if Reason(err) != "expired" {
		t.Errorf("expected reason expired, got %q", Reason(err))
	}
}

func TestVerifier_TamperedSignature(t *testing.T) {
	v := NewVerifier(testSecret, clock.NewMockClock(issuedAt))
	token := signTestToken(t)

	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err := v.Verify(tampered)
	if !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Errorf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestVerifier_WrongSecret(t *testing.T) {
	v := NewVerifier("ffffffffffffffffffffffffffffffff", clock.NewMockClock(issuedAt))

	_, err := v.Verify(signTestToken(t))
	if !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Errorf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestVerifier_Malformed(t *testing.T) {
	v := NewVerifier(testSecret, clock.NewMockClock(issuedAt))

	for _, token := range []string{"", "abc", "a.b.c", "not.a.token.at.all"} {
		_, err := v.Verify(token)
		if !errors.Is(err, ErrTokenMalformed) {
			t.Errorf("token %q: expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

func TestVerifier_RejectsUnsignedToken(t *testing.T) {
	v := NewVerifier(testSecret, clock.NewMockClock(issuedAt))

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, TokenClaims{
		AccountID: 1,
		Email:     "ana@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	if _, err := v.Verify(token); err == nil {
		t.Error("expected unsigned token to be rejected")
	}
}

func TestVerifier_MissingClaims(t *testing.T) {
	v := NewVerifier(testSecret, clock.NewMockClock(issuedAt))

	token, err := Sign(testSecret, 0, "", "jti", issuedAt, time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	_, err = v.Verify(token)
	if !errors.Is(err, ErrTokenMalformed) {
		t.Errorf("expected ErrTokenMalformed, got %v", err)
	}
}
