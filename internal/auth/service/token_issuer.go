package service

import (
	"time"

	"github.com/AlibekovAA/movie-watchlist/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/movie-watchlist/internal/common/crypto"
	"github.com/AlibekovAA/movie-watchlist/internal/common/jwtverify"
	userdomain "github.com/AlibekovAA/movie-watchlist/internal/user/domain"
)

type TokenIssuer struct {
	jwtSecret      string
	idGenerator    commoncrypto.IDGenerator
	clock          clock.Clock
	accessTokenTTL time.Duration
	verifier       *jwtverify.Verifier
}

func NewTokenIssuer(
	jwtSecret string,
	idGenerator commoncrypto.IDGenerator,
	accessTokenTTL time.Duration,
	clock clock.Clock,
) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret:      jwtSecret,
		idGenerator:    idGenerator,
		clock:          clock,
		accessTokenTTL: accessTokenTTL,
		verifier:       jwtverify.NewVerifier(jwtSecret, clock),
	}
}

// IssueAccessToken signs a token carrying the user's id and email,
// valid for the configured TTL from now.
func (ti *TokenIssuer) IssueAccessToken(user userdomain.User) (string, error) {
	jti, err := ti.idGenerator.NewID()
	if err != nil {
		return "", err
	}

	token, err := jwtverify.Sign(ti.jwtSecret, int64(user.ID), user.Email, jti, ti.clock.Now(), ti.accessTokenTTL)
	if err != nil {
		return "", err
	}

	incrementAccessTokensIssued()
	return token, nil
}

func (ti *TokenIssuer) Verifier() *jwtverify.Verifier {
	return ti.verifier
}

func (ti *TokenIssuer) ParseToken(tokenString string) (jwtverify.Claims, error) {
	return ti.verifier.Verify(tokenString)
}
