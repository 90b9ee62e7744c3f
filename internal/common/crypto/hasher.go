package crypto

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/AlibekovAA/movie-watchlist/internal/common/constants"
)

// ErrPasswordTooLong is returned by Hash for inputs over the bcrypt limit.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

// BcryptHasher hashes with a fixed work factor; the salt travels inside
// the encoded hash.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: constants.BcryptCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	cost := h.cost
	if cost == 0 {
		cost = constants.BcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare returns nil only on a match. Malformed hashes surface as errors
// like any mismatch.
func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
