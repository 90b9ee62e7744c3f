package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/movie-watchlist/internal/common/errors"
)

var (
	ErrValidation = commonerrors.NewDomainError(
		"VALIDATION_FAILED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"All fields are required",
	)

	ErrFieldTooLong = commonerrors.NewDomainError(
		"FIELD_TOO_LONG",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Field value is too long",
	)

	ErrConflict = commonerrors.NewDomainError(
		"USER_EXISTS",
		commonerrors.CategoryConflict,
		http.StatusBadRequest,
		"Username or email already exists",
	)

	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password so the two cases are indistinguishable.
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"Invalid credentials",
	)
)
