package service

import (
	"github.com/AlibekovAA/movie-watchlist/internal/common/constants"
	"github.com/AlibekovAA/movie-watchlist/internal/common/validation"
)

type registerFields struct {
	Username string `json:"username" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

// Login only rejects empty fields; every other failure is reported as
// invalid credentials.
type loginFields struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func validateRegister(input RegisterInput) error {
	if err := toDomainError(validation.Struct(registerFields{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})); err != nil {
		return err
	}
	// bcrypt limits its input in bytes; validator's max counts runes.
	if len(input.Password) > constants.PasswordMaxLength {
		return ErrFieldTooLong
	}
	return nil
}

func validateLogin(input LoginInput) error {
	return toDomainError(validation.Struct(loginFields{
		Email:    input.Email,
		Password: input.Password,
	}))
}

// A missing field wins over a length violation so the client always sees
// "All fields are required" first.
func toDomainError(errs []validation.FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	if validation.HasTag(errs, "required") {
		return ErrValidation
	}
	if validation.HasTag(errs, "max") {
		return ErrFieldTooLong
	}
	return ErrValidation
}
