package service

import (
	"net/http"

	commonerrors "github.com/AlibekovAA/movie-watchlist/internal/common/errors"
)

var (
	ErrTitleRequired = commonerrors.NewDomainError(
		"TITLE_REQUIRED",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Title is required",
	)

	ErrFieldTooLong = commonerrors.NewDomainError(
		"FIELD_TOO_LONG",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Title is too long",
	)

	ErrInvalidMovieID = commonerrors.NewDomainError(
		"INVALID_MOVIE_ID",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"Invalid movie id",
	)

	ErrMovieNotFound = commonerrors.NewDomainError(
		"MOVIE_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"Movie not found",
	)
)
