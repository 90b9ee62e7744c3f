package service

import (
	"context"
	"errors"
	"time"

	commoncrypto "github.com/AlibekovAA/movie-watchlist/internal/common/crypto"
	"github.com/AlibekovAA/movie-watchlist/internal/common/logger"
	userdomain "github.com/AlibekovAA/movie-watchlist/internal/user/domain"
	userrepo "github.com/AlibekovAA/movie-watchlist/internal/user/repository"
)

type AuthService struct {
	repo   userrepo.Repository
	hasher commoncrypto.PasswordHasher
	tokens *TokenIssuer
	log    *logger.Logger
}

func NewAuthService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	tokens *TokenIssuer,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		log:    log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token string
}

// Register creates an account and returns its public view. Nothing is written unless every step up to
// the insert succeeds; a concurrent duplicate caught by the store's
// unique constraint surfaces as the same ErrConflict as the pre-check.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userdomain.Summary, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if err := validateRegister(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		recordRegistration("invalid")
		return userdomain.Summary{}, err
	}

	_, err := s.repo.FindByEmailOrUsername(ctx, input.Email, input.Username)
	switch {
	case err == nil:
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_user_exists",
		}).Warn("register failed: already exists")
		recordRegistration("conflict")
		return userdomain.Summary{}, ErrConflict
	case !errors.Is(err, userrepo.ErrUserNotFound):
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_lookup_failed",
		}).Errorf("register failed: lookup error: %v", err)
		recordRegistration("error")
		return userdomain.Summary{}, err
	}

	start := time.Now()
	hash, err := s.hasher.Hash(input.Password)
	observePasswordHash(start)
	if err != nil {
		if errors.Is(err, commoncrypto.ErrPasswordTooLong) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_password_too_long",
			}).Warn("register failed: password too long")
			recordRegistration("invalid")
			return userdomain.Summary{}, ErrFieldTooLong
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		recordRegistration("error")
		return userdomain.Summary{}, err
	}

	user, err := s.repo.Create(ctx, input.Username, input.Email, hash)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_constraint_conflict",
			}).Warn("register failed: unique constraint")
			recordRegistration("conflict")
			return userdomain.Summary{}, ErrConflict
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		recordRegistration("error")
		return userdomain.Summary{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  int64(user.ID),
		"action":   "register_success",
	}).Info("register success")
	recordRegistration("success")

	return user.Summary(), nil
}

// Login verifies credentials and issues an access token. Unknown email
// and wrong password return the same error value.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	if err := validateLogin(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_validation_failed",
		}).Warnf("login validation failed: %v", err)
		recordLogin("invalid")
		return LoginResult{}, err
	}

	user, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			recordLogin("invalid_credentials")
			return LoginResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		recordLogin("error")
		return LoginResult{}, err
	}

	start := time.Now()
	err = s.hasher.Compare(user.PasswordHash, input.Password)
	observePasswordHash(start)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": int64(user.ID),
			"action":  "login_invalid_password",
		}).Warn("login failed: invalid password")
		recordLogin("invalid_credentials")
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": int64(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		recordLogin("error")
		return LoginResult{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": int64(user.ID),
		"action":  "login_success",
	}).Info("login success")
	recordLogin("success")

	return LoginResult{Token: token}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]userdomain.Summary, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "list_users_failed",
		}).Errorf("list users failed: %v", err)
		return nil, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"count":  len(users),
		"action": "list_users_success",
	}).Debug("list users success")

	return users, nil
}
