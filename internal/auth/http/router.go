package http

import (
	"net/http"
	"time"

	"github.com/AlibekovAA/movie-watchlist/internal/auth/service"
	commonerrors "github.com/AlibekovAA/movie-watchlist/internal/common/errors"
	commonhttp "github.com/AlibekovAA/movie-watchlist/internal/common/http"
	"github.com/AlibekovAA/movie-watchlist/internal/common/jwtverify"
	"github.com/AlibekovAA/movie-watchlist/internal/common/logger"
	userdomain "github.com/AlibekovAA/movie-watchlist/internal/user/domain"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type registerResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Handler struct {
	auth *service.AuthService
	log  *logger.Logger
}

// Register mounts the account routes on mux. The listing is the only
// route behind the authorize guard.
func Register(mux *http.ServeMux, auth *service.AuthService, verifier *jwtverify.Verifier, requestTimeout time.Duration, log *logger.Logger) {
	h := &Handler{auth: auth, log: log}
	timeout := commonhttp.WithTimeout(requestTimeout)
	authorize := jwtverify.Middleware(verifier, log)

	mux.HandleFunc("/users/register", commonhttp.RequireMethod(http.MethodPost)(timeout(h.register)))
	mux.HandleFunc("/users/login", commonhttp.RequireMethod(http.MethodPost)(timeout(h.login)))

	list := authorize(commonhttp.RequireMethod(http.MethodGet)(timeout(h.listUsers)))
	mux.Handle("/users/{$}", list)
	mux.Handle("/users", list)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": "register_invalid_json",
		}).Warnf("register failed: invalid json: %v", err)
		commonhttp.HandleError(w, r, commonerrors.ErrInvalidJSON.WithCause(err), h.log)
		return
	}

	user, err := h.auth.Register(r.Context(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, registerResponse{
		ID:       int64(user.ID),
		Username: user.Username,
		Email:    user.Email,
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{
			"action": "login_invalid_json",
		}).Warnf("login failed: invalid json: %v", err)
		commonhttp.HandleError(w, r, commonerrors.ErrInvalidJSON.WithCause(err), h.log)
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, tokenResponse{Token: result.Token})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.auth.ListUsers(r.Context())
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toUserResponses(users))
}

func toUserResponses(users []userdomain.Summary) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userResponse{
			ID:        int64(u.ID),
			Username:  u.Username,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}
	return out
}
