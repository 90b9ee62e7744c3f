package http

import (
	"net/http"
	"time"

	commonerrors "github.com/AlibekovAA/movie-watchlist/internal/common/errors"
	commonhttp "github.com/AlibekovAA/movie-watchlist/internal/common/http"
	"github.com/AlibekovAA/movie-watchlist/internal/common/logger"
	"github.com/AlibekovAA/movie-watchlist/internal/movie/domain"
	"github.com/AlibekovAA/movie-watchlist/internal/movie/service"
)

type movieRequest struct {
	Title  string `json:"title"`
	Poster string `json:"poster"`
}

type movieResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Poster    string    `json:"poster"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Handler struct {
	movies *service.MovieService
	log    *logger.Logger
}

// Register mounts the watchlist routes on mux. events serves the live
// subscription endpoint and may be nil.
func Register(mux *http.ServeMux, movies *service.MovieService, events http.Handler, requestTimeout time.Duration, log *logger.Logger) {
	h := &Handler{movies: movies, log: log}
	timeout := commonhttp.WithTimeout(requestTimeout)

	mux.HandleFunc("/movies", commonhttp.RequireMethod(http.MethodGet, http.MethodPost)(timeout(h.collection)))
	mux.HandleFunc("/movies/{id}", commonhttp.RequireMethod(http.MethodGet, http.MethodPut, http.MethodDelete)(timeout(h.item)))
	if events != nil {
		mux.Handle("/movies/events", events)
	}
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		h.create(w, r)
		return
	}

	movies, err := h.movies.List(r.Context())
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	out := make([]movieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, toResponse(m))
	}
	commonhttp.WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req movieRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.HandleError(w, r, commonerrors.ErrInvalidJSON.WithCause(err), h.log)
		return
	}

	movie, err := h.movies.Create(r.Context(), service.MovieInput{Title: req.Title, Poster: req.Poster})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, toResponse(movie))
}

func (h *Handler) item(w http.ResponseWriter, r *http.Request) {
	id, err := service.ParseID(r.PathValue("id"))
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		h.get(w, r, id)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, id domain.ID) {
	movie, err := h.movies.Get(r.Context(), id)
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toResponse(movie))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, id domain.ID) {
	var req movieRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		commonhttp.HandleError(w, r, commonerrors.ErrInvalidJSON.WithCause(err), h.log)
		return
	}

	movie, err := h.movies.Update(r.Context(), id, service.MovieInput{Title: req.Title, Poster: req.Poster})
	if err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toResponse(movie))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, id domain.ID) {
	if err := h.movies.Delete(r.Context(), id); err != nil {
		commonhttp.HandleError(w, r, err, h.log)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toResponse(m domain.Movie) movieResponse {
	return movieResponse{
		ID:        int64(m.ID),
		Title:     m.Title,
		Poster:    m.Poster,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
