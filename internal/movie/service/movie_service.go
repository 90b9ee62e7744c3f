package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/AlibekovAA/movie-watchlist/internal/common/logger"
	"github.com/AlibekovAA/movie-watchlist/internal/common/validation"
	"github.com/AlibekovAA/movie-watchlist/internal/movie/domain"
	movierepo "github.com/AlibekovAA/movie-watchlist/internal/movie/repository"
	"github.com/AlibekovAA/movie-watchlist/internal/observability/metrics"
)

// Publisher receives every committed watchlist change.
type Publisher interface {
	Publish(event domain.Event)
}

type MovieService struct {
	repo      movierepo.Repository
	publisher Publisher
	log       *logger.Logger
}

func NewMovieService(repo movierepo.Repository, publisher Publisher, log *logger.Logger) *MovieService {
	return &MovieService{repo: repo, publisher: publisher, log: log}
}

type MovieInput struct {
	Title  string `json:"title" validate:"required,max=255"`
	Poster string `json:"poster" validate:"max=2048"`
}

// ParseID converts a path segment into a movie id.
func ParseID(raw string) (domain.ID, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidMovieID
	}
	return domain.ID(id), nil
}

func (s *MovieService) List(ctx context.Context) ([]domain.Movie, error) {
	movies, err := s.repo.List(ctx)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "movie_list_failed",
		}).Errorf("list movies failed: %v", err)
		return nil, err
	}
	return movies, nil
}

func (s *MovieService) Get(ctx context.Context, id domain.ID) (domain.Movie, error) {
	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Movie{}, s.mapRepoError(ctx, "get", id, err)
	}
	return movie, nil
}

func (s *MovieService) Create(ctx context.Context, input MovieInput) (domain.Movie, error) {
	if err := validateInput(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "movie_create_validation_failed",
		}).Warnf("create movie validation failed: %v", err)
		return domain.Movie{}, err
	}

	movie, err := s.repo.Create(ctx, input.Title, input.Poster)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"action": "movie_create_failed",
		}).Errorf("create movie failed: %v", err)
		return domain.Movie{}, err
	}

	s.log.WithFields(ctx, logger.Fields{
		"movie_id": int64(movie.ID),
		"action":   "movie_create_success",
	}).Info("movie created")
	s.publish(domain.EventMovieCreated, movie)

	return movie, nil
}

func (s *MovieService) Update(ctx context.Context, id domain.ID, input MovieInput) (domain.Movie, error) {
	if err := validateInput(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"movie_id": int64(id),
			"action":   "movie_update_validation_failed",
		}).Warnf("update movie validation failed: %v", err)
		return domain.Movie{}, err
	}

	movie, err := s.repo.Update(ctx, id, input.Title, input.Poster)
	if err != nil {
		return domain.Movie{}, s.mapRepoError(ctx, "update", id, err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"movie_id": int64(movie.ID),
		"action":   "movie_update_success",
	}).Info("movie updated")
	s.publish(domain.EventMovieUpdated, movie)

	return movie, nil
}

func (s *MovieService) Delete(ctx context.Context, id domain.ID) error {
	movie, err := s.repo.Delete(ctx, id)
	if err != nil {
		return s.mapRepoError(ctx, "delete", id, err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"movie_id": int64(movie.ID),
		"action":   "movie_delete_success",
	}).Info("movie deleted")
	s.publish(domain.EventMovieDeleted, movie)

	return nil
}

func (s *MovieService) publish(eventType domain.EventType, movie domain.Movie) {
	metrics.MovieMutationsTotal.WithLabelValues(string(eventType)).Inc()
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(domain.Event{Type: eventType, Movie: movie})
}

func (s *MovieService) mapRepoError(ctx context.Context, op string, id domain.ID, err error) error {
	if errors.Is(err, movierepo.ErrMovieNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"movie_id": int64(id),
			"action":   "movie_" + op + "_not_found",
		}).Debug("movie not found")
		return ErrMovieNotFound
	}

	s.log.WithFields(ctx, logger.Fields{
		"movie_id": int64(id),
		"action":   "movie_" + op + "_failed",
	}).Errorf("%s movie failed: %v", op, err)
	return err
}

func validateInput(input MovieInput) error {
	errs := validation.Struct(input)
	if len(errs) == 0 {
		return nil
	}
	if validation.HasTag(errs, "required") {
		return ErrTitleRequired
	}
	return ErrFieldTooLong
}
