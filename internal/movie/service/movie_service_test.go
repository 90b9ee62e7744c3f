package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/AlibekovAA/movie-watchlist/internal/common/logger"
	"github.com/AlibekovAA/movie-watchlist/internal/movie/domain"
	movierepo "github.com/AlibekovAA/movie-watchlist/internal/movie/repository"
	"github.com/AlibekovAA/movie-watchlist/internal/movie/service"
)

type mockMovieRepo struct {
	listFunc     func(ctx context.Context) ([]domain.Movie, error)
	findByIDFunc func(ctx context.Context, id domain.ID) (domain.Movie, error)
	createFunc   func(ctx context.Context, title, poster string) (domain.Movie, error)
	updateFunc   func(ctx context.Context, id domain.ID, title, poster string) (domain.Movie, error)
	deleteFunc   func(ctx context.Context, id domain.ID) (domain.Movie, error)
}

func (m *mockMovieRepo) List(ctx context.Context) ([]domain.Movie, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return []domain.Movie{}, nil
}

func (m *mockMovieRepo) FindByID(ctx context.Context, id domain.ID) (domain.Movie, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return domain.Movie{}, movierepo.ErrMovieNotFound
}

func (m *mockMovieRepo) Create(ctx context.Context, title, poster string) (domain.Movie, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, title, poster)
	}
	return domain.Movie{ID: 1, Title: title, Poster: poster}, nil
}

func (m *mockMovieRepo) Update(ctx context.Context, id domain.ID, title, poster string) (domain.Movie, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, title, poster)
	}
	return domain.Movie{}, movierepo.ErrMovieNotFound
}

func (m *mockMovieRepo) Delete(ctx context.Context, id domain.ID) (domain.Movie, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return domain.Movie{}, movierepo.ErrMovieNotFound
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *recordingPublisher) Publish(event domain.Event) {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()
}

func setupMovieService(t *testing.T) (*service.MovieService, *mockMovieRepo, *recordingPublisher) {
	t.Helper()
	repo := &mockMovieRepo{}
	pub := &recordingPublisher{}
	log := logger.NewWithWriter(io.Discard, "test", "debug")
	return service.NewMovieService(repo, pub, log), repo, pub
}

func TestMovieService_Create_PublishesEvent(t *testing.T) {
	svc, _, pub := setupMovieService(t)

	movie, err := svc.Create(context.Background(), service.MovieInput{Title: "Alien", Poster: "alien.jpg"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if movie.Title != "Alien" {
		t.Errorf("unexpected movie %+v", movie)
	}

	if len(pub.events) != 1 || pub.events[0].Type != domain.EventMovieCreated {
		t.Fatalf("expected one created event, got %+v", pub.events)
	}
}

func TestMovieService_Create_TitleRequired(t *testing.T) {
	svc, repo, pub := setupMovieService(t)

	repo.createFunc = func(ctx context.Context, title, poster string) (domain.Movie, error) {
		t.Error("create must not be called")
		return domain.Movie{}, nil
	}

	_, err := svc.Create(context.Background(), service.MovieInput{Poster: "x.jpg"})
	if !errors.Is(err, service.ErrTitleRequired) {
		t.Errorf("expected ErrTitleRequired, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Error("expected no events on failure")
	}
}

func TestMovieService_Create_TitleTooLong(t *testing.T) {
	svc, _, _ := setupMovieService(t)

	_, err := svc.Create(context.Background(), service.MovieInput{Title: strings.Repeat("a", 256)})
	if !errors.Is(err, service.ErrFieldTooLong) {
		t.Errorf("expected ErrFieldTooLong, got %v", err)
	}
}

func TestMovieService_Update_NotFound(t *testing.T) {
	svc, _, pub := setupMovieService(t)

	_, err := svc.Update(context.Background(), 42, service.MovieInput{Title: "Alien"})
	if !errors.Is(err, service.ErrMovieNotFound) {
		t.Errorf("expected ErrMovieNotFound, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Error("expected no events on failure")
	}
}

func TestMovieService_Update_Success(t *testing.T) {
	svc, repo, pub := setupMovieService(t)

	repo.updateFunc = func(ctx context.Context, id domain.ID, title, poster string) (domain.Movie, error) {
		return domain.Movie{ID: id, Title: title, Poster: poster}, nil
	}

	movie, err := svc.Update(context.Background(), 3, service.MovieInput{Title: "Heat"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if movie.ID != 3 || movie.Title != "Heat" {
		t.Errorf("unexpected movie %+v", movie)
	}
	if len(pub.events) != 1 || pub.events[0].Type != domain.EventMovieUpdated {
		t.Errorf("expected one updated event, got %+v", pub.events)
	}
}

func TestMovieService_Delete(t *testing.T) {
	svc, repo, pub := setupMovieService(t)

	if err := svc.Delete(context.Background(), 9); !errors.Is(err, service.ErrMovieNotFound) {
		t.Errorf("expected ErrMovieNotFound, got %v", err)
	}

	repo.deleteFunc = func(ctx context.Context, id domain.ID) (domain.Movie, error) {
		return domain.Movie{ID: id, Title: "Alien"}, nil
	}
	if err := svc.Delete(context.Background(), 9); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(pub.events) != 1 || pub.events[0].Type != domain.EventMovieDeleted || pub.events[0].Movie.ID != 9 {
		t.Errorf("expected one deleted event for movie 9, got %+v", pub.events)
	}
}

func TestMovieService_StoreErrorPropagates(t *testing.T) {
	svc, repo, _ := setupMovieService(t)

	dbErr := errors.New("disk I/O error")
	repo.findByIDFunc = func(ctx context.Context, id domain.ID) (domain.Movie, error) {
		return domain.Movie{}, dbErr
	}

	_, err := svc.Get(context.Background(), 1)
	if !errors.Is(err, dbErr) {
		t.Errorf("expected store error, got %v", err)
	}
}

func TestParseID(t *testing.T) {
	if id, err := service.ParseID("12"); err != nil || id != 12 {
		t.Errorf("expected 12, got %d %v", id, err)
	}
	for _, raw := range []string{"", "abc", "0", "-1", "1.5"} {
		if _, err := service.ParseID(raw); !errors.Is(err, service.ErrInvalidMovieID) {
			t.Errorf("%q: expected ErrInvalidMovieID, got %v", raw, err)
		}
	}
}
