package handlers

import (
	"context"

	"github.com/latefee/latefee/pkg/models"
	"github.com/latefee/latefee/pkg/services"
)

// mockLibraryService is a configurable mock for all handler tests. Set err
// to fail every call, or fill in the return fields.
type mockLibraryService struct {
	users  []*models.User
	user   *models.User
	movies []*models.Movie
	movie  *models.Movie

	updated bool
	deleted bool
	err     error

	// updateErr fails only UpdateMovie, letting the preceding GetMovie
	// succeed.
	updateErr error

	// lastUpdate records the input passed to UpdateMovie.
	lastUpdate services.UpdateMovieInput
}

func (m *mockLibraryService) ListUsers(ctx context.Context) ([]*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.users, nil
}

func (m *mockLibraryService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockLibraryService) CreateUser(ctx context.Context, name string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user != nil {
		return m.user, nil
	}
	return &models.User{ID: 1, Name: name}, nil
}

func (m *mockLibraryService) ListMovies(ctx context.Context, userID int64) ([]*models.Movie, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.movies, nil
}

func (m *mockLibraryService) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.movie, nil
}

func (m *mockLibraryService) AddMovie(ctx context.Context, userID int64, title, year string) (*models.Movie, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.movie != nil {
		return m.movie, nil
	}
	return &models.Movie{ID: 1, Name: title, UserID: userID}, nil
}

func (m *mockLibraryService) UpdateMovie(ctx context.Context, id int64, input services.UpdateMovieInput) (bool, error) {
	m.lastUpdate = input
	if m.updateErr != nil {
		return false, m.updateErr
	}
	if m.err != nil {
		return false, m.err
	}
	return m.updated, nil
}

func (m *mockLibraryService) DeleteMovie(ctx context.Context, id int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.deleted, nil
}

// mockNarrativeService returns a fixed explanation.
type mockNarrativeService struct {
	explanation string
	calls       int
}

func (m *mockNarrativeService) EyeOfTheDuck(ctx context.Context, movie *models.Movie) string {
	m.calls++
	return m.explanation
}
