package services

import (
	"context"
	"strings"

	"github.com/latefee/latefee/pkg/apperrors"
	"github.com/latefee/latefee/pkg/models"
	"github.com/latefee/latefee/pkg/omdb"
)

// mockUserRepo is a configurable in-memory UserRepository for service tests.
type mockUserRepo struct {
	users  map[int64]*models.User
	nextID int64
	err    error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (m *mockUserRepo) addUser(name string) *models.User {
	user := &models.User{ID: m.nextID, Name: name}
	m.users[user.ID] = user
	m.nextID++
	return user
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	if strings.TrimSpace(user.Name) == "" {
		return apperrors.NewValidationError("name", "name must not be empty")
	}
	user.ID = m.nextID
	m.users[user.ID] = user
	m.nextID++
	return nil
}

func (m *mockUserRepo) List(ctx context.Context) ([]*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	var users []*models.User
	for id := int64(1); id < m.nextID; id++ {
		if u, ok := m.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return user, nil
}

// mockMovieRepo is a configurable in-memory MovieRepository for service
// tests. updates records the patches passed to Update.
type mockMovieRepo struct {
	movies  map[int64]*models.Movie
	nextID  int64
	updates []models.MovieUpdate
	err     error
}

func newMockMovieRepo() *mockMovieRepo {
	return &mockMovieRepo{movies: map[int64]*models.Movie{}, nextID: 1}
}

func (m *mockMovieRepo) Create(ctx context.Context, movie *models.Movie) error {
	if m.err != nil {
		return m.err
	}
	movie.ID = m.nextID
	m.movies[movie.ID] = movie
	m.nextID++
	return nil
}

func (m *mockMovieRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Movie, error) {
	if m.err != nil {
		return nil, m.err
	}
	var movies []*models.Movie
	for id := int64(1); id < m.nextID; id++ {
		if mv, ok := m.movies[id]; ok && mv.UserID == userID {
			movies = append(movies, mv)
		}
	}
	return movies, nil
}

func (m *mockMovieRepo) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	if m.err != nil {
		return nil, m.err
	}
	movie, ok := m.movies[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return movie, nil
}

func (m *mockMovieRepo) ExistsByName(ctx context.Context, userID int64, name string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, mv := range m.movies {
		if mv.UserID == userID && strings.EqualFold(mv.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockMovieRepo) Update(ctx context.Context, id int64, patch models.MovieUpdate) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.updates = append(m.updates, patch)
	movie, ok := m.movies[id]
	if !ok {
		return false, nil
	}
	if patch.Name != nil {
		movie.Name = *patch.Name
	}
	if patch.Director != nil {
		movie.Director = *patch.Director
	}
	if patch.Year != nil {
		movie.Year = *patch.Year
	}
	if patch.Rating != nil {
		movie.Rating = *patch.Rating
	}
	return true, nil
}

func (m *mockMovieRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.movies[id]; !ok {
		return false, nil
	}
	delete(m.movies, id)
	return true, nil
}

// mockFetcher is a configurable MetadataFetcher.
type mockFetcher struct {
	record *omdb.Record
	err    error
	calls  int
}

func (m *mockFetcher) Fetch(ctx context.Context, title, year string) (*omdb.Record, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.record, nil
}
