package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/latefee/latefee/pkg/apperrors"
	"github.com/latefee/latefee/pkg/models"
	"github.com/latefee/latefee/pkg/omdb"
)

type libraryFixture struct {
	users   *mockUserRepo
	movies  *mockMovieRepo
	fetcher *mockFetcher
	svc     LibraryService
}

func newLibraryFixture() *libraryFixture {
	f := &libraryFixture{
		users:   newMockUserRepo(),
		movies:  newMockMovieRepo(),
		fetcher: &mockFetcher{},
	}
	f.svc = NewLibraryService(f.users, f.movies, f.fetcher, zap.NewNop())
	return f
}

func TestCreateUser(t *testing.T) {
	f := newLibraryFixture()

	user, err := f.svc.CreateUser(context.Background(), "  Alice  ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.NotZero(t, user.ID)
}

func TestCreateUser_EmptyName(t *testing.T) {
	f := newLibraryFixture()

	_, err := f.svc.CreateUser(context.Background(), "   ")
	assert.True(t, apperrors.IsValidation(err), "expected ValidationError, got %v", err)
}

func TestAddMovie_Success(t *testing.T) {
	f := newLibraryFixture()
	alice := f.users.addUser("Alice")
	f.fetcher.record = &omdb.Record{
		Title:    "Inception",
		Director: "Christopher Nolan",
		Year:     "2010",
		Rating:   "8.8",
		Poster:   "https://example.com/inception.jpg",
	}

	movie, err := f.svc.AddMovie(context.Background(), alice.ID, "Inception", "2010")
	require.NoError(t, err)

	assert.Equal(t, "Inception", movie.Name)
	assert.Equal(t, "Christopher Nolan", movie.Director)
	assert.Equal(t, 2010, movie.Year)
	assert.Equal(t, 8.8, movie.Rating)
	assert.Equal(t, alice.ID, movie.UserID)

	movies, err := f.svc.ListMovies(context.Background(), alice.ID)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Inception", movies[0].Name)
}

func TestAddMovie_UnknownUser(t *testing.T) {
	f := newLibraryFixture()

	_, err := f.svc.AddMovie(context.Background(), 42, "Inception", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Zero(t, f.fetcher.calls, "no lookup expected for an unknown user")
}

func TestAddMovie_Duplicate(t *testing.T) {
	f := newLibraryFixture()
	alice := f.users.addUser("Alice")
	f.fetcher.record = &omdb.Record{Title: "Inception"}

	_, err := f.svc.AddMovie(context.Background(), alice.ID, "Inception", "")
	require.NoError(t, err)

	// The lookup normalizes case, so "inception" resolves to the same title.
	_, err = f.svc.AddMovie(context.Background(), alice.ID, "inception", "")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateMovie)

	movies, err := f.svc.ListMovies(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Len(t, movies, 1, "duplicate add must not create a second row")
}

func TestAddMovie_FetchErrorPropagates(t *testing.T) {
	f := newLibraryFixture()
	alice := f.users.addUser("Alice")
	f.fetcher.err = &omdb.Error{Kind: omdb.ErrorKindNotFound, Message: "Movie not found!"}

	_, err := f.svc.AddMovie(context.Background(), alice.ID, "No Such Movie", "")

	var lookupErr *omdb.Error
	require.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, omdb.ErrorKindNotFound, lookupErr.Kind)

	movies, listErr := f.svc.ListMovies(context.Background(), alice.ID)
	require.NoError(t, listErr)
	assert.Empty(t, movies)
}

func TestAddMovie_AppliesDefaults(t *testing.T) {
	f := newLibraryFixture()
	alice := f.users.addUser("Alice")
	f.fetcher.record = &omdb.Record{
		Title:    "Obscure Film",
		Director: "N/A",
		Year:     "N/A",
		Rating:   "N/A",
		Poster:   "N/A",
	}

	movie, err := f.svc.AddMovie(context.Background(), alice.ID, "Obscure Film", "")
	require.NoError(t, err)

	assert.Equal(t, models.UnknownDirector, movie.Director)
	assert.Equal(t, 0, movie.Year)
	assert.Equal(t, 0.0, movie.Rating)
	assert.Equal(t, "", movie.Poster)
}

func TestAddMovie_SeriesYearRange(t *testing.T) {
	f := newLibraryFixture()
	alice := f.users.addUser("Alice")
	f.fetcher.record = &omdb.Record{Title: "Some Series", Year: "2010–2014"}

	movie, err := f.svc.AddMovie(context.Background(), alice.ID, "Some Series", "")
	require.NoError(t, err)
	assert.Equal(t, 2010, movie.Year)
}

func TestUpdateMovie_PartialFields(t *testing.T) {
	f := newLibraryFixture()
	alice := f.users.addUser("Alice")
	f.movies.movies[1] = &models.Movie{
		ID: 1, Name: "Inception", Director: "Christopher Nolan",
		Year: 2010, Rating: 8.8, UserID: alice.ID,
	}
	f.movies.nextID = 2

	ok, err := f.svc.UpdateMovie(context.Background(), 1, UpdateMovieInput{Rating: "9.1"})
	require.NoError(t, err)
	assert.True(t, ok)

	movie := f.movies.movies[1]
	assert.Equal(t, 9.1, movie.Rating)
	assert.Equal(t, "Inception", movie.Name, "omitted fields stay unchanged")
	assert.Equal(t, 2010, movie.Year, "omitted fields stay unchanged")

	// Only the rating reached the repository.
	require.Len(t, f.movies.updates, 1)
	patch := f.movies.updates[0]
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.Director)
	assert.Nil(t, patch.Year)
	require.NotNil(t, patch.Rating)
}

func TestUpdateMovie_BadYearRejected(t *testing.T) {
	f := newLibraryFixture()
	f.movies.movies[1] = &models.Movie{ID: 1, Name: "Inception", Year: 2010}
	f.movies.nextID = 2

	_, err := f.svc.UpdateMovie(context.Background(), 1, UpdateMovieInput{Year: "abc"})

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "year", ve.Field)
	assert.Equal(t, 2010, f.movies.movies[1].Year, "stored year must stay unchanged")
	assert.Empty(t, f.movies.updates, "the repository must not be touched")
}

func TestUpdateMovie_BadRatingRejected(t *testing.T) {
	f := newLibraryFixture()
	f.movies.movies[1] = &models.Movie{ID: 1, Name: "Inception", Rating: 8.8}
	f.movies.nextID = 2

	_, err := f.svc.UpdateMovie(context.Background(), 1, UpdateMovieInput{Rating: "ten"})

	var ve *apperrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "rating", ve.Field)
	assert.Equal(t, 8.8, f.movies.movies[1].Rating, "stored rating must stay unchanged")
}

func TestUpdateMovie_UnknownID(t *testing.T) {
	f := newLibraryFixture()

	ok, err := f.svc.UpdateMovie(context.Background(), 42, UpdateMovieInput{Name: "X"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteMovie_Idempotent(t *testing.T) {
	f := newLibraryFixture()
	f.movies.movies[1] = &models.Movie{ID: 1, Name: "Inception"}
	f.movies.nextID = 2

	ok, err := f.svc.DeleteMovie(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.svc.DeleteMovie(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, ok, "second delete reports the movie as already gone")
}

func TestLeadingYear(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"2010", 2010},
		{"2010–2014", 2010},
		{"N/A", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, leadingYear(tt.in), "leadingYear(%q)", tt.in)
	}
}

func TestAddMovie_RepoFailurePropagates(t *testing.T) {
	f := newLibraryFixture()
	alice := f.users.addUser("Alice")
	f.fetcher.record = &omdb.Record{Title: "Inception"}
	f.movies.err = errors.New("connection lost")

	_, err := f.svc.AddMovie(context.Background(), alice.ID, "Inception", "")
	assert.Error(t, err)
}
