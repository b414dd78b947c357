package services

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/latefee/latefee/pkg/apperrors"
	"github.com/latefee/latefee/pkg/models"
	"github.com/latefee/latefee/pkg/omdb"
	"github.com/latefee/latefee/pkg/repositories"
)

// MetadataFetcher is the slice of the lookup client the library needs.
// Declared here so tests can substitute a mock without a real HTTP client.
type MetadataFetcher interface {
	Fetch(ctx context.Context, title, year string) (*omdb.Record, error)
}

// UpdateMovieInput carries raw form fields for a partial movie update.
// Empty fields leave the stored values untouched.
type UpdateMovieInput struct {
	Name     string
	Director string
	Year     string
	Rating   string
}

// LibraryService orchestrates users and their movie collections.
type LibraryService interface {
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	// CreateUser registers a new user, rejecting empty names with a
	// ValidationError.
	CreateUser(ctx context.Context, name string) (*models.User, error)

	ListMovies(ctx context.Context, userID int64) ([]*models.Movie, error)
	GetMovie(ctx context.Context, id int64) (*models.Movie, error)
	// AddMovie fetches canonical metadata for the title and adds the movie
	// to the user's collection. Returns apperrors.ErrDuplicateMovie when the
	// user already owns a movie with the same name. The duplicate check is
	// read-then-write, not atomic: concurrent adds of the same title can
	// race, which is accepted at this system's scale.
	AddMovie(ctx context.Context, userID int64, title, year string) (*models.Movie, error)
	// UpdateMovie overwrites only the non-empty input fields. Numeric fields
	// that fail to parse yield a ValidationError naming the field without
	// touching the stored movie. Returns false when the id is unknown.
	UpdateMovie(ctx context.Context, id int64, input UpdateMovieInput) (bool, error)
	// DeleteMovie returns false when the id is unknown.
	DeleteMovie(ctx context.Context, id int64) (bool, error)
}

type libraryService struct {
	users    repositories.UserRepository
	movies   repositories.MovieRepository
	metadata MetadataFetcher
	logger   *zap.Logger
}

// NewLibraryService creates the library service.
func NewLibraryService(
	users repositories.UserRepository,
	movies repositories.MovieRepository,
	metadata MetadataFetcher,
	logger *zap.Logger,
) LibraryService {
	return &libraryService{
		users:    users,
		movies:   movies,
		metadata: metadata,
		logger:   logger.Named("library"),
	}
}

func (s *libraryService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

func (s *libraryService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *libraryService) CreateUser(ctx context.Context, name string) (*models.User, error) {
	user := &models.User{Name: strings.TrimSpace(name)}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("User added", zap.String("name", user.Name), zap.Int64("user_id", user.ID))
	return user, nil
}

func (s *libraryService) ListMovies(ctx context.Context, userID int64) ([]*models.Movie, error) {
	return s.movies.ListByUser(ctx, userID)
}

func (s *libraryService) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	return s.movies.GetByID(ctx, id)
}

func (s *libraryService) AddMovie(ctx context.Context, userID int64, title, year string) (*models.Movie, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	record, err := s.metadata.Fetch(ctx, title, year)
	if err != nil {
		return nil, err
	}

	exists, err := s.movies.ExistsByName(ctx, userID, record.Title)
	if err != nil {
		return nil, err
	}
	if exists {
		s.logger.Info("Duplicate movie",
			zap.String("name", record.Title),
			zap.Int64("user_id", userID))
		return nil, apperrors.ErrDuplicateMovie
	}

	movie := movieFromRecord(record, userID)
	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.logger.Info("Movie added",
		zap.String("name", movie.Name),
		zap.Int64("user_id", userID))
	return movie, nil
}

func (s *libraryService) UpdateMovie(ctx context.Context, id int64, input UpdateMovieInput) (bool, error) {
	var patch models.MovieUpdate

	if name := strings.TrimSpace(input.Name); name != "" {
		patch.Name = &name
	}
	if director := strings.TrimSpace(input.Director); director != "" {
		patch.Director = &director
	}
	if yearStr := strings.TrimSpace(input.Year); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return false, apperrors.NewValidationError("year", "Year must be a number.")
		}
		patch.Year = &year
	}
	if ratingStr := strings.TrimSpace(input.Rating); ratingStr != "" {
		rating, err := strconv.ParseFloat(ratingStr, 64)
		if err != nil {
			return false, apperrors.NewValidationError("rating", "Rating must be a number.")
		}
		patch.Rating = &rating
	}

	updated, err := s.movies.Update(ctx, id, patch)
	if err != nil {
		return false, err
	}
	if updated {
		s.logger.Info("Movie updated", zap.Int64("movie_id", id))
	}
	return updated, nil
}

func (s *libraryService) DeleteMovie(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.movies.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.logger.Info("Movie deleted", zap.Int64("movie_id", id))
	} else {
		s.logger.Warn("Tried to delete non-existent movie", zap.Int64("movie_id", id))
	}
	return deleted, nil
}

// movieFromRecord maps a lookup record onto a movie, applying the documented
// defaults for fields the service omitted. OMDb marks absent fields with the
// literal "N/A".
func movieFromRecord(record *omdb.Record, userID int64) *models.Movie {
	movie := &models.Movie{
		Name:     record.Title,
		Director: models.UnknownDirector,
		Year:     models.UnknownYear,
		Rating:   models.UnknownRating,
		UserID:   userID,
	}
	if movie.Name == "" {
		movie.Name = "Unknown Title"
	}
	if record.Director != "" && record.Director != "N/A" {
		movie.Director = record.Director
	}
	if year := leadingYear(record.Year); year != 0 {
		movie.Year = year
	}
	if rating, err := strconv.ParseFloat(record.Rating, 64); err == nil {
		movie.Rating = rating
	}
	if record.Poster != "N/A" {
		movie.Poster = record.Poster
	}
	return movie
}

// leadingYear extracts the year from strings like "2010" or series ranges
// like "2010–2014", returning 0 when no leading digits are present.
func leadingYear(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	year, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return year
}
