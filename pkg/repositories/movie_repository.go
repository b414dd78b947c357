package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/latefee/latefee/pkg/apperrors"
	"github.com/latefee/latefee/pkg/database"
	"github.com/latefee/latefee/pkg/models"
)

// MovieRepository defines the interface for movie data access. It performs
// no business-rule enforcement: the duplicate check is a separate operation
// callers run before Create.
type MovieRepository interface {
	Create(ctx context.Context, movie *models.Movie) error
	ListByUser(ctx context.Context, userID int64) ([]*models.Movie, error)
	GetByID(ctx context.Context, id int64) (*models.Movie, error)
	// ExistsByName reports whether the user already owns a movie with the
	// same name, compared case-insensitively.
	ExistsByName(ctx context.Context, userID int64, name string) (bool, error)
	// Update overwrites only the non-nil fields of the patch. Returns false
	// when no movie with the given id exists.
	Update(ctx context.Context, id int64, patch models.MovieUpdate) (bool, error)
	// Delete returns false when no movie with the given id exists.
	Delete(ctx context.Context, id int64) (bool, error)
}

// movieRepository implements MovieRepository using PostgreSQL.
type movieRepository struct {
	db *database.DB
}

// NewMovieRepository creates a new movie repository.
func NewMovieRepository(db *database.DB) MovieRepository {
	return &movieRepository{db: db}
}

// Create inserts a movie as given and fills in its generated id.
func (r *movieRepository) Create(ctx context.Context, movie *models.Movie) error {
	query := `
		INSERT INTO movies (name, director, year, rating, poster, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRow(ctx, query,
		movie.Name,
		movie.Director,
		movie.Year,
		movie.Rating,
		movie.Poster,
		movie.UserID,
	).Scan(&movie.ID)
	if err != nil {
		return fmt.Errorf("failed to create movie: %w", err)
	}

	return nil
}

// ListByUser retrieves all movies owned by userID in insertion order.
func (r *movieRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Movie, error) {
	query := `
		SELECT id, name, director, year, rating, poster, user_id
		FROM movies
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()

	var movies []*models.Movie
	for rows.Next() {
		movie := &models.Movie{}
		if err := rows.Scan(
			&movie.ID,
			&movie.Name,
			&movie.Director,
			&movie.Year,
			&movie.Rating,
			&movie.Poster,
			&movie.UserID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read movies: %w", err)
	}

	return movies, nil
}

// GetByID retrieves a movie by id, returning apperrors.ErrNotFound when the
// movie does not exist.
func (r *movieRepository) GetByID(ctx context.Context, id int64) (*models.Movie, error) {
	query := `
		SELECT id, name, director, year, rating, poster, user_id
		FROM movies
		WHERE id = $1`

	movie := &models.Movie{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Name,
		&movie.Director,
		&movie.Year,
		&movie.Rating,
		&movie.Poster,
		&movie.UserID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}

	return movie, nil
}

// ExistsByName checks for a movie with the same normalized name under the
// same user.
func (r *movieRepository) ExistsByName(ctx context.Context, userID int64, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM movies WHERE user_id = $1 AND lower(name) = lower($2))`

	var exists bool
	if err := r.db.QueryRow(ctx, query, userID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for duplicate movie: %w", err)
	}

	return exists, nil
}

// Update applies the patch in a single statement: nil fields keep their
// stored values via COALESCE, so the partial update is atomic. An empty
// patch skips the write and only reports whether the movie exists.
func (r *movieRepository) Update(ctx context.Context, id int64, patch models.MovieUpdate) (bool, error) {
	if patch.IsEmpty() {
		query := `SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1)`
		var exists bool
		if err := r.db.QueryRow(ctx, query, id).Scan(&exists); err != nil {
			return false, fmt.Errorf("failed to check movie: %w", err)
		}
		return exists, nil
	}

	query := `
		UPDATE movies
		SET name     = COALESCE($2, name),
		    director = COALESCE($3, director),
		    year     = COALESCE($4, year),
		    rating   = COALESCE($5, rating)
		WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, patch.Name, patch.Director, patch.Year, patch.Rating)
	if err != nil {
		return false, fmt.Errorf("failed to update movie: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete removes a movie by id.
func (r *movieRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM movies WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete movie: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
