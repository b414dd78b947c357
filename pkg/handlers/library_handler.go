package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/latefee/latefee/pkg/apperrors"
	"github.com/latefee/latefee/pkg/omdb"
	"github.com/latefee/latefee/pkg/services"
)

// LibraryHandler serves the user and movie pages.
type LibraryHandler struct {
	library services.LibraryService
	render  *Renderer
	flash   *FlashStore
	logger  *zap.Logger
}

// NewLibraryHandler creates a new library handler.
func NewLibraryHandler(library services.LibraryService, render *Renderer, flash *FlashStore, logger *zap.Logger) *LibraryHandler {
	return &LibraryHandler{
		library: library,
		render:  render,
		flash:   flash,
		logger:  logger,
	}
}

// RegisterRoutes registers the library handler's routes on the given mux.
func (h *LibraryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /users", h.ListUsers)
	mux.HandleFunc("GET /users/{id}", h.UserMovies)
	mux.HandleFunc("GET /add_user", h.AddUserForm)
	mux.HandleFunc("POST /add_user", h.AddUser)
	mux.HandleFunc("GET /users/{id}/add_movie", h.AddMovieForm)
	mux.HandleFunc("POST /users/{id}/add_movie", h.AddMovie)
	mux.HandleFunc("GET /users/{id}/update_movie/{movie_id}", h.UpdateMovieForm)
	mux.HandleFunc("POST /users/{id}/update_movie/{movie_id}", h.UpdateMovie)
	mux.HandleFunc("POST /users/{id}/delete_movie/{movie_id}", h.DeleteMovie)
}

// Index handles GET /.
func (h *LibraryHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "index", &ViewData{
		Flashes: h.flash.Pop(w, r),
	})
}

// ListUsers handles GET /users.
func (h *LibraryHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.library.ListUsers(r.Context())
	if err != nil {
		h.serverError(w, r, "list users", err)
		return
	}

	h.render.Render(w, http.StatusOK, "users", &ViewData{
		Flashes: h.flash.Pop(w, r),
		Users:   users,
	})
}

// UserMovies handles GET /users/{id}.
func (h *LibraryHandler) UserMovies(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.library.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.flash.Add(w, r, "User not found")
			http.Redirect(w, r, "/users", http.StatusFound)
			return
		}
		h.serverError(w, r, "load user", err)
		return
	}

	movies, err := h.library.ListMovies(r.Context(), userID)
	if err != nil {
		h.serverError(w, r, "list movies", err)
		return
	}

	h.render.Render(w, http.StatusOK, "user_movies", &ViewData{
		Flashes: h.flash.Pop(w, r),
		User:    user,
		Movies:  movies,
	})
}

// AddUserForm handles GET /add_user.
func (h *LibraryHandler) AddUserForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, http.StatusOK, "add_user", &ViewData{
		Flashes: h.flash.Pop(w, r),
	})
}

// AddUser handles POST /add_user.
func (h *LibraryHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		h.flash.Add(w, r, "User name is required.")
		http.Redirect(w, r, "/add_user", http.StatusFound)
		return
	}

	user, err := h.library.CreateUser(r.Context(), name)
	if err != nil {
		if apperrors.IsValidation(err) {
			h.flash.Add(w, r, "User name is required.")
			http.Redirect(w, r, "/add_user", http.StatusFound)
			return
		}
		h.serverError(w, r, "create user", err)
		return
	}

	h.flash.Add(w, r, fmt.Sprintf("User '%s' added successfully!", user.Name))
	http.Redirect(w, r, "/users", http.StatusFound)
}

// AddMovieForm handles GET /users/{id}/add_movie.
func (h *LibraryHandler) AddMovieForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.library.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.flash.Add(w, r, "User not found")
			http.Redirect(w, r, "/users", http.StatusFound)
			return
		}
		h.serverError(w, r, "load user", err)
		return
	}

	h.render.Render(w, http.StatusOK, "add_movie", &ViewData{
		Flashes: h.flash.Pop(w, r),
		User:    user,
	})
}

// AddMovie handles POST /users/{id}/add_movie.
func (h *LibraryHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	userPage := fmt.Sprintf("/users/%d", userID)
	formPage := userPage + "/add_movie"

	title := strings.TrimSpace(r.FormValue("name"))
	year := strings.TrimSpace(r.FormValue("year"))
	if title == "" {
		h.flash.Add(w, r, "Movie title is required.")
		http.Redirect(w, r, formPage, http.StatusFound)
		return
	}

	movie, err := h.library.AddMovie(r.Context(), userID, title, year)
	if err != nil {
		var lookupErr *omdb.Error
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			h.flash.Add(w, r, "User not found")
			http.Redirect(w, r, "/users", http.StatusFound)
		case errors.Is(err, apperrors.ErrDuplicateMovie):
			h.flash.Add(w, r, fmt.Sprintf("Movie '%s' is already in your collection!", title))
			http.Redirect(w, r, userPage, http.StatusFound)
		case errors.As(err, &lookupErr):
			h.logger.Warn("Metadata lookup failed",
				zap.String("title", title),
				zap.Error(err))
			h.flash.Add(w, r, fmt.Sprintf("Error: %s", lookupErr.Error()))
			http.Redirect(w, r, formPage, http.StatusFound)
		case apperrors.IsValidation(err):
			h.flash.Add(w, r, "Movie title is required.")
			http.Redirect(w, r, formPage, http.StatusFound)
		default:
			h.serverError(w, r, "add movie", err)
		}
		return
	}

	h.flash.Add(w, r, fmt.Sprintf("Movie '%s' added successfully!", movie.Name))
	http.Redirect(w, r, userPage, http.StatusFound)
}

// UpdateMovieForm handles GET /users/{id}/update_movie/{movie_id}.
func (h *LibraryHandler) UpdateMovieForm(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	movieID, ok := h.pathID(w, r, "movie_id")
	if !ok {
		return
	}

	movie, err := h.library.GetMovie(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.flash.Add(w, r, "Movie not found.")
			http.Redirect(w, r, fmt.Sprintf("/users/%d", userID), http.StatusFound)
			return
		}
		h.serverError(w, r, "load movie", err)
		return
	}

	h.render.Render(w, http.StatusOK, "update_movie", &ViewData{
		Flashes: h.flash.Pop(w, r),
		Movie:   movie,
	})
}

// UpdateMovie handles POST /users/{id}/update_movie/{movie_id}.
func (h *LibraryHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	movieID, ok := h.pathID(w, r, "movie_id")
	if !ok {
		return
	}
	userPage := fmt.Sprintf("/users/%d", userID)

	movie, err := h.library.GetMovie(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.flash.Add(w, r, "Movie not found.")
			http.Redirect(w, r, userPage, http.StatusFound)
			return
		}
		h.serverError(w, r, "load movie", err)
		return
	}

	input := services.UpdateMovieInput{
		Name:     r.FormValue("name"),
		Director: r.FormValue("director"),
		Year:     r.FormValue("year"),
		Rating:   r.FormValue("rating"),
	}

	if _, err := h.library.UpdateMovie(r.Context(), movieID, input); err != nil {
		var ve *apperrors.ValidationError
		if errors.As(err, &ve) {
			h.flash.Add(w, r, ve.Message)
			http.Redirect(w, r, userPage, http.StatusFound)
			return
		}
		h.serverError(w, r, "update movie", err)
		return
	}

	name := movie.Name
	if updated := strings.TrimSpace(input.Name); updated != "" {
		name = updated
	}
	h.flash.Add(w, r, fmt.Sprintf("Movie '%s' updated successfully!", name))
	http.Redirect(w, r, userPage, http.StatusFound)
}

// DeleteMovie handles POST /users/{id}/delete_movie/{movie_id}.
func (h *LibraryHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	movieID, ok := h.pathID(w, r, "movie_id")
	if !ok {
		return
	}

	deleted, err := h.library.DeleteMovie(r.Context(), movieID)
	if err != nil {
		h.serverError(w, r, "delete movie", err)
		return
	}

	if deleted {
		h.flash.Add(w, r, fmt.Sprintf("MovieID '%d' deleted successfully!", movieID))
	} else {
		h.flash.Add(w, r, "Movie not found.")
	}
	http.Redirect(w, r, fmt.Sprintf("/users/%d", userID), http.StatusFound)
}

// pathID parses a numeric path segment, rendering the 404 page when the
// segment is not a number.
func (h *LibraryHandler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		h.render.ErrorPage(w, r, http.StatusNotFound,
			"404 Not Found: The requested resource does not exist.")
		return 0, false
	}
	return id, true
}

func (h *LibraryHandler) serverError(w http.ResponseWriter, r *http.Request, action string, err error) {
	h.logger.Error("Request failed",
		zap.String("action", action),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	h.render.ErrorPage(w, r, http.StatusInternalServerError,
		"An unexpected error occurred. Please try again later.")
}
