package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/latefee/latefee/pkg/apperrors"
	"github.com/latefee/latefee/pkg/services"
)

// NarrativeHandler serves the Eye of the Duck page.
type NarrativeHandler struct {
	library   services.LibraryService
	narrative services.NarrativeService
	render    *Renderer
	flash     *FlashStore
	logger    *zap.Logger
}

// NewNarrativeHandler creates a new narrative handler.
func NewNarrativeHandler(
	library services.LibraryService,
	narrative services.NarrativeService,
	render *Renderer,
	flash *FlashStore,
	logger *zap.Logger,
) *NarrativeHandler {
	return &NarrativeHandler{
		library:   library,
		narrative: narrative,
		render:    render,
		flash:     flash,
		logger:    logger,
	}
}

// RegisterRoutes registers the narrative handler's routes on the given mux.
func (h *NarrativeHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /users/{id}/movies/{movie_id}/eye_of_the_duck", h.EyeOfTheDuck)
}

// EyeOfTheDuck handles GET /users/{id}/movies/{movie_id}/eye_of_the_duck.
// The narrative service degrades to an apology message on generation
// failure, so this page always renders once the movie is found.
func (h *NarrativeHandler) EyeOfTheDuck(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.render.ErrorPage(w, r, http.StatusNotFound,
			"404 Not Found: The requested resource does not exist.")
		return
	}
	movieID, err := strconv.ParseInt(r.PathValue("movie_id"), 10, 64)
	if err != nil {
		h.render.ErrorPage(w, r, http.StatusNotFound,
			"404 Not Found: The requested resource does not exist.")
		return
	}

	movie, err := h.library.GetMovie(r.Context(), movieID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.flash.Add(w, r, "Movie not found.")
			http.Redirect(w, r, fmt.Sprintf("/users/%d", userID), http.StatusFound)
			return
		}
		h.logger.Error("Request failed",
			zap.String("action", "load movie"),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		h.render.ErrorPage(w, r, http.StatusInternalServerError,
			"An unexpected error occurred. Please try again later.")
		return
	}

	explanation := h.narrative.EyeOfTheDuck(r.Context(), movie)

	h.render.Render(w, http.StatusOK, "eye_of_the_duck", &ViewData{
		Flashes:     h.flash.Pop(w, r),
		Movie:       movie,
		Explanation: explanation,
	})
}
