package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/latefee/latefee/pkg/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// pages lists the views parsed at startup. Each page file defines the
// "title" and "content" blocks rendered inside the base layout.
var pages = []string{
	"index",
	"users",
	"user_movies",
	"add_user",
	"add_movie",
	"update_movie",
	"eye_of_the_duck",
	"error",
}

// ViewData is the single view model shared by all templates. Pages read
// only the fields their view needs.
type ViewData struct {
	Flashes     []string
	Users       []*models.User
	User        *models.User
	Movies      []*models.Movie
	Movie       *models.Movie
	Explanation string
	Message     string
}

// Renderer executes the embedded HTML templates. Parse failures surface at
// construction so a broken view is caught at startup, not mid-request.
type Renderer struct {
	templates map[string]*template.Template
	logger    *zap.Logger
}

// NewRenderer parses every page against the base layout.
func NewRenderer(logger *zap.Logger) (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.ParseFS(templatesFS, "templates/base.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %q: %w", page, err)
		}
		templates[page] = t
	}

	return &Renderer{
		templates: templates,
		logger:    logger.Named("render"),
	}, nil
}

// Render writes the page with the given status. The template executes into
// a buffer first so a mid-render failure never leaks a half-written page.
func (rd *Renderer) Render(w http.ResponseWriter, status int, page string, data *ViewData) {
	t, ok := rd.templates[page]
	if !ok {
		rd.logger.Error("Unknown template requested", zap.String("page", page))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = &ViewData{}
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		rd.logger.Error("Failed to render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// ErrorPage renders the generic error view. Its signature matches
// middleware.ErrorRenderer so the recovery and error-page middleware can
// share it.
func (rd *Renderer) ErrorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	rd.Render(w, status, "error", &ViewData{Message: message})
}
