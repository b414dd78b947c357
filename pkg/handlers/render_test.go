package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRenderer_ParsesAllPages(t *testing.T) {
	render, err := NewRenderer(zap.NewNop())
	require.NoError(t, err)

	for _, page := range pages {
		assert.Contains(t, render.templates, page)
	}
}

func TestRenderer_ErrorPage(t *testing.T) {
	render, err := NewRenderer(zap.NewNop())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	render.ErrorPage(rec, req, http.StatusNotFound, "404 Not Found: The requested resource does not exist.")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "404 Not Found")
}

func TestRenderer_UnknownPage(t *testing.T) {
	render, err := NewRenderer(zap.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	render.Render(rec, http.StatusOK, "no_such_page", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRenderer_EscapesUserContent(t *testing.T) {
	render, err := NewRenderer(zap.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	render.Render(rec, http.StatusOK, "error", &ViewData{Message: "<script>alert(1)</script>"})

	assert.NotContains(t, rec.Body.String(), "<script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}
