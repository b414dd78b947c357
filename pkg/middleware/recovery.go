package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorRenderer renders a user-facing error page with the given status and
// message. The handlers package supplies an implementation backed by its
// templates; the fallback used when nil is a plain http.Error.
type ErrorRenderer func(w http.ResponseWriter, r *http.Request, status int, message string)

// Recovery returns middleware that converts panics into a rendered 500 page
// so a single bad request cannot take the server down.
func Recovery(logger *zap.Logger, render ErrorRenderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				logger.Error("Panic while serving request",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Stack("stack"),
				)
				if render != nil {
					render(w, r, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.")
					return
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
