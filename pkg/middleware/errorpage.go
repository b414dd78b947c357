package middleware

import "net/http"

// ErrorPages returns middleware that replaces the mux's default plain-text
// 404 and 405 responses with the rendered error page. Handlers that write
// any other status pass through untouched.
func ErrorPages(render ErrorRenderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if render == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(&errorPageWriter{ResponseWriter: w, r: r, render: render}, r)
		})
	}
}

type errorPageWriter struct {
	http.ResponseWriter
	r             *http.Request
	render        ErrorRenderer
	headerWritten bool
	intercepted   bool
}

func (w *errorPageWriter) WriteHeader(code int) {
	if w.headerWritten {
		return
	}
	w.headerWritten = true

	switch code {
	case http.StatusNotFound:
		w.intercepted = true
		w.Header().Del("Content-Type")
		w.Header().Del("X-Content-Type-Options")
		w.render(w.ResponseWriter, w.r, code, "404 Not Found: The requested resource does not exist.")
	case http.StatusMethodNotAllowed:
		w.intercepted = true
		w.Header().Del("Content-Type")
		w.Header().Del("X-Content-Type-Options")
		w.render(w.ResponseWriter, w.r, code, "405 Method Not Allowed: That method is not allowed for this URL.")
	default:
		w.ResponseWriter.WriteHeader(code)
	}
}

// Write drops the default body once the response has been replaced with the
// rendered error page.
func (w *errorPageWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	if w.intercepted {
		return len(b), nil
	}
	return w.ResponseWriter.Write(b)
}
