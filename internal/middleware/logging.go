package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

// ResponseWriter wraps http.ResponseWriter to capture the status code and size
type ResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

// WriteHeader captures the status code
func (rw *ResponseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

// Write captures the response size
func (rw *ResponseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

// Status returns the captured status code
func (rw *ResponseWriter) Status() int {
	return rw.status
}

// Flush implements http.Flusher for SSE support
func (rw *ResponseWriter) Flush() {
	if flusher, ok := rw.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

type annotationsKey struct{}

type annotations struct {
	mu    sync.Mutex
	attrs []slog.Attr
}

// Annotate adds an attribute to the request log line written by Logging.
// It does nothing outside a logged request.
func Annotate(ctx context.Context, key, value string) {
	a, ok := ctx.Value(annotationsKey{}).(*annotations)
	if !ok {
		return
	}
	a.mu.Lock()
	a.attrs = append(a.attrs, slog.String(key, value))
	a.mu.Unlock()
}

// Logging creates middleware that logs one line per HTTP request.
// Server errors are logged at warn level.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			notes := &annotations{}
			wrapped := &ResponseWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(wrapped, r.WithContext(context.WithValue(r.Context(), annotationsKey{}, notes)))

			level := slog.LevelInfo
			if wrapped.status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", wrapped.status),
				slog.Int("size", wrapped.size),
				slog.Duration("duration", time.Since(start)),
			}
			notes.mu.Lock()
			attrs = append(attrs, notes.attrs...)
			notes.mu.Unlock()

			logger.LogAttrs(r.Context(), level, "http request", attrs...)
		})
	}
}
