package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicHandler writes the response for a request whose handler panicked
type PanicHandler func(w http.ResponseWriter, r *http.Request, err any)

// Recovery creates panic recovery middleware that logs the stack and
// delegates the response to handler
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				err := recover()
				if err == nil {
					return
				}
				if err == http.ErrAbortHandler {
					panic(err)
				}
				logger.Error("panic recovered",
					slog.String("error", fmt.Sprint(err)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)
				Annotate(r.Context(), "panic", fmt.Sprint(err))
				handler(w, r, err)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
