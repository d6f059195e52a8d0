package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// Recovery перехватывает panic, логирует стек вызовов и возвращает 500 в общем конверте.
// http.ErrAbortHandler пробрасывается дальше, как того ожидает net/http.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.Any("error", rec),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("stack", string(debug.Stack())),
				)

				// детали клиенту не раскрываем
				writeError(w, "internal server error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
