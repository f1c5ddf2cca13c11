package middleware

import (
	"net/http"
	"runtime/debug"

	httputil "astro/pkg/http"
	"astro/pkg/logger"
)

func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					log.Error("Panic recovered",
						"request_id", RequestIDFromContext(r.Context()),
						"error", err,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					writeInternalError(w, log)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func writeInternalError(w http.ResponseWriter, log *logger.Logger) {
	if err := httputil.WriteMessage(w, http.StatusInternalServerError, "Internal server error"); err != nil {
		log.Error("failed to write error response", "error", err)
	}
}
