package middleware

import (
	"context"
	"net/http"
	"runtime/debug"
	"sync"
	"time"

	apperrors "astro/pkg/errors"
	httputil "astro/pkg/http"
	"astro/pkg/logger"
)

// timeoutWriter buffers headers in its own map and drops writes once the
// deadline response has been sent. The real header map is only touched
// under mu so the 503 writer never races the handler.
type timeoutWriter struct {
	w        http.ResponseWriter
	h        http.Header
	mu       sync.Mutex
	timedOut bool
	written  bool
}

func newTimeoutWriter(w http.ResponseWriter) *timeoutWriter {
	return &timeoutWriter{w: w, h: w.Header().Clone()}
}

func (tw *timeoutWriter) Header() http.Header {
	return tw.h
}

// flushHeader copies buffered headers to the real writer. Callers hold mu.
func (tw *timeoutWriter) flushHeader() {
	dst := tw.w.Header()
	for k, vv := range tw.h {
		dst[k] = vv
	}
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut || tw.written {
		return
	}
	tw.written = true
	tw.flushHeader()
	tw.w.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.written {
		tw.written = true
		tw.flushHeader()
	}
	return tw.w.Write(b)
}

// RequestTimeout bounds the handler with a context deadline and answers
// 503 when the handler has not started writing by then. Panics in the
// handler goroutine are recovered here since Recovery cannot see them.
func RequestTimeout(timeout time.Duration, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			r = r.WithContext(ctx)

			tw := newTimeoutWriter(w)

			done := make(chan struct{})
			panicked := make(chan any, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						log.Error("Panic recovered",
							"request_id", RequestIDFromContext(r.Context()),
							"error", p,
							"method", r.Method,
							"path", r.URL.Path,
							"stack", string(debug.Stack()),
						)
						panicked <- p
						return
					}
					close(done)
				}()
				next.ServeHTTP(tw, r)
			}()

			select {
			case <-done:
				tw.mu.Lock()
				defer tw.mu.Unlock()
				if !tw.written {
					tw.written = true
					tw.flushHeader()
				}
			case <-panicked:
				tw.mu.Lock()
				defer tw.mu.Unlock()
				if !tw.written {
					tw.written = true
					writeInternalError(w, log)
				}
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if !tw.written {
					tw.written = true
					log.Warn("Request timed out",
						"request_id", RequestIDFromContext(r.Context()),
						"method", r.Method,
						"path", r.URL.Path,
						"timeout", timeout.String(),
					)
					if err := httputil.WriteError(w, apperrors.Timeout("Request timeout")); err != nil {
						log.Error("failed to write error response", "error", err)
					}
				}
			}
		})
	}
}
