package web

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// responseRecorder captures the status code and bytes written so the
// middleware can log them after the handler returns.
type responseRecorder struct {
	http.ResponseWriter
	code  int
	bytes int
}

var _ http.ResponseWriter = (*responseRecorder)(nil)

var _ http.Flusher = (*responseRecorder)(nil)

func (r *responseRecorder) Write(p []byte) (int, error) {
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// WriteHeader is only called on non-200 paths, so code defaults to 200.
func (r *responseRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// Unwrap returns the underlying http.ResponseWriter.
func (r *responseRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Flush implements http.Flusher.
func (r *responseRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// NewLoggingMiddleware logs one line per request once the response is
// written.
func NewLoggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{code: http.StatusOK, ResponseWriter: w}
		next.ServeHTTP(rec, r)
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.code,
			"bytes", humanize.Bytes(uint64(rec.bytes)), //nolint:gosec
			"time", time.Since(start),
			"addr", r.RemoteAddr)
	})
}
