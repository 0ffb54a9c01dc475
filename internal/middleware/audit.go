package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/crucial707/scim-provision/internal/repo"
)

// auditWriter wraps http.ResponseWriter to capture status and a copy of the
// response body for the audit record.
type auditWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (w *auditWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *auditWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Audit records one request_log row per HTTP exchange: lowercased method,
// path, full request and response bodies, and the response status. It wraps
// the whole handler chain for the API routes, so every outcome — 403, 404,
// 2xx — is captured exactly once. The write happens synchronously after the
// response body is computed; a failed write is logged and the response is
// delivered regardless.
func Audit(auditRepo *repo.AuditRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var reqBody []byte
			if r.Body != nil {
				reqBody, _ = io.ReadAll(r.Body)
				r.Body.Close()
				r.Body = io.NopCloser(bytes.NewReader(reqBody))
			}

			wrap := &auditWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(wrap, r)

			err := auditRepo.Record(r.Context(),
				strings.ToLower(r.Method),
				r.URL.Path,
				string(reqBody),
				wrap.body.String(),
				wrap.status,
			)
			if err != nil {
				slog.Error("audit: record exchange",
					"method", r.Method,
					"path", r.URL.Path,
					"error", err)
			}
		})
	}
}
