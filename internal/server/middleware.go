package server

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alexmenard/e2ee-api/internal/identity"
	"github.com/alexmenard/e2ee-api/pkg/errors"
)

type ctxKey int

const principalKey ctxKey = 0

func principalFrom(ctx context.Context) *identity.Principal {
	p, _ := ctx.Value(principalKey).(*identity.Principal)
	return p
}

// withAuth resolves the bearer token to a principal before the handler runs.
// Missing, malformed, unknown and expired tokens all produce the same 401.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(w, errors.ErrInvalidSession)
			return
		}

		principal, err := s.identityUC.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, principal)
		next(w, r.WithContext(ctx))
	}
}

// withRateLimit applies the per-client-IP token bucket. Used on the
// unauthenticated surface where there is no principal to key on.
func (s *Server) withRateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientIP(r), time.Now()) {
			writeError(w, errors.Exhausted("too many requests"))
			return
		}
		next(w, r)
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// withMetrics records a counter and latency histogram per route.
func (s *Server) withMetrics(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.metrics.observe(route, r.Method, rec.status, time.Since(start).Seconds())
	}
}
