package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/hoopsheet/internal/auth"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// contextKey is a custom type to avoid key collisions in context.
type contextKey string

const (
	dryRunKey contextKey = "dryRun"
	userKey   contextKey = "user"
	tokenKey  contextKey = "token"
)

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
// 'verbose' raises the level of a logger scoped to this request only; handlers
// reach it through log.FromContext.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.Path)
		logger := log.Default().With("method", r.Method, "url", r.URL.Path)
		if r.URL.Query().Get("verbose") == "true" {
			logger.SetLevel(log.DebugLevel)
		}
		ctx := log.WithContext(r.Context(), logger)

		// Handle 'dry_run' and add it to the request context.
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx = context.WithValue(ctx, dryRunKey, isDryRun)

		// Call the next handler with the modified context.
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// metricsMiddleware observes the duration of every request to route.
func (s *Server) metricsMiddleware(route string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			s.Metrics.ObserveRequestDuration(route, time.Since(start).Seconds())
		})
	}
}

// requireAuth resolves the Bearer token to a user and stores it in the
// request context. Requests without a valid session get 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		user, err := s.Auth.CurrentUser(r.Context(), token)
		if err != nil {
			log.FromContext(r.Context()).Debug("Rejected session", "error", err)
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, tokenKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requirePushAuth rejects push deliveries that fail the configured verifier.
func (s *Server) requirePushAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.pushVerifier.Verify(r); err != nil {
			log.Warn("Rejected push delivery", "error", err, "remote", r.RemoteAddr)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// isDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func isDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(dryRunKey).(bool)
	return ok && dryRun
}

// userFromContext returns the user set by requireAuth.
func userFromContext(r *http.Request) *auth.User {
	user, _ := r.Context().Value(userKey).(*auth.User)
	return user
}

// ownerID returns the id of the signed-in user; every owner route runs behind requireAuth.
func ownerID(r *http.Request) string {
	if user := userFromContext(r); user != nil {
		return user.ID
	}
	return ""
}

func tokenFromContext(r *http.Request) string {
	token, _ := r.Context().Value(tokenKey).(string)
	return token
}
