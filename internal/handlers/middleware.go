package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"gitlab.com/fcv-2025.net/submission-judge/internal/core/ports/primary"
	"gitlab.com/fcv-2025.net/submission-judge/internal/handlers/response"
)

type contextKey string

const userIDKey contextKey = "userId"

type MiddlewareProvider struct {
	verifier   primary.TokenVerifier
	cookieName string
	logger     primary.Logger
}

func New(verifier primary.TokenVerifier, cookieName string, logger primary.Logger) *MiddlewareProvider {
	return &MiddlewareProvider{
		verifier:   verifier,
		cookieName: cookieName,
		logger:     logger,
	}
}

// JWTMiddleware accepts a bearer header or the session cookie and stores the caller id in the request context
func (m *MiddlewareProvider) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := m.extractToken(r)
		if tokenString == "" {
			response.WriteError(w, response.ErrorMessage{Message: "Authorization header missing", StatusCode: http.StatusUnauthorized})
			return
		}

		payload, err := m.verifier.VerifyTokenHMAC(r.Context(), tokenString)
		if err != nil {
			m.logger.Debug("Rejected token", "path", r.URL.Path, "error", err)
			response.WriteError(w, response.ErrorMessage{Message: "Invalid token", StatusCode: http.StatusUnauthorized})
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), payload.UserID)))
	})
}

func (m *MiddlewareProvider) extractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		// Extract token from "Bearer <token>"
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if m.cookieName == "" {
		return ""
	}
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// AccessLog logs one line per request
func (m *MiddlewareProvider) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		m.logger.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the id set by JWTMiddleware, or "" on unauthenticated routes
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
