package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gitlab.com/fcv-2025.net/submission-judge/internal/adapter/logging"
	"gitlab.com/fcv-2025.net/submission-judge/internal/domain"
)

type fakeVerifier struct {
	tokens map[string]string
	seen   []string
}

func (f *fakeVerifier) VerifyTokenHMAC(_ context.Context, token string) (domain.AuthPayload, error) {
	f.seen = append(f.seen, token)
	userID, ok := f.tokens[token]
	if !ok {
		return domain.AuthPayload{}, errors.New("invalid token")
	}
	return domain.AuthPayload{UserID: userID}, nil
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(UserIDFromContext(r.Context())))
	})
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		code   int
		user   string
	}{
		{name: "bearer", header: "Bearer good", code: http.StatusOK, user: "user-1"},
		{name: "cookie", cookie: "good", code: http.StatusOK, user: "user-1"},
		{name: "header wins over cookie", header: "Bearer bad", cookie: "good", code: http.StatusUnauthorized},
		{name: "missing", code: http.StatusUnauthorized},
		{name: "invalid", header: "Bearer bad", code: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verifier := &fakeVerifier{tokens: map[string]string{"good": "user-1"}}
			mw := New(verifier, "token", logging.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/submission/history/p1", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "token", Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			mw.JWTMiddleware(echoUser()).ServeHTTP(rec, req)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if tc.code == http.StatusOK && rec.Body.String() != tc.user {
				t.Fatalf("expected user %q in context, got %q", tc.user, rec.Body.String())
			}
		})
	}
}

func TestAccessLogKeepsStatus(t *testing.T) {
	mw := New(&fakeVerifier{}, "token", logging.NewNop())
	h := mw.AccessLog(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler("submission-judge").Health(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
