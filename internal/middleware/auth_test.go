package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/skillswap/skillswap-api/internal/middleware"
	"github.com/skillswap/skillswap-api/internal/pkg/jwt"
)

func TestAuthPutsUserIDOnContext(t *testing.T) {
	jwtService := jwt.NewService("test-secret")
	userID := uuid.New()

	token, err := jwtService.SignAccessToken(userID, time.Minute)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	var got uuid.UUID
	handler := middleware.Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = middleware.GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != userID {
		t.Fatalf("expected user id %s on context, got %s", userID, got)
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	jwtService := jwt.NewService("test-secret")

	token, err := jwtService.SignAccessToken(uuid.New(), -time.Minute)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	rec := serveAuth(t, jwtService, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	token, err := jwt.NewService("other-secret").SignAccessToken(uuid.New(), time.Minute)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	rec := serveAuth(t, jwt.NewService("test-secret"), "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong secret, got %d", rec.Code)
	}
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	jwtService := jwt.NewService("test-secret")

	for _, header := range []string{"", "Bearer", "Basic abc", "garbage"} {
		rec := serveAuth(t, jwtService, header)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func serveAuth(t *testing.T, jwtService *jwt.Service, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	handler := middleware.Auth(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
