package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pharmalytics/nexus-go/internal/crypto"
)

const testSecret = "test-secret"

func protectedHandler(t *testing.T) http.Handler {
	t.Helper()
	return TokenAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := UserIDFromContext(r.Context())
		if !ok {
			t.Error("UserIDFromContext() missing after successful auth")
		}
		if userID != 42 {
			t.Errorf("UserIDFromContext() = %d, want 42", userID)
		}
		role, ok := RoleFromContext(r.Context())
		if !ok || role != "doctor" {
			t.Errorf("RoleFromContext() = %q/%v, want doctor", role, ok)
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestTokenAuthValid(t *testing.T) {
	token, err := crypto.GenerateToken(42, "doctor", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token "+token)
	rec := httptest.NewRecorder()

	protectedHandler(t).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestTokenAuthMissingHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	protectedHandler(t).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestTokenAuthBearerSchemeRejected(t *testing.T) {
	token, err := crypto.GenerateToken(42, "doctor", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	protectedHandler(t).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for Bearer scheme", rec.Code)
	}
}

func TestTokenAuthInvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token not-a-token")
	rec := httptest.NewRecorder()

	protectedHandler(t).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestTokenAuthWrongSecret(t *testing.T) {
	token, err := crypto.GenerateToken(42, "doctor", "other-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token "+token)
	rec := httptest.NewRecorder()

	protectedHandler(t).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
