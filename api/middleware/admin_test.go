package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ravetagbd/ravetag-backend/pkg/auth"
	pkgerrors "github.com/ravetagbd/ravetag-backend/pkg/errors"
)

func adminHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	authenticator := auth.NewStaticTokenAuthenticator("super-secret")
	return AdminAuth(authenticator, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		if !IsAdminFromContext(r.Context()) {
			t.Fatalf("expected admin flag in context")
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAdminAuthAcceptsHeaderToken(t *testing.T) {
	var called bool
	handler := adminHandler(t, &called)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin-orders", nil)
	req.Header.Set("X-Admin-Token", "super-secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !called {
		t.Fatalf("handler did not run")
	}
}

func TestAdminAuthAcceptsQueryToken(t *testing.T) {
	var called bool
	handler := adminHandler(t, &called)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin-orders?token=super-secret", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !called {
		t.Fatalf("handler did not run")
	}
}

func TestAdminAuthRejectsBadOrMissingToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "wrong token", token: "guess"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := adminHandler(t, &called)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin-orders", nil)
			if tt.token != "" {
				req.Header.Set("X-Admin-Token", tt.token)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401 got %d", rec.Code)
			}
			if called {
				t.Fatalf("handler must not run")
			}

			var payload struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if payload.Error.Code != string(pkgerrors.CodeUnauthorized) {
				t.Fatalf("unexpected code: %s", payload.Error.Code)
			}
		})
	}
}
