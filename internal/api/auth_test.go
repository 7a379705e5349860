package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"restecho/internal/config"
	"restecho/internal/logging"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	token, hash, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if !strings.HasPrefix(token, TokenPrefix) {
		t.Errorf("Expected token prefix %q, got %q", TokenPrefix, token)
	}
	if !VerifyToken(token, hash) {
		t.Error("Generated token should verify against its own hash")
	}
	if VerifyToken(token+"x", hash) {
		t.Error("Tampered token should not verify")
	}
}

func newAuthTestServer(t *testing.T) (*Server, string) {
	t.Helper()

	token, hash, err := GenerateToken()
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	cfg := config.DefaultConfig().Server
	cfg.Port = 0
	cfg.Auth = config.AuthConfig{Enabled: true, TokenHash: hash}

	return NewServer(cfg, logging.Discard()), token
}

func TestAuthMiddleware(t *testing.T) {
	server, token := newAuthTestServer(t)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"wrong token", "Bearer " + TokenPrefix + "deadbeef", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/data", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			server.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}

			// CORS headers reach auth failures too
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != corsAllowOrigin {
				t.Errorf("Expected CORS origin header, got %q", got)
			}
		})
	}
}

func TestAuthDisabledByDefault(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/data", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected open access with auth disabled, got %d", w.Code)
	}
}
