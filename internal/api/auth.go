package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	// TokenPrefix is the prefix for API tokens
	TokenPrefix = "re_sk_" // #nosec G101 -- prefix pattern, not a credential

	// tokenLength is the length of the random part of tokens in bytes
	tokenLength = 32

	// bcryptCost is the cost factor for bcrypt hashing
	bcryptCost = 12
)

// GenerateToken generates a new API token and its bcrypt hash.
// The hash goes into the config file; the raw token is shown once.
func GenerateToken() (token, hash string, err error) {
	raw := make([]byte, tokenLength)
	if _, err := rand.Read(raw); err != nil {
		return "", "", fmt.Errorf("generate token: %w", err)
	}

	token = TokenPrefix + hex.EncodeToString(raw)
	hash, err = HashToken(token)
	if err != nil {
		return "", "", err
	}
	return token, hash, nil
}

// HashToken creates a bcrypt hash of a token
func HashToken(token string) (string, error) {
	secret := strings.TrimPrefix(token, TokenPrefix)

	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash token: %w", err)
	}
	return string(hash), nil
}

// VerifyToken checks if a token matches a hash
func VerifyToken(token, hash string) bool {
	secret := strings.TrimPrefix(token, TokenPrefix)
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// authMiddleware enforces bearer-token authentication when enabled.
// The demo surface runs with auth disabled.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.cfg.Auth.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		if s.cfg.Auth.TokenHash == "" {
			s.logger.Warn("Auth enabled but no token hash configured", nil)
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" {
			Unauthorized(w, "missing Authorization header")
			return
		}

		const scheme = "Bearer "
		if !strings.HasPrefix(header, scheme) {
			Unauthorized(w, "invalid Authorization scheme, expected Bearer")
			return
		}

		if !VerifyToken(strings.TrimPrefix(header, scheme), s.cfg.Auth.TokenHash) {
			Unauthorized(w, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}
