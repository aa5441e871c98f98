package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

const roleAdmin = "admin"

type adminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAdmin rejects requests without an HS256 bearer token carrying role=admin.
// An empty secret rejects everything.
func RequireAdmin(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := authorize(secret, r.Header.Get("Authorization")); err != nil {
				slog.Warn("admin request rejected", "error", err, "method", r.Method, "path", r.URL.Path)
				http.Error(w, "unauthorized", http.StatusUnauthorized)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func authorize(secret []byte, header string) error {
	if len(secret) == 0 {
		return errors.New("admin secret not configured")
	}

	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return errors.New("missing bearer token")
	}

	var claims adminClaims

	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("parsing token: %w", err)
	}

	if claims.Role != roleAdmin {
		return fmt.Errorf("role %q is not allowed", claims.Role)
	}

	return nil
}
