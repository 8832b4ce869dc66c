package http

import (
	"context"
	"net/http"
	"strings"

	"renthub-backend/internal/domain"
	"renthub-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "userClaims"

// authMiddleware validates the bearer token and stashes the claims on the
// request context. Handlers downstream read them with claimsFrom.
func authMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid token"})
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func claimsFrom(r *http.Request) (*security.UserClaims, bool) {
	claims, ok := r.Context().Value(claimsKey).(*security.UserClaims)
	return claims, ok
}

// requireRole wraps a handler so only the named roles reach it.
func requireRole(next http.HandlerFunc, roles ...domain.UserRole) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r)
		if !ok {
			respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				next(w, r)
				return
			}
		}
		respondJSON(w, http.StatusForbidden, errorResponse{Error: "forbidden"})
	}
}
