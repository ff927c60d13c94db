package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/ParkEase-Backend/internal/api/handlers"
	"github.com/m04kA/ParkEase-Backend/internal/auth"
	"github.com/m04kA/ParkEase-Backend/internal/domain"
)

type contextKey string

const claimsContextKey contextKey = "authClaims"

const (
	msgTokenRequired = "Access token required"
	msgTokenInvalid  = "Invalid or expired token"
	msgForbidden     = "Insufficient permissions"
)

// TokenParser интерфейс для разбора access-токенов
type TokenParser interface {
	Parse(tokenString string) (*auth.Claims, error)
}

// Auth проверяет Bearer токен и кладёт claims в контекст запроса
func Auth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				handlers.RespondUnauthorized(w, msgTokenRequired)
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")

			claims, err := parser.Parse(token)
			if err != nil {
				handlers.RespondForbidden(w, msgTokenInvalid)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole пропускает только пользователей с одной из указанных ролей
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := FromContext(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgTokenRequired)
				return
			}

			for _, role := range roles {
				if claims.Role == string(role) {
					next.ServeHTTP(w, r)
					return
				}
			}

			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}

// FromContext извлекает claims аутентифицированного пользователя из контекста
func FromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok
}
