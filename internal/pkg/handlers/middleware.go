package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/tastebite/tastebite-service/internal/models"
	"github.com/tastebite/tastebite-service/internal/pkg/service"
)

type ctxKey string

const identityKey ctxKey = "identity"

func GetIdentity(r *http.Request) (models.Identity, bool) {
	identity, ok := r.Context().Value(identityKey).(models.Identity)
	return identity, ok
}

func AuthenticateMiddleware(authService service.Authorization) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string

			cookie, err := r.Cookie("Authorization")
			if err == nil {
				token = cookie.Value
			} else {
				authHeader := r.Header.Get("Authorization")
				if strings.Contains(authHeader, "Bearer ") {
					token = strings.TrimPrefix(authHeader, "Bearer ")
				}
			}

			if token == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			identity, err := authService.ParseToken(r.Context(), token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
