package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common/security"
	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/domain/model"
	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const (
	UsernameCtxKey contextKey = "username"
	RoleCtxKey     contextKey = "role"
)

// Authenticator turns the verifier's findings into the API's contractual 401
// responses and stashes the identity claims in the request context.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			if errors.Is(err, jwtauth.ErrNoTokenFound) {
				common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized: Invalid token")
			}
			return
		}
		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized: No token provided")
			return
		}

		username, err := security.GetUsernameFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}
		role, err := security.GetRoleFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized: Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UsernameCtxKey, username)
		ctx = context.WithValue(ctx, RoleCtxKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly rejects authenticated callers whose role is not admin. A valid
// token with the wrong role is 403, never 401.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(RoleCtxKey).(string)
		if !ok || role != model.RoleAdmin {
			common.RespondWithError(w, http.StatusForbidden, "Forbidden: Access denied")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameCtxKey).(string)
	return username, ok
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleCtxKey).(string)
	return role, ok
}
