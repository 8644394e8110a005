package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/kantoria/hr-backoffice-go/internal/domain/auth"
	"github.com/kantoria/hr-backoffice-go/internal/domain/user"
	"github.com/kantoria/hr-backoffice-go/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// AdminOnly rejects tokens whose role claim is not admin. It must run after
// AuthRequired.
func AdminOnly(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		role, ok := claims["role"].(string)
		if !ok || user.Role(role) != user.RoleAdmin {
			response.HandleError(w, auth.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hfn)
}
