package middleware

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/staffhub/rostering-backend-go/internal/domain/worker"
	"github.com/staffhub/rostering-backend-go/internal/handler/http/response"
)

func roleFromClaims(r *http.Request) (worker.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return worker.Role(roleStr), true
}

func subjectFromClaims(r *http.Request) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	sub, ok := claims["sub"].(string)
	return sub, ok
}

// RequireRole allows only the listed roles through. Admins always pass.
func RequireRole(roles ...worker.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := roleFromClaims(r)
			if !ok {
				response.Forbidden(w, "Insufficient permissions")
				return
			}
			if role == worker.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, fmt.Sprintf("Insufficient permissions for role '%s'", role))
		})
	}
}

// RequireSelfOrRole allows the worker named by the workerID URL
// parameter to act on their own resources, or any of the listed roles
// to act on anyone's. Admins always pass.
func RequireSelfOrRole(roles ...worker.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sub, ok := subjectFromClaims(r); ok && sub == chi.URLParam(r, "workerID") {
				next.ServeHTTP(w, r)
				return
			}
			RequireRole(roles...)(next).ServeHTTP(w, r)
		})
	}
}
