// Package rolegate redirects browser navigation based on the caller's role.
//
// Unlike the API auth middleware it never answers 401/403: anonymous or
// mismatched callers are sent to the login page, and signed-in providers and
// patients landing on "/" are sent to their dashboards.
package rolegate

import (
	"log/slog"
	"net/http"
	"strings"

	id "minnetherapy/pkg/domain"
	"minnetherapy/pkg/platform/middleware/auth"
)

const (
	LoginPath             = "/login"
	ProviderDashboardPath = "/provider/dashboard"
	PatientDashboardPath  = "/patient/dashboard"
)

// areas maps protected path prefixes to the single role allowed in them.
var areas = []struct {
	prefix string
	role   id.Role
}{
	{"/provider", id.RoleProvider},
	{"/patient", id.RolePatient},
	{"/admin", id.RoleAdmin},
}

// Decide returns the redirect target for path given the caller's role
// ("" when anonymous), or "" when the request may proceed.
func Decide(path string, role id.Role) string {
	if path == "/" {
		switch role {
		case id.RoleProvider:
			return ProviderDashboardPath
		case id.RolePatient:
			return PatientDashboardPath
		}
		return ""
	}
	for _, a := range areas {
		if inArea(path, a.prefix) && role != a.role {
			return LoginPath
		}
	}
	return ""
}

func inArea(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// Middleware resolves the caller's role from the bearer token or session cookie
// and applies Decide. Invalid tokens are treated as anonymous.
func Middleware(validator auth.JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			var role id.Role
			if token, ok := auth.TokenFromRequest(r); ok {
				claims, err := validator.ValidateToken(token)
				if err != nil {
					logger.DebugContext(ctx, "ignoring invalid session token", "error", err)
				} else {
					role = claims.Role
					ctx = auth.WithClaims(ctx, claims)
				}
			}

			if target := Decide(r.URL.Path, role); target != "" {
				http.Redirect(w, r.WithContext(ctx), target, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
