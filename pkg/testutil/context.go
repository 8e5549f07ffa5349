package testutil

import (
	"net/http"

	id "minnetherapy/pkg/domain"
	authmw "minnetherapy/pkg/platform/middleware/auth"
)

// WithClaims attaches authenticated claims to the request context, the way
// RequireAuth does after validating a token.
func WithClaims(req *http.Request, userID id.UserID, role id.Role) *http.Request {
	ctx := authmw.WithClaims(req.Context(), &authmw.JWTClaims{
		UserID: userID,
		Role:   role,
		JTI:    "test-jti",
	})
	return req.WithContext(ctx)
}

// AsProvider is WithClaims for a PROVIDER user.
func AsProvider(req *http.Request, userID id.UserID) *http.Request {
	return WithClaims(req, userID, id.RoleProvider)
}
