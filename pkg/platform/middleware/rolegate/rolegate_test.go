package rolegate

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	id "minnetherapy/pkg/domain"
	"minnetherapy/pkg/platform/middleware/auth"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		path string
		role id.Role
		want string
	}{
		{"provider landing on root goes to dashboard", "/", id.RoleProvider, ProviderDashboardPath},
		{"patient landing on root goes to dashboard", "/", id.RolePatient, PatientDashboardPath},
		{"admin stays on root", "/", id.RoleAdmin, ""},
		{"anonymous stays on root", "/", "", ""},
		{"provider area for provider", "/provider/dashboard", id.RoleProvider, ""},
		{"provider area for patient", "/provider/dashboard", id.RolePatient, LoginPath},
		{"provider area anonymous", "/provider", "", LoginPath},
		{"patient area for provider", "/patient/appointments", id.RoleProvider, LoginPath},
		{"admin area for admin", "/admin/users", id.RoleAdmin, ""},
		{"admin area for provider", "/admin", id.RoleProvider, LoginPath},
		{"prefix lookalike is public", "/providers-guide", "", ""},
		{"public search page", "/find-therapist", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.path, tt.role))
		})
	}
}

type stubValidator map[string]id.Role

func (s stubValidator) ValidateToken(token string) (*auth.JWTClaims, error) {
	role, ok := s[token]
	if !ok {
		return nil, errors.New("invalid token")
	}
	return &auth.JWTClaims{UserID: id.UserID(uuid.New()), Role: role, JTI: token}, nil
}

func TestMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	validator := stubValidator{"provider-token": id.RoleProvider, "patient-token": id.RolePatient}
	h := Middleware(validator, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("redirects provider from root via cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "provider-token"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, ProviderDashboardPath, rec.Header().Get("Location"))
	})

	t.Run("invalid token is anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/patient/dashboard", nil)
		req.Header.Set("Authorization", "Bearer forged")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
		assert.Equal(t, LoginPath, rec.Header().Get("Location"))
	})

	t.Run("matching role passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/patient/dashboard", nil)
		req.Header.Set("Authorization", "Bearer patient-token")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
