package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"minnetherapy/internal/auth/models"
	id "minnetherapy/pkg/domain"
	dErrors "minnetherapy/pkg/domain-errors"
	"minnetherapy/pkg/testutil"
)

type stubService struct {
	email, password string
}

func (s stubService) Login(_ context.Context, email, password string) (*models.LoginResult, error) {
	if email != s.email || password != s.password {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}
	return &models.LoginResult{AccessToken: "signed", TokenType: "Bearer", ExpiresIn: 12 * time.Hour, Role: id.RoleProvider}, nil
}

func newRouter() chi.Router {
	r := chi.NewRouter()
	New(stubService{email: "a@b.com", password: "pw"}, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func TestHandleLogin(t *testing.T) {
	router := newRouter()

	testutil.Given(t, "a registered provider", func(t *testing.T) {
		testutil.When(t, "they post valid credentials", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/login",
				map[string]string{"email": " a@b.com ", "password": "pw"}))

			testutil.Then(t, "a bearer token is returned", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				got := testutil.UnmarshalResponse[LoginResponse](t, rr)
				assert.Equal(t, LoginResponse{AccessToken: "signed", TokenType: "Bearer", ExpiresIn: 43200, Role: "PROVIDER"}, *got)
			})
		})

		testutil.When(t, "they post a wrong password", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/login",
				map[string]string{"email": "a@b.com", "password": "nope"}))

			testutil.Then(t, "the response is 401", func(t *testing.T) {
				testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
			})
		})
	})

	t.Run("missing fields are a validation error", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/auth/login",
			map[string]string{"email": "a@b.com"}))
		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, "validation_error")
	})
}
