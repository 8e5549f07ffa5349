//go:build integration

package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"minnetherapy/internal/auth/models"
	"minnetherapy/internal/auth/store/user"
	id "minnetherapy/pkg/domain"
	"minnetherapy/pkg/platform/sentinel"
	"minnetherapy/pkg/testutil/containers"
)

type PostgresUserStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *user.PostgresUserStore
}

func TestPostgresUserStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresUserStoreSuite))
}

func (s *PostgresUserStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = user.NewPostgres(s.postgres.DB)
}

func (s *PostgresUserStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background()))
}

func (s *PostgresUserStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	verified := time.Now().UTC().Truncate(time.Microsecond)
	u := &models.User{
		ID:              id.UserID(uuid.New()),
		Email:           "Emily.Williams@minnetherapy.com",
		PasswordHash:    "hash",
		Role:            id.RoleProvider,
		EmailVerifiedAt: &verified,
	}

	created, err := s.store.CreateIfAbsent(ctx, u)
	s.Require().NoError(err)
	s.Equal(u.ID, created.ID)
	s.True(created.EmailVerifiedAt.Equal(verified))

	again := *u
	again.ID = id.UserID(uuid.New())
	again.Email = "emily.williams@minnetherapy.com"
	existing, err := s.store.CreateIfAbsent(ctx, &again)
	s.Require().NoError(err)
	s.Equal(u.ID, existing.ID)

	found, err := s.store.FindByEmail(ctx, "EMILY.williams@minnetherapy.com")
	s.Require().NoError(err)
	s.Equal(u.ID, found.ID)

	_, err = s.store.FindByID(ctx, id.UserID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}
