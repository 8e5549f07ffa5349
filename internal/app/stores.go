// Package app assembles the record stores shared by the server and the CLI.
package app

import (
	"context"
	"database/sql"
	"log/slog"

	"minnetherapy/internal/auth/models"
	userstore "minnetherapy/internal/auth/store/user"
	dirservice "minnetherapy/internal/directory/service"
	providerstore "minnetherapy/internal/directory/store/provider"
	specstore "minnetherapy/internal/directory/store/specialization"
	"minnetherapy/internal/platform/postgres"
	"minnetherapy/internal/seed"
)

// ProviderStore is the union of what the directory service and the seeder
// need from provider storage.
type ProviderStore interface {
	dirservice.ProviderStore
	seed.ProviderStore
	Ping(ctx context.Context) error
}

type SpecializationStore interface {
	dirservice.SpecializationStore
	seed.SpecializationStore
}

type UserStore interface {
	seed.UserStore
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// Stores groups one backend's stores. Close releases the backend.
type Stores struct {
	Providers       ProviderStore
	Specializations SpecializationStore
	Users           UserStore
	Backend         string
	db              *sql.DB
}

// DB returns the Postgres handle, or nil for in-memory stores.
func (s *Stores) DB() *sql.DB {
	return s.db
}

func (s *Stores) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewInMemory returns empty in-process stores.
func NewInMemory() *Stores {
	return &Stores{
		Providers:       providerstore.New(),
		Specializations: specstore.New(),
		Users:           userstore.New(),
		Backend:         "memory",
	}
}

// OpenPostgres connects to databaseURL and returns Postgres-backed stores.
// The schema is not applied here.
func OpenPostgres(ctx context.Context, databaseURL string) (*Stores, error) {
	db, err := postgres.Open(ctx, postgres.Config{URL: databaseURL})
	if err != nil {
		return nil, err
	}
	return &Stores{
		Providers:       providerstore.NewPostgres(db),
		Specializations: specstore.NewPostgres(db),
		Users:           userstore.NewPostgres(db),
		Backend:         "postgres",
		db:              db,
	}, nil
}

// Open picks Postgres when databaseURL is set and in-memory stores otherwise.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*Stores, error) {
	if databaseURL == "" {
		logger.Info("no database url configured, using in-memory stores")
		return NewInMemory(), nil
	}
	return OpenPostgres(ctx, databaseURL)
}

// Seed runs the seeder against s with the given options.
func (s *Stores) Seed(ctx context.Context, opts ...seed.Option) (*seed.Report, error) {
	return seed.New(s.Specializations, s.Users, s.Providers, opts...).Run(ctx)
}
