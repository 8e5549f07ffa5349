package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"minnetherapy/internal/auth/models"
	id "minnetherapy/pkg/domain"
	"minnetherapy/pkg/platform/sentinel"
	"minnetherapy/pkg/platform/tx"
)

const uniqueViolation = "23505"

const userColumns = `id, email, password_hash, role, email_verified_at, created_at`

// PostgresUserStore persists users in PostgreSQL.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) FindByID(ctx context.Context, userID id.UserID) (*models.User, error) {
	return s.findOne(ctx, `id = $1`, uuid.UUID(userID))
}

func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, `lower(email) = $1`, models.NormalizeEmail(email))
}

func (s *PostgresUserStore) findOne(ctx context.Context, where string, arg any) (*models.User, error) {
	row := tx.ExecutorFrom(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+where, arg)
	var (
		u        models.User
		userID   uuid.UUID
		role     string
		verified sql.NullTime
	)
	if err := row.Scan(&userID, &u.Email, &u.PasswordHash, &role, &verified, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.ID = id.UserID(userID)
	u.Role = id.Role(role)
	if verified.Valid {
		t := verified.Time
		u.EmailVerifiedAt = &t
	}
	return &u, nil
}

// CreateIfAbsent inserts u unless the email is already registered.
func (s *PostgresUserStore) CreateIfAbsent(ctx context.Context, u *models.User) (*models.User, error) {
	_, err := tx.ExecutorFrom(ctx, s.db).ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, role, email_verified_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ((lower(email))) DO NOTHING`,
		uuid.UUID(u.ID), u.Email, u.PasswordHash, string(u.Role), u.EmailVerifiedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, sentinel.ErrConflict
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return s.FindByEmail(ctx, u.Email)
}
