package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"minnetherapy/internal/auth/metrics"
	"minnetherapy/internal/auth/models"
	"minnetherapy/internal/auth/secrets"
	id "minnetherapy/pkg/domain"
	dErrors "minnetherapy/pkg/domain-errors"
	"minnetherapy/pkg/platform/audit"
	"minnetherapy/pkg/platform/sentinel"
	"minnetherapy/pkg/requestcontext"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type TokenGenerator interface {
	GenerateAccessToken(userID id.UserID, role id.Role, expiresIn time.Duration) (string, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const (
	defaultTokenTTL = 12 * time.Hour
	tokenTypeBearer = "Bearer"
)

// dummySecret is hashed at the stored-password cost and compared against when
// the email is unknown, so both failure paths cost the same bcrypt work.
const dummySecret = "minnetherapy-unknown-user"

var errInvalidCredentials = dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")

// Service authenticates users with email and password and issues access
// tokens.
type Service struct {
	users          UserStore
	tokens         TokenGenerator
	tokenTTL       time.Duration
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	passwordCost   int
	dummyHash      func() string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithPasswordCost sets the bcrypt cost stored passwords were hashed with.
// It must match the cost used when users are created.
func WithPasswordCost(cost int) Option {
	return func(s *Service) {
		if cost > 0 {
			s.passwordCost = cost
		}
	}
}

func New(users UserStore, tokens TokenGenerator, opts ...Option) *Service {
	s := &Service{
		users:        users,
		tokens:       tokens,
		tokenTTL:     defaultTokenTTL,
		logger:       slog.Default(),
		passwordCost: secrets.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	cost := s.passwordCost
	s.dummyHash = sync.OnceValue(func() string {
		hash, err := secrets.HashCost(dummySecret, cost)
		if err != nil {
			panic("auth: hashing dummy secret: " + err.Error())
		}
		return hash
	})
	return s
}

// Warm computes the unknown-user hash ahead of the first login.
func (s *Service) Warm() {
	_ = s.dummyHash()
}

// Login verifies the password for email and returns a signed access token.
// Unknown emails and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.metrics.IncrementLogin("error")
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
		}
		_ = secrets.Verify(password, s.dummyHash())
		return nil, s.rejectLogin(ctx, "unknown_email", id.UserID{})
	}

	if err := secrets.Verify(password, user.PasswordHash); err != nil {
		if !errors.Is(err, secrets.ErrMismatch) {
			s.metrics.IncrementLogin("error")
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify password")
		}
		return nil, s.rejectLogin(ctx, "wrong_password", user.ID)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Role, s.tokenTTL)
	if err != nil {
		s.metrics.IncrementLogin("error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.metrics.IncrementLogin("success")
	s.logAudit(ctx, audit.EventLoginSucceeded, user.ID, "")
	return &models.LoginResult{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   s.tokenTTL,
		UserID:      user.ID,
		Role:        user.Role,
	}, nil
}

func (s *Service) rejectLogin(ctx context.Context, reason string, userID id.UserID) error {
	s.metrics.IncrementLogin("invalid_credentials")
	s.logAudit(ctx, audit.EventAuthFailed, userID, reason)
	return errInvalidCredentials
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, userID id.UserID, reason string) {
	requestID := requestcontext.RequestID(ctx)
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event),
			"event", string(event),
			"log_type", "audit",
			"user_id", userID.String(),
			"reason", reason,
			"request_id", requestID,
		)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		UserID:    userID,
		Subject:   requestcontext.ClientIP(ctx),
		Action:    string(event),
		Reason:    reason,
		RequestID: requestID,
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}
