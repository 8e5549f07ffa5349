package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"minnetherapy/internal/ratelimit/metrics"
	"minnetherapy/internal/ratelimit/models"
)

// BucketStore is a sliding-window counter keyed by string.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}

const (
	defaultFailureThreshold = 5
	defaultSuccessThreshold = 3
)

// Limiter checks per-IP budgets against a primary store. When the primary
// keeps failing the circuit opens and an in-process fallback answers until
// the primary recovers.
type Limiter struct {
	primary  BucketStore
	fallback BucketStore
	breaker  *CircuitBreaker
	limits   map[models.EndpointClass]models.Limit
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(*Limiter)

func WithFallback(store BucketStore) Option {
	return func(l *Limiter) {
		l.fallback = store
	}
}

func WithLimit(class models.EndpointClass, limit models.Limit) Option {
	return func(l *Limiter) {
		l.limits[class] = limit
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *Limiter) {
		l.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(l *Limiter) {
		l.metrics = m
	}
}

func WithCircuitThresholds(failures, successes int) Option {
	return func(l *Limiter) {
		l.breaker = newCircuitBreaker(failures, successes)
	}
}

func New(primary BucketStore, opts ...Option) *Limiter {
	l := &Limiter{
		primary: primary,
		breaker: newCircuitBreaker(defaultFailureThreshold, defaultSuccessThreshold),
		limits:  make(map[models.EndpointClass]models.Limit),
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CheckResult is a limiter decision plus whether it came from the fallback.
type CheckResult struct {
	*models.RateLimitResult
	Degraded bool
}

// CheckIP consumes one request from the ip's budget for class. Classes
// without a configured limit are always allowed.
func (l *Limiter) CheckIP(ctx context.Context, ip string, class models.EndpointClass) (*CheckResult, error) {
	limit, ok := l.limits[class]
	if !ok {
		return &CheckResult{RateLimitResult: &models.RateLimitResult{Allowed: true}}, nil
	}
	key := models.NewIPRateLimitKey(ip, class)

	if l.breaker.IsOpen() && l.fallback != nil {
		return l.checkDegraded(ctx, key, limit)
	}

	res, err := l.primary.Allow(ctx, key, limit.RequestsPerWindow, limit.Window)
	if err != nil {
		l.metrics.IncrementLimiterErrors()
		if l.breaker.RecordFailure() {
			l.metrics.SetCircuitOpen(true)
			if l.fallback != nil {
				l.logger.WarnContext(ctx, "rate limit store failing, using in-process fallback", "error", err)
				return l.checkFallback(ctx, key, limit)
			}
		}
		return nil, fmt.Errorf("check rate limit: %w", err)
	}
	l.breaker.RecordSuccess()
	return &CheckResult{RateLimitResult: res.WithRetryAfter(l.now())}, nil
}

// checkDegraded serves from the fallback and probes the primary so the
// circuit can close once it answers again.
func (l *Limiter) checkDegraded(ctx context.Context, key string, limit models.Limit) (*CheckResult, error) {
	if _, err := l.primary.Allow(ctx, key, limit.RequestsPerWindow, limit.Window); err != nil {
		l.breaker.RecordFailure()
	} else if l.breaker.RecordSuccess() {
		l.metrics.SetCircuitOpen(false)
		l.logger.InfoContext(ctx, "rate limit store recovered")
	}
	return l.checkFallback(ctx, key, limit)
}

func (l *Limiter) checkFallback(ctx context.Context, key string, limit models.Limit) (*CheckResult, error) {
	res, err := l.fallback.Allow(ctx, key, limit.RequestsPerWindow, limit.Window)
	if err != nil {
		return nil, fmt.Errorf("check fallback rate limit: %w", err)
	}
	return &CheckResult{RateLimitResult: res.WithRetryAfter(l.now()), Degraded: true}, nil
}
