package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"golang.org/x/time/rate"

	"minnetherapy/internal/ratelimit/metrics"
	"minnetherapy/internal/ratelimit/models"
	"minnetherapy/internal/ratelimit/observability"
	"minnetherapy/internal/ratelimit/service"
	"minnetherapy/pkg/platform/audit"
	"minnetherapy/pkg/platform/httputil"
	"minnetherapy/pkg/requestcontext"
)

type RateLimiter interface {
	CheckIP(ctx context.Context, ip string, class models.EndpointClass) (*service.CheckResult, error)
}

type Middleware struct {
	limiter   RateLimiter
	logger    *slog.Logger
	publisher observability.AuditPublisher
	metrics   *metrics.Metrics
	global    *rate.Limiter
	disabled  bool
}

type Option func(*Middleware)

// WithDisabled disables rate limiting entirely (for testing/demo mode).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func WithAuditPublisher(publisher observability.AuditPublisher) Option {
	return func(m *Middleware) {
		m.publisher = publisher
	}
}

func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Middleware) {
		m.metrics = mt
	}
}

// WithGlobalLimit caps the whole process at rps with the given burst.
func WithGlobalLimit(rps float64, burst int) Option {
	return func(m *Middleware) {
		m.global = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func New(limiter RateLimiter, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimit enforces the per-IP budget of class. Limiter errors let the
// request through.
func (m *Middleware) RateLimit(class models.EndpointClass) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)

			result, err := m.limiter.CheckIP(ctx, ip, class)
			if err != nil {
				m.metrics.ObserveDecision(string(class), "error")
				m.logger.ErrorContext(ctx, "failed to check IP rate limit",
					"error", err,
					"class", string(class),
					"request_id", requestcontext.RequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}

			addRateLimitHeaders(w, result)

			if !result.Allowed {
				m.metrics.ObserveDecision(string(class), "limited")
				observability.LogAudit(ctx, m.logger, m.publisher, string(audit.EventRateLimitExceeded),
					"ip", ip,
					"class", string(class),
				)
				writeRateLimitExceeded(w, result.RateLimitResult)
				return
			}

			m.metrics.ObserveDecision(string(class), "allowed")
			next.ServeHTTP(w, r)
		})
	}
}

// GlobalThrottle rejects requests with 503 once the process-wide rate is
// exceeded. Without WithGlobalLimit it is a pass-through.
func (m *Middleware) GlobalThrottle() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m.global == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m.disabled || m.global.Allow() {
				next.ServeHTTP(w, r)
				return
			}
			m.metrics.IncrementGlobalThrottled()
			m.logger.WarnContext(r.Context(), "global throttle engaged",
				"path", r.URL.Path,
				"request_id", requestcontext.RequestID(r.Context()),
			)
			writeServiceOverloaded(w)
		})
	}
}

func addRateLimitHeaders(w http.ResponseWriter, result *service.CheckResult) {
	if result == nil || result.RateLimitResult == nil || result.Limit == 0 {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
	if result.Degraded {
		w.Header().Set("X-RateLimit-Status", "degraded")
	}
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.RateLimitExceededResponse{
		Error:      "rate_limit_exceeded",
		Message:    "Too many requests from this IP address. Please try again later.",
		RetryAfter: result.RetryAfter,
	})
}

func writeServiceOverloaded(w http.ResponseWriter) {
	w.Header().Set("Retry-After", "1")
	httputil.WriteJSON(w, http.StatusServiceUnavailable, &models.ServiceOverloadedResponse{
		Error:      "service_unavailable",
		Message:    "Service is temporarily overloaded. Please try again later.",
		RetryAfter: 1,
	})
}
