package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minnetherapy/internal/ratelimit/models"
	"minnetherapy/internal/ratelimit/service"
	"minnetherapy/internal/ratelimit/store/bucket"
	auditpublisher "minnetherapy/pkg/platform/audit/publisher"
	auditmemory "minnetherapy/pkg/platform/audit/store/memory"
	"minnetherapy/pkg/requestcontext"
)

type erroringLimiter struct{}

func (erroringLimiter) CheckIP(context.Context, string, models.EndpointClass) (*service.CheckResult, error) {
	return nil, errors.New("limiter down")
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestFrom(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/therapists", nil)
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), ip, "", ""))
}

func TestRateLimit(t *testing.T) {
	events := auditmemory.NewInMemoryStore()
	limiter := service.New(bucket.New(),
		service.WithLimit(models.ClassSearch, models.Limit{RequestsPerWindow: 2, Window: time.Minute}))
	h := New(limiter, discard, WithAuditPublisher(auditpublisher.NewPublisher(events))).
		RateLimit(models.ClassSearch)(okHandler)

	for i := range 2 {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, requestFrom("198.51.100.7"))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "2", rr.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, []string{"1", "0"}[i], rr.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, rr.Header().Get("X-RateLimit-Reset"))
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, requestFrom("198.51.100.7"))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
	assert.Contains(t, rr.Body.String(), `"error":"rate_limit_exceeded"`)

	recent, err := events.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "rate_limit_exceeded", recent[0].Action)
	assert.Equal(t, "198.51.100.7", recent[0].Subject)
}

func TestRateLimit_FailsOpen(t *testing.T) {
	h := New(erroringLimiter{}, discard).RateLimit(models.ClassSearch)(okHandler)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, requestFrom("198.51.100.7"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
}

func TestRateLimit_Disabled(t *testing.T) {
	h := New(erroringLimiter{}, discard, WithDisabled(true)).RateLimit(models.ClassSearch)(okHandler)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, requestFrom("198.51.100.7"))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestGlobalThrottle(t *testing.T) {
	h := New(erroringLimiter{}, discard, WithGlobalLimit(0.001, 1)).GlobalThrottle()(okHandler)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, requestFrom("1.1.1.1"))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, requestFrom("2.2.2.2"))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "service_unavailable")
}
