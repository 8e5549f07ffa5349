package models

import (
	"math"
	"time"
)

// EndpointClass groups routes that share one limit.
type EndpointClass string

const (
	// ClassSearch: public directory search, keyed by client IP
	ClassSearch EndpointClass = "search"
	// ClassAuth: password login, keyed by client IP
	ClassAuth EndpointClass = "auth"
)

// Limit is a sliding-window budget.
type Limit struct {
	RequestsPerWindow int
	Window            time.Duration
}

// RateLimitResult represents the outcome of a rate limit check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// WithRetryAfter fills RetryAfter for denied results relative to now.
func (r *RateLimitResult) WithRetryAfter(now time.Time) *RateLimitResult {
	if r.Allowed {
		return r
	}
	r.RetryAfter = max(int(math.Ceil(r.ResetAt.Sub(now).Seconds())), 1)
	return r
}

// NewIPRateLimitKey builds the bucket key for an IP within a class.
func NewIPRateLimitKey(ip string, class EndpointClass) string {
	return "rl:ip:" + string(class) + ":" + ip
}

type RateLimitExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

type ServiceOverloadedResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}
