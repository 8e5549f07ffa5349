package ratelimit

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	POST(path string, body interface{}) error
	GetLastResponseStatus() int
	GetLastResponseHeader(key string) string
}

// RegisterSteps registers per-IP rate limiting step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}

	ctx.Step(`^I search therapists (\d+) times$`, steps.searchNTimes)
	ctx.Step(`^I fail login for "([^"]*)" (\d+) times$`, steps.failLoginNTimes)
	ctx.Step(`^the first (\d+) responses should be (\d+)$`, steps.firstNShouldBe)
	ctx.Step(`^the remaining responses should be (\d+)$`, steps.remainingShouldBe)
	ctx.Step(`^the last response should carry a Retry-After header$`, steps.retryAfterPresent)
}

type ratelimitSteps struct {
	tc       TestContext
	statuses []int
	checked  int
}

func (s *ratelimitSteps) searchNTimes(ctx context.Context, n int) error {
	return s.repeat(n, func() error {
		return s.tc.GET("/api/therapists?city=Minneapolis", nil)
	})
}

func (s *ratelimitSteps) failLoginNTimes(ctx context.Context, email string, n int) error {
	return s.repeat(n, func() error {
		return s.tc.POST("/api/auth/login", map[string]interface{}{
			"email":    email,
			"password": "definitely-wrong",
		})
	})
}

func (s *ratelimitSteps) repeat(n int, call func() error) error {
	s.statuses = s.statuses[:0]
	s.checked = 0
	for i := 0; i < n; i++ {
		if err := call(); err != nil {
			return err
		}
		s.statuses = append(s.statuses, s.tc.GetLastResponseStatus())
	}
	return nil
}

func (s *ratelimitSteps) firstNShouldBe(ctx context.Context, n, status int) error {
	if n > len(s.statuses) {
		return fmt.Errorf("only %d responses recorded", len(s.statuses))
	}
	for i, got := range s.statuses[:n] {
		if got != status {
			return fmt.Errorf("response %d: expected %d, got %d", i+1, status, got)
		}
	}
	s.checked = n
	return nil
}

func (s *ratelimitSteps) remainingShouldBe(ctx context.Context, status int) error {
	rest := s.statuses[s.checked:]
	if len(rest) == 0 {
		return fmt.Errorf("no remaining responses after the first %d", s.checked)
	}
	for i, got := range rest {
		if got != status {
			return fmt.Errorf("response %d: expected %d, got %d", s.checked+i+1, status, got)
		}
	}
	return nil
}

func (s *ratelimitSteps) retryAfterPresent(ctx context.Context) error {
	if s.tc.GetLastResponseHeader("Retry-After") == "" {
		return fmt.Errorf("Retry-After header missing")
	}
	return nil
}
