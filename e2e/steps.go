package e2e

import (
	"context"

	"github.com/cucumber/godog"

	"minnetherapy/e2e/steps/auth"
	"minnetherapy/e2e/steps/common"
	"minnetherapy/e2e/steps/directory"
	"minnetherapy/e2e/steps/ratelimit"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	ctx.Before(func(c context.Context, _ *godog.Scenario) (context.Context, error) {
		tc.Reset()
		return c, nil
	})

	// Register common steps (background, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register directory search and self-service steps
	directory.RegisterSteps(ctx, tc)

	// Register authentication-specific steps
	auth.RegisterSteps(ctx, tc)

	// Register rate limiting steps
	ratelimit.RegisterSteps(ctx, tc)
}
