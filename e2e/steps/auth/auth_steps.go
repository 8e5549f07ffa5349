package auth

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (interface{}, error)
	GetLastResponseStatus() int
	GetLastResponseHeader(key string) string
	GetAccessToken() string
	SetAccessToken(token string)
}

// RegisterSteps registers authentication-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, steps.logIn)
	ctx.Step(`^I am logged in as "([^"]*)"$`, steps.loggedInAs)
	ctx.Step(`^I save the access token$`, steps.saveAccessToken)
	ctx.Step(`^I use the invalid token "([^"]*)"$`, steps.useInvalidToken)
	ctx.Step(`^I open "([^"]*)" in the browser$`, steps.openPage)
	ctx.Step(`^I should be redirected to "([^"]*)"$`, steps.redirectedTo)
	ctx.Step(`^the login error message should match the previous one$`, steps.sameLoginError)
}

type authSteps struct {
	tc TestContext
	// login error descriptions, most recent last
	loginErrs []string
}

func (s *authSteps) logIn(ctx context.Context, email, password string) error {
	if err := s.tc.POST("/api/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	}); err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() != 200 {
		desc, _ := s.tc.GetResponseField("error_description")
		s.loginErrs = append(s.loginErrs, fmt.Sprint(desc))
	}
	return nil
}

// loggedInAs logs in with the seeded password and keeps the token.
func (s *authSteps) loggedInAs(ctx context.Context, email string) error {
	if err := s.logIn(ctx, email, "password123"); err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() != 200 {
		return fmt.Errorf("login for %s returned %d", email, s.tc.GetLastResponseStatus())
	}
	return s.saveAccessToken(ctx)
}

func (s *authSteps) saveAccessToken(ctx context.Context) error {
	token, err := s.tc.GetResponseField("access_token")
	if err != nil {
		return err
	}
	str, ok := token.(string)
	if !ok || str == "" {
		return fmt.Errorf("access_token is not a string: %v", token)
	}
	s.tc.SetAccessToken(str)
	return nil
}

func (s *authSteps) useInvalidToken(ctx context.Context, token string) error {
	s.tc.SetAccessToken(token)
	return nil
}

// openPage requests a page route; the HTTP client does not follow redirects.
func (s *authSteps) openPage(ctx context.Context, path string) error {
	headers := map[string]string{}
	if token := s.tc.GetAccessToken(); token != "" {
		headers["Cookie"] = "session=" + token
	}
	return s.tc.GET(path, headers)
}

func (s *authSteps) redirectedTo(ctx context.Context, target string) error {
	status, location := s.tc.GetLastResponseStatus(), s.tc.GetLastResponseHeader("Location")
	if status != 307 || location != target {
		return fmt.Errorf("expected 307 to %s, got %d to %q", target, status, location)
	}
	return nil
}

func (s *authSteps) sameLoginError(ctx context.Context) error {
	n := len(s.loginErrs)
	if n < 2 {
		return fmt.Errorf("expected two failed logins, got %d", n)
	}
	if s.loginErrs[n-1] != s.loginErrs[n-2] {
		return fmt.Errorf("login errors differ: %q vs %q", s.loginErrs[n-2], s.loginErrs[n-1])
	}
	return nil
}
