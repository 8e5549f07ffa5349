package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	PUT(path string, body interface{}) error
	GetLastResponseBody() []byte
}

// RegisterSteps registers therapist search and profile step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &directorySteps{tc: tc}

	ctx.Step(`^I search therapists with:$`, steps.searchWith)
	ctx.Step(`^I search therapists without filters$`, steps.searchWithoutFilters)
	ctx.Step(`^the result should contain (\d+) therapists?$`, steps.resultCount)
	ctx.Step(`^the result should be empty$`, steps.resultEmpty)
	ctx.Step(`^every therapist should be in "([^"]*)"$`, steps.everyInCity)
	ctx.Step(`^every therapist should have specialization "([^"]*)"$`, steps.everyHasSpecialization)
	ctx.Step(`^the result should be ranked$`, steps.resultRanked)
	ctx.Step(`^the result should include "([^"]*)"$`, steps.resultIncludes)

	ctx.Step(`^I update my profile bio to "([^"]*)"$`, steps.updateBio)
	ctx.Step(`^I GET my profile$`, steps.getProfile)
	ctx.Step(`^my profile bio should be "([^"]*)"$`, steps.profileBio)
}

type directorySteps struct {
	tc      TestContext
	results []therapist
}

type therapist struct {
	ID                string  `json:"id"`
	FirstName         string  `json:"firstName"`
	LastName          string  `json:"lastName"`
	City              string  `json:"city"`
	Bio               *string `json:"bio"`
	YearsOfExperience *int    `json:"yearsOfExperience"`
	MembershipType    string  `json:"membershipType"`
	Specializations   []struct {
		Name string `json:"name"`
	} `json:"specializations"`
}

func (s *directorySteps) searchWith(ctx context.Context, table *godog.Table) error {
	q := url.Values{}
	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return fmt.Errorf("expected two columns, got %d", len(row.Cells))
		}
		q.Set(row.Cells[0].Value, row.Cells[1].Value)
	}
	return s.search("/api/therapists?" + q.Encode())
}

func (s *directorySteps) searchWithoutFilters(ctx context.Context) error {
	return s.search("/api/therapists")
}

func (s *directorySteps) search(path string) error {
	s.results = nil
	if err := s.tc.GET(path, nil); err != nil {
		return err
	}
	// Error bodies are objects; leave results empty and let status steps decide.
	_ = json.Unmarshal(s.tc.GetLastResponseBody(), &s.results)
	return nil
}

func (s *directorySteps) resultCount(ctx context.Context, n int) error {
	if len(s.results) != n {
		return fmt.Errorf("expected %d therapists, got %d", n, len(s.results))
	}
	return nil
}

func (s *directorySteps) resultEmpty(ctx context.Context) error {
	if strings.TrimSpace(string(s.tc.GetLastResponseBody())) != "[]" {
		return fmt.Errorf("expected [], got %s", s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *directorySteps) everyInCity(ctx context.Context, city string) error {
	for _, t := range s.results {
		if t.City != city {
			return fmt.Errorf("%s %s is in %s", t.FirstName, t.LastName, t.City)
		}
	}
	return nil
}

func (s *directorySteps) everyHasSpecialization(ctx context.Context, name string) error {
	for _, t := range s.results {
		found := false
		for _, sp := range t.Specializations {
			if sp.Name == name {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s %s lacks %q", t.FirstName, t.LastName, name)
		}
	}
	return nil
}

// resultRanked checks PREMIUM first, then experience descending with unknown
// experience last, then first name.
func (s *directorySteps) resultRanked(ctx context.Context) error {
	for i := 1; i < len(s.results); i++ {
		if less(s.results[i], s.results[i-1]) {
			return fmt.Errorf("%s ranked after %s", s.results[i].FirstName, s.results[i-1].FirstName)
		}
	}
	return nil
}

func less(a, b therapist) bool {
	ap, bp := a.MembershipType == "PREMIUM", b.MembershipType == "PREMIUM"
	if ap != bp {
		return ap
	}
	switch {
	case a.YearsOfExperience != nil && b.YearsOfExperience == nil:
		return true
	case a.YearsOfExperience == nil && b.YearsOfExperience != nil:
		return false
	case a.YearsOfExperience != nil && *a.YearsOfExperience != *b.YearsOfExperience:
		return *a.YearsOfExperience > *b.YearsOfExperience
	}
	return a.FirstName < b.FirstName
}

func (s *directorySteps) resultIncludes(ctx context.Context, fullName string) error {
	for _, t := range s.results {
		if t.FirstName+" "+t.LastName == fullName {
			return nil
		}
	}
	return fmt.Errorf("%s not in %d results", fullName, len(s.results))
}

// updateBio reads the current profile and writes it back with a new bio,
// since PUT replaces every editable field.
func (s *directorySteps) updateBio(ctx context.Context, bio string) error {
	if err := s.tc.GET("/api/providers/me", nil); err != nil {
		return err
	}
	var current map[string]interface{}
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &current); err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	body := map[string]interface{}{"bio": bio}
	for _, k := range []string{"phone", "address", "city", "state", "zipCode", "yearsOfExperience", "latitude", "longitude"} {
		body[k] = current[k]
	}
	var names []string
	if specs, ok := current["specializations"].([]interface{}); ok {
		for _, sp := range specs {
			if m, ok := sp.(map[string]interface{}); ok {
				names = append(names, fmt.Sprint(m["name"]))
			}
		}
	}
	body["specializations"] = names
	return s.tc.PUT("/api/providers/me", body)
}

func (s *directorySteps) getProfile(ctx context.Context) error {
	return s.tc.GET("/api/providers/me", nil)
}

func (s *directorySteps) profileBio(ctx context.Context, bio string) error {
	var p therapist
	if err := json.Unmarshal(s.tc.GetLastResponseBody(), &p); err != nil {
		return err
	}
	if p.Bio == nil || *p.Bio != bio {
		return fmt.Errorf("expected bio %q, got %v", bio, p.Bio)
	}
	return nil
}
