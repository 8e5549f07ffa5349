// Package search filters directory candidates by distance and ranks them.
//
// Everything here is a pure function of its arguments: no I/O, no shared
// state. Callers may run Search concurrently.
package search

import (
	"cmp"
	"slices"
	"strings"

	"minnetherapy/internal/directory/models"
	id "minnetherapy/pkg/domain"
	"minnetherapy/pkg/geo"
)

// Search collapses duplicate ids, applies the optional geographic filter and
// returns the survivors in ranking order. The input slice is not modified.
func Search(candidates []models.Provider, filter *models.GeoFilter) []models.Provider {
	results := Dedupe(candidates)
	if filter != nil {
		results = WithinRadius(results, *filter)
	}
	Rank(results)
	return results
}

// Dedupe keeps the first occurrence of each provider id.
func Dedupe(candidates []models.Provider) []models.Provider {
	out := make([]models.Provider, 0, len(candidates))
	seen := make(map[id.ProviderID]struct{}, len(candidates))
	for _, p := range candidates {
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}

// WithinRadius keeps providers whose haversine distance from the origin is at
// most RadiusMiles. Providers without a location are dropped. A radius that
// is not positive matches nothing.
func WithinRadius(candidates []models.Provider, filter models.GeoFilter) []models.Provider {
	out := make([]models.Provider, 0, len(candidates))
	if !(filter.RadiusMiles > 0) {
		return out
	}
	origin := geo.Point{Lat: filter.OriginLat, Lng: filter.OriginLng}
	for _, p := range candidates {
		lat, lng, ok := p.Location()
		if !ok {
			continue
		}
		if geo.HaversineMiles(origin, geo.Point{Lat: lat, Lng: lng}) <= filter.RadiusMiles {
			out = append(out, p)
		}
	}
	return out
}

// Rank stable-sorts providers in place: PREMIUM first, then more years of
// experience (unknown last), then firstName ascending by byte order.
func Rank(providers []models.Provider) {
	slices.SortStableFunc(providers, Compare)
}

// Compare orders two providers by ranking precedence. It returns a negative
// number when a ranks ahead of b.
func Compare(a, b models.Provider) int {
	if ta, tb := tier(a.MembershipType), tier(b.MembershipType); ta != tb {
		return cmp.Compare(tb, ta)
	}
	if c := compareExperience(a.YearsOfExperience, b.YearsOfExperience); c != 0 {
		return c
	}
	return strings.Compare(a.FirstName, b.FirstName)
}

func tier(m models.MembershipType) int {
	if m == models.MembershipPremium {
		return 1
	}
	return 0
}

// compareExperience sorts descending with nil after every defined value.
func compareExperience(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return cmp.Compare(*b, *a)
	}
}
