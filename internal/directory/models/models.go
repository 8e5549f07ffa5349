// Package models holds the provider directory's domain types.
package models

import (
	"strings"
	"time"

	id "minnetherapy/pkg/domain"
)

// MembershipType is the provider's listing tier.
type MembershipType string

const (
	MembershipFree    MembershipType = "FREE"
	MembershipPremium MembershipType = "PREMIUM"
)

// IsValid reports whether m is a known tier.
func (m MembershipType) IsValid() bool {
	return m == MembershipFree || m == MembershipPremium
}

// Specialization is a practice area a provider can be tagged with.
type Specialization struct {
	ID          id.SpecializationID
	Name        string
	Description *string
}

// AvailabilitySlot is one weekly opening. DayOfWeek is 0 (Sunday) to 6;
// times are "HH:MM" in the provider's local time.
type AvailabilitySlot struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

// Provider is a directory entry.
type Provider struct {
	ID                id.ProviderID
	UserID            id.UserID
	FirstName         string
	LastName          string
	LicenseNumber     string
	Phone             string
	Address           string
	City              string
	State             string
	ZipCode           string
	Bio               *string
	YearsOfExperience *int
	Latitude          *float64
	Longitude         *float64
	MembershipType    MembershipType
	IsVerified        bool
	Specializations   []Specialization
	Availability      []AvailabilitySlot
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Location returns the provider's coordinates. A provider with only one of
// latitude/longitude has no location.
func (p *Provider) Location() (lat, lng float64, ok bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return 0, 0, false
	}
	return *p.Latitude, *p.Longitude, true
}

// HasSpecialization reports an exact name match.
func (p *Provider) HasSpecialization(name string) bool {
	for _, s := range p.Specializations {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Criteria are the coarse predicates a record store applies. An empty term
// imposes no constraint.
type Criteria struct {
	// TextTerm matches firstName, lastName, city or any specialization name,
	// case-insensitively.
	TextTerm string
	// CityTerm is a case-insensitive substring of city.
	CityTerm string
	// SpecializationName must equal one of the provider's specialization names.
	SpecializationName string
}

// Normalized trims every term; whitespace-only terms become absent.
func (c Criteria) Normalized() Criteria {
	return Criteria{
		TextTerm:           strings.TrimSpace(c.TextTerm),
		CityTerm:           strings.TrimSpace(c.CityTerm),
		SpecializationName: strings.TrimSpace(c.SpecializationName),
	}
}

// IsEmpty reports whether no predicate is active.
func (c Criteria) IsEmpty() bool {
	n := c.Normalized()
	return n.TextTerm == "" && n.CityTerm == "" && n.SpecializationName == ""
}

// GeoFilter restricts results to a radius around an origin.
type GeoFilter struct {
	OriginLat   float64
	OriginLng   float64
	RadiusMiles float64
}

// ProfileUpdate carries the provider-writable profile fields. Membership
// tier and verification are deliberately absent.
type ProfileUpdate struct {
	Phone             string
	Address           string
	City              string
	State             string
	ZipCode           string
	Bio               *string
	YearsOfExperience *int
	Latitude          *float64
	Longitude         *float64
	Specializations   []string
}
