package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProviderLocation(t *testing.T) {
	lat, lng := 44.97, -93.26

	_, _, ok := (&Provider{}).Location()
	assert.False(t, ok)

	_, _, ok = (&Provider{Latitude: &lat}).Location()
	assert.False(t, ok, "a single coordinate is no location")

	gotLat, gotLng, ok := (&Provider{Latitude: &lat, Longitude: &lng}).Location()
	assert.True(t, ok)
	assert.Equal(t, lat, gotLat)
	assert.Equal(t, lng, gotLng)
}

func TestCriteriaNormalized(t *testing.T) {
	c := Criteria{TextTerm: "  ", CityTerm: " Duluth ", SpecializationName: "Hand Therapy"}
	n := c.Normalized()

	assert.Empty(t, n.TextTerm, "whitespace-only term is absent")
	assert.Equal(t, "Duluth", n.CityTerm)
	assert.Equal(t, "Hand Therapy", n.SpecializationName)
	assert.False(t, c.IsEmpty())
	assert.True(t, Criteria{TextTerm: "\t"}.IsEmpty())
}

func TestMembershipTypeIsValid(t *testing.T) {
	assert.True(t, MembershipPremium.IsValid())
	assert.True(t, MembershipFree.IsValid())
	assert.False(t, MembershipType("GOLD").IsValid())
}
