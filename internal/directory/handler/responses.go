package handler

import (
	"minnetherapy/internal/directory/models"
)

type SpecializationResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// ProviderResponse is the public wire shape of a directory entry.
type ProviderResponse struct {
	ID                string                   `json:"id"`
	FirstName         string                   `json:"firstName"`
	LastName          string                   `json:"lastName"`
	LicenseNumber     string                   `json:"licenseNumber"`
	Phone             string                   `json:"phone"`
	Address           string                   `json:"address"`
	City              string                   `json:"city"`
	State             string                   `json:"state"`
	ZipCode           string                   `json:"zipCode"`
	Bio               *string                  `json:"bio"`
	YearsOfExperience *int                     `json:"yearsOfExperience"`
	Latitude          *float64                 `json:"latitude"`
	Longitude         *float64                 `json:"longitude"`
	MembershipType    string                   `json:"membershipType"`
	IsVerified        bool                     `json:"isVerified"`
	Specializations   []SpecializationResponse `json:"specializations"`
}

type SlotResponse struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ProfileResponse adds the weekly schedule for profile reads.
type ProfileResponse struct {
	ProviderResponse
	Availability []SlotResponse `json:"availability"`
}

type AvailabilityResponse struct {
	Slots []SlotResponse `json:"slots"`
}

func toSpecializations(specs []models.Specialization) []SpecializationResponse {
	out := make([]SpecializationResponse, len(specs))
	for i, s := range specs {
		out[i] = SpecializationResponse{ID: s.ID.String(), Name: s.Name, Description: s.Description}
	}
	return out
}

func toProvider(p *models.Provider) ProviderResponse {
	return ProviderResponse{
		ID:                p.ID.String(),
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		LicenseNumber:     p.LicenseNumber,
		Phone:             p.Phone,
		Address:           p.Address,
		City:              p.City,
		State:             p.State,
		ZipCode:           p.ZipCode,
		Bio:               p.Bio,
		YearsOfExperience: p.YearsOfExperience,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
		MembershipType:    string(p.MembershipType),
		IsVerified:        p.IsVerified,
		Specializations:   toSpecializations(p.Specializations),
	}
}

func toProviders(ps []models.Provider) []ProviderResponse {
	out := make([]ProviderResponse, len(ps))
	for i := range ps {
		out[i] = toProvider(&ps[i])
	}
	return out
}

func toSlots(slots []models.AvailabilitySlot) []SlotResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotResponse(s)
	}
	return out
}

func toProfile(p *models.Provider) ProfileResponse {
	return ProfileResponse{ProviderResponse: toProvider(p), Availability: toSlots(p.Availability)}
}
