package handler

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"minnetherapy/internal/directory/models"
	dErrors "minnetherapy/pkg/domain-errors"
	"minnetherapy/pkg/geo"
)

const (
	maxFieldLength     = 200
	maxBioLength       = 4000
	maxSlots           = 50
	maxSpecializations = 20
)

// parseSearchQuery reads search, city, specialization and the optional
// lat/lng/radius triple. A partial triple or a malformed value is rejected.
func parseSearchQuery(q url.Values) (models.Criteria, *models.GeoFilter, error) {
	criteria := models.Criteria{
		TextTerm:           q.Get("search"),
		CityTerm:           q.Get("city"),
		SpecializationName: q.Get("specialization"),
	}.Normalized()

	geoFilter, err := parseGeo(q.Get("lat"), q.Get("lng"), q.Get("radius"))
	if err != nil {
		return models.Criteria{}, nil, err
	}
	return criteria, geoFilter, nil
}

func parseGeo(rawLat, rawLng, rawRadius string) (*models.GeoFilter, error) {
	rawLat, rawLng, rawRadius = strings.TrimSpace(rawLat), strings.TrimSpace(rawLng), strings.TrimSpace(rawRadius)
	present := 0
	for _, v := range []string{rawLat, rawLng, rawRadius} {
		if v != "" {
			present++
		}
	}
	switch present {
	case 0:
		return nil, nil
	case 3:
	default:
		return nil, dErrors.New(dErrors.CodeInvalidGeoParameters, "lat, lng and radius must be provided together")
	}

	lat, errLat := parseFinite(rawLat)
	lng, errLng := parseFinite(rawLng)
	radius, errRadius := parseFinite(rawRadius)
	if errLat != nil || errLng != nil || errRadius != nil {
		return nil, dErrors.New(dErrors.CodeInvalidGeoParameters, "lat, lng and radius must be numbers")
	}
	if !geo.ValidCoordinates(lat, lng) {
		return nil, dErrors.New(dErrors.CodeInvalidGeoParameters, "lat must be within [-90,90] and lng within [-180,180]")
	}
	return &models.GeoFilter{OriginLat: lat, OriginLng: lng, RadiusMiles: radius}, nil
}

func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrSyntax
	}
	return v, nil
}

// UpdateProfileRequest is the body of PUT /api/providers/me.
type UpdateProfileRequest struct {
	Phone             string   `json:"phone"`
	Address           string   `json:"address"`
	City              string   `json:"city"`
	State             string   `json:"state"`
	ZipCode           string   `json:"zipCode"`
	Bio               *string  `json:"bio"`
	YearsOfExperience *int     `json:"yearsOfExperience"`
	Latitude          *float64 `json:"latitude"`
	Longitude         *float64 `json:"longitude"`
	Specializations   []string `json:"specializations"`
}

// Validate trims text fields and enforces length limits. Domain rules
// (coordinate pairs, known specializations) are checked by the service.
func (r *UpdateProfileRequest) Validate() error {
	for _, f := range []*string{&r.Phone, &r.Address, &r.City, &r.State, &r.ZipCode} {
		*f = strings.TrimSpace(*f)
		if len(*f) > maxFieldLength {
			return dErrors.New(dErrors.CodeValidation, "profile fields must be at most 200 characters")
		}
	}
	if r.Bio != nil {
		bio := strings.TrimSpace(*r.Bio)
		if len(bio) > maxBioLength {
			return dErrors.New(dErrors.CodeValidation, "bio must be at most 4000 characters")
		}
		if bio == "" {
			r.Bio = nil
		} else {
			r.Bio = &bio
		}
	}
	if len(r.Specializations) > maxSpecializations {
		return dErrors.New(dErrors.CodeValidation, "too many specializations")
	}
	return nil
}

func (r *UpdateProfileRequest) toModel() models.ProfileUpdate {
	return models.ProfileUpdate{
		Phone:             r.Phone,
		Address:           r.Address,
		City:              r.City,
		State:             r.State,
		ZipCode:           r.ZipCode,
		Bio:               r.Bio,
		YearsOfExperience: r.YearsOfExperience,
		Latitude:          r.Latitude,
		Longitude:         r.Longitude,
		Specializations:   r.Specializations,
	}
}

type SlotRequest struct {
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// UpdateAvailabilityRequest is the body of PUT /api/providers/me/availability.
type UpdateAvailabilityRequest struct {
	Slots []SlotRequest `json:"slots"`
}

func (r *UpdateAvailabilityRequest) Validate() error {
	if len(r.Slots) > maxSlots {
		return dErrors.New(dErrors.CodeValidation, "too many availability slots")
	}
	for i := range r.Slots {
		r.Slots[i].StartTime = strings.TrimSpace(r.Slots[i].StartTime)
		r.Slots[i].EndTime = strings.TrimSpace(r.Slots[i].EndTime)
	}
	return nil
}

func (r *UpdateAvailabilityRequest) toModel() []models.AvailabilitySlot {
	out := make([]models.AvailabilitySlot, len(r.Slots))
	for i, s := range r.Slots {
		out[i] = models.AvailabilitySlot{DayOfWeek: s.DayOfWeek, StartTime: s.StartTime, EndTime: s.EndTime}
	}
	return out
}
