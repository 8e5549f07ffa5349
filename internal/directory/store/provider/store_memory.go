// Package provider persists directory providers with their specializations
// and weekly availability.
package provider

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"minnetherapy/internal/directory/models"
	id "minnetherapy/pkg/domain"
	"minnetherapy/pkg/platform/sentinel"
)

// InMemoryProviderStore is a process-local store used when no database is
// configured and in tests. Reads return copies.
type InMemoryProviderStore struct {
	mu        sync.RWMutex
	providers map[id.ProviderID]*models.Provider
	byUser    map[id.UserID]id.ProviderID
	clock     func() time.Time
}

// New creates an empty in-memory provider store.
func New() *InMemoryProviderStore {
	return &InMemoryProviderStore{
		providers: make(map[id.ProviderID]*models.Provider),
		byUser:    make(map[id.UserID]id.ProviderID),
		clock:     time.Now,
	}
}

// FindCandidates returns verified providers matching c, ordered by id.
func (s *InMemoryProviderStore) FindCandidates(_ context.Context, c models.Criteria) ([]models.Provider, error) {
	c = c.Normalized()
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Provider, 0, len(s.providers))
	for _, p := range s.providers {
		if p.IsVerified && matches(p, c) {
			cp := clone(p)
			cp.Availability = nil
			out = append(out, *cp)
		}
	}
	slices.SortFunc(out, func(a, b models.Provider) int {
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	return out, nil
}

func matches(p *models.Provider, c models.Criteria) bool {
	if c.TextTerm != "" {
		hit := containsFold(p.FirstName, c.TextTerm) ||
			containsFold(p.LastName, c.TextTerm) ||
			containsFold(p.City, c.TextTerm) ||
			slices.ContainsFunc(p.Specializations, func(s models.Specialization) bool {
				return containsFold(s.Name, c.TextTerm)
			})
		if !hit {
			return false
		}
	}
	if c.CityTerm != "" && !containsFold(p.City, c.CityTerm) {
		return false
	}
	if c.SpecializationName != "" && !p.HasSpecialization(c.SpecializationName) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (s *InMemoryProviderStore) FindByID(_ context.Context, providerID id.ProviderID) (*models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.providers[providerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(p), nil
}

func (s *InMemoryProviderStore) FindByUserID(_ context.Context, userID id.UserID) (*models.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	providerID, ok := s.byUser[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(s.providers[providerID]), nil
}

// CreateIfAbsent inserts p unless a provider already exists for p.UserID, in
// which case the existing record is returned unchanged.
func (s *InMemoryProviderStore) CreateIfAbsent(_ context.Context, p *models.Provider) (*models.Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byUser[p.UserID]; ok {
		return clone(s.providers[existing]), nil
	}
	if _, ok := s.providers[p.ID]; ok {
		return nil, sentinel.ErrConflict
	}
	stored := clone(p)
	now := s.clock()
	stored.CreatedAt, stored.UpdatedAt = now, now
	sortSpecializations(stored.Specializations)
	sortSlots(stored.Availability)
	s.providers[stored.ID] = stored
	s.byUser[stored.UserID] = stored.ID
	return clone(stored), nil
}

// Update writes the provider-editable profile fields and replaces the
// specialization set. Membership tier and verification are left untouched.
func (s *InMemoryProviderStore) Update(_ context.Context, p *models.Provider) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.providers[p.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	src := clone(p)
	stored.Phone = src.Phone
	stored.Address = src.Address
	stored.City = src.City
	stored.State = src.State
	stored.ZipCode = src.ZipCode
	stored.Bio = src.Bio
	stored.YearsOfExperience = src.YearsOfExperience
	stored.Latitude = src.Latitude
	stored.Longitude = src.Longitude
	stored.Specializations = src.Specializations
	sortSpecializations(stored.Specializations)
	stored.UpdatedAt = s.clock()
	return nil
}

// LinkSpecializations adds links that do not exist yet.
func (s *InMemoryProviderStore) LinkSpecializations(_ context.Context, providerID id.ProviderID, specs []models.Specialization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.providers[providerID]
	if !ok {
		return sentinel.ErrNotFound
	}
	for _, spec := range specs {
		if !slices.ContainsFunc(stored.Specializations, func(x models.Specialization) bool { return x.ID == spec.ID }) {
			stored.Specializations = append(stored.Specializations, spec)
		}
	}
	sortSpecializations(stored.Specializations)
	return nil
}

// ReplaceAvailability swaps the whole weekly schedule.
func (s *InMemoryProviderStore) ReplaceAvailability(_ context.Context, providerID id.ProviderID, slots []models.AvailabilitySlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.providers[providerID]
	if !ok {
		return sentinel.ErrNotFound
	}
	stored.Availability = slices.Clone(slots)
	sortSlots(stored.Availability)
	stored.UpdatedAt = s.clock()
	return nil
}

// EnsureAvailability adds slots whose (day, start) is not present yet.
func (s *InMemoryProviderStore) EnsureAvailability(_ context.Context, providerID id.ProviderID, slots []models.AvailabilitySlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.providers[providerID]
	if !ok {
		return sentinel.ErrNotFound
	}
	for _, slot := range slots {
		exists := slices.ContainsFunc(stored.Availability, func(x models.AvailabilitySlot) bool {
			return x.DayOfWeek == slot.DayOfWeek && x.StartTime == slot.StartTime
		})
		if !exists {
			stored.Availability = append(stored.Availability, slot)
		}
	}
	sortSlots(stored.Availability)
	return nil
}

// Ping always succeeds.
func (s *InMemoryProviderStore) Ping(context.Context) error { return nil }

// Len returns the number of stored providers.
func (s *InMemoryProviderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.providers)
}

func clone(p *models.Provider) *models.Provider {
	cp := *p
	cp.Bio = clonePtr(p.Bio)
	cp.YearsOfExperience = clonePtr(p.YearsOfExperience)
	cp.Latitude = clonePtr(p.Latitude)
	cp.Longitude = clonePtr(p.Longitude)
	cp.Specializations = slices.Clone(p.Specializations)
	cp.Availability = slices.Clone(p.Availability)
	return &cp
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func sortSpecializations(specs []models.Specialization) {
	slices.SortFunc(specs, func(a, b models.Specialization) int { return strings.Compare(a.Name, b.Name) })
}

func sortSlots(slots []models.AvailabilitySlot) {
	slices.SortFunc(slots, func(a, b models.AvailabilitySlot) int {
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek - b.DayOfWeek
		}
		return strings.Compare(a.StartTime, b.StartTime)
	})
}
