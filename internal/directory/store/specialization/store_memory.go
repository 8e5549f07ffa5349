// Package specialization persists the catalogue of practice areas.
package specialization

import (
	"context"
	"slices"
	"strings"
	"sync"

	"minnetherapy/internal/directory/models"
	"minnetherapy/pkg/platform/sentinel"
)

// InMemorySpecializationStore keeps specializations keyed by name.
type InMemorySpecializationStore struct {
	mu     sync.RWMutex
	byName map[string]models.Specialization
}

func New() *InMemorySpecializationStore {
	return &InMemorySpecializationStore{byName: make(map[string]models.Specialization)}
}

// List returns all specializations ordered by name.
func (s *InMemorySpecializationStore) List(_ context.Context) ([]models.Specialization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Specialization, 0, len(s.byName))
	for _, spec := range s.byName {
		out = append(out, spec)
	}
	slices.SortFunc(out, func(a, b models.Specialization) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// FindByNames returns the specializations whose names appear in names,
// ordered by name. Unknown names are skipped.
func (s *InMemorySpecializationStore) FindByNames(_ context.Context, names []string) ([]models.Specialization, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Specialization, 0, len(names))
	for _, name := range names {
		if spec, ok := s.byName[name]; ok && !slices.Contains(out, spec) {
			out = append(out, spec)
		}
	}
	slices.SortFunc(out, func(a, b models.Specialization) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// CreateIfAbsent stores spec unless its name exists, returning the stored row.
func (s *InMemorySpecializationStore) CreateIfAbsent(_ context.Context, spec models.Specialization) (models.Specialization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byName[spec.Name]; ok {
		return existing, nil
	}
	for _, existing := range s.byName {
		if existing.ID == spec.ID {
			return models.Specialization{}, sentinel.ErrConflict
		}
	}
	s.byName[spec.Name] = spec
	return spec, nil
}
