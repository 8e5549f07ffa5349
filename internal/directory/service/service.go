// Package service orchestrates directory searches and provider self-service
// on top of the record stores.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"minnetherapy/internal/directory/metrics"
	"minnetherapy/internal/directory/models"
	"minnetherapy/internal/directory/search"
	"minnetherapy/pkg/attrs"
	id "minnetherapy/pkg/domain"
	dErrors "minnetherapy/pkg/domain-errors"
	"minnetherapy/pkg/geo"
	audit "minnetherapy/pkg/platform/audit"
	"minnetherapy/pkg/platform/sentinel"
	pstrings "minnetherapy/pkg/platform/strings"
	"minnetherapy/pkg/requestcontext"
)

type ProviderStore interface {
	FindCandidates(ctx context.Context, c models.Criteria) ([]models.Provider, error)
	FindByID(ctx context.Context, providerID id.ProviderID) (*models.Provider, error)
	FindByUserID(ctx context.Context, userID id.UserID) (*models.Provider, error)
	Update(ctx context.Context, p *models.Provider) error
	ReplaceAvailability(ctx context.Context, providerID id.ProviderID, slots []models.AvailabilitySlot) error
}

type SpecializationStore interface {
	List(ctx context.Context) ([]models.Specialization, error)
	FindByNames(ctx context.Context, names []string) ([]models.Specialization, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

const (
	tracerName             = "minnetherapy/directory"
	specializationCacheKey = "specializations"
	defaultCacheTTL        = 5 * time.Minute
)

// Service runs directory queries and provider profile updates.
type Service struct {
	providers       ProviderStore
	specializations SpecializationStore
	logger          *slog.Logger
	auditPublisher  AuditPublisher
	metrics         *metrics.Metrics
	tracer          trace.Tracer
	cache           *gocache.Cache
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSpecializationCacheTTL sets how long the specialization list is cached.
func WithSpecializationCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cache = gocache.New(ttl, 2*ttl)
		}
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

// New constructs a Service.
func New(providers ProviderStore, specializations SpecializationStore, opts ...Option) *Service {
	s := &Service{
		providers:       providers,
		specializations: specializations,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = gocache.New(defaultCacheTTL, 2*defaultCacheTTL)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// Query is one directory search: coarse criteria for the record store plus an
// optional radius filter.
type Query struct {
	Criteria models.Criteria
	Geo      *models.GeoFilter
}

// Search fetches candidates and returns them filtered and ranked. Any store
// failure fails the whole search with CodeRetrievalFailure.
func (s *Service) Search(ctx context.Context, q Query) ([]models.Provider, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "directory.Search", trace.WithAttributes(
		attribute.Bool("directory.geo", q.Geo != nil),
		attribute.Bool("directory.criteria", !q.Criteria.IsEmpty()),
	))
	defer span.End()

	candidates, err := s.providers.FindCandidates(ctx, q.Criteria.Normalized())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "candidate retrieval failed")
		s.metrics.IncrementRetrievalFailure()
		return nil, dErrors.Wrap(err, dErrors.CodeRetrievalFailure, "failed to fetch therapists")
	}

	results := search.Search(candidates, q.Geo)

	span.SetAttributes(
		attribute.Int("directory.candidates", len(candidates)),
		attribute.Int("directory.results", len(results)),
	)
	s.metrics.ObserveSearch(q.Geo != nil, len(results), time.Since(start))
	return results, nil
}

// GetProvider returns a verified provider's public profile.
func (s *Service) GetProvider(ctx context.Context, providerID id.ProviderID) (*models.Provider, error) {
	ctx, span := s.tracer.Start(ctx, "directory.GetProvider")
	defer span.End()

	p, err := s.providers.FindByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "provider not found")
		}
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load provider")
	}
	if !p.IsVerified {
		return nil, dErrors.New(dErrors.CodeNotFound, "provider not found")
	}
	return p, nil
}

// GetOwnProfile returns the provider profile owned by userID.
func (s *Service) GetOwnProfile(ctx context.Context, userID id.UserID) (*models.Provider, error) {
	p, err := s.providers.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "provider profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load provider profile")
	}
	return p, nil
}

// UpdateProfile applies the provider-writable fields of update to the profile
// owned by userID. Specializations are given by name and must exist.
func (s *Service) UpdateProfile(ctx context.Context, userID id.UserID, update models.ProfileUpdate) (*models.Provider, error) {
	ctx, span := s.tracer.Start(ctx, "directory.UpdateProfile")
	defer span.End()

	if err := validateProfile(update); err != nil {
		return nil, err
	}

	p, err := s.GetOwnProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	specs, err := s.resolveSpecializations(ctx, update.Specializations)
	if err != nil {
		return nil, err
	}

	p.Phone = update.Phone
	p.Address = update.Address
	p.City = update.City
	p.State = update.State
	p.ZipCode = update.ZipCode
	p.Bio = update.Bio
	p.YearsOfExperience = update.YearsOfExperience
	p.Latitude = update.Latitude
	p.Longitude = update.Longitude
	p.Specializations = specs

	if err := s.providers.Update(ctx, p); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "provider profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update provider profile")
	}

	s.logAudit(ctx, string(audit.EventProviderProfileUpdated),
		"user_id", userID.String(),
		"provider_id", p.ID.String(),
		"specializations", len(specs),
	)
	s.metrics.IncrementProfileUpdate("profile")

	return s.GetOwnProfile(ctx, userID)
}

// UpdateAvailability replaces the weekly schedule of the provider owned by userID.
func (s *Service) UpdateAvailability(ctx context.Context, userID id.UserID, slots []models.AvailabilitySlot) ([]models.AvailabilitySlot, error) {
	ctx, span := s.tracer.Start(ctx, "directory.UpdateAvailability",
		trace.WithAttributes(attribute.Int("directory.slots", len(slots))))
	defer span.End()

	if err := ValidateAvailability(slots); err != nil {
		return nil, err
	}

	p, err := s.GetOwnProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.providers.ReplaceAvailability(ctx, p.ID, slots); err != nil {
		span.RecordError(err)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "provider profile not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update availability")
	}

	s.logAudit(ctx, string(audit.EventProviderAvailabilityUpdated),
		"user_id", userID.String(),
		"provider_id", p.ID.String(),
		"slots", len(slots),
	)
	s.metrics.IncrementProfileUpdate("availability")

	updated, err := s.GetOwnProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return updated.Availability, nil
}

// ListSpecializations returns every specialization ordered by name, served
// from an in-process cache.
func (s *Service) ListSpecializations(ctx context.Context) ([]models.Specialization, error) {
	if cached, ok := s.cache.Get(specializationCacheKey); ok {
		s.metrics.IncrementSpecializationCache(true)
		return slices.Clone(cached.([]models.Specialization)), nil
	}
	s.metrics.IncrementSpecializationCache(false)

	specs, err := s.specializations.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeRetrievalFailure, "failed to fetch specializations")
	}
	s.cache.SetDefault(specializationCacheKey, slices.Clone(specs))
	return specs, nil
}

// InvalidateSpecializations drops the cached specialization list.
func (s *Service) InvalidateSpecializations() {
	s.cache.Delete(specializationCacheKey)
}

func (s *Service) resolveSpecializations(ctx context.Context, requested []string) ([]models.Specialization, error) {
	names := pstrings.DedupeFold(requested)
	if len(names) == 0 {
		return nil, nil
	}
	found, err := s.specializations.FindByNames(ctx, names)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load specializations")
	}
	for _, name := range names {
		if !slices.ContainsFunc(found, func(sp models.Specialization) bool { return sp.Name == name }) {
			return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown specialization: %s", name))
		}
	}
	return found, nil
}

func validateProfile(u models.ProfileUpdate) error {
	if u.YearsOfExperience != nil && *u.YearsOfExperience < 0 {
		return dErrors.New(dErrors.CodeValidation, "yearsOfExperience must not be negative")
	}
	if (u.Latitude == nil) != (u.Longitude == nil) {
		return dErrors.New(dErrors.CodeValidation, "latitude and longitude must be set together")
	}
	if u.Latitude != nil && !geo.ValidCoordinates(*u.Latitude, *u.Longitude) {
		return dErrors.New(dErrors.CodeValidation, "latitude or longitude out of range")
	}
	return nil
}

// ValidateAvailability checks day range, HH:MM times, start before end, no
// duplicate (day, start) and no overlap within a day.
func ValidateAvailability(slots []models.AvailabilitySlot) error {
	type span struct{ start, end int }
	byDay := make(map[int][]span)
	for _, slot := range slots {
		if slot.DayOfWeek < 0 || slot.DayOfWeek > 6 {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("dayOfWeek must be between 0 and 6, got %d", slot.DayOfWeek))
		}
		start, err := minutesOf(slot.StartTime)
		if err != nil {
			return err
		}
		end, err := minutesOf(slot.EndTime)
		if err != nil {
			return err
		}
		if start >= end {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("startTime %s must be before endTime %s", slot.StartTime, slot.EndTime))
		}
		for _, other := range byDay[slot.DayOfWeek] {
			if other.start == start {
				return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("duplicate slot on day %d at %s", slot.DayOfWeek, slot.StartTime))
			}
			if start < other.end && other.start < end {
				return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("overlapping slots on day %d", slot.DayOfWeek))
			}
		}
		byDay[slot.DayOfWeek] = append(byDay[slot.DayOfWeek], span{start, end})
	}
	return nil
}

func minutesOf(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil || len(hhmm) != 5 {
		return 0, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("time %q must be HH:MM", hhmm))
	}
	return t.Hour()*60 + t.Minute(), nil
}

func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	if s.logger != nil {
		s.logger.InfoContext(ctx, event, args...)
	}
	if s.auditPublisher == nil {
		return
	}
	userID, _ := id.ParseUserID(attrs.ExtractString(attributes, "user_id"))
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		UserID:    userID,
		Subject:   attrs.ExtractString(attributes, "provider_id"),
		Action:    event,
		RequestID: requestID,
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", event, "error", err)
	}
}
