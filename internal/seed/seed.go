// Package seed loads the demo directory: specializations, provider accounts,
// profiles and weekly availability. Records are keyed by specialization name,
// user email and provider user id, so running it twice leaves the data
// unchanged.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Pallinder/go-randomdata"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	authmodels "minnetherapy/internal/auth/models"
	"minnetherapy/internal/auth/secrets"
	"minnetherapy/internal/directory/models"
	id "minnetherapy/pkg/domain"
)

// DefaultPassword is the password of every seeded provider account.
const DefaultPassword = "password123"

const (
	emailDomain      = "minnetherapy.com"
	coordinateJitter = 0.1
	premiumThreshold = 0.7
	maxConcurrency   = 4
)

type SpecializationStore interface {
	CreateIfAbsent(ctx context.Context, spec models.Specialization) (models.Specialization, error)
}

type UserStore interface {
	CreateIfAbsent(ctx context.Context, u *authmodels.User) (*authmodels.User, error)
}

type ProviderStore interface {
	CreateIfAbsent(ctx context.Context, p *models.Provider) (*models.Provider, error)
	LinkSpecializations(ctx context.Context, providerID id.ProviderID, specs []models.Specialization) error
	EnsureAvailability(ctx context.Context, providerID id.ProviderID, slots []models.AvailabilitySlot) error
}

// Seeder writes the demo data set.
type Seeder struct {
	specializations SpecializationStore
	users           UserStore
	providers       ProviderStore
	logger          *slog.Logger
	rng             *rand.Rand
	bcryptCost      int
	now             func() time.Time
}

type Option func(*Seeder)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Seeder) {
		s.logger = logger
	}
}

// WithRand fixes the random source so addresses, coordinates, tiers and
// hours are reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(s *Seeder) {
		s.rng = rng
	}
}

func WithBcryptCost(cost int) Option {
	return func(s *Seeder) {
		s.bcryptCost = cost
	}
}

func New(specs SpecializationStore, users UserStore, providers ProviderStore, opts ...Option) *Seeder {
	s := &Seeder{
		specializations: specs,
		users:           users,
		providers:       providers,
		logger:          slog.Default(),
		bcryptCost:      secrets.DefaultCost,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Report summarizes one run.
type Report struct {
	Specializations int
	Providers       int
}

// plan is one therapist with every random choice already made, so the
// concurrent writes stay deterministic under WithRand.
type plan struct {
	therapist therapist
	email     string
	city      city
	address   string
	latitude  float64
	longitude float64
	tier      models.MembershipType
	slots     []models.AvailabilitySlot
}

// Run seeds specializations first, then provider accounts in parallel.
func (s *Seeder) Run(ctx context.Context) (*Report, error) {
	byName, err := s.seedSpecializations(ctx)
	if err != nil {
		return nil, err
	}

	plans := s.plans()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for _, p := range plans {
		g.Go(func() error {
			return s.seedProvider(gctx, p, byName)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "seed completed",
		"specializations", len(byName),
		"providers", len(plans),
	)
	return &Report{Specializations: len(byName), Providers: len(plans)}, nil
}

func (s *Seeder) seedSpecializations(ctx context.Context) (map[string]models.Specialization, error) {
	byName := make(map[string]models.Specialization, len(specializations))
	for _, spec := range specializations {
		description := spec.Description
		stored, err := s.specializations.CreateIfAbsent(ctx, models.Specialization{
			ID:          id.SpecializationID(uuid.New()),
			Name:        spec.Name,
			Description: &description,
		})
		if err != nil {
			return nil, fmt.Errorf("seed specialization %q: %w", spec.Name, err)
		}
		byName[stored.Name] = stored
	}
	return byName, nil
}

// randomdataMu guards randomdata's package-global source, which plans swaps
// for the seeder's own rng.
var randomdataMu sync.Mutex

func (s *Seeder) plans() []plan {
	randomdataMu.Lock()
	defer randomdataMu.Unlock()
	randomdata.CustomRand(s.rng)
	out := make([]plan, len(therapists))
	for i, t := range therapists {
		c := minnesotaCities[i%len(minnesotaCities)]
		p := plan{
			therapist: t,
			email:     fmt.Sprintf("%s.%s@%s", strings.ToLower(t.FirstName), strings.ToLower(t.LastName), emailDomain),
			city:      c,
			address: fmt.Sprintf("%d %s Street",
				randomdata.Number(1000, 10999),
				randomdata.StringSample("Oak", "Maple", "Pine", "Cedar")),
			latitude:  c.Lat + (s.rng.Float64()-0.5)*coordinateJitter,
			longitude: c.Lng + (s.rng.Float64()-0.5)*coordinateJitter,
			tier:      models.MembershipFree,
		}
		if s.rng.Float64() > premiumThreshold {
			p.tier = models.MembershipPremium
		}
		for day := 1; day <= 5; day++ {
			p.slots = append(p.slots, models.AvailabilitySlot{
				DayOfWeek: day,
				StartTime: fmt.Sprintf("%02d:00", 8+s.rng.Intn(2)),
				EndTime:   fmt.Sprintf("%02d:00", 16+s.rng.Intn(2)),
			})
		}
		out[i] = p
	}
	return out
}

func (s *Seeder) seedProvider(ctx context.Context, p plan, specs map[string]models.Specialization) error {
	t := p.therapist
	hash, err := secrets.HashCost(DefaultPassword, max(s.bcryptCost, bcrypt.MinCost))
	if err != nil {
		return fmt.Errorf("hash password for %s: %w", p.email, err)
	}

	verifiedAt := s.now().UTC()
	user, err := s.users.CreateIfAbsent(ctx, &authmodels.User{
		ID:              id.UserID(uuid.New()),
		Email:           p.email,
		PasswordHash:    hash,
		Role:            id.RoleProvider,
		EmailVerifiedAt: &verifiedAt,
	})
	if err != nil {
		return fmt.Errorf("seed user %s: %w", p.email, err)
	}

	bio, years, lat, lng := t.Bio, t.YearsOfExperience, p.latitude, p.longitude
	provider, err := s.providers.CreateIfAbsent(ctx, &models.Provider{
		ID:                id.ProviderID(uuid.New()),
		UserID:            user.ID,
		FirstName:         t.FirstName,
		LastName:          t.LastName,
		LicenseNumber:     t.LicenseNumber,
		Phone:             t.Phone,
		Address:           p.address,
		City:              p.city.Name,
		State:             "MN",
		ZipCode:           p.city.Zip,
		Bio:               &bio,
		YearsOfExperience: &years,
		Latitude:          &lat,
		Longitude:         &lng,
		MembershipType:    p.tier,
		IsVerified:        true,
	})
	if err != nil {
		return fmt.Errorf("seed provider %s %s: %w", t.FirstName, t.LastName, err)
	}

	links := make([]models.Specialization, 0, len(t.Specializations))
	for _, name := range t.Specializations {
		if spec, ok := specs[name]; ok {
			links = append(links, spec)
		}
	}
	if err := s.providers.LinkSpecializations(ctx, provider.ID, links); err != nil {
		return fmt.Errorf("link specializations for %s: %w", p.email, err)
	}
	// A provider seeded earlier keeps the schedule it already has; adding a
	// second random schedule would create overlapping slots.
	if len(provider.Availability) == 0 {
		if err := s.providers.EnsureAvailability(ctx, provider.ID, p.slots); err != nil {
			return fmt.Errorf("seed availability for %s: %w", p.email, err)
		}
	}

	s.logger.DebugContext(ctx, "seeded provider",
		"provider_id", provider.ID.String(),
		"city", p.city.Name,
		"membership_type", string(provider.MembershipType),
	)
	return nil
}
