package provider

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"minnetherapy/internal/directory/models"
	id "minnetherapy/pkg/domain"
	"minnetherapy/pkg/platform/sentinel"
)

type InMemoryProviderStoreSuite struct {
	suite.Suite
	store *InMemoryProviderStore
	ctx   context.Context

	handTherapy models.Specialization
	pediatric   models.Specialization
}

func TestInMemoryProviderStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryProviderStoreSuite))
}

func (s *InMemoryProviderStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
	s.handTherapy = models.Specialization{ID: id.SpecializationID(uuid.New()), Name: "Hand Therapy"}
	s.pediatric = models.Specialization{ID: id.SpecializationID(uuid.New()), Name: "Pediatric Therapy"}
}

func (s *InMemoryProviderStoreSuite) seed(first, last, city string, verified bool, specs ...models.Specialization) *models.Provider {
	p := &models.Provider{
		ID:              id.ProviderID(uuid.New()),
		UserID:          id.UserID(uuid.New()),
		FirstName:       first,
		LastName:        last,
		City:            city,
		State:           "MN",
		MembershipType:  models.MembershipFree,
		IsVerified:      verified,
		Specializations: specs,
	}
	stored, err := s.store.CreateIfAbsent(s.ctx, p)
	s.Require().NoError(err)
	return stored
}

func (s *InMemoryProviderStoreSuite) firstNames(c models.Criteria) []string {
	got, err := s.store.FindCandidates(s.ctx, c)
	s.Require().NoError(err)
	out := make([]string, 0, len(got))
	for _, p := range got {
		out = append(out, p.FirstName)
	}
	return out
}

func (s *InMemoryProviderStoreSuite) TestFindCandidates() {
	s.seed("Sarah", "Johnson", "Minneapolis", true, s.pediatric)
	s.seed("Michael", "Chen", "Saint Paul", true, s.handTherapy)
	s.seed("Kevin", "White", "Minnetonka", true, s.handTherapy, s.pediatric)
	s.seed("Hidden", "Unverified", "Minneapolis", false, s.handTherapy)

	s.Run("no criteria returns every verified provider", func() {
		s.ElementsMatch([]string{"Sarah", "Michael", "Kevin"}, s.firstNames(models.Criteria{}))
	})

	s.Run("text term matches names case-insensitively", func() {
		s.Equal([]string{"Michael"}, s.firstNames(models.Criteria{TextTerm: "cHEN"}))
	})

	s.Run("text term matches city or specialization name", func() {
		s.ElementsMatch([]string{"Sarah", "Kevin"}, s.firstNames(models.Criteria{TextTerm: "pediatric"}))
		s.ElementsMatch([]string{"Sarah", "Kevin"}, s.firstNames(models.Criteria{TextTerm: "minne"}))
	})

	s.Run("city term is a substring match", func() {
		s.Equal([]string{"Michael"}, s.firstNames(models.Criteria{CityTerm: "saint"}))
	})

	s.Run("specialization name must match exactly", func() {
		s.ElementsMatch([]string{"Michael", "Kevin"}, s.firstNames(models.Criteria{SpecializationName: "Hand Therapy"}))
		s.Empty(s.firstNames(models.Criteria{SpecializationName: "hand therapy"}))
	})

	s.Run("terms combine with AND", func() {
		s.Equal([]string{"Kevin"}, s.firstNames(models.Criteria{
			TextTerm:           "white",
			SpecializationName: "Pediatric Therapy",
			CityTerm:           "tonka",
		}))
	})

	s.Run("whitespace-only terms are ignored", func() {
		s.Len(s.firstNames(models.Criteria{TextTerm: "   ", CityTerm: "\t"}), 3)
	})

	s.Run("results are ordered by id", func() {
		got, err := s.store.FindCandidates(s.ctx, models.Criteria{})
		s.Require().NoError(err)
		for i := 1; i < len(got); i++ {
			s.Negative(uuidCompare(got[i-1].ID, got[i].ID))
		}
	})
}

func uuidCompare(a, b id.ProviderID) int {
	for i := range a {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return 0
}

func (s *InMemoryProviderStoreSuite) TestCreateIfAbsent() {
	s.Run("existing user keeps original record", func() {
		first := s.seed("Lisa", "Anderson", "Bloomington", true)

		again := *first
		again.ID = id.ProviderID(uuid.New())
		again.FirstName = "Changed"
		got, err := s.store.CreateIfAbsent(s.ctx, &again)
		s.Require().NoError(err)
		s.Equal(first.ID, got.ID)
		s.Equal("Lisa", got.FirstName)
	})

	s.Run("reused provider id for another user conflicts", func() {
		first := s.seed("James", "Wilson", "Brooklyn Park", true)
		dup := *first
		dup.UserID = id.UserID(uuid.New())
		_, err := s.store.CreateIfAbsent(s.ctx, &dup)
		s.ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *InMemoryProviderStoreSuite) TestUpdate() {
	p := s.seed("Emily", "Rodriguez", "Rochester", true, s.pediatric)
	years := 12

	p.Phone = "507-555-0199"
	p.YearsOfExperience = &years
	p.MembershipType = models.MembershipPremium
	p.IsVerified = false
	p.Specializations = []models.Specialization{s.handTherapy}
	s.Require().NoError(s.store.Update(s.ctx, p))

	got, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("507-555-0199", got.Phone)
	s.Equal(12, *got.YearsOfExperience)
	s.Equal(models.MembershipFree, got.MembershipType, "tier is not writable")
	s.True(got.IsVerified, "verification is not writable")
	s.Equal([]models.Specialization{s.handTherapy}, got.Specializations)

	s.Run("unknown provider", func() {
		err := s.store.Update(s.ctx, &models.Provider{ID: id.ProviderID(uuid.New())})
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryProviderStoreSuite) TestAvailability() {
	p := s.seed("Nicole", "Hall", "Eagan", true)

	s.Require().NoError(s.store.EnsureAvailability(s.ctx, p.ID, []models.AvailabilitySlot{
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: 1, StartTime: "08:00", EndTime: "16:00"},
	}))
	s.Require().NoError(s.store.EnsureAvailability(s.ctx, p.ID, []models.AvailabilitySlot{
		{DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00"},
	}))

	got, err := s.store.FindByUserID(s.ctx, p.UserID)
	s.Require().NoError(err)
	s.Equal([]models.AvailabilitySlot{
		{DayOfWeek: 1, StartTime: "08:00", EndTime: "16:00"},
		{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
	}, got.Availability, "existing (day, start) is kept")

	s.Require().NoError(s.store.ReplaceAvailability(s.ctx, p.ID, []models.AvailabilitySlot{
		{DayOfWeek: 5, StartTime: "10:00", EndTime: "14:00"},
	}))
	got, err = s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal([]models.AvailabilitySlot{{DayOfWeek: 5, StartTime: "10:00", EndTime: "14:00"}}, got.Availability)

	s.ErrorIs(s.store.ReplaceAvailability(s.ctx, id.ProviderID(uuid.New()), nil), sentinel.ErrNotFound)
}

func (s *InMemoryProviderStoreSuite) TestReadsReturnCopies() {
	p := s.seed("Rachel", "Lewis", "Woodbury", true, s.pediatric)

	got, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	got.FirstName = "Mutated"
	got.Specializations[0].Name = "Mutated"

	again, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal("Rachel", again.FirstName)
	s.Equal("Pediatric Therapy", again.Specializations[0].Name)
}

func (s *InMemoryProviderStoreSuite) TestLinkSpecializations() {
	p := s.seed("Daniel", "Clark", "Minneapolis", true, s.pediatric)

	s.Require().NoError(s.store.LinkSpecializations(s.ctx, p.ID, []models.Specialization{s.pediatric, s.handTherapy}))

	got, err := s.store.FindByID(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal([]models.Specialization{s.handTherapy, s.pediatric}, got.Specializations)
}
