package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ProviderStore,SpecializationStore,AuditPublisher

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"minnetherapy/internal/directory/metrics"
	"minnetherapy/internal/directory/models"
	"minnetherapy/internal/directory/service/mocks"
	id "minnetherapy/pkg/domain"
	dErrors "minnetherapy/pkg/domain-errors"
	audit "minnetherapy/pkg/platform/audit"
	"minnetherapy/pkg/platform/sentinel"
	"minnetherapy/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	providers *mocks.MockProviderStore
	specs     *mocks.MockSpecializationStore
	publisher *mocks.MockAuditPublisher
	metrics   *metrics.Metrics
	service   *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.providers = mocks.NewMockProviderStore(s.ctrl)
	s.specs = mocks.NewMockSpecializationStore(s.ctrl)
	s.publisher = mocks.NewMockAuditPublisher(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.service = New(s.providers, s.specs,
		WithAuditPublisher(s.publisher),
		WithMetrics(s.metrics),
	)
	s.ctx = requestcontext.WithRequestID(context.Background(), "req-1")
}

func ptr[T any](v T) *T { return &v }

func provider(first string, membership models.MembershipType, years *int, lat, lng *float64) models.Provider {
	return models.Provider{
		ID:                id.ProviderID(uuid.New()),
		UserID:            id.UserID(uuid.New()),
		FirstName:         first,
		MembershipType:    membership,
		YearsOfExperience: years,
		Latitude:          lat,
		Longitude:         lng,
		IsVerified:        true,
	}
}

func (s *ServiceSuite) TestSearch() {
	s.Run("normalizes criteria, filters by radius and ranks", func() {
		candidates := []models.Provider{
			provider("Emily", models.MembershipFree, ptr(12), ptr(44.9537), ptr(-93.0900)),
			provider("Robert", models.MembershipPremium, ptr(5), ptr(44.9778), ptr(-93.2650)),
			provider("Dana", models.MembershipPremium, ptr(20), ptr(46.7867), ptr(-92.1005)),
			provider("Amanda", models.MembershipPremium, ptr(5), ptr(44.98), ptr(-93.27)),
		}
		s.providers.EXPECT().
			FindCandidates(gomock.Any(), models.Criteria{TextTerm: "therapy"}).
			Return(candidates, nil)

		got, err := s.service.Search(s.ctx, Query{
			Criteria: models.Criteria{TextTerm: "  therapy ", CityTerm: "  "},
			Geo:      &models.GeoFilter{OriginLat: 44.9778, OriginLng: -93.2650, RadiusMiles: 10},
		})
		s.Require().NoError(err)

		var names []string
		for _, p := range got {
			names = append(names, p.FirstName)
		}
		s.Equal([]string{"Amanda", "Robert", "Emily"}, names)
	})

	s.Run("store failure is a retrieval failure with no results", func() {
		s.providers.EXPECT().FindCandidates(gomock.Any(), gomock.Any()).
			Return([]models.Provider{provider("Partial", models.MembershipFree, nil, nil, nil)}, errors.New("connection reset"))

		got, err := s.service.Search(s.ctx, Query{})
		s.Nil(got)
		s.True(dErrors.HasCode(err, dErrors.CodeRetrievalFailure))
		s.Equal(1.0, promtestutil.ToFloat64(s.metrics.RetrievalFailures))
	})
}

func (s *ServiceSuite) TestGetProvider() {
	verified := provider("Sarah", models.MembershipFree, nil, nil, nil)
	unverified := provider("Ghost", models.MembershipFree, nil, nil, nil)
	unverified.IsVerified = false

	s.providers.EXPECT().FindByID(gomock.Any(), verified.ID).Return(&verified, nil)
	s.providers.EXPECT().FindByID(gomock.Any(), unverified.ID).Return(&unverified, nil)
	missing := id.ProviderID(uuid.New())
	s.providers.EXPECT().FindByID(gomock.Any(), missing).Return(nil, sentinel.ErrNotFound)

	got, err := s.service.GetProvider(s.ctx, verified.ID)
	s.Require().NoError(err)
	s.Equal("Sarah", got.FirstName)

	_, err = s.service.GetProvider(s.ctx, unverified.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound), "unverified providers are hidden")

	_, err = s.service.GetProvider(s.ctx, missing)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *ServiceSuite) TestUpdateProfile() {
	userID := id.UserID(uuid.New())
	hand := models.Specialization{ID: id.SpecializationID(uuid.New()), Name: "Hand Therapy"}

	s.Run("rejects invalid input before touching stores", func() {
		for name, update := range map[string]models.ProfileUpdate{
			"negative experience": {YearsOfExperience: ptr(-1)},
			"latitude only":       {Latitude: ptr(44.9)},
			"out of range":        {Latitude: ptr(91.0), Longitude: ptr(-93.0)},
		} {
			_, err := s.service.UpdateProfile(s.ctx, userID, update)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation), name)
		}
	})

	s.Run("unknown specialization is a validation error", func() {
		existing := provider("Kevin", models.MembershipFree, nil, nil, nil)
		s.providers.EXPECT().FindByUserID(gomock.Any(), userID).Return(&existing, nil)
		s.specs.EXPECT().FindByNames(gomock.Any(), []string{"Hand Therapy", "Astrology"}).
			Return([]models.Specialization{hand}, nil)

		_, err := s.service.UpdateProfile(s.ctx, userID, models.ProfileUpdate{
			Specializations: []string{"Hand Therapy", "Astrology"},
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Contains(err.Error(), "Astrology")
	})

	s.Run("writes editable fields and emits audit", func() {
		existing := provider("Kevin", models.MembershipPremium, ptr(9), nil, nil)
		s.providers.EXPECT().FindByUserID(gomock.Any(), userID).Return(&existing, nil).Times(2)
		s.specs.EXPECT().FindByNames(gomock.Any(), []string{"Hand Therapy"}).
			Return([]models.Specialization{hand}, nil)
		s.providers.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, p *models.Provider) error {
				s.Equal("763-555-0112", p.Phone)
				s.Equal(10, *p.YearsOfExperience)
				s.Equal([]models.Specialization{hand}, p.Specializations)
				s.Equal(models.MembershipPremium, p.MembershipType)
				return nil
			})
		s.publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e audit.Event) error {
				s.Equal(string(audit.EventProviderProfileUpdated), e.Action)
				s.Equal(userID, e.UserID)
				s.Equal("req-1", e.RequestID)
				return nil
			})

		_, err := s.service.UpdateProfile(s.ctx, userID, models.ProfileUpdate{
			Phone:             "763-555-0112",
			YearsOfExperience: ptr(10),
			Specializations:   []string{" Hand Therapy", "hand therapy", ""},
		})
		s.Require().NoError(err)
		s.Equal(1.0, promtestutil.ToFloat64(s.metrics.ProfileUpdates.WithLabelValues("profile")))
	})

	s.Run("missing profile", func() {
		other := id.UserID(uuid.New())
		s.providers.EXPECT().FindByUserID(gomock.Any(), other).Return(nil, sentinel.ErrNotFound)
		_, err := s.service.UpdateProfile(s.ctx, other, models.ProfileUpdate{})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ServiceSuite) TestUpdateAvailability() {
	userID := id.UserID(uuid.New())
	existing := provider("Nicole", models.MembershipFree, nil, nil, nil)
	slots := []models.AvailabilitySlot{
		{DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00"},
		{DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00"},
	}

	s.Run("invalid schedule is rejected", func() {
		_, err := s.service.UpdateAvailability(s.ctx, userID, []models.AvailabilitySlot{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "12:00"},
			{DayOfWeek: 1, StartTime: "11:00", EndTime: "13:00"},
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("replaces schedule", func() {
		updated := existing
		updated.Availability = slots
		gomock.InOrder(
			s.providers.EXPECT().FindByUserID(gomock.Any(), userID).Return(&existing, nil),
			s.providers.EXPECT().ReplaceAvailability(gomock.Any(), existing.ID, slots).Return(nil),
			s.providers.EXPECT().FindByUserID(gomock.Any(), userID).Return(&updated, nil),
		)
		s.publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("sink down"))

		got, err := s.service.UpdateAvailability(s.ctx, userID, slots)
		s.Require().NoError(err, "audit failures do not fail the update")
		s.Equal(slots, got)
	})
}

func (s *ServiceSuite) TestListSpecializationsIsCached() {
	specs := []models.Specialization{{ID: id.SpecializationID(uuid.New()), Name: "Autism Spectrum"}}
	s.specs.EXPECT().List(gomock.Any()).Return(specs, nil).Times(1)

	first, err := s.service.ListSpecializations(s.ctx)
	s.Require().NoError(err)
	second, err := s.service.ListSpecializations(s.ctx)
	s.Require().NoError(err)
	s.Equal(first, second)
	s.Equal(1.0, promtestutil.ToFloat64(s.metrics.SpecializationCacheHits.WithLabelValues("hit")))

	s.service.InvalidateSpecializations()
	s.specs.EXPECT().List(gomock.Any()).Return(nil, errors.New("boom"))
	_, err = s.service.ListSpecializations(s.ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeRetrievalFailure))
}

func TestValidateAvailability(t *testing.T) {
	tests := []struct {
		name    string
		slots   []models.AvailabilitySlot
		wantErr bool
	}{
		{name: "empty schedule", slots: nil},
		{name: "weekday hours", slots: []models.AvailabilitySlot{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "17:00"},
			{DayOfWeek: 2, StartTime: "09:00", EndTime: "17:00"},
		}},
		{name: "touching slots", slots: []models.AvailabilitySlot{
			{DayOfWeek: 3, StartTime: "09:00", EndTime: "12:00"},
			{DayOfWeek: 3, StartTime: "12:00", EndTime: "15:00"},
		}},
		{name: "day out of range", slots: []models.AvailabilitySlot{{DayOfWeek: 7, StartTime: "09:00", EndTime: "10:00"}}, wantErr: true},
		{name: "bad time format", slots: []models.AvailabilitySlot{{DayOfWeek: 1, StartTime: "9:00", EndTime: "10:00"}}, wantErr: true},
		{name: "end before start", slots: []models.AvailabilitySlot{{DayOfWeek: 1, StartTime: "10:00", EndTime: "09:00"}}, wantErr: true},
		{name: "duplicate start", slots: []models.AvailabilitySlot{
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "10:00"},
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "11:00"},
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAvailability(tt.slots)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
				return
			}
			assert.NoError(t, err)
		})
	}
}
