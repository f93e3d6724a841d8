package workshop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "vokasia/pkg/domain-errors"
)

type WorkshopServiceSuite struct {
	suite.Suite
	ctx     context.Context
	store   *InMemoryStore
	service *Service
}

func TestWorkshopServiceSuite(t *testing.T) {
	suite.Run(t, new(WorkshopServiceSuite))
}

func (s *WorkshopServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemoryStore()

	var err error
	s.service, err = NewService(s.store, 100)
	s.Require().NoError(err)
}

func (s *WorkshopServiceSuite) validParams() CreateParams {
	return CreateParams{
		MitraID:   "mitra-1",
		Title:     "Welding Basics",
		VenueName: "BLK Jakarta Timur",
		Latitude:  -6.2088,
		Longitude: 106.8456,
		StartsAt:  time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
		EndsAt:    time.Date(2026, 4, 1, 16, 0, 0, 0, time.UTC),
		Capacity:  2,
	}
}

func (s *WorkshopServiceSuite) TestCreate() {
	s.Run("valid request persists with default radius", func() {
		w, err := s.service.Create(s.ctx, s.validParams())
		s.Require().NoError(err)
		s.NotEmpty(w.ID)
		s.Equal(100.0, w.Geofence.RadiusM)

		got, err := s.service.Get(s.ctx, w.ID)
		s.NoError(err)
		s.Equal(w.Title, got.Title)
	})

	s.Run("explicit radius is kept", func() {
		p := s.validParams()
		p.RadiusM = 50
		w, err := s.service.Create(s.ctx, p)
		s.Require().NoError(err)
		s.Equal(50.0, w.Geofence.RadiusM)
	})

	s.Run("missing title rejected", func() {
		p := s.validParams()
		p.Title = "  "
		_, err := s.service.Create(s.ctx, p)
		s.Equal(dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})

	s.Run("invalid coordinates rejected", func() {
		p := s.validParams()
		p.Latitude = 95
		_, err := s.service.Create(s.ctx, p)
		s.Equal(dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})

	s.Run("negative radius rejected", func() {
		p := s.validParams()
		p.RadiusM = -5
		_, err := s.service.Create(s.ctx, p)
		s.Equal(dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})

	s.Run("ends before starts rejected", func() {
		p := s.validParams()
		p.EndsAt = p.StartsAt.Add(-time.Hour)
		_, err := s.service.Create(s.ctx, p)
		s.Equal(dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})
}

func (s *WorkshopServiceSuite) TestGetMissing() {
	_, err := s.service.Get(s.ctx, "no-such-id")
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func (s *WorkshopServiceSuite) TestRegister() {
	w, err := s.service.Create(s.ctx, s.validParams())
	s.Require().NoError(err)

	s.Run("first registration succeeds", func() {
		reg, err := s.service.Register(s.ctx, w.ID, "talenta-1")
		s.Require().NoError(err)
		s.Equal(w.ID, reg.WorkshopID)

		registered, err := s.store.IsRegistered(s.ctx, w.ID, "talenta-1")
		s.NoError(err)
		s.True(registered)
	})

	s.Run("duplicate registration conflicts", func() {
		_, err := s.service.Register(s.ctx, w.ID, "talenta-1")
		s.Equal(dErrors.CodeConflict, dErrors.CodeOf(err))
	})

	s.Run("capacity enforced", func() {
		_, err := s.service.Register(s.ctx, w.ID, "talenta-2")
		s.Require().NoError(err)
		_, err = s.service.Register(s.ctx, w.ID, "talenta-3")
		s.Equal(dErrors.CodeConflict, dErrors.CodeOf(err))
	})

	s.Run("unknown workshop not found", func() {
		_, err := s.service.Register(s.ctx, "no-such-id", "talenta-9")
		s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
	})
}
