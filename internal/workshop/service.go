package workshop

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"vokasia/internal/geo"
	dErrors "vokasia/pkg/domain-errors"
)

// Service validates catalog operations and keeps orchestration out of
// handlers.
type Service struct {
	store          Store
	defaultRadiusM float64
	now            func() time.Time
}

func NewService(store Store, defaultRadiusM float64) (*Service, error) {
	if store == nil {
		return nil, errors.New("workshop store is required")
	}
	if defaultRadiusM <= 0 {
		defaultRadiusM = 100
	}
	return &Service{store: store, defaultRadiusM: defaultRadiusM, now: time.Now}, nil
}

// CreateParams carries a mitra's new-workshop request.
type CreateParams struct {
	MitraID     string
	Title       string
	Description string
	VenueName   string
	Latitude    float64
	Longitude   float64
	RadiusM     float64
	StartsAt    time.Time
	EndsAt      time.Time
	Capacity    int
}

// Create validates the request and persists the workshop. A missing radius
// falls back to the configured default; the stored value becomes the single
// authority for attendance checks.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Workshop, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "workshop title is required")
	}
	if p.Capacity < 0 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "capacity must not be negative")
	}
	if !p.EndsAt.IsZero() && !p.StartsAt.IsZero() && p.EndsAt.Before(p.StartsAt) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "workshop must not end before it starts")
	}

	radius := p.RadiusM
	if radius == 0 {
		radius = s.defaultRadiusM
	}
	fence := geo.Fence{Center: geo.Point{Lat: p.Latitude, Lon: p.Longitude}, RadiusM: radius}
	if err := fence.Validate(); err != nil {
		return nil, err
	}

	w := &Workshop{
		ID:          uuid.NewString(),
		MitraID:     p.MitraID,
		Title:       p.Title,
		Description: p.Description,
		VenueName:   strings.TrimSpace(p.VenueName),
		Geofence:    fence,
		StartsAt:    p.StartsAt,
		EndsAt:      p.EndsAt,
		Capacity:    p.Capacity,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.store.Create(ctx, w); err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to create workshop")
	}
	return w, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Workshop, error) {
	w, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "workshop not found")
		}
		return nil, err
	}
	return w, nil
}

func (s *Service) List(ctx context.Context) ([]*Workshop, error) {
	return s.store.List(ctx)
}

// Register enrolls a talenta, translating store sentinels into coded errors.
func (s *Service) Register(ctx context.Context, workshopID, talentaID string) (*Registration, error) {
	reg := &Registration{
		ID:           uuid.NewString(),
		WorkshopID:   workshopID,
		TalentaID:    talentaID,
		RegisteredAt: s.now().UTC(),
	}
	err := s.store.Register(ctx, reg)
	switch {
	case err == nil:
		return reg, nil
	case errors.Is(err, ErrNotFound):
		return nil, dErrors.New(dErrors.CodeNotFound, "workshop not found")
	case errors.Is(err, ErrWorkshopFull):
		return nil, dErrors.New(dErrors.CodeConflict, "workshop is fully booked")
	case errors.Is(err, ErrAlreadyRegistered):
		return nil, dErrors.New(dErrors.CodeConflict, "already registered for this workshop")
	default:
		return nil, dErrors.New(dErrors.CodeInternal, "failed to register for workshop")
	}
}
