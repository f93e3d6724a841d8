package certificate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"vokasia/internal/audit"
	"vokasia/internal/workshop"
	dErrors "vokasia/pkg/domain-errors"
)

// AttendanceChecker answers whether a talenta attended a workshop.
type AttendanceChecker interface {
	HasAttended(ctx context.Context, workshopID, talentaID string) (bool, error)
}

// Directory is the slice of the workshop store the certificate service needs.
type Directory interface {
	Get(ctx context.Context, id string) (*workshop.Workshop, error)
	IsRegistered(ctx context.Context, workshopID, talentaID string) (bool, error)
}

// AuditPublisher receives the append-only trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service issues certificates to talenta with a recorded attendance.
type Service struct {
	store      Store
	attendance AttendanceChecker
	workshops  Directory
	auditor    AuditPublisher
	now        func() time.Time
}

func NewService(store Store, attendance AttendanceChecker, workshops Directory, auditor AuditPublisher) (*Service, error) {
	if store == nil {
		return nil, errors.New("certificate store is required")
	}
	if attendance == nil {
		return nil, errors.New("attendance checker is required")
	}
	if workshops == nil {
		return nil, errors.New("workshop directory is required")
	}
	return &Service{
		store:      store,
		attendance: attendance,
		workshops:  workshops,
		auditor:    auditor,
		now:        time.Now,
	}, nil
}

// Issue creates a certificate for a talenta who attended the workshop.
// Issuance is idempotent: a repeat call returns the existing certificate.
func (s *Service) Issue(ctx context.Context, workshopID, talentaID string) (*Certificate, error) {
	w, err := s.workshops.Get(ctx, workshopID)
	if err != nil {
		if errors.Is(err, workshop.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "workshop not found")
		}
		return nil, fmt.Errorf("load workshop: %w", err)
	}

	registered, err := s.workshops.IsRegistered(ctx, workshopID, talentaID)
	if err != nil {
		return nil, fmt.Errorf("check registration: %w", err)
	}
	if !registered {
		return nil, dErrors.New(dErrors.CodeUnprocessable, "talenta is not registered for this workshop")
	}

	attended, err := s.attendance.HasAttended(ctx, workshopID, talentaID)
	if err != nil {
		return nil, fmt.Errorf("check attendance: %w", err)
	}
	if !attended {
		return nil, dErrors.New(dErrors.CodeUnprocessable, "no attendance recorded for this talenta")
	}

	c := &Certificate{
		ID:           uuid.NewString(),
		WorkshopID:   workshopID,
		TalentaID:    talentaID,
		SerialNumber: s.serialNumber(),
		IssuedAt:     s.now().UTC(),
	}
	if err := s.store.Create(ctx, c); err != nil {
		if errors.Is(err, ErrAlreadyIssued) {
			return s.store.Get(ctx, workshopID, talentaID)
		}
		return nil, dErrors.New(dErrors.CodeUnavailable, "failed to persist certificate")
	}

	if s.auditor != nil {
		s.auditor.Emit(ctx, audit.Event{
			Kind:       audit.KindCertificateIssued,
			ActorID:    w.MitraID,
			WorkshopID: workshopID,
			Detail: map[string]any{
				"talenta_id":    talentaID,
				"serial_number": c.SerialNumber,
			},
		})
	}
	return c, nil
}

// ListByWorkshop returns the workshop's issued certificates.
func (s *Service) ListByWorkshop(ctx context.Context, workshopID string) ([]*Certificate, error) {
	if _, err := s.workshops.Get(ctx, workshopID); err != nil {
		if errors.Is(err, workshop.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "workshop not found")
		}
		return nil, fmt.Errorf("load workshop: %w", err)
	}
	return s.store.ListByWorkshop(ctx, workshopID)
}

func (s *Service) serialNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("VOK-%d-%s", s.now().Year(), suffix)
}
