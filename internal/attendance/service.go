package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vokasia/internal/attendance/metrics"
	"vokasia/internal/audit"
	"vokasia/internal/geo"
	"vokasia/internal/qrtoken"
	"vokasia/internal/workshop"
	dErrors "vokasia/pkg/domain-errors"
)

// Directory is the slice of the workshop store the attendance service needs.
type Directory interface {
	Get(ctx context.Context, id string) (*workshop.Workshop, error)
	IsRegistered(ctx context.Context, workshopID, talentaID string) (bool, error)
	ListRegistrants(ctx context.Context, workshopID string) ([]*workshop.Registration, error)
}

// PassVerifier validates a scanned pass against a workshop session.
type PassVerifier interface {
	Verify(tokenString, workshopID, sessionID string) (*qrtoken.PassClaims, error)
	TTL() time.Duration
}

// AuditPublisher receives the append-only trail.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service verifies and records attendance. It never trusts the client's
// verdict: the geofence check is recomputed here from the stored workshop
// location, and the pass is checked for expiry and replay on every call.
type Service struct {
	store     Store
	workshops Directory
	passes    PassVerifier
	consumer  qrtoken.ConsumerStore
	auditor   AuditPublisher
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	now       func() time.Time
}

func NewService(store Store, workshops Directory, passes PassVerifier, consumer qrtoken.ConsumerStore, auditor AuditPublisher, m *metrics.Metrics) (*Service, error) {
	if store == nil {
		return nil, errors.New("attendance store is required")
	}
	if workshops == nil {
		return nil, errors.New("workshop directory is required")
	}
	if passes == nil {
		return nil, errors.New("pass verifier is required")
	}
	if consumer == nil {
		return nil, errors.New("pass consumer store is required")
	}
	return &Service{
		store:     store,
		workshops: workshops,
		passes:    passes,
		consumer:  consumer,
		auditor:   auditor,
		metrics:   m,
		tracer:    otel.Tracer("vokasia/attendance"),
		now:       time.Now,
	}, nil
}

// RecordCommand is one attendance submission.
type RecordCommand struct {
	WorkshopID string
	SessionID  string
	TalentaID  string
	Latitude   float64
	Longitude  float64
	Pass       string
}

// Record runs the full server-side verification and persists the record.
func (s *Service) Record(ctx context.Context, cmd RecordCommand) (*Record, error) {
	start := s.now()
	ctx, span := s.tracer.Start(ctx, "attendance.Record",
		trace.WithAttributes(
			attribute.String("workshop.id", cmd.WorkshopID),
			attribute.String("session.id", cmd.SessionID),
		))
	defer span.End()

	point := geo.Point{Lat: cmd.Latitude, Lon: cmd.Longitude}
	if err := point.Validate(); err != nil {
		s.metrics.IncrementOutcome("rejected")
		return nil, err
	}

	w, err := s.workshops.Get(ctx, cmd.WorkshopID)
	if err != nil {
		if errors.Is(err, workshop.ErrNotFound) {
			s.metrics.IncrementOutcome("rejected")
			return nil, dErrors.New(dErrors.CodeNotFound, "workshop not found")
		}
		return nil, fmt.Errorf("load workshop: %w", err)
	}

	claims, err := s.passes.Verify(cmd.Pass, cmd.WorkshopID, cmd.SessionID)
	if err != nil {
		s.metrics.IncrementOutcome("invalid_pass")
		return nil, err
	}

	distance, inside := w.Geofence.Check(point)
	span.SetAttributes(attribute.Float64("geofence.distance_m", distance))
	if !inside {
		s.metrics.IncrementOutcome("out_of_range")
		return nil, dErrors.New(dErrors.CodeGeofenceViolation,
			fmt.Sprintf("you are %.0f m from the venue, move %.0f m closer", distance, distance-w.Geofence.RadiusM)).
			WithField("distance_m", distance).
			WithField("radius_m", w.Geofence.RadiusM)
	}

	registered, err := s.workshops.IsRegistered(ctx, cmd.WorkshopID, cmd.TalentaID)
	if err != nil {
		return nil, fmt.Errorf("check registration: %w", err)
	}
	if !registered {
		s.metrics.IncrementOutcome("rejected")
		return nil, dErrors.New(dErrors.CodeForbidden, "not registered for this workshop")
	}

	if err := s.consumer.Consume(ctx, claims.ID, cmd.TalentaID, s.passes.TTL()); err != nil {
		s.metrics.IncrementOutcome("invalid_pass")
		return nil, err
	}

	rec := &Record{
		ID:         uuid.NewString(),
		WorkshopID: cmd.WorkshopID,
		SessionID:  cmd.SessionID,
		TalentaID:  cmd.TalentaID,
		Point:      point,
		DistanceM:  distance,
		RecordedAt: s.now().UTC(),
	}
	if err := s.store.Create(ctx, rec); err != nil {
		if errors.Is(err, ErrAlreadyRecorded) {
			s.metrics.IncrementOutcome("rejected")
			return nil, dErrors.New(dErrors.CodeConflict, "attendance already recorded for this session")
		}
		s.metrics.IncrementOutcome("error")
		return nil, dErrors.New(dErrors.CodeUnavailable, "failed to persist attendance record")
	}

	if s.auditor != nil {
		s.auditor.Emit(ctx, audit.Event{
			Kind:       audit.KindAttendanceRecorded,
			ActorID:    cmd.TalentaID,
			WorkshopID: cmd.WorkshopID,
			Detail: map[string]any{
				"session_id": cmd.SessionID,
				"distance_m": distance,
			},
		})
	}
	s.metrics.IncrementOutcome("recorded")
	s.metrics.ObserveAccepted(distance)
	s.metrics.ObserveRecordLatency(s.now().Sub(start))
	return rec, nil
}

// Roster returns all registrants joined with their attendance for a session,
// plus the attended / not-attended counts.
func (s *Service) Roster(ctx context.Context, workshopID, sessionID string) (*Roster, error) {
	if _, err := s.workshops.Get(ctx, workshopID); err != nil {
		if errors.Is(err, workshop.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "workshop not found")
		}
		return nil, fmt.Errorf("load workshop: %w", err)
	}

	regs, err := s.workshops.ListRegistrants(ctx, workshopID)
	if err != nil {
		return nil, fmt.Errorf("list registrants: %w", err)
	}
	records, err := s.store.ListBySession(ctx, workshopID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	byTalenta := make(map[string]*Record, len(records))
	for _, r := range records {
		byTalenta[r.TalentaID] = r
	}

	roster := &Roster{
		WorkshopID: workshopID,
		SessionID:  sessionID,
		Entries:    make([]RosterEntry, 0, len(regs)),
	}
	for _, reg := range regs {
		entry := RosterEntry{
			TalentaID:    reg.TalentaID,
			TalentaName:  reg.TalentaName,
			RegisteredAt: reg.RegisteredAt,
			Attendance:   byTalenta[reg.TalentaID],
		}
		if entry.Attendance != nil {
			roster.Attended++
		} else {
			roster.NotAttended++
		}
		roster.Entries = append(roster.Entries, entry)
	}
	return roster, nil
}

// HasAttended reports whether the talenta has any attendance record for the
// workshop. Used by certificate eligibility.
func (s *Service) HasAttended(ctx context.Context, workshopID, talentaID string) (bool, error) {
	return s.store.HasAttended(ctx, workshopID, talentaID)
}
