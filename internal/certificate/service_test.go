package certificate

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"vokasia/internal/audit"
	"vokasia/internal/geo"
	"vokasia/internal/workshop"
	dErrors "vokasia/pkg/domain-errors"
)

type fakeAttendance struct {
	attended map[string]bool
}

func (f *fakeAttendance) HasAttended(_ context.Context, workshopID, talentaID string) (bool, error) {
	return f.attended[workshopID+"/"+talentaID], nil
}

type fakeAuditor struct {
	events []audit.Event
}

func (f *fakeAuditor) Emit(_ context.Context, e audit.Event) {
	f.events = append(f.events, e)
}

type CertificateServiceSuite struct {
	suite.Suite

	ctx        context.Context
	workshops  *workshop.InMemoryStore
	attendance *fakeAttendance
	auditor    *fakeAuditor
	service    *Service

	workshopID string
	mitraID    string
	talentaID  string
}

func TestCertificateServiceSuite(t *testing.T) {
	suite.Run(t, new(CertificateServiceSuite))
}

func (s *CertificateServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.workshops = workshop.NewInMemoryStore()
	s.attendance = &fakeAttendance{attended: make(map[string]bool)}
	s.auditor = &fakeAuditor{}

	svc, err := NewService(NewInMemoryStore(), s.attendance, s.workshops, s.auditor)
	s.Require().NoError(err)
	s.service = svc

	s.workshopID = uuid.NewString()
	s.mitraID = uuid.NewString()
	s.talentaID = uuid.NewString()

	now := time.Now()
	s.Require().NoError(s.workshops.Create(s.ctx, &workshop.Workshop{
		ID:       s.workshopID,
		MitraID:  s.mitraID,
		Title:    "Welding Basics",
		Geofence: geo.Fence{Center: geo.Point{Lat: -6.2088, Lon: 106.8456}, RadiusM: 100},
		StartsAt: now,
		EndsAt:   now.Add(4 * time.Hour),
		Capacity: 20,
	}))
	s.Require().NoError(s.workshops.Register(s.ctx, &workshop.Registration{
		ID:           uuid.NewString(),
		WorkshopID:   s.workshopID,
		TalentaID:    s.talentaID,
		RegisteredAt: now,
	}))
}

func (s *CertificateServiceSuite) markAttended() {
	s.attendance.attended[s.workshopID+"/"+s.talentaID] = true
}

func (s *CertificateServiceSuite) TestIssue() {
	s.markAttended()

	cert, err := s.service.Issue(s.ctx, s.workshopID, s.talentaID)
	s.Require().NoError(err)
	s.Equal(s.workshopID, cert.WorkshopID)
	s.Equal(s.talentaID, cert.TalentaID)
	s.True(strings.HasPrefix(cert.SerialNumber, "VOK-"))
	s.False(cert.IssuedAt.IsZero())

	s.Require().Len(s.auditor.events, 1)
	s.Equal(audit.KindCertificateIssued, s.auditor.events[0].Kind)
	s.Equal(s.mitraID, s.auditor.events[0].ActorID)
}

func (s *CertificateServiceSuite) TestIssueIsIdempotent() {
	s.markAttended()

	first, err := s.service.Issue(s.ctx, s.workshopID, s.talentaID)
	s.Require().NoError(err)

	second, err := s.service.Issue(s.ctx, s.workshopID, s.talentaID)
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
	s.Equal(first.SerialNumber, second.SerialNumber)
}

func (s *CertificateServiceSuite) TestIssueRequiresAttendance() {
	_, err := s.service.Issue(s.ctx, s.workshopID, s.talentaID)
	s.Equal(dErrors.CodeUnprocessable, dErrors.CodeOf(err))
}

func (s *CertificateServiceSuite) TestIssueRequiresRegistration() {
	stranger := uuid.NewString()
	s.attendance.attended[s.workshopID+"/"+stranger] = true

	_, err := s.service.Issue(s.ctx, s.workshopID, stranger)
	s.Equal(dErrors.CodeUnprocessable, dErrors.CodeOf(err))
}

func (s *CertificateServiceSuite) TestIssueUnknownWorkshop() {
	_, err := s.service.Issue(s.ctx, uuid.NewString(), s.talentaID)
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
}

func (s *CertificateServiceSuite) TestListByWorkshop() {
	s.markAttended()
	_, err := s.service.Issue(s.ctx, s.workshopID, s.talentaID)
	s.Require().NoError(err)

	certs, err := s.service.ListByWorkshop(s.ctx, s.workshopID)
	s.Require().NoError(err)
	s.Len(certs, 1)

	_, err = s.service.ListByWorkshop(s.ctx, uuid.NewString())
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
}
