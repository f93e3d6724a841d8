package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"vokasia/internal/attendance"
	"vokasia/internal/attendance/handler/mocks"
	"vokasia/internal/geo"
	"vokasia/internal/platform/middleware"
	"vokasia/internal/qrtoken"
	"vokasia/internal/workshop"
	dErrors "vokasia/pkg/domain-errors"
	"vokasia/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/attendance-mocks.go -package=mocks

// stubValidator decodes tokens of the form "<accountID>|<accountType>" so
// route tests can exercise the real auth middleware without signing JWTs.
type stubValidator struct{}

func (stubValidator) ValidateToken(token string) (*middleware.JWTClaims, error) {
	id, accountType, ok := strings.Cut(token, "|")
	if !ok {
		return nil, errors.New("malformed test token")
	}
	return &middleware.JWTClaims{AccountID: id, AccountType: accountType}, nil
}

type AttendanceHandlerSuite struct {
	suite.Suite

	router    http.Handler
	service   *mocks.MockService
	workshops *mocks.MockWorkshopGetter
	passes    *mocks.MockPassProvider
}

func TestAttendanceHandlerSuite(t *testing.T) {
	suite.Run(t, new(AttendanceHandlerSuite))
}

func (s *AttendanceHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	s.workshops = mocks.NewMockWorkshopGetter(ctrl)
	s.passes = mocks.NewMockPassProvider(ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.service, s.workshops, s.passes, logger, stubValidator{})

	r := chi.NewRouter()
	h.Register(r)
	s.router = r
}

func talentaAuth(req *http.Request, id string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+id+"|"+AccountTypeTalenta)
	return req
}

func mitraAuth(req *http.Request, id string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+id+"|"+AccountTypeMitra)
	return req
}

func (s *AttendanceHandlerSuite) TestSubmit() {
	lat, lon := -6.2088, 106.8456

	s.Run("records attendance", func() {
		s.service.EXPECT().Record(gomock.Any(), attendance.RecordCommand{
			WorkshopID: "ws-1",
			SessionID:  DefaultSessionID,
			TalentaID:  "tal-1",
			Latitude:   lat,
			Longitude:  lon,
			Pass:       "pass-token",
		}).Return(&attendance.Record{
			ID:         "rec-1",
			WorkshopID: "ws-1",
			TalentaID:  "tal-1",
			Point:      geo.Point{Lat: lat, Lon: lon},
			DistanceM:  42,
		}, nil)

		req := talentaAuth(testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/talenta/workshops/ws-1/attendance", map[string]any{
				"latitude":  lat,
				"longitude": lon,
				"pass":      "pass-token",
			}), "tal-1")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		rec := testutil.UnmarshalData[attendance.Record](s.T(), rr)
		s.Equal("rec-1", rec.ID)
	})

	s.Run("requires coordinates", func() {
		req := talentaAuth(testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/talenta/workshops/ws-1/attendance", map[string]any{
				"pass": "pass-token",
			}), "tal-1")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertFailure(s.T(), rr, http.StatusBadRequest, "latitude and longitude are required")
	})

	s.Run("requires a pass", func() {
		req := talentaAuth(testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/talenta/workshops/ws-1/attendance", map[string]any{
				"latitude":  lat,
				"longitude": lon,
			}), "tal-1")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertFailure(s.T(), rr, http.StatusBadRequest, "attendance pass is required")
	})

	s.Run("maps geofence violations to 422 with distances", func() {
		s.service.EXPECT().Record(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeGeofenceViolation,
				"you are 978 m from the venue, move 878 m closer").
				WithField("distance_m", 978.0).
				WithField("radius_m", 100.0))

		req := talentaAuth(testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/talenta/workshops/ws-1/attendance", map[string]any{
				"latitude":  lat,
				"longitude": lon,
				"pass":      "pass-token",
			}), "tal-1")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusUnprocessableEntity)
		env := testutil.UnmarshalEnvelope(s.T(), rr)
		s.False(env.Success)
		s.Equal(978.0, env.Errors["distance_m"])
	})

	s.Run("rejects mitra accounts", func() {
		req := mitraAuth(testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/talenta/workshops/ws-1/attendance", map[string]any{
				"latitude":  lat,
				"longitude": lon,
				"pass":      "pass-token",
			}), "mit-1")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusForbidden)
	})

	s.Run("rejects missing token", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/talenta/workshops/ws-1/attendance", map[string]any{
				"latitude":  lat,
				"longitude": lon,
				"pass":      "pass-token",
			})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})
}

func (s *AttendanceHandlerSuite) TestRoster() {
	owned := &workshop.Workshop{ID: "ws-1", MitraID: "mit-1"}

	s.Run("returns the roster for the owner", func() {
		s.workshops.EXPECT().Get(gomock.Any(), "ws-1").Return(owned, nil)
		s.service.EXPECT().Roster(gomock.Any(), "ws-1", DefaultSessionID).
			Return(&attendance.Roster{
				WorkshopID: "ws-1",
				SessionID:  DefaultSessionID,
				Attended:   1,
			}, nil)

		req := mitraAuth(testutil.NewRequest(s.T(), http.MethodGet,
			"/mitra/workshops/ws-1/attendance"), "mit-1")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		roster := testutil.UnmarshalData[attendance.Roster](s.T(), rr)
		s.Equal(1, roster.Attended)
	})

	s.Run("forbids other mitras", func() {
		s.workshops.EXPECT().Get(gomock.Any(), "ws-1").Return(owned, nil)

		req := mitraAuth(testutil.NewRequest(s.T(), http.MethodGet,
			"/mitra/workshops/ws-1/attendance"), "mit-2")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertFailure(s.T(), rr, http.StatusForbidden, "workshop belongs to another mitra")
	})

	s.Run("passes the session query through", func() {
		s.workshops.EXPECT().Get(gomock.Any(), "ws-1").Return(owned, nil)
		s.service.EXPECT().Roster(gomock.Any(), "ws-1", "day-2").
			Return(&attendance.Roster{WorkshopID: "ws-1", SessionID: "day-2"}, nil)

		req := mitraAuth(testutil.NewRequest(s.T(), http.MethodGet,
			"/mitra/workshops/ws-1/attendance?session=day-2"), "mit-1")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
	})
}

func (s *AttendanceHandlerSuite) TestPass() {
	owned := &workshop.Workshop{ID: "ws-1", MitraID: "mit-1"}
	expires := time.Now().Add(90 * time.Second).UTC()

	s.Run("returns the live pass for the owner", func() {
		s.workshops.EXPECT().Get(gomock.Any(), "ws-1").Return(owned, nil)
		s.passes.EXPECT().Current(gomock.Any(), "ws-1", DefaultSessionID).
			Return(qrtoken.Pass{
				Token:      "signed-pass",
				WorkshopID: "ws-1",
				SessionID:  DefaultSessionID,
				ExpiresAt:  expires,
			}, nil)

		req := mitraAuth(testutil.NewRequest(s.T(), http.MethodGet,
			"/mitra/workshops/ws-1/attendance/pass"), "mit-1")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertStatus(s.T(), rr, http.StatusOK)
		resp := testutil.UnmarshalData[passResponse](s.T(), rr)
		s.Equal("signed-pass", resp.Token)
		s.Positive(resp.ExpiresInSeconds)
	})

	s.Run("surfaces pass generation failures as 500", func() {
		s.workshops.EXPECT().Get(gomock.Any(), "ws-1").Return(owned, nil)
		s.passes.EXPECT().Current(gomock.Any(), "ws-1", DefaultSessionID).
			Return(qrtoken.Pass{}, errors.New("signing failed"))

		req := mitraAuth(testutil.NewRequest(s.T(), http.MethodGet,
			"/mitra/workshops/ws-1/attendance/pass"), "mit-1")
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertFailure(s.T(), rr, http.StatusInternalServerError, "failed to generate attendance pass")
	})
}
