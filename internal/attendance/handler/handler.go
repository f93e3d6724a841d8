// Package handler exposes the attendance endpoints: talenta submission,
// the instructor roster, and the rotating pass.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vokasia/internal/attendance"
	"vokasia/internal/platform/middleware"
	"vokasia/internal/qrtoken"
	"vokasia/internal/transport/http/shared"
	"vokasia/internal/workshop"
	dErrors "vokasia/pkg/domain-errors"
)

// AccountTypeTalenta and AccountTypeMitra are the two user types of the
// marketplace: trainees and training partners.
const (
	AccountTypeTalenta = "talenta"
	AccountTypeMitra   = "mitra"
)

// DefaultSessionID is used when a workshop runs a single session.
const DefaultSessionID = "main"

// Service defines the interface for attendance operations.
type Service interface {
	Record(ctx context.Context, cmd attendance.RecordCommand) (*attendance.Record, error)
	Roster(ctx context.Context, workshopID, sessionID string) (*attendance.Roster, error)
}

// WorkshopGetter resolves workshops for ownership checks.
type WorkshopGetter interface {
	Get(ctx context.Context, id string) (*workshop.Workshop, error)
}

// PassProvider returns the live rotating pass for a session.
type PassProvider interface {
	Current(ctx context.Context, workshopID, sessionID string) (qrtoken.Pass, error)
}

// Handler handles attendance-related endpoints.
type Handler struct {
	logger       *slog.Logger
	service      Service
	workshops    WorkshopGetter
	passes       PassProvider
	jwtValidator middleware.JWTValidator
}

// New creates a new attendance Handler.
func New(service Service, workshops WorkshopGetter, passes PassProvider, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		workshops:    workshops,
		passes:       passes,
		jwtValidator: jwtValidator,
	}
}

// Register registers the attendance routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(g chi.Router) {
		g.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

		g.Group(func(t chi.Router) {
			t.Use(middleware.RequireType(AccountTypeTalenta))
			t.Post("/talenta/workshops/{workshopID}/attendance", h.handleSubmit)
		})

		g.Group(func(m chi.Router) {
			m.Use(middleware.RequireType(AccountTypeMitra))
			m.Get("/mitra/workshops/{workshopID}/attendance", h.handleRoster)
			m.Get("/mitra/workshops/{workshopID}/attendance/pass", h.handlePass)
		})
	})
}

type submitRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Pass      string   `json:"pass"`
	SessionID string   `json:"session_id,omitempty"`
}

// handleSubmit records attendance for the authenticated talenta.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	talentaID := middleware.GetAccountID(ctx)
	workshopID := chi.URLParam(r, "workshopID")

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "latitude and longitude are required"))
		return
	}
	if req.Pass == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "attendance pass is required"))
		return
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	rec, err := h.service.Record(ctx, attendance.RecordCommand{
		WorkshopID: workshopID,
		SessionID:  sessionID,
		TalentaID:  talentaID,
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		Pass:       req.Pass,
	})
	if err != nil {
		h.logger.InfoContext(ctx, "attendance submission rejected",
			"workshop_id", workshopID,
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, rec, "attendance recorded")
}

// handleRoster returns the registrant list with attendance for the owning
// mitra.
func (h *Handler) handleRoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	workshopID := chi.URLParam(r, "workshopID")

	if !h.requireOwnership(w, r, workshopID) {
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	roster, err := h.service.Roster(ctx, workshopID, sessionID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, roster, "")
}

type passResponse struct {
	Token            string    `json:"token"`
	WorkshopID       string    `json:"workshop_id"`
	SessionID        string    `json:"session_id"`
	ExpiresAt        time.Time `json:"expires_at"`
	ExpiresInSeconds int       `json:"expires_in_seconds"`
}

// handlePass returns the current rotating pass for the owning mitra's screen.
func (h *Handler) handlePass(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	workshopID := chi.URLParam(r, "workshopID")

	if !h.requireOwnership(w, r, workshopID) {
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	// The rotator must outlive this request, so its lifetime is detached
	// from the request context.
	pass, err := h.passes.Current(context.WithoutCancel(ctx), workshopID, sessionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "pass generation failed",
			"workshop_id", workshopID,
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to generate attendance pass"))
		return
	}

	shared.WriteJSON(w, http.StatusOK, passResponse{
		Token:            pass.Token,
		WorkshopID:       pass.WorkshopID,
		SessionID:        pass.SessionID,
		ExpiresAt:        pass.ExpiresAt,
		ExpiresInSeconds: int(time.Until(pass.ExpiresAt).Seconds()),
	}, "")
}

// requireOwnership verifies the authenticated mitra owns the workshop.
func (h *Handler) requireOwnership(w http.ResponseWriter, r *http.Request, workshopID string) bool {
	ctx := r.Context()
	ws, err := h.workshops.Get(ctx, workshopID)
	if err != nil {
		shared.WriteError(w, err)
		return false
	}
	if ws.MitraID != middleware.GetAccountID(ctx) {
		shared.WriteError(w, dErrors.New(dErrors.CodeForbidden, "workshop belongs to another mitra"))
		return false
	}
	return true
}
