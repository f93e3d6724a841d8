// Package handler exposes the mitra certificate endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vokasia/internal/certificate"
	"vokasia/internal/platform/middleware"
	"vokasia/internal/transport/http/shared"
	"vokasia/internal/workshop"
	dErrors "vokasia/pkg/domain-errors"
)

// AccountTypeMitra is the training partner user type.
const AccountTypeMitra = "mitra"

// Service defines the interface for certificate operations.
type Service interface {
	Issue(ctx context.Context, workshopID, talentaID string) (*certificate.Certificate, error)
	ListByWorkshop(ctx context.Context, workshopID string) ([]*certificate.Certificate, error)
}

// WorkshopGetter resolves workshops for ownership checks.
type WorkshopGetter interface {
	Get(ctx context.Context, id string) (*workshop.Workshop, error)
}

// Handler handles certificate endpoints.
type Handler struct {
	logger       *slog.Logger
	service      Service
	workshops    WorkshopGetter
	jwtValidator middleware.JWTValidator
}

// New creates a new certificate Handler.
func New(service Service, workshops WorkshopGetter, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		workshops:    workshops,
		jwtValidator: jwtValidator,
	}
}

// Register registers the certificate routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(g chi.Router) {
		g.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
		g.Use(middleware.RequireType(AccountTypeMitra))
		g.Post("/mitra/workshops/{workshopID}/certificates", h.handleIssue)
		g.Get("/mitra/workshops/{workshopID}/certificates", h.handleList)
	})
}

type issueRequest struct {
	TalentaID string `json:"talenta_id"`
}

// handleIssue issues a certificate to one registrant of the owning mitra's
// workshop.
func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	workshopID := chi.URLParam(r, "workshopID")

	if !h.requireOwnership(w, r, workshopID) {
		return
	}

	var req issueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	if req.TalentaID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "talenta_id is required"))
		return
	}

	cert, err := h.service.Issue(ctx, workshopID, req.TalentaID)
	if err != nil {
		h.logger.InfoContext(ctx, "certificate issuance rejected",
			"workshop_id", workshopID,
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, cert, "certificate issued")
}

// handleList returns all certificates issued for the workshop.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	workshopID := chi.URLParam(r, "workshopID")

	if !h.requireOwnership(w, r, workshopID) {
		return
	}

	certs, err := h.service.ListByWorkshop(ctx, workshopID)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, certs, "")
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
