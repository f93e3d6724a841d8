// Package handler exposes the workshop catalog and enrollment endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vokasia/internal/platform/middleware"
	"vokasia/internal/transport/http/shared"
	"vokasia/internal/workshop"
	dErrors "vokasia/pkg/domain-errors"
)

const (
	accountTypeTalenta = "talenta"
	accountTypeMitra   = "mitra"
)

// Service defines the interface for catalog operations.
type Service interface {
	Create(ctx context.Context, p workshop.CreateParams) (*workshop.Workshop, error)
	Get(ctx context.Context, id string) (*workshop.Workshop, error)
	List(ctx context.Context) ([]*workshop.Workshop, error)
	Register(ctx context.Context, workshopID, talentaID string) (*workshop.Registration, error)
}

// Handler handles workshop catalog endpoints.
type Handler struct {
	logger       *slog.Logger
	service      Service
	jwtValidator middleware.JWTValidator
}

// New creates a new workshop Handler.
func New(service Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{logger: logger, service: service, jwtValidator: jwtValidator}
}

// Register registers the workshop routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/workshops", h.handleList)
	r.Get("/workshops/{workshopID}", h.handleGet)

	r.Group(func(g chi.Router) {
		g.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

		g.Group(func(m chi.Router) {
			m.Use(middleware.RequireType(accountTypeMitra))
			m.Post("/mitra/workshops", h.handleCreate)
		})

		g.Group(func(t chi.Router) {
			t.Use(middleware.RequireType(accountTypeTalenta))
			t.Post("/talenta/workshops/{workshopID}/register", h.handleRegister)
		})
	})
}

type createRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VenueName   string    `json:"venue_name"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	RadiusM     float64   `json:"radius_m"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `json:"capacity"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid JSON body"))
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "venue latitude and longitude are required"))
		return
	}

	ws, err := h.service.Create(ctx, workshop.CreateParams{
		MitraID:     middleware.GetAccountID(ctx),
		Title:       req.Title,
		Description: req.Description,
		VenueName:   req.VenueName,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		RadiusM:     req.RadiusM,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Capacity:    req.Capacity,
	})
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, ws, "workshop created")
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	workshops, err := h.service.List(r.Context())
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, workshops, "")
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ws, err := h.service.Get(r.Context(), chi.URLParam(r, "workshopID"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, ws, "")
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reg, err := h.service.Register(ctx, chi.URLParam(r, "workshopID"), middleware.GetAccountID(ctx))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, reg, "registered for workshop")
}
