package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vokasia/internal/account"
	"vokasia/internal/transport/http/shared"
	dErrors "vokasia/pkg/domain-errors"
)

// Service is the account behaviour the handler depends on.
type Service interface {
	Register(ctx context.Context, email, name, password, accountType string) (*account.Account, error)
	Login(ctx context.Context, email, password string) (string, *account.Account, error)
}

type Handler struct {
	service Service
}

// New creates a new auth Handler.
func New(service Service) *Handler {
	return &Handler{service: service}
}

// Register mounts the auth routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Type     string `json:"type"`
}

type accountResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Type  string `json:"type"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	a, err := h.service.Register(r.Context(), req.Email, req.Name, req.Password, req.Type)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusCreated, accountResponse{
		ID:    a.ID,
		Email: a.Email,
		Name:  a.Name,
		Type:  a.Type,
	}, "account registered")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string          `json:"access_token"`
	Account     accountResponse `json:"account"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	token, a, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		Account: accountResponse{
			ID:    a.ID,
			Email: a.Email,
			Name:  a.Name,
			Type:  a.Type,
		},
	}, "login successful")
}
