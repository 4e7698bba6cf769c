package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/paluyo/houserent/internal/domain"
	"github.com/paluyo/houserent/internal/service"
	"github.com/paluyo/houserent/pkg/response"
)

type AuthHandler struct {
	users     *service.UserService
	validator *validator.Validate
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{
		users:     users,
		validator: validator.New(),
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var request domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	user, err := h.users.Authenticate(r.Context(), request.Username, request.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, user)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var request domain.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "Validation failed", err)
		return
	}

	user, err := h.users.Register(r.Context(), &request)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, user)
}
