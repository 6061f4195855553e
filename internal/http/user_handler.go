package http

import (
	"net/http"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	shop   Shop
	logger *zap.Logger
}

func NewUserHandler(shop Shop, l *zap.Logger) *UserHandler {
	return &UserHandler{
		shop:   shop,
		logger: l,
	}
}

type UserResponse struct {
	UserID   string  `json:"user_id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Address  *string `json:"address"`
}

type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

type CreateUserRequestDTO struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Address  string `json:"address,omitempty"`
}

type SetAddressRequestDTO struct {
	Address string `json:"address"`
}

func convertUser(u domain.User) UserResponse {
	resp := UserResponse{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
	if addr, ok := u.Address(); ok {
		resp.Address = &addr
	}
	return resp
}

// GET /api/v1/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	all := h.shop.Users()
	users := make([]UserResponse, len(all))
	for i, u := range all {
		users[i] = convertUser(u)
	}

	respondJSON(w, h.logger, http.StatusOK, &UsersResponse{Users: users})
}

// GET /api/v1/users/{user_id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := h.shop.User(chi.URLParam(r, "user_id"))
	if !ok {
		respondError(w, h.logger, http.StatusNotFound, "not_found", "user not found")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, convertUser(user))
}

// POST /api/v1/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequestDTO
	if !decodeJSON(w, h.logger, r, &req) {
		return
	}
	if req.UserID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "invalid_user_id", "user_id is required")
		return
	}

	user, err := domain.NewUser(req.UserID, req.Username, req.Email)
	if err != nil {
		handleValidationError(w, h.logger, err)
		return
	}
	if req.Address != "" {
		if err := user.SetAddress(req.Address); err != nil {
			handleValidationError(w, h.logger, err)
			return
		}
	}
	resp := convertUser(*user)
	if !h.shop.RegisterUser(user) {
		respondError(w, h.logger, http.StatusConflict, "already_exists", "user already exists")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, resp)
}

// PUT /api/v1/users/{user_id}/address
func (h *UserHandler) SetAddress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	var req SetAddressRequestDTO
	if !decodeJSON(w, h.logger, r, &req) {
		return
	}

	ok, err := h.shop.SetUserAddress(userID, req.Address)
	if err != nil {
		handleValidationError(w, h.logger, err)
		return
	}
	if !ok {
		respondError(w, h.logger, http.StatusNotFound, "not_found", "user not found")
		return
	}

	user, _ := h.shop.User(userID)
	respondJSON(w, h.logger, http.StatusOK, convertUser(user))
}

// GET /api/v1/users/{user_id}/orders
func (h *UserHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if _, ok := h.shop.User(userID); !ok {
		respondError(w, h.logger, http.StatusNotFound, "not_found", "user not found")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, convertOrders(h.shop.UserOrders(userID)))
}
