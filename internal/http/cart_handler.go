package http

import (
	"net/http"

	"github.com/fjod/go_shop/internal/logger"
	"github.com/fjod/go_shop/internal/platform"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CartHandler struct {
	shop   Shop
	logger *zap.Logger
}

func NewCartHandler(shop Shop, l *zap.Logger) *CartHandler {
	return &CartHandler{
		shop:   shop,
		logger: l,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartItemDTO struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

type CartResponseDTO struct {
	UserID string        `json:"user_id"`
	Items  []CartItemDTO `json:"items"`
	Total  float64       `json:"total"`
}

func convertCart(c platform.CartView) CartResponseDTO {
	items := make([]CartItemDTO, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, CartItemDTO{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal(),
		})
	}
	return CartResponseDTO{
		UserID: c.UserID,
		Items:  items,
		Total:  c.Total,
	}
}

// GET /api/v1/cart/{user_id}
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.shop.Cart(chi.URLParam(r, "user_id"))
	if !ok {
		respondError(w, h.logger, http.StatusNotFound, "not_found", "user not found")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, convertCart(cart))
}

// POST /api/v1/cart/{user_id}/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	var req AddItemRequestDTO
	if !decodeJSON(w, h.logger, r, &req) {
		return
	}

	ok, err := h.shop.AddToCart(userID, req.ProductID, req.Quantity)
	if err != nil {
		handleValidationError(w, h.logger, err)
		return
	}
	if !ok {
		h.rejectCartChange(w, userID, req.ProductID, false)
		return
	}

	logger.WithContext(r.Context(), h.logger).Debug("item added to cart",
		zap.String("user_id", userID),
		zap.String("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity))

	cart, _ := h.shop.Cart(userID)
	respondJSON(w, h.logger, http.StatusCreated, convertCart(cart))
}

// PUT /api/v1/cart/{user_id}/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequestDTO
	if !decodeJSON(w, h.logger, r, &req) {
		return
	}

	ok, err := h.shop.UpdateCartQuantity(userID, productID, req.Quantity)
	if err != nil {
		handleValidationError(w, h.logger, err)
		return
	}
	if !ok {
		h.rejectCartChange(w, userID, productID, true)
		return
	}

	cart, _ := h.shop.Cart(userID)
	respondJSON(w, h.logger, http.StatusOK, convertCart(cart))
}

// DELETE /api/v1/cart/{user_id}/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	productID := chi.URLParam(r, "product_id")

	if !h.shop.RemoveFromCart(userID, productID) {
		h.rejectCartChange(w, userID, productID, true)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// rejectCartChange explains why the platform refused a cart change. Users and
// products are never removed, so the lookups here agree with the refusal.
func (h *CartHandler) rejectCartChange(w http.ResponseWriter, userID, productID string, mustBeInCart bool) {
	cart, ok := h.shop.Cart(userID)
	if !ok {
		respondError(w, h.logger, http.StatusNotFound, "not_found", "user not found")
		return
	}
	if _, ok := h.shop.Product(productID); !ok {
		respondError(w, h.logger, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if mustBeInCart && !cartHolds(cart, productID) {
		respondError(w, h.logger, http.StatusNotFound, "not_in_cart", "product is not in the cart")
		return
	}
	respondError(w, h.logger, http.StatusConflict, "insufficient_stock", "not enough stock for the requested quantity")
}

func cartHolds(cart platform.CartView, productID string) bool {
	for _, line := range cart.Lines {
		if line.ProductID == productID {
			return true
		}
	}
	return false
}
