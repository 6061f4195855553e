package http

import (
	"net/http"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductHandler struct {
	shop   Shop
	logger *zap.Logger
}

func NewProductHandler(shop Shop, l *zap.Logger) *ProductHandler {
	return &ProductHandler{
		shop:   shop,
		logger: l,
	}
}

type ProductResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
}

type ProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

type CreateProductRequestDTO struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Stock     int     `json:"stock"`
}

type RestockRequestDTO struct {
	Quantity int `json:"quantity"`
}

func convertProduct(p domain.Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock(),
	}
}

// GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	all := h.shop.Products()
	products := make([]ProductResponse, len(all))
	for i, p := range all {
		products[i] = convertProduct(p)
	}

	respondJSON(w, h.logger, http.StatusOK, &ProductsResponse{Products: products})
}

// GET /api/v1/products/{product_id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, ok := h.shop.Product(chi.URLParam(r, "product_id"))
	if !ok {
		respondError(w, h.logger, http.StatusNotFound, "not_found", "product not found")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, convertProduct(product))
}

// POST /api/v1/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequestDTO
	if !decodeJSON(w, h.logger, r, &req) {
		return
	}
	if req.ProductID == "" {
		respondError(w, h.logger, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}

	product, err := domain.NewProduct(req.ProductID, req.Name, req.Price, req.Stock)
	if err != nil {
		handleValidationError(w, h.logger, err)
		return
	}
	resp := convertProduct(*product)
	if !h.shop.RegisterProduct(product) {
		respondError(w, h.logger, http.StatusConflict, "already_exists", "product already exists")
		return
	}

	respondJSON(w, h.logger, http.StatusCreated, resp)
}

// POST /api/v1/products/{product_id}/restock
func (h *ProductHandler) Restock(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")

	var req RestockRequestDTO
	if !decodeJSON(w, h.logger, r, &req) {
		return
	}

	ok, err := h.shop.RestockProduct(productID, req.Quantity)
	if err != nil {
		handleValidationError(w, h.logger, err)
		return
	}
	if !ok {
		respondError(w, h.logger, http.StatusNotFound, "not_found", "product not found")
		return
	}

	product, _ := h.shop.Product(productID)
	respondJSON(w, h.logger, http.StatusOK, convertProduct(product))
}
