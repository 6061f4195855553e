package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fjod/go_shop/internal/document"
	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/export"
	"github.com/fjod/go_shop/internal/logger"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrdersHandler struct {
	shop     Shop
	exporter DocumentExporter
	timeout  time.Duration
	logger   *zap.Logger
}

func NewOrdersHandler(shop Shop, exporter DocumentExporter, timeout time.Duration, l *zap.Logger) *OrdersHandler {
	return &OrdersHandler{
		shop:     shop,
		exporter: exporter,
		timeout:  timeout,
		logger:   l,
	}
}

type OrderItemDTO struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type OrderResponseDTO struct {
	OrderID      string         `json:"order_id"`
	UserID       string         `json:"user_id"`
	Status       string         `json:"status"`
	TotalPrice   float64        `json:"total_price"`
	CreationDate string         `json:"creation_date"`
	Items        []OrderItemDTO `json:"items"`
}

type CheckoutRequestDTO struct {
	UserID string `json:"user_id"`
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

func convertOrder(o *domain.Order) OrderResponseDTO {
	lines := o.Lines()
	items := make([]OrderItemDTO, 0, len(lines))
	for _, line := range lines {
		items = append(items, OrderItemDTO{
			ProductID: line.ProductID,
			Name:      line.ProductName,
			Price:     line.UnitPrice,
			Quantity:  line.Quantity,
		})
	}

	return OrderResponseDTO{
		OrderID:      o.ID,
		UserID:       o.Customer.ID,
		Status:       o.Status().String(),
		TotalPrice:   o.TotalPrice,
		CreationDate: o.CreatedAt.Format(time.RFC3339Nano),
		Items:        items,
	}
}

func convertOrders(orders []*domain.Order) []OrderResponseDTO {
	dtos := make([]OrderResponseDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, convertOrder(o))
	}
	return dtos
}

// POST /api/v1/orders
func (h *OrdersHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if !decodeJSON(w, h.logger, r, &req) {
		return
	}

	if _, ok := h.shop.User(req.UserID); !ok {
		respondError(w, h.logger, http.StatusNotFound, "not_found", "user not found")
		return
	}

	order, ok := h.shop.Checkout(req.UserID)
	if !ok {
		respondError(w, h.logger, http.StatusUnprocessableEntity, "checkout_unavailable",
			"cannot place order: cart must not be empty, items must be in stock and the user must have an address")
		return
	}

	logger.WithContext(r.Context(), h.logger).Info("checkout completed",
		zap.String("order_id", order.ID),
		zap.String("user_id", req.UserID))

	respondJSON(w, h.logger, http.StatusCreated, convertOrder(order))
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, convertOrders(h.shop.Orders()))
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, ok := h.shop.Order(chi.URLParam(r, "order_id"))
	if !ok {
		respondError(w, h.logger, http.StatusNotFound, "not_found", "order not found")
		return
	}

	respondJSON(w, h.logger, http.StatusOK, convertOrder(order))
}

// PUT /api/v1/orders/{order_id}/status
func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")

	var req UpdateStatusRequestDTO
	if !decodeJSON(w, h.logger, r, &req) {
		return
	}

	status, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		handleValidationError(w, h.logger, err)
		return
	}

	if !h.shop.UpdateOrderStatus(orderID, status) {
		respondError(w, h.logger, http.StatusNotFound, "not_found", "order not found")
		return
	}

	order, _ := h.shop.Order(orderID)
	respondJSON(w, h.logger, http.StatusOK, convertOrder(order))
}

// GET /api/v1/orders/{order_id}/document
func (h *OrdersHandler) Document(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID := chi.URLParam(r, "order_id")

	doc, err := h.exporter.Document(ctx, orderID)
	if errors.Is(err, export.ErrOrderNotFound) {
		respondError(w, h.logger, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if errors.Is(err, document.ErrInvalidText) {
		respondError(w, h.logger, http.StatusUnprocessableEntity, "unrenderable_document", err.Error())
		return
	}
	if err != nil {
		logger.WithContext(r.Context(), h.logger).Error("export order document",
			zap.String("order_id", orderID),
			zap.Error(err))
		respondError(w, h.logger, http.StatusInternalServerError, "internal_error", "could not render order document")
		return
	}

	w.Header().Set("Content-Type", document.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.Filename(orderID)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		logger.WithContext(r.Context(), h.logger).Warn("write order document", zap.Error(err))
	}
}
