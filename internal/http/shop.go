package http

import (
	"context"

	"github.com/fjod/go_shop/internal/domain"
	"github.com/fjod/go_shop/internal/platform"
)

// Shop is the part of the platform the handlers use.
type Shop interface {
	RegisterProduct(product *domain.Product) bool
	RegisterUser(user *domain.User) bool
	Product(productID string) (domain.Product, bool)
	User(userID string) (domain.User, bool)
	Cart(userID string) (platform.CartView, bool)
	Order(orderID string) (*domain.Order, bool)
	SetUserAddress(userID, address string) (bool, error)
	RestockProduct(productID string, quantity int) (bool, error)
	AddToCart(userID, productID string, quantity int) (bool, error)
	RemoveFromCart(userID, productID string) bool
	UpdateCartQuantity(userID, productID string, quantity int) (bool, error)
	Checkout(userID string) (*domain.Order, bool)
	UpdateOrderStatus(orderID string, status domain.OrderStatus) bool
	UserOrders(userID string) []*domain.Order
	Products() []domain.Product
	Users() []domain.User
	Orders() []*domain.Order
}

// DocumentExporter renders downloadable order documents.
type DocumentExporter interface {
	Document(ctx context.Context, orderID string) ([]byte, error)
}
