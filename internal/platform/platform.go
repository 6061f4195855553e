package platform

import (
	"fmt"
	"sync"
	"time"

	"github.com/fjod/go_shop/internal/domain"
	"go.uber.org/zap"
)

// OrderIDFormat renders the sequential order number.
const OrderIDFormat = "ORD-%06d"

// Platform owns every product, user, cart and order and is their only mutator.
// All methods are safe for concurrent use; checkout runs under the write lock
// so its steps never interleave with other operations.
//
// Lookups return copies. Pointers passed to RegisterProduct and RegisterUser
// belong to the platform afterwards and must not be mutated by the caller
// while other goroutines use the platform.
type Platform struct {
	mu       sync.RWMutex
	products map[string]*domain.Product // productID -> product
	users    map[string]*domain.User    // userID -> user
	carts    map[string]*domain.Cart    // userID -> cart
	orders   map[string]*domain.Order   // orderID -> order

	// insertion order for listings
	productIDs []string
	userIDs    []string
	orderIDs   []string

	orderCounter int
	now          func() time.Time
	logger       *zap.Logger
}

type Option func(*Platform)

// WithClock overrides the time source used for order creation dates.
func WithClock(now func() time.Time) Option {
	return func(p *Platform) { p.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Platform) { p.logger = l }
}

func New(opts ...Option) *Platform {
	p := &Platform{
		products: make(map[string]*domain.Product),
		users:    make(map[string]*domain.User),
		carts:    make(map[string]*domain.Cart),
		orders:   make(map[string]*domain.Order),
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterProduct adds product to the catalog. It reports false if the id is taken.
func (p *Platform) RegisterProduct(product *domain.Product) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.products[product.ID]; exists {
		return false
	}
	p.products[product.ID] = product
	p.productIDs = append(p.productIDs, product.ID)
	p.logger.Debug("product registered", zap.String("product_id", product.ID), zap.Int("stock", product.Stock()))
	return true
}

// RegisterUser adds user together with an empty cart. It reports false if
// the id is taken.
func (p *Platform) RegisterUser(user *domain.User) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.users[user.ID]; exists {
		return false
	}
	p.users[user.ID] = user
	p.carts[user.ID] = domain.NewCart(user.ID)
	p.userIDs = append(p.userIDs, user.ID)
	p.logger.Debug("user registered", zap.String("user_id", user.ID))
	return true
}

func (p *Platform) Product(productID string) (domain.Product, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	product, exists := p.products[productID]
	if !exists {
		return domain.Product{}, false
	}
	return *product, true
}

func (p *Platform) User(userID string) (domain.User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	user, exists := p.users[userID]
	if !exists {
		return domain.User{}, false
	}
	return *user, true
}

func (p *Platform) Cart(userID string) (CartView, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	cart, exists := p.carts[userID]
	if !exists {
		return CartView{}, false
	}
	return newCartView(cart), true
}

func (p *Platform) Order(orderID string) (*domain.Order, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	order, exists := p.orders[orderID]
	if !exists {
		return nil, false
	}
	return copyOrder(order), true
}

// SetUserAddress reports false for an unknown user and returns a validation
// error for a blank address.
func (p *Platform) SetUserAddress(userID, address string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	user, exists := p.users[userID]
	if !exists {
		return false, nil
	}
	if err := user.SetAddress(address); err != nil {
		return false, err
	}
	return true, nil
}

// RestockProduct adds quantity units to a product's stock.
func (p *Platform) RestockProduct(productID string, quantity int) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	product, exists := p.products[productID]
	if !exists {
		return false, nil
	}
	if err := product.IncreaseStock(quantity); err != nil {
		return false, err
	}
	return true, nil
}

// AddToCart reports false for an unknown user or product, or when the
// requested quantity is not in stock.
func (p *Platform) AddToCart(userID, productID string, quantity int) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cart, exists := p.carts[userID]
	if !exists {
		return false, nil
	}
	product, exists := p.products[productID]
	if !exists {
		return false, nil
	}
	return cart.AddItem(product, quantity)
}

func (p *Platform) RemoveFromCart(userID, productID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	cart, exists := p.carts[userID]
	if !exists {
		return false
	}
	return cart.RemoveItem(productID)
}

func (p *Platform) UpdateCartQuantity(userID, productID string, quantity int) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	cart, exists := p.carts[userID]
	if !exists {
		return false, nil
	}
	return cart.UpdateQuantity(productID, quantity)
}

// Checkout turns the user's cart into an order, takes the ordered units out
// of stock and empties the cart. It reports false, changing nothing, when the
// user is unknown, has no address or has an empty cart.
//
// It also reports false when live stock no longer covers a cart line. That
// case is not one of the usual checkout preconditions: instead of placing
// the order and skipping the failed stock decrement, the whole checkout is
// refused and no order number is consumed.
func (p *Platform) Checkout(userID string) (*domain.Order, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	user, userExists := p.users[userID]
	cart, cartExists := p.carts[userID]
	if !userExists || !cartExists || cart.IsEmpty() {
		return nil, false
	}
	if !user.HasAddress() {
		return nil, false
	}

	// Stock is read through from live products, so it may have dropped
	// since the items were added.
	items := cart.Items()
	for _, item := range items {
		if item.Quantity > item.Product.Stock() {
			p.logger.Info("checkout rejected, insufficient stock",
				zap.String("user_id", userID),
				zap.String("product_id", item.Product.ID),
				zap.Int("requested", item.Quantity),
				zap.Int("available", item.Product.Stock()))
			return nil, false
		}
	}

	orderID := fmt.Sprintf(OrderIDFormat, p.orderCounter+1)
	order, err := domain.NewOrder(orderID, user, items, p.now())
	if err != nil {
		// unreachable: the cart was checked to be non-empty
		p.logger.Error("create order", zap.Error(err))
		return nil, false
	}
	p.orderCounter++

	for _, item := range items {
		item.Product.DecreaseStock(item.Quantity)
	}

	p.orders[orderID] = order
	p.orderIDs = append(p.orderIDs, orderID)
	cart.Clear()

	p.logger.Info("order placed",
		zap.String("order_id", orderID),
		zap.String("user_id", userID),
		zap.Int("lines", len(items)),
		zap.Float64("total_price", order.TotalPrice))
	return copyOrder(order), true
}

// UpdateOrderStatus reports false for an unknown order.
func (p *Platform) UpdateOrderStatus(orderID string, status domain.OrderStatus) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	order, exists := p.orders[orderID]
	if !exists {
		return false
	}
	previous := order.Status()
	order.UpdateStatus(status)
	p.logger.Info("order status updated",
		zap.String("order_id", orderID),
		zap.Stringer("from", previous),
		zap.Stringer("to", status))
	return true
}

// UserOrders returns the user's orders in the order they were placed.
func (p *Platform) UserOrders(userID string) []*domain.Order {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]*domain.Order, 0)
	for _, id := range p.orderIDs {
		if order := p.orders[id]; order.Customer.ID == userID {
			result = append(result, copyOrder(order))
		}
	}
	return result
}

func (p *Platform) Products() []domain.Product {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]domain.Product, 0, len(p.productIDs))
	for _, id := range p.productIDs {
		result = append(result, *p.products[id])
	}
	return result
}

func (p *Platform) Users() []domain.User {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]domain.User, 0, len(p.userIDs))
	for _, id := range p.userIDs {
		result = append(result, *p.users[id])
	}
	return result
}

func (p *Platform) Orders() []*domain.Order {
	p.mu.RLock()
	defer p.mu.RUnlock()

	result := make([]*domain.Order, 0, len(p.orderIDs))
	for _, id := range p.orderIDs {
		result = append(result, copyOrder(p.orders[id]))
	}
	return result
}
