package domain

import (
	"fmt"
	"slices"
	"time"
)

// OrderLine is a product line frozen at checkout.
type OrderLine struct {
	ProductID   string
	ProductName string
	UnitPrice   float64
	Quantity    int
}

func (l OrderLine) Total() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Customer is the user as they were when the order was placed.
type Customer struct {
	ID       string
	Username string
	Email    string
	Address  string
}

// Order is immutable after creation except for its status.
type Order struct {
	ID         string
	Customer   Customer
	TotalPrice float64
	CreatedAt  time.Time

	lines  []OrderLine
	status OrderStatus
}

// NewOrder snapshots items into order lines and computes the total. Later
// changes to the products do not affect the order.
func NewOrder(id string, user *User, items []CartItem, createdAt time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("order %s: %w", id, ErrEmptyOrder)
	}

	lines := make([]OrderLine, 0, len(items))
	var total float64
	for _, item := range items {
		line := OrderLine{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			UnitPrice:   item.Product.Price,
			Quantity:    item.Quantity,
		}
		total += line.Total()
		lines = append(lines, line)
	}

	address, _ := user.Address()
	return &Order{
		ID: id,
		Customer: Customer{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Address:  address,
		},
		TotalPrice: total,
		CreatedAt:  createdAt,
		lines:      lines,
		status:     OrderStatusPending,
	}, nil
}

// Lines returns a copy of the order lines.
func (o *Order) Lines() []OrderLine {
	return slices.Clone(o.lines)
}

func (o *Order) Status() OrderStatus {
	return o.status
}

// UpdateStatus overwrites the status. Any status may follow any other.
func (o *Order) UpdateStatus(status OrderStatus) {
	o.status = status
}

func (o *Order) String() string {
	return fmt.Sprintf("Order(id=%s, user=%s, status=%s, total=%v)", o.ID, o.Customer.Username, o.status, o.TotalPrice)
}
