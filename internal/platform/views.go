package platform

import "github.com/fjod/go_shop/internal/domain"

// CartLine is a read-only copy of one cart entry.
type CartLine struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
	Stock     int
}

func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// CartView is a point-in-time copy of a user's cart.
type CartView struct {
	UserID string
	Lines  []CartLine
	Total  float64
}

func (v CartView) IsEmpty() bool {
	return len(v.Lines) == 0
}

func newCartView(c *domain.Cart) CartView {
	items := c.Items()
	view := CartView{
		UserID: c.UserID,
		Lines:  make([]CartLine, 0, len(items)),
		Total:  c.TotalPrice(),
	}
	for _, item := range items {
		view.Lines = append(view.Lines, CartLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			Price:     item.Product.Price,
			Quantity:  item.Quantity,
			Stock:     item.Product.Stock(),
		})
	}
	return view
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	return &cp
}
