package domain

import (
	"fmt"
	"math"
)

type Product struct {
	ID    string
	Name  string
	Price float64
	stock int
}

func NewProduct(id, name string, price float64, stock int) (*Product, error) {
	if price < 0 {
		return nil, fmt.Errorf("product %s: %w", id, ErrNegativePrice)
	}
	if stock < 0 {
		return nil, fmt.Errorf("product %s: %w", id, ErrNegativeStock)
	}
	return &Product{
		ID:    id,
		Name:  name,
		Price: price,
		stock: stock,
	}, nil
}

// Stock returns the units currently available.
func (p *Product) Stock() int {
	return p.stock
}

// DecreaseStock removes quantity units. It reports false and leaves the stock
// untouched when not enough units are available.
func (p *Product) DecreaseStock(quantity int) bool {
	if quantity > p.stock {
		return false
	}
	p.stock -= quantity
	return true
}

func (p *Product) IncreaseStock(quantity int) error {
	if quantity < 0 {
		return ErrNegativeQuantity
	}
	if quantity > math.MaxInt-p.stock {
		return fmt.Errorf("product %s: %w", p.ID, ErrStockOverflow)
	}
	p.stock += quantity
	return nil
}

func (p *Product) String() string {
	return fmt.Sprintf("Product(id=%s, name=%s, price=%v, stock=%d)", p.ID, p.Name, p.Price, p.stock)
}
