package domain

import (
	"fmt"
	"slices"
)

// CartItem pairs a live product with the requested quantity. Product is a
// reference, so its stock and price are read through at use time.
type CartItem struct {
	Product  *Product
	Quantity int
}

// Subtotal is price times quantity at the product's current price.
func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

type Cart struct {
	UserID string
	items  map[string]CartItem
	order  []string // product ids in insertion order
}

func NewCart(userID string) *Cart {
	return &Cart{
		UserID: userID,
		items:  make(map[string]CartItem),
	}
}

// AddItem adds quantity units of product, accumulating with any quantity
// already in the cart. It reports false, leaving the cart unchanged, when the
// combined quantity exceeds the product's current stock.
func (c *Cart) AddItem(product *Product, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, ErrNonPositiveQuantity
	}

	existing, exists := c.items[product.ID]
	// compared against the remaining stock so the sum cannot overflow
	if quantity > product.Stock()-existing.Quantity {
		return false, nil
	}

	if !exists {
		c.order = append(c.order, product.ID)
	}
	c.items[product.ID] = CartItem{Product: product, Quantity: existing.Quantity + quantity}
	return true, nil
}

func (c *Cart) RemoveItem(productID string) bool {
	if _, exists := c.items[productID]; !exists {
		return false
	}
	delete(c.items, productID)
	c.order = slices.DeleteFunc(c.order, func(id string) bool { return id == productID })
	return true
}

// UpdateQuantity sets the quantity for a product already in the cart. Zero
// removes the item. A quantity above current stock reports false and keeps
// the previous quantity.
func (c *Cart) UpdateQuantity(productID string, quantity int) (bool, error) {
	if quantity < 0 {
		return false, ErrNegativeQuantity
	}

	item, exists := c.items[productID]
	if !exists {
		return false, nil
	}

	if quantity == 0 {
		return c.RemoveItem(productID), nil
	}

	if quantity > item.Product.Stock() {
		return false, nil
	}

	item.Quantity = quantity
	c.items[productID] = item
	return true, nil
}

// Quantity returns the quantity held for productID, or 0.
func (c *Cart) Quantity(productID string) int {
	return c.items[productID].Quantity
}

// Items returns the cart contents in the order products were first added.
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, c.items[id])
	}
	return items
}

func (c *Cart) TotalPrice() float64 {
	var total float64
	for _, id := range c.order {
		total += c.items[id].Subtotal()
	}
	return total
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

func (c *Cart) Clear() {
	clear(c.items)
	c.order = c.order[:0]
}

func (c *Cart) String() string {
	return fmt.Sprintf("Cart(user_id=%s, items=%d, total=%v)", c.UserID, len(c.items), c.TotalPrice())
}
