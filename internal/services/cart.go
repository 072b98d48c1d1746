package service

import (
	"math"
	"slices"
	"sync"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/models"
	"github.com/shopspring/decimal"
)

// Cart holds the session's line items in insertion order, at most one line
// per product id, every line with quantity >= 1.
type Cart struct {
	mu       sync.RWMutex
	lines    []models.CartLine
	shipping decimal.Decimal
}

func NewCart(shipping decimal.Decimal) *Cart {
	return &Cart{shipping: shipping}
}

func (c *Cart) indexOf(id models.ID) int {
	return slices.IndexFunc(c.lines, func(l models.CartLine) bool {
		return l.Product.ID == id
	})
}

func (c *Cart) Add(product models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(product.ID); i >= 0 {
		c.lines[i].Quantity++
		return
	}

	c.lines = append(c.lines, models.CartLine{Product: product, Quantity: 1})
}

// UpdateQuantity adds delta to the line's quantity, saturating at math.MaxInt.
// A line that drops to zero or below is removed; an unknown id is ignored.
func (c *Cart) UpdateQuantity(id models.ID, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return
	}

	quantity := addQuantity(c.lines[i].Quantity, delta)
	if quantity <= 0 {
		c.lines = slices.Delete(c.lines, i, i+1)
		return
	}

	c.lines[i].Quantity = quantity
}

func (c *Cart) Remove(id models.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		c.lines = slices.Delete(c.lines, i, i+1)
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
}

// replace swaps in a rebuilt set of lines, e.g. after reading the backend cart.
func (c *Cart) replace(lines []models.CartLine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = lines
}

// Lines returns a snapshot copy.
func (c *Cart) Lines() []models.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return slices.Clone(c.lines)
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.lines)
}

func (c *Cart) Quantity(id models.ID) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.lines[i].Quantity
	}

	return 0
}

func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	subtotal := decimal.Zero
	for _, line := range c.lines {
		subtotal = subtotal.Add(line.LineTotal())
	}

	return subtotal
}

func (c *Cart) Shipping() decimal.Decimal {
	return c.shipping
}

// Total is subtotal plus the flat shipping fee, charged even on an empty cart.
func (c *Cart) Total() decimal.Decimal {
	return c.Subtotal().Add(c.shipping)
}

func addQuantity(quantity, delta int) int {
	if delta > 0 && quantity > math.MaxInt-delta {
		return math.MaxInt
	}

	return quantity + delta
}
