// Package cart holds the shopper's itemized cart.
package cart

import (
	"errors"

	"github.com/yildizm/storefront/internal/catalog"
)

// ErrOutOfStock is returned when adding a product whose stock is zero
var ErrOutOfStock = errors.New("product is out of stock")

// Line is one product in the cart with its quantity
type Line struct {
	Product  catalog.Product
	Quantity int
}

// Subtotal returns price times quantity
func (l *Line) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Cart is an ordered collection of lines keyed by product id. Lines keep the
// order in which products were first added.
type Cart struct {
	lines []Line
	index map[catalog.ProductID]int
}

// New creates an empty cart
func New() *Cart {
	return &Cart{index: make(map[catalog.ProductID]int)}
}

// Add upserts p with quantity+1. Products that are not in stock are
// rejected and leave the cart unchanged.
func (c *Cart) Add(p catalog.Product) error {
	if !p.InStock() {
		return ErrOutOfStock
	}
	if i, ok := c.index[p.ID]; ok {
		c.lines[i].Quantity++
		return nil
	}
	c.index[p.ID] = len(c.lines)
	c.lines = append(c.lines, Line{Product: p, Quantity: 1})
	return nil
}

// Quantity returns how many of product id are in the cart
func (c *Cart) Quantity(id catalog.ProductID) int {
	if i, ok := c.index[id]; ok {
		return c.lines[i].Quantity
	}
	return 0
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Count returns the total number of items across all lines
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total returns the sum of all line subtotals
func (c *Cart) Total() float64 {
	var total float64
	for i := range c.lines {
		total += c.lines[i].Subtotal()
	}
	return total
}
