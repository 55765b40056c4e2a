// Package cart holds the client-side order lines before checkout. Nothing
// here touches the backend; the cart exists only until an order is placed.
package cart

import (
	"github.com/shopspring/decimal"
)

// Item is one menu line in the cart. Quantity is always >= 1; an item whose
// quantity would drop to 0 is removed instead.
type Item struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Cart is an ordered list of items keyed by menu item id.
type Cart struct {
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int { return len(c.items) }

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Add puts one unit of the given menu item in the cart, incrementing the
// existing line if present.
func (c *Cart) Add(id int64, name string, price decimal.Decimal) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, Item{ID: id, Name: name, Price: price, Quantity: 1})
}

// Increment adds exactly one unit to an existing line. Unknown ids are
// ignored.
func (c *Cart) Increment(id int64) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity++
			return
		}
	}
}

// Decrement removes one unit; removing the last unit removes the line.
func (c *Cart) Decrement(id int64) {
	for i := range c.items {
		if c.items[i].ID == id {
			if c.items[i].Quantity > 1 {
				c.items[i].Quantity--
			} else {
				c.items = append(c.items[:i], c.items[i+1:]...)
			}
			return
		}
	}
}

// Remove drops the line regardless of quantity.
func (c *Cart) Remove(id int64) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Quantity returns the units of the given item, 0 when absent.
func (c *Cart) Quantity(id int64) int {
	for _, it := range c.items {
		if it.ID == id {
			return it.Quantity
		}
	}
	return 0
}

var gstRate = decimal.NewFromFloat(0.18)

// Totals is the checkout money breakdown shown on the cart page.
// GST is 18% on top of the item total and the grand total is rounded to the
// nearest rupee, matching what the backend bills.
type Totals struct {
	// Total is the sum of price*quantity over all lines.
	Total decimal.Decimal
	// GST is Total*0.18 rounded to 2 places.
	GST decimal.Decimal
	// GrandTotal is Total+GST rounded to 0 places.
	GrandTotal decimal.Decimal
}

// Totals computes the cart money breakdown.
func (c *Cart) Totals() Totals {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	gst := total.Mul(gstRate).Round(2)
	return Totals{
		Total:      total,
		GST:        gst,
		GrandTotal: total.Add(gst).Round(0),
	}
}
