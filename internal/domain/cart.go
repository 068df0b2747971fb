package domain

import "time"

// Cart holds one shopper session's line items in insertion order.
type Cart struct {
	SessionID string     `bson:"session_id" json:"session_id"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// CartItem is a single line item. There is at most one per product id;
// adding the same product again increments Quantity instead.
type CartItem struct {
	ProductID string  `bson:"product_id" json:"item_id"`
	Name      string  `bson:"name" json:"item_name"`
	UnitPrice float64 `bson:"unit_price" json:"price"`
	Category  string  `bson:"category" json:"item_category"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// Subtotal is the sum of unit price times quantity across all line items.
func (c *Cart) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities, used to drive the cart badge.
func (c *Cart) ItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// CopyItems returns an independent copy of the line items.
func (c *Cart) CopyItems() []CartItem {
	if len(c.Items) == 0 {
		return nil
	}
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return items
}
