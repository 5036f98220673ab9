package model

import "math"

// CartItem is one product line in a session cart. The unit price is
// captured from the product table at mutation time; prices sent by
// clients are ignored.
type CartItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Origin    string  `json:"origin,omitempty"`
	ImageURL  string  `json:"imageUrl,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Cart is the authoritative server-side view of a session's shopping
// cart. Items are keyed by product ID: adding a product that is already
// present merges into the existing line instead of creating a second one.
type Cart struct {
	Items []CartItem `json:"items"`
}

// CartSummary holds the aggregates derived from the cart's items.
// It is recomputed from scratch on every state change.
type CartSummary struct {
	Count        int     `json:"count"`
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shippingCost"`
	Total        float64 `json:"total"`
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

// find returns the index of the line for the given product, or -1.
func (c *Cart) find(productID int64) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add merges the given item into the cart. If a line for the product
// already exists its quantity is increased and its display data and
// unit price are refreshed; otherwise a new line is appended.
func (c *Cart) Add(item CartItem) {
	if item.Quantity <= 0 {
		return
	}
	if i := c.find(item.ProductID); i >= 0 {
		c.Items[i].Quantity += item.Quantity
		c.Items[i].Name = item.Name
		c.Items[i].Origin = item.Origin
		c.Items[i].ImageURL = item.ImageURL
		c.Items[i].UnitPrice = item.UnitPrice
		return
	}
	c.Items = append(c.Items, item)
}

// SetQuantity sets the quantity of an existing line. A quantity of zero
// or less removes the line. Setting the quantity of a product that is
// not in the cart is a no-op, which keeps the operation idempotent.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	if i := c.find(productID); i >= 0 {
		c.Items[i].Quantity = quantity
	}
}

// Remove deletes the line for the given product if present.
func (c *Cart) Remove(productID int64) {
	if i := c.find(productID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

// Clear removes all lines.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Count returns the total number of units across all lines.
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal returns the sum of quantity times unit price over all lines,
// rounded to cents.
func (c *Cart) Subtotal() float64 {
	subtotal := 0.0
	for _, item := range c.Items {
		subtotal += float64(item.Quantity) * item.UnitPrice
	}
	return RoundCents(subtotal)
}

// Summarize derives the cart aggregates. The shipping cost is supplied
// by the pricing policy as a function of the subtotal.
func (c *Cart) Summarize(shipping func(subtotal float64) float64) CartSummary {
	subtotal := c.Subtotal()
	shippingCost := RoundCents(shipping(subtotal))
	return CartSummary{
		Count:        c.Count(),
		Subtotal:     subtotal,
		ShippingCost: shippingCost,
		Total:        RoundCents(subtotal + shippingCost),
	}
}

// RoundCents rounds a monetary amount to two decimal places.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// CartResponse is the wire representation returned by every cart
// endpoint: the full authoritative cart plus its derived aggregates.
type CartResponse struct {
	Status       string     `json:"status"`
	Cart         []CartItem `json:"cart"`
	Count        int        `json:"count"`
	Subtotal     float64    `json:"subtotal"`
	ShippingCost float64    `json:"shippingCost"`
	Total        float64    `json:"total"`
}

// NewCartResponse builds the wire representation from a cart and its
// summary.
func NewCartResponse(cart *Cart, summary CartSummary) *CartResponse {
	return &CartResponse{
		Status:       "ok",
		Cart:         cart.Items,
		Count:        summary.Count,
		Subtotal:     summary.Subtotal,
		ShippingCost: summary.ShippingCost,
		Total:        summary.Total,
	}
}
