package pricing

import "context"

// Policy holds the storefront pricing rules applied on top of the
// catalogue prices: a flat shipping fee, charged whenever the cart is
// non-empty, with an optional free-shipping threshold.
type Policy struct {
	ShippingFlatFee       float64 `json:"shipping_flat_fee"`
	FreeShippingThreshold float64 `json:"free_shipping_threshold"` // 0 disables the threshold
	Currency              string  `json:"currency"`
}

// Loader defines the interface for loading a pricing policy file.
type Loader interface {
	// Load reads a JSON policy file and returns the parsed Policy.
	Load(ctx context.Context, filePath string) (Policy, error)
}
