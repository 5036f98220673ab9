package pricing

import "fmt"

// DefaultPolicy returns the policy used when no policy file is
// configured: a 4.99 flat shipping fee and no free-shipping threshold.
func DefaultPolicy() Policy {
	return Policy{
		ShippingFlatFee: 4.99,
		Currency:        "EUR",
	}
}

// Shipping returns the shipping cost for a given subtotal. An empty
// cart ships for free, as does any subtotal at or above the
// free-shipping threshold when one is configured.
func (p Policy) Shipping(subtotal float64) float64 {
	if subtotal <= 0 {
		return 0
	}
	if p.FreeShippingThreshold > 0 && subtotal >= p.FreeShippingThreshold {
		return 0
	}
	return p.ShippingFlatFee
}

// Validate validates the policy.
func (p Policy) Validate() error {
	if p.ShippingFlatFee < 0 {
		return fmt.Errorf("shipping flat fee cannot be negative: %.2f", p.ShippingFlatFee)
	}
	if p.FreeShippingThreshold < 0 {
		return fmt.Errorf("free shipping threshold cannot be negative: %.2f", p.FreeShippingThreshold)
	}
	if p.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	return nil
}
