package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	assert.Equal(t, 4.99, policy.ShippingFlatFee)
	assert.Equal(t, 0.0, policy.FreeShippingThreshold)
	assert.Equal(t, "EUR", policy.Currency)
	assert.NoError(t, policy.Validate())
}

func TestPolicy_Shipping(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		subtotal float64
		want     float64
	}{
		{
			name:     "empty cart ships free",
			policy:   DefaultPolicy(),
			subtotal: 0,
			want:     0,
		},
		{
			name:     "flat fee applies to any non-empty cart",
			policy:   DefaultPolicy(),
			subtotal: 0.01,
			want:     4.99,
		},
		{
			name:     "flat fee applies to large carts without threshold",
			policy:   DefaultPolicy(),
			subtotal: 500.00,
			want:     4.99,
		},
		{
			name:     "below free shipping threshold",
			policy:   Policy{ShippingFlatFee: 4.99, FreeShippingThreshold: 50.00, Currency: "EUR"},
			subtotal: 49.99,
			want:     4.99,
		},
		{
			name:     "at free shipping threshold",
			policy:   Policy{ShippingFlatFee: 4.99, FreeShippingThreshold: 50.00, Currency: "EUR"},
			subtotal: 50.00,
			want:     0,
		},
		{
			name:     "above free shipping threshold",
			policy:   Policy{ShippingFlatFee: 4.99, FreeShippingThreshold: 50.00, Currency: "EUR"},
			subtotal: 75.00,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.Shipping(tt.subtotal))
		})
	}
}

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name    string
		policy  Policy
		wantErr bool
	}{
		{
			name:    "valid policy",
			policy:  Policy{ShippingFlatFee: 4.99, Currency: "EUR"},
			wantErr: false,
		},
		{
			name:    "free shipping everywhere",
			policy:  Policy{ShippingFlatFee: 0, Currency: "EUR"},
			wantErr: false,
		},
		{
			name:    "negative flat fee",
			policy:  Policy{ShippingFlatFee: -1, Currency: "EUR"},
			wantErr: true,
		},
		{
			name:    "negative threshold",
			policy:  Policy{ShippingFlatFee: 4.99, FreeShippingThreshold: -10, Currency: "EUR"},
			wantErr: true,
		},
		{
			name:    "missing currency",
			policy:  Policy{ShippingFlatFee: 4.99},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
