package model

import "time"

// Order statuses. Orders start as pending and end as delivered or
// cancelled; the client never mutates an order after submission.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment methods accepted at checkout.
const (
	PaymentMethodCard           = "card"
	PaymentMethodPaypal         = "paypal"
	PaymentMethodTransfer       = "transfer"
	PaymentMethodCashOnDelivery = "cash_on_delivery"
)

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCard, PaymentMethodPaypal, PaymentMethodTransfer, PaymentMethodCashOnDelivery:
		return true
	}
	return false
}

// Order represents a customer order. Totals are computed server-side
// from the session cart at submission time.
type Order struct {
	ID                 int64       `json:"id" db:"id"`
	UserID             *string     `json:"user_id,omitempty" db:"user_id"`
	Status             string      `json:"status" db:"status"`
	Subtotal           float64     `json:"subtotal" db:"subtotal"`
	ShippingCost       float64     `json:"shipping_cost" db:"shipping_cost"`
	Total              float64     `json:"total" db:"total"`
	CustomerName       string      `json:"customer_name" db:"customer_name"`
	CustomerEmail      string      `json:"customer_email" db:"customer_email"`
	CustomerPhone      string      `json:"customer_phone,omitempty" db:"customer_phone"`
	ShippingAddress    string      `json:"shipping_address" db:"shipping_address"`
	ShippingCity       string      `json:"shipping_city" db:"shipping_city"`
	ShippingPostalCode string      `json:"shipping_postal_code" db:"shipping_postal_code"`
	ShippingCountry    string      `json:"shipping_country" db:"shipping_country"`
	PaymentMethod      string      `json:"payment_method" db:"payment_method"`
	PaymentStatus      string      `json:"payment_status" db:"payment_status"`
	TrackingNumber     *string     `json:"tracking_number,omitempty" db:"tracking_number"`
	Notes              string      `json:"notes,omitempty" db:"notes"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" db:"updated_at"`
	Items              []OrderItem `json:"items,omitempty"`
}

// OrderItem is one product line within an order, snapshotted from the
// cart at submission time. Name, image and origin are joined from the
// product table for display.
type OrderItem struct {
	ID        int64   `json:"-" db:"id"`
	OrderID   int64   `json:"-" db:"order_id"`
	ProductID int64   `json:"product_id" db:"product_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
	Name      string  `json:"name,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
	Origin    string  `json:"origin,omitempty"`
}

// CheckoutItem mirrors the item shape the storefront sends with a
// checkout. Prices in the payload are ignored; the server reprices the
// order from the session cart.
type CheckoutItem struct {
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CheckoutRequest is the payload for creating an order. All fields are
// required except customer_phone and notes.
type CheckoutRequest struct {
	CustomerName       string         `json:"customer_name"`
	CustomerEmail      string         `json:"customer_email"`
	CustomerPhone      string         `json:"customer_phone,omitempty"`
	ShippingAddress    string         `json:"shipping_address"`
	ShippingCity       string         `json:"shipping_city"`
	ShippingPostalCode string         `json:"shipping_postal_code"`
	ShippingCountry    string         `json:"shipping_country"`
	PaymentMethod      string         `json:"payment_method"`
	Notes              string         `json:"notes,omitempty"`
	Items              []CheckoutItem `json:"items,omitempty"`
}

// OrderConfirmation is returned after a successful submission.
type OrderConfirmation struct {
	Status  string  `json:"status"`
	OrderID int64   `json:"order_id"`
	Total   float64 `json:"total"`
}

// StatusUpdateRequest is the payload for the admin status endpoint.
type StatusUpdateRequest struct {
	Status         string  `json:"status"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
}
