package broker

import "time"

// OrderCreatedEvent is published after an order has been committed to
// the database. Consumers drive fulfilment and notification flows from
// it.
type OrderCreatedEvent struct {
	EventID       string    `json:"event_id"`
	OrderID       int64     `json:"order_id"`
	CustomerEmail string    `json:"customer_email"`
	Total         float64   `json:"total"`
	ItemCount     int       `json:"item_count"`
	CreatedAt     time.Time `json:"created_at"`
}
