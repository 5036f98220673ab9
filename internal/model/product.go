package model

import "time"

// Roast levels for coffee products.
const (
	RoastLight  = "claro"
	RoastMedium = "medio"
	RoastDark   = "oscuro"
)

// Product represents a coffee product in the catalogue. The server-side
// copy is authoritative; clients only ever hold a read-only projection.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	Origin      string    `json:"origin" db:"origin"`
	Roast       string    `json:"roast" db:"roast"`
	FlavorNotes string    `json:"flavor_notes,omitempty" db:"flavor_notes"`
	Price       float64   `json:"price" db:"price"`
	WeightGrams int       `json:"weight_grams" db:"weight_grams"`
	Stock       int       `json:"stock" db:"stock"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	Featured    bool      `json:"featured" db:"featured"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
