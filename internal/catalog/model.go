package catalog

import "time"

// Product is a catalog entry. Physical attributes are optional; they are
// only needed by the standalone shipping-quote endpoint. Stock is never
// negative and within this service is only decremented by order placement.
type Product struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Price       float64   `json:"price" db:"price"`
	WeightKg    *float64  `json:"weight_kg,omitempty" db:"weight_kg"`
	HeightCm    *float64  `json:"height_cm,omitempty" db:"height_cm"`
	WidthCm     *float64  `json:"width_cm,omitempty" db:"width_cm"`
	LengthCm    *float64  `json:"length_cm,omitempty" db:"length_cm"`
	Stock       int       `json:"stock" db:"stock"`
	Description *string   `json:"description,omitempty" db:"description"`
	Image       *string   `json:"image,omitempty" db:"image"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
