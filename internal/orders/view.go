package orders

import "time"

// OrderView is the fully joined read model served by the order endpoints.
type OrderView struct {
	ID              int64        `json:"id"`
	CreatedAt       time.Time    `json:"created_at"`
	Total           float64      `json:"total"`
	ProductSubtotal float64      `json:"product_subtotal"`
	Status          OrderStatus  `json:"status"`
	TrackingCode    *string      `json:"tracking_code,omitempty"`
	LabelID         *string      `json:"label_id,omitempty"`
	Package         PackageView  `json:"package"`
	Shipping        ShippingView `json:"shipping"`
	Customer        CustomerView `json:"customer"`
	DeliveryAddress AddressView  `json:"delivery_address"`
	Items           []ItemView   `json:"items"`
}

type PackageView struct {
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
	WidthCm  float64 `json:"width_cm"`
	LengthCm float64 `json:"length_cm"`
}

type ShippingView struct {
	Price         float64 `json:"price"`
	Carrier       string  `json:"carrier"`
	Service       string  `json:"service"`
	ServiceID     int64   `json:"service_id"`
	EstimatedDays int     `json:"estimated_days"`
}

type CustomerView struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

type AddressView struct {
	ID           int64   `json:"id"`
	PostalCode   string  `json:"postal_code"`
	Street       string  `json:"street"`
	Number       *string `json:"number,omitempty"`
	Complement   *string `json:"complement,omitempty"`
	Neighborhood *string `json:"neighborhood,omitempty"`
	City         *string `json:"city,omitempty"`
	Region       *string `json:"region,omitempty"`
	Reference    *string `json:"reference,omitempty"`
}

// ItemView pairs the immutable sale-time price with the product's current
// catalog snapshot. Subtotal is Quantity times the sale-time UnitPrice.
type ItemView struct {
	ID        int64       `json:"id"`
	Product   ProductView `json:"product"`
	Quantity  int         `json:"quantity"`
	UnitPrice float64     `json:"unit_price"`
	Subtotal  float64     `json:"subtotal"`
}

type ProductView struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	CatalogPrice float64 `json:"catalog_price"`
	Image        *string `json:"image,omitempty"`
}
