package orders

import "time"

type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusPaid           OrderStatus = "Paid"
	StatusCancelled      OrderStatus = "Cancelled"
	StatusAwaitingLabel  OrderStatus = "Awaiting Label"
	StatusLabelGenerated OrderStatus = "Label Generated"
	StatusPreparing      OrderStatus = "Preparing"
	StatusInTransit      OrderStatus = "In Transit"
	StatusDelivered      OrderStatus = "Delivered"
	StatusLost           OrderStatus = "Lost"
	StatusReturned       OrderStatus = "Returned"
)

var validStatuses = map[OrderStatus]struct{}{
	StatusPending:        {},
	StatusPaid:           {},
	StatusCancelled:      {},
	StatusAwaitingLabel:  {},
	StatusLabelGenerated: {},
	StatusPreparing:      {},
	StatusInTransit:      {},
	StatusDelivered:      {},
	StatusLost:           {},
	StatusReturned:       {},
}

// ValidStatus reports whether s belongs to the status enumeration. Any
// enumerated status may follow any other; there is no adjacency rule.
func ValidStatus(s OrderStatus) bool {
	_, ok := validStatuses[s]
	return ok
}

// labelPipelineStatuses are the states in which an order may hold a label
// whose carrier-side progress is still worth polling.
var labelPipelineStatuses = []OrderStatus{
	StatusAwaitingLabel,
	StatusLabelGenerated,
	StatusPaid,
	StatusPreparing,
	StatusInTransit,
}

// Order is the persisted purchase snapshot. Total always equals
// ProductSubtotal plus ShippingPrice at creation time.
type Order struct {
	ID                int64       `json:"id" db:"id"`
	CustomerID        int64       `json:"customer_id" db:"customer_id"`
	DeliveryAddressID int64       `json:"delivery_address_id" db:"delivery_address_id"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
	Total             float64     `json:"total" db:"total"`
	ProductSubtotal   float64     `json:"product_subtotal" db:"product_subtotal"`
	Status            OrderStatus `json:"status" db:"status"`

	ShippingPrice float64 `json:"shipping_price" db:"shipping_price"`
	CarrierName   string  `json:"carrier_name" db:"carrier_name"`
	ServiceName   string  `json:"service_name" db:"service_name"`
	ServiceID     int64   `json:"service_id" db:"service_id"`
	EstimatedDays int     `json:"estimated_days" db:"estimated_days"`

	PackageWeightKg float64 `json:"package_weight_kg" db:"package_weight_kg"`
	PackageHeightCm float64 `json:"package_height_cm" db:"package_height_cm"`
	PackageWidthCm  float64 `json:"package_width_cm" db:"package_width_cm"`
	PackageLengthCm float64 `json:"package_length_cm" db:"package_length_cm"`

	LabelID      *string `json:"label_id,omitempty" db:"label_id"`
	TrackingCode *string `json:"tracking_code,omitempty" db:"tracking_code"`
}

// OrderItem is one order line. UnitPrice is the catalog price captured at
// the time of sale and never changes afterwards.
type OrderItem struct {
	ID        int64   `json:"id" db:"id"`
	OrderID   int64   `json:"order_id" db:"order_id"`
	ProductID int64   `json:"product_id" db:"product_id"`
	Quantity  int     `json:"quantity" db:"quantity"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
}
