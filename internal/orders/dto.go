package orders

type OrderItemInput struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type PlaceOrderRequest struct {
	CustomerID        int64            `json:"customer_id" validate:"required,gt=0"`
	DeliveryAddressID *int64           `json:"delivery_address_id,omitempty" validate:"omitempty,gt=0"`
	Items             []OrderItemInput `json:"items" validate:"required,min=1,dive"`

	// IdempotencyKey comes from the Idempotency-Key header, not the body.
	IdempotencyKey string `json:"-"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PlacementResult reports a committed order. View is nil when the
// post-commit read failed; the order itself is still placed.
type PlacementResult struct {
	OrderID int64      `json:"order_id"`
	View    *OrderView `json:"order,omitempty"`
	Detail  string     `json:"detail,omitempty"`
}
