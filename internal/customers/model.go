package customers

import "time"

// Customer is a registered buyer. Email and tax id are unique; the
// principal address reference may be null until an address is registered.
type Customer struct {
	ID                 int64      `json:"id" db:"id"`
	Name               string     `json:"name" db:"name"`
	Email              string     `json:"email" db:"email"`
	Phone              *string    `json:"phone,omitempty" db:"phone"`
	TaxID              *string    `json:"tax_id,omitempty" db:"tax_id"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	PrincipalAddressID *int64     `json:"principal_address_id,omitempty" db:"principal_address_id"`
	Active             bool       `json:"active" db:"active"`
}

// Address belongs to a customer. A customer may hold several; application
// logic keeps one flagged principal at write time.
type Address struct {
	ID           int64   `json:"id" db:"id"`
	CustomerID   int64   `json:"customer_id" db:"customer_id"`
	PostalCode   string  `json:"postal_code" db:"postal_code"`
	Street       string  `json:"street" db:"street"`
	Number       *string `json:"number,omitempty" db:"number"`
	Complement   *string `json:"complement,omitempty" db:"complement"`
	Neighborhood *string `json:"neighborhood,omitempty" db:"neighborhood"`
	City         *string `json:"city,omitempty" db:"city"`
	Region       *string `json:"region,omitempty" db:"region"`
	Reference    *string `json:"reference,omitempty" db:"reference"`
	Kind         string  `json:"kind" db:"kind"`
	Principal    bool    `json:"principal" db:"principal"`
}

// CustomerWithAddress is the read view joining a customer with its
// principal address, when one exists.
type CustomerWithAddress struct {
	Customer
	Address *Address `json:"address,omitempty"`
}
