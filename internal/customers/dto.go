package customers

// AddressInput carries an address as submitted at the boundary. Street,
// neighborhood, city and region may be left blank when the postal code
// resolves; resolved values take precedence over manual ones.
type AddressInput struct {
	PostalCode   string  `json:"postal_code" validate:"required"`
	Street       string  `json:"street,omitempty"`
	Number       *string `json:"number,omitempty"`
	Complement   *string `json:"complement,omitempty"`
	Neighborhood *string `json:"neighborhood,omitempty"`
	City         *string `json:"city,omitempty"`
	Region       *string `json:"region,omitempty"`
	Reference    *string `json:"reference,omitempty"`
	Kind         string  `json:"kind,omitempty"`
	Principal    *bool   `json:"principal,omitempty"`
}

type RegisterCustomerRequest struct {
	Name    string       `json:"name" validate:"required,max=255"`
	Email   string       `json:"email" validate:"required,email"`
	Phone   *string      `json:"phone,omitempty"`
	TaxID   *string      `json:"tax_id,omitempty"`
	Address AddressInput `json:"address" validate:"required"`
}

type UpdateCustomerRequest struct {
	Name    *string       `json:"name,omitempty" validate:"omitempty,max=255"`
	Email   *string       `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string       `json:"phone,omitempty"`
	TaxID   *string       `json:"tax_id,omitempty"`
	Address *AddressInput `json:"address,omitempty"`
}
