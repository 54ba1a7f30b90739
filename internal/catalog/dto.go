package catalog

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Price       float64  `json:"price" validate:"gte=0"`
	WeightKg    *float64 `json:"weight_kg,omitempty" validate:"omitempty,gt=0"`
	HeightCm    *float64 `json:"height_cm,omitempty" validate:"omitempty,gt=0"`
	WidthCm     *float64 `json:"width_cm,omitempty" validate:"omitempty,gt=0"`
	LengthCm    *float64 `json:"length_cm,omitempty" validate:"omitempty,gt=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	WeightKg    *float64 `json:"weight_kg,omitempty" validate:"omitempty,gt=0"`
	HeightCm    *float64 `json:"height_cm,omitempty" validate:"omitempty,gt=0"`
	WidthCm     *float64 `json:"width_cm,omitempty" validate:"omitempty,gt=0"`
	LengthCm    *float64 `json:"length_cm,omitempty" validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
	Description *string  `json:"description,omitempty"`
	Image       *string  `json:"image,omitempty"`
}
