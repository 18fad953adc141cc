package models

// ProductMaterial — сколько материала уходит на единицу изделия.
type ProductMaterial struct {
	MaterialID string  `json:"materialId" validate:"required"`
	Quantity   float64 `json:"quantity" validate:"gt=0"`
}

// Product — определение изделия.
type Product struct {
	ID          string            `json:"id" validate:"required"`
	Name        string            `json:"name" validate:"required"`
	Description string            `json:"description,omitempty"`
	Price       float64           `json:"price"`
	Materials   []ProductMaterial `json:"materials,omitempty"`
}

type ProductInput struct {
	Name        string            `json:"name,omitempty" validate:"required,max=120"`
	Description string            `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price       float64           `json:"price" validate:"gte=0"`
	Materials   []ProductMaterial `json:"materials,omitempty" validate:"dive"`
}
