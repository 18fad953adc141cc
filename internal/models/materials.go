package models

// Material — сырьё на складе (ткань, нитки, фурнитура).
type Material struct {
	ID        string  `json:"id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Type      string  `json:"type,omitempty"`
	Unit      string  `json:"unit,omitempty"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type MaterialInput struct {
	Name      string  `json:"name,omitempty" validate:"required,max=120"`
	Type      string  `json:"type,omitempty"`
	Unit      string  `json:"unit,omitempty" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"gte=0"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}
