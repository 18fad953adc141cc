package models

import "time"

// Customer — заказчик одежды.
type Customer struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Gender    string    `json:"gender,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type CustomerInput struct {
	Name    string `json:"name,omitempty" validate:"required,min=2,max=120"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Address string `json:"address,omitempty" validate:"omitempty,max=255"`
	Gender  string `json:"gender,omitempty" validate:"omitempty,oneof=male female"`
}
