package models

import "time"

// InvoiceItem — строка счёта.
type InvoiceItem struct {
	ProductID string  `json:"productId" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	UnitPrice float64 `json:"unitPrice" validate:"gte=0"`
}

// Invoice — счёт заказчику.
type Invoice struct {
	ID         string        `json:"id" validate:"required"`
	Number     string        `json:"number,omitempty"`
	CustomerID string        `json:"customerId" validate:"required"`
	Items      []InvoiceItem `json:"items"`
	Total      float64       `json:"total"`
	Status     string        `json:"status,omitempty"`
	DueDate    *time.Time    `json:"dueDate,omitempty"`
	CreatedAt  time.Time     `json:"createdAt"`
}

type InvoiceInput struct {
	CustomerID string        `json:"customerId,omitempty" validate:"required"`
	Items      []InvoiceItem `json:"items,omitempty" validate:"required,min=1,dive"`
	DueDate    *time.Time    `json:"dueDate,omitempty"`
	Discount   float64       `json:"discount,omitempty" validate:"gte=0"`
}
