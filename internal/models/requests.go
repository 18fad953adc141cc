package models

import "time"

// RequestStatus — статус заявки на материал.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// MaterialRequest — заявка производства на выдачу материала со склада.
type MaterialRequest struct {
	ID           string        `json:"id" validate:"required"`
	ProductionID string        `json:"productionId,omitempty"`
	MaterialID   string        `json:"materialId" validate:"required"`
	Quantity     float64       `json:"quantity"`
	Status       RequestStatus `json:"status" validate:"required,oneof=pending approved rejected"`
	RequestedBy  string        `json:"requestedBy,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

type MaterialRequestInput struct {
	ProductionID string  `json:"productionId,omitempty"`
	MaterialID   string  `json:"materialId,omitempty" validate:"required"`
	Quantity     float64 `json:"quantity" validate:"gt=0"`
	Note         string  `json:"note,omitempty" validate:"omitempty,max=500"`
}

// Decision — решение по заявке (approve/reject).
type Decision struct {
	Reason string `json:"reason,omitempty" validate:"omitempty,max=500"`
}
