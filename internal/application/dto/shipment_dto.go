package dto

import "time"

// ShipmentItemDTO línea de un envío.
type ShipmentItemDTO struct {
	Name     string `json:"name" validate:"required,min=1"`
	Quantity int64  `json:"quantity" validate:"required,min=1"`
}

// ShipmentRequest body para crear o actualizar un envío.
type ShipmentRequest struct {
	ContainerID          string            `json:"containerId" validate:"required,min=1,max=100"`
	TrackingURL          string            `json:"trackingUrl" validate:"required,url"`
	ExpectedDeliveryDate string            `json:"expectedDeliveryDate" validate:"required"`
	Status               string            `json:"status" validate:"omitempty,oneof=in-transit delivered delayed"`
	Description          string            `json:"description" validate:"required"`
	Items                []ShipmentItemDTO `json:"items" validate:"dive"`
}

// ShipmentResponse salida de un envío.
type ShipmentResponse struct {
	ID                   string            `json:"_id"`
	UserID               string            `json:"userID"`
	ContainerID          string            `json:"containerId"`
	TrackingURL          string            `json:"trackingUrl"`
	ExpectedDeliveryDate string            `json:"expectedDeliveryDate"`
	Status               string            `json:"status"`
	Description          string            `json:"description"`
	Items                []ShipmentItemDTO `json:"items"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}
