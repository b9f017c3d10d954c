package entity

import "time"

// Estados de un envío.
const (
	ShipmentStatusInTransit = "in-transit"
	ShipmentStatusDelivered = "delivered"
	ShipmentStatusDelayed   = "delayed"
)

// ShipmentItem línea de un envío (nombre libre + cantidad >= 1).
type ShipmentItem struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// Shipment contenedor/envío en seguimiento.
type Shipment struct {
	ID                   string
	OwnerID              string
	ContainerID          string // único
	TrackingURL          string
	ExpectedDeliveryDate time.Time
	Status               string
	Description          string
	Items                []ShipmentItem
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ValidShipmentStatus indica si s es un estado conocido.
func ValidShipmentStatus(s string) bool {
	switch s {
	case ShipmentStatusInTransit, ShipmentStatusDelivered, ShipmentStatusDelayed:
		return true
	}
	return false
}
