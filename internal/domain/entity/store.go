package entity

import "time"

// Store tienda o punto de venta de un usuario.
type Store struct {
	ID        string
	OwnerID   string
	Name      string
	Category  string
	Address   string
	City      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
