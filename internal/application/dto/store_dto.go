package dto

import "time"

// CreateStoreRequest body para POST /api/store/add.
type CreateStoreRequest struct {
	UserID   string `json:"userId" validate:"omitempty,uuid"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Category string `json:"category" validate:"max=100"`
	Address  string `json:"address" validate:"max=300"`
	City     string `json:"city" validate:"max=100"`
	Image    string `json:"image"`
}

// StoreResponse salida de una tienda.
type StoreResponse struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userID"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}
