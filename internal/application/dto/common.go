package dto

import "github.com/shopspring/decimal"

func init() {
	// Montos como números JSON (no strings), igual que los consumían los clientes existentes.
	decimal.MarshalJSONWithoutQuotes = true
}

// DateLayout formato de las fechas de negocio (compra, venta, entrega).
const DateLayout = "2006-01-02"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}
