package kafka

import (
	"encoding/json"
	"time"
)

// EventStockAdjusted tipo de evento publicado por cada entrada del libro confirmada.
const EventStockAdjusted = "stock.adjusted"

// Envelope sobre común de los eventos del inventario.
type Envelope struct {
	EventID      string          `json:"eventId"`
	EventType    string          `json:"eventType"`
	EventVersion int             `json:"eventVersion"`
	OccurredAt   time.Time       `json:"occurredAt"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

// UnwrapPayload decodifica el payload específico de un sobre.
func UnwrapPayload[T any](env Envelope) (T, error) {
	var t T
	err := json.Unmarshal(env.Payload, &t)
	return t, err
}
