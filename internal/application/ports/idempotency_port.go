package ports

import (
	"context"
	"time"
)

// CachedResponse respuesta guardada para repetir una petición con la misma Idempotency-Key.
type CachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// IdempotencyStore puerto de salida del almacén de respuestas idempotentes.
// Get devuelve (nil, nil) si la clave no existe o expiró.
type IdempotencyStore interface {
	Get(ctx context.Context, key string) (*CachedResponse, error)
	Save(ctx context.Context, key string, resp CachedResponse, ttl time.Duration) error
}
