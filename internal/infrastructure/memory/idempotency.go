package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventario-stock/internal/application/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

type idemEntry struct {
	resp      ports.CachedResponse
	expiresAt time.Time
}

// IdempotencyStore respuestas idempotentes en proceso (sin REDIS_ADDR).
type IdempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idemEntry
	now     func() time.Time
}

// NewIdempotencyStore crea un almacén vacío.
func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{entries: make(map[string]idemEntry), now: time.Now}
}

// Get devuelve la respuesta guardada o nil si no existe o expiró.
func (s *IdempotencyStore) Get(_ context.Context, key string) (*ports.CachedResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return nil, nil
	}
	resp := e.resp
	resp.Body = append([]byte(nil), e.resp.Body...)
	return &resp, nil
}

// Save guarda la respuesta si la clave no está ocupada.
func (s *IdempotencyStore) Save(_ context.Context, key string, resp ports.CachedResponse, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok && s.now().Before(e.expiresAt) {
		return nil
	}
	resp.Body = append([]byte(nil), resp.Body...)
	s.entries[key] = idemEntry{resp: resp, expiresAt: s.now().Add(ttl)}
	return nil
}
