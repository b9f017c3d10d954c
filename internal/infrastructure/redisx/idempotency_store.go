package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/inventario-stock/internal/application/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore guarda respuestas HTTP en Redis con TTL.
type IdempotencyStore struct {
	rdb redis.Cmdable
}

// NewIdempotencyStore crea el almacén sobre un cliente (o cluster) de Redis.
func NewIdempotencyStore(rdb redis.Cmdable) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb}
}

// Get implementa ports.IdempotencyStore.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.CachedResponse, error) {
	raw, err := s.rdb.Get(ctx, IdemKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	var resp ports.CachedResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("redis decode %s: %w", key, err)
	}
	return &resp, nil
}

// Save implementa ports.IdempotencyStore. SETNX: la primera respuesta gana.
func (s *IdempotencyStore) Save(ctx context.Context, key string, resp ports.CachedResponse, ttl time.Duration) error {
	raw, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("redis encode %s: %w", key, err)
	}
	if err := s.rdb.SetNX(ctx, IdemKey(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
