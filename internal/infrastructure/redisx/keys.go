package redisx

import "fmt"

const (
	// Respuesta idempotente: idem:http:{user_id}:{method}:{path}:{idempotency_key} -> CachedResponse (JSON)
	KeyIdemHTTP = "idem:http:%s"
)

// IdemKey clave Redis de una respuesta idempotente.
func IdemKey(scoped string) string {
	return fmt.Sprintf(KeyIdemHTTP, scoped)
}
