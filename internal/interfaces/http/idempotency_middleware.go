package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/ports"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// Cabeceras de idempotencia.
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
	maxIdempotencyKeyLen = 255
)

// Idempotency devuelve un middleware que repite la respuesta guardada cuando llega
// de nuevo la misma Idempotency-Key del mismo usuario. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - Sin cabecera: la petición pasa sin cambios.
//   - Clave conocida: se responde con el status y cuerpo guardados, sin ejecutar el handler.
//   - Respuestas 2xx: se guardan durante ttl.
//   - 503 Service Unavailable: el almacén no respondió al consultar la clave.
func Idempotency(store ports.IdempotencyStore, ttl time.Duration, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		key := c.Get(HeaderIdempotencyKey)
		if key == "" || store == nil {
			return c.Next()
		}
		if len(key) > maxIdempotencyKeyLen {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: "Idempotency-Key demasiado larga",
			})
		}
		scoped := GetUserID(c) + ":" + c.Method() + ":" + c.Path() + ":" + key

		cached, err := store.Get(c.Context(), scoped)
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("consulta de idempotencia")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "IDEMPOTENCY_UNAVAILABLE",
				Message: "no se pudo verificar la Idempotency-Key, intente más tarde",
			})
		}
		if cached != nil {
			c.Set(HeaderReplayed, "true")
			if cached.ContentType != "" {
				c.Set(fiber.HeaderContentType, cached.ContentType)
			}
			return c.Status(cached.Status).Send(cached.Body)
		}

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status < 200 || status >= 300 {
			return nil
		}
		resp := ports.CachedResponse{
			Status:      status,
			ContentType: string(c.Response().Header.ContentType()),
			Body:        append([]byte(nil), c.Response().Body()...),
		}
		if err := store.Save(c.Context(), scoped, resp, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar respuesta idempotente")
		}
		return nil
	}
}
