package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
)

// ShipmentHandler envíos del usuario (protegido; :userID debe coincidir con el token).
type ShipmentHandler struct {
	uc *usecase.ShipmentUseCase
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(uc *usecase.ShipmentUseCase) *ShipmentHandler {
	return &ShipmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear envío
// @Tags         shipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        userID  path  string               true  "ID del usuario"
// @Param        body    body  dto.ShipmentRequest  true  "Datos del envío"
// @Success      201  {object}  dto.ShipmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shipment/add/{userID} [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.ShipmentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar envíos
// @Tags         shipment
// @Security     Bearer
// @Produce      json
// @Param        userID  path  string  true  "ID del usuario"
// @Success      200  {array}  dto.ShipmentResponse
// @Router       /api/shipment/all/{userID} [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener envío
// @Tags         shipment
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del envío"
// @Param        userID  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipment/{id}/{userID} [get]
func (h *ShipmentHandler) GetByID(c *fiber.Ctx) error {
	id, ok, err := uuidParam(c, "id")
	if !ok {
		return err
	}
	out, err := h.uc.Get(c.Context(), GetUserID(c), id)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar envío
// @Tags         shipment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string               true  "ID del envío"
// @Param        userID  path  string               true  "ID del usuario"
// @Param        body    body  dto.ShipmentRequest  true  "Datos del envío"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipment/update/{id}/{userID} [put]
func (h *ShipmentHandler) Update(c *fiber.Ctx) error {
	id, ok, err := uuidParam(c, "id")
	if !ok {
		return err
	}
	var in dto.ShipmentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar envío
// @Tags         shipment
// @Security     Bearer
// @Produce      json
// @Param        id      path  string  true  "ID del envío"
// @Param        userID  path  string  true  "ID del usuario"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipment/delete/{id}/{userID} [delete]
func (h *ShipmentHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := uuidParam(c, "id")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.Context(), GetUserID(c), id); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "envío eliminado"})
}
