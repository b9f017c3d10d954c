package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/analytics"
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
)

// PurchaseHandler compras y su total por periodo (protegido).
type PurchaseHandler struct {
	uc     *usecase.PurchaseUseCase
	totals *analytics.TotalsUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *usecase.PurchaseUseCase, totals *analytics.TotalsUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, totals: totals}
}

// Create godoc
// @Summary      Registrar compra
// @Description  Suma quantityPurchased al stock del producto (entrada add/purchase en el libro).
// @Tags         purchase
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                     false  "Clave de idempotencia"
// @Param        body             body    dto.CreatePurchaseRequest  true   "Datos de la compra"
// @Success      201  {object}  dto.PurchaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase/add [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if ok, err := ensureSelf(c, in.UserID); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar compras del usuario
// @Tags         purchase
// @Security     Bearer
// @Produce      json
// @Param        userID  path  string  true  "ID del usuario (debe coincidir con el token)"
// @Success      200  {array}  dto.PurchaseResponse
// @Router       /api/purchase/get/{userID} [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar compra
// @Description  Un cambio de cantidad se compensa en el stock y queda en el libro.
// @Tags         purchase
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la compra"
// @Param        body  body  dto.UpdatePurchaseRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase/update/{id} [put]
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	id, ok, err := uuidParam(c, "id")
	if !ok {
		return err
	}
	var in dto.UpdatePurchaseRequest
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
// @Summary      Eliminar compra
// @Description  Resta del stock las unidades compradas; falla si ya fueron consumidas.
// @Tags         purchase
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase/delete/{id} [delete]
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := uuidParam(c, "id")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.Context(), GetUserID(c), id); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "compra eliminada"})
}

// TotalAmount godoc
// @Summary      Total comprado en el periodo
// @Tags         purchase
// @Security     Bearer
// @Produce      json
// @Param        userID  path   string  true   "ID del usuario (debe coincidir con el token)"
// @Param        period  query  string  false  "week | month | year"  default(month)
// @Success      200  {object}  dto.TotalPurchaseAmountResponse
// @Router       /api/purchase/get/{userID}/totalpurchaseamount [get]
func (h *PurchaseHandler) TotalAmount(c *fiber.Ctx) error {
	total, err := h.totals.TotalAmount(c.Context(), analytics.KindPurchases, GetUserID(c), c.Query("period"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.TotalPurchaseAmountResponse{TotalPurchaseAmount: total})
}
