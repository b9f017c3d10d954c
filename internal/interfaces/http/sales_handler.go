package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/analytics"
	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
)

// SalesHandler ventas, total por periodo y totales mensuales (protegido).
type SalesHandler struct {
	uc      *usecase.SaleUseCase
	totals  *analytics.TotalsUseCase
	monthly *analytics.MonthlyUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *usecase.SaleUseCase, totals *analytics.TotalsUseCase, monthly *analytics.MonthlyUseCase) *SalesHandler {
	return &SalesHandler{uc: uc, totals: totals, monthly: monthly}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Resta stockSold del stock del producto (entrada remove/sale en el libro).
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                 false  "Clave de idempotencia"
// @Param        body             body    dto.CreateSaleRequest  true   "Datos de la venta"
// @Success      201  {object}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/add [post]
func (h *SalesHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
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
// @Summary      Listar ventas del usuario
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        userID  path  string  true  "ID del usuario (debe coincidir con el token)"
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/sales/get/{userID} [get]
func (h *SalesHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la venta"
// @Param        body  body  dto.UpdateSaleRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.SaleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/update/{id} [put]
func (h *SalesHandler) Update(c *fiber.Ctx) error {
	id, ok, err := uuidParam(c, "id")
	if !ok {
		return err
	}
	var in dto.UpdateSaleRequest
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
// @Summary      Eliminar venta
// @Description  Devuelve al stock las unidades vendidas.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/delete/{id} [delete]
func (h *SalesHandler) Delete(c *fiber.Ctx) error {
	id, ok, err := uuidParam(c, "id")
	if !ok {
		return err
	}
	if err := h.uc.Delete(c.Context(), GetUserID(c), id); err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "venta eliminada"})
}

// TotalAmount godoc
// @Summary      Total vendido en el periodo
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        userID  path   string  true   "ID del usuario (debe coincidir con el token)"
// @Param        period  query  string  false  "week | month | year"  default(month)
// @Success      200  {object}  dto.TotalSaleAmountResponse
// @Router       /api/sales/get/{userID}/totalsaleamount [get]
func (h *SalesHandler) TotalAmount(c *fiber.Ctx) error {
	total, err := h.totals.TotalAmount(c.Context(), analytics.KindSales, GetUserID(c), c.Query("period"))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.TotalSaleAmountResponse{TotalSaleAmount: total})
}

// Monthly godoc
// @Summary      Ventas por mes
// @Description  Doce totales (enero..diciembre) sumando todos los años.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MonthlySalesResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sales/getmonthly [get]
func (h *SalesHandler) Monthly(c *fiber.Ctx) error {
	amounts, err := h.monthly.MonthlyTotals(c.Context(), GetUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.MonthlySalesResponse{SalesAmount: amounts})
}
