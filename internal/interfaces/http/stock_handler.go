package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
)

// StockHandler ajustes manuales y consultas del libro de stock (protegido).
type StockHandler struct {
	mutator  *inventory.StockMutator
	history  *inventory.HistoryUseCase
	lowStock *inventory.LowStockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(mutator *inventory.StockMutator, history *inventory.HistoryUseCase, lowStock *inventory.LowStockUseCase) *StockHandler {
	return &StockHandler{mutator: mutator, history: history, lowStock: lowStock}
}

// Adjust godoc
// @Summary      Ajustar stock
// @Description  Suma o resta unidades de un producto y registra la entrada en el libro, en una sola transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string                  false  "Clave de idempotencia"
// @Param        body             body    dto.AdjustStockRequest  true   "productId, type, quantity, reason, notes"
// @Success      200  {object}  dto.AdjustStockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	if ok, err := ensureSelf(c, in.UserID); !ok {
		return err
	}
	res, err := h.mutator.ApplyAdjustment(c.Context(), inventory.AdjustmentInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Notes:     in.Notes,
		ActorID:   GetUserID(c),
	})
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.AdjustStockResponse{
		Message:      "stock ajustado",
		Product:      inventory.ToProductResponse(res.Product),
		StockHistory: inventory.ToStockHistoryResponse(res.StockHistory, res.Product),
	})
}

// History godoc
// @Summary      Historial de stock de un producto
// @Description  Últimas 50 entradas del libro, de la más reciente a la más antigua.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto (UUID)"
// @Success      200  {array}   dto.StockHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stock/history/{productId} [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	productID, ok, err := uuidParam(c, "productId")
	if !ok {
		return err
	}
	out, err := h.history.History(c.Context(), GetUserID(c), productID, inventory.MaxHistoryEntries)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// HistoryPDF godoc
// @Summary      Historial de stock en PDF
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        productId  path  string  true  "ID del producto (UUID)"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/history/{productId}/pdf [get]
func (h *StockHandler) HistoryPDF(c *fiber.Ctx) error {
	productID, ok, err := uuidParam(c, "productId")
	if !ok {
		return err
	}
	pdfBytes, err := h.history.HistoryPDF(c.Context(), GetUserID(c), productID)
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="stock-`+productID+`.pdf"`)
	return c.Send(pdfBytes)
}

// LowStock godoc
// @Summary      Productos con stock bajo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        userId     path   string  true   "ID del usuario (debe coincidir con el token)"
// @Param        threshold  query  int     false  "Umbral (stock <= threshold)"  default(10)
// @Success      200  {array}   dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/stock/low-stock/{userId} [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	var threshold *int64
	if raw := c.Query("threshold"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold debe ser un entero"})
		}
		threshold = &n
	}
	out, err := h.lowStock.LowStock(c.Context(), GetUserID(c), threshold)
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}
