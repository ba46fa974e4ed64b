package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/traslados-api/internal/application/transfer"
)

// StockHandler expone el snapshot del ledger que la UI usa como pista de
// "disponible actualmente" al aprobar.
type StockHandler struct {
	queryUC *transfer.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(queryUC *transfer.QueryUseCase) *StockHandler {
	return &StockHandler{queryUC: queryUC}
}

// ListByLocation godoc
// @Summary      Ledger de stock de una ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        location  path  string  true  "ID de la ubicación (PH, US)"
// @Success      200  {array}  entity.StockRecord
// @Router       /api/stock/{location} [get]
func (h *StockHandler) ListByLocation(c *fiber.Ctx) error {
	list, err := h.queryUC.StockByLocation(c.Context(), c.Params("location"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"location": c.Params("location"), "total": len(list), "stock": list})
}
