package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/traslados-api/internal/application/transfer"
)

// BackorderHandler maneja backorders y la superficie de administración del watcher.
type BackorderHandler struct {
	fulfillUC *transfer.FulfillUseCase
	queryUC   *transfer.QueryUseCase
	watcher   *transfer.Watcher
}

// NewBackorderHandler construye el handler.
func NewBackorderHandler(fulfillUC *transfer.FulfillUseCase, queryUC *transfer.QueryUseCase, watcher *transfer.Watcher) *BackorderHandler {
	return &BackorderHandler{fulfillUC: fulfillUC, queryUC: queryUC, watcher: watcher}
}

// List godoc
// @Summary      Listar backorders abiertos
// @Tags         backorders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Backorder
// @Router       /api/backorders [get]
func (h *BackorderHandler) List(c *fiber.Ctx) error {
	list, err := h.queryUC.ListOpenBackorders(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "backorders": list})
}

// Fulfill godoc
// @Summary      Intentar reposición manual de un backorder
// @Description  Misma rutina de drenaje que el watcher, disparada una vez por
//
//	acción explícita del usuario sobre un solo backorder.
//
// @Tags         backorders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del backorder"
// @Success      200  {object}  transfer.FulfillOutcome
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/backorders/{id}/fulfill [post]
func (h *BackorderHandler) Fulfill(c *fiber.Ctx) error {
	outcome, err := h.fulfillUC.Fulfill(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(outcome)
}

// WatcherStatus godoc
// @Summary      Estado del watcher de backorders
// @Tags         backorders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/backorders/watcher [get]
func (h *BackorderHandler) WatcherStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"busy":       h.watcher.Busy(),
		"last_sweep": h.watcher.LastSweep(),
	})
}

// RunSweep godoc
// @Summary      Disparar un barrido inmediato (admin)
// @Tags         backorders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  transfer.SweepStats
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/backorders/watcher/run [post]
func (h *BackorderHandler) RunSweep(c *fiber.Ctx) error {
	stats, err := h.watcher.Sweep(c.Context())
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(stats)
}
