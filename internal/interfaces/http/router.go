package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/traslados-api/internal/application/transfer"
)

// Roles con permiso de aprobar/rechazar/reponer.
var approverRoles = []string{"admin", "bodeguero"}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateRequest *transfer.CreateRequestUseCase
	Approve       *transfer.ApproveUseCase
	Fulfill       *transfer.FulfillUseCase
	Query         *transfer.QueryUseCase
	Watcher       *transfer.Watcher
	Manifest      ManifestGenerator
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Transfers (cualquier usuario autenticado puede crear y consultar)
	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.CreateRequest, deps.Approve, deps.Query, deps.Manifest)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Get("/:id/manifest", transferHandler.Manifest)

	// Aprobación y rechazo (solo aprobadores)
	transfers.Post("/:id/approve", RequireRole(approverRoles...), transferHandler.Approve)
	transfers.Post("/:id/deny", RequireRole(approverRoles...), transferHandler.Deny)

	// Backorders
	backorders := api.Group("/backorders")
	backorderHandler := NewBackorderHandler(deps.Fulfill, deps.Query, deps.Watcher)
	backorders.Get("/", backorderHandler.List)
	backorders.Get("/watcher", backorderHandler.WatcherStatus)
	backorders.Post("/watcher/run", RequireRole("admin"), backorderHandler.RunSweep)
	backorders.Post("/:id/fulfill", RequireRole(approverRoles...), backorderHandler.Fulfill)

	// Stock (pista de "disponible" para el aprobador)
	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Query)
	stock.Get("/:location", stockHandler.ListByLocation)
}
