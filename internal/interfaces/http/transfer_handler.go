package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/traslados-api/internal/application/dto"
	"github.com/jhoicas/traslados-api/internal/application/transfer"
	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
)

// ManifestGenerator genera el PDF del manifiesto de una solicitud.
type ManifestGenerator interface {
	GenerateManifest(req *entity.TransferRequest) ([]byte, error)
}

// TransferHandler maneja las peticiones HTTP de solicitudes de traslado (protegido).
type TransferHandler struct {
	createUC  *transfer.CreateRequestUseCase
	approveUC *transfer.ApproveUseCase
	queryUC   *transfer.QueryUseCase
	manifest  ManifestGenerator
}

// NewTransferHandler construye el handler.
func NewTransferHandler(
	createUC *transfer.CreateRequestUseCase,
	approveUC *transfer.ApproveUseCase,
	queryUC *transfer.QueryUseCase,
	manifest ManifestGenerator,
) *TransferHandler {
	return &TransferHandler{createUC: createUC, approveUC: approveUC, queryUC: queryUC, manifest: manifest}
}

// Create godoc
// @Summary      Crear solicitud de traslado
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "from, to, products[{product_id, quantities}], box_name?, note?"
// @Success      201   {object}  entity.TransferRequest
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	products := make([]entity.TransferProduct, 0, len(in.Products))
	for _, p := range in.Products {
		products = append(products, entity.TransferProduct{
			ProductID:  p.ProductID,
			Name:       p.Name,
			SKU:        p.SKU,
			Quantities: entity.CoerceQuantities(p.Quantities),
		})
	}
	req, err := h.createUC.Create(c.Context(), transfer.CreateRequestInput{
		From:        in.From,
		To:          in.To,
		RequestedBy: GetUserID(c),
		BoxName:     in.BoxName,
		Note:        in.Note,
		Products:    products,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(req)
}

// List godoc
// @Summary      Listar solicitudes de traslado
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | partial | completed | denied"
// @Success      200  {array}  entity.TransferRequest
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	list, err := h.queryUC.ListRequests(c.Context(), c.Query("status"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "transfers": list})
}

// GetByID godoc
// @Summary      Detalle de una solicitud
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  entity.TransferRequest
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id} [get]
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.queryUC.GetRequest(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(req)
}

// Approve godoc
// @Summary      Aprobar solicitud con cantidades elegidas
// @Description  Descuenta del origen el monto aprobado completo (puede dejar
//
//	stock negativo: deuda registrada), acredita al destino lo disponible y
//	crea backorder con el faltante.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la solicitud"
// @Param        body  body  dto.ApproveTransferRequest  true  "quantities por talla"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/approve [post]
func (h *TransferHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.approveUC.Approve(c.Context(), c.Params("id"), entity.CoerceQuantities(in.Quantities))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud aprobada"})
}

// Deny godoc
// @Summary      Rechazar una solicitud pendiente
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/deny [post]
func (h *TransferHandler) Deny(c *fiber.Ctx) error {
	if err := h.approveUC.Deny(c.Context(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud rechazada"})
}

// Manifest godoc
// @Summary      Manifiesto de traslado en PDF
// @Tags         transfers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la solicitud"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/manifest [get]
func (h *TransferHandler) Manifest(c *fiber.Ctx) error {
	req, err := h.queryUC.GetRequest(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	pdfBytes, err := h.manifest.GenerateManifest(req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="manifiesto-`+req.ID+`.pdf"`)
	return c.Send(pdfBytes)
}

// mapDomainError traduce errores de dominio a códigos HTTP.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto con el estado actual"})
	case errors.Is(err, domain.ErrTransactionAborted):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TX_ABORTED", Message: "la transacción no pudo confirmarse, intente de nuevo"})
	case errors.Is(err, domain.ErrSweepInProgress):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SWEEP_BUSY", Message: "ya hay un barrido en curso"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
