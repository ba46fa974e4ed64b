package dto

// Las cantidades entran como map[string]any a propósito: los clientes viejos
// del dashboard mandan números como string y la frontera de coerción
// (entity.CoerceQuantities) las normaliza antes de tocar el motor.

// TransferProductDTO producto dentro de una solicitud de traslado.
type TransferProductDTO struct {
	ProductID  string         `json:"product_id"`
	Name       string         `json:"name"`
	SKU        string         `json:"sku"`
	Quantities map[string]any `json:"quantities"`
}

// CreateTransferRequest body para crear una solicitud de traslado.
type CreateTransferRequest struct {
	From     string               `json:"from"`
	To       string               `json:"to"`
	BoxName  string               `json:"box_name"`
	Note     string               `json:"note"`
	Products []TransferProductDTO `json:"products"`
}

// ApproveTransferRequest body para aprobar una solicitud: cantidades por
// talla elegidas por el aprobador (por defecto la UI envía las solicitadas).
type ApproveTransferRequest struct {
	Quantities map[string]any `json:"quantities"`
}
