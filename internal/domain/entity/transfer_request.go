package entity

import "time"

// Estados de una solicitud de traslado. Las transiciones son monótonas hacia
// adelante: una solicitud nunca vuelve a pending.
const (
	StatusPending   = "pending"   // esperando aprobación
	StatusPartial   = "partial"   // aprobada con faltante (existe backorder)
	StatusCompleted = "completed" // totalmente cumplida
	StatusDenied    = "denied"    // rechazada por el aprobador
)

// TransferProduct es un producto dentro de una solicitud o backorder.
type TransferProduct struct {
	ProductID  string     `json:"product_id"`
	Name       string     `json:"name"`
	SKU        string     `json:"sku"`
	Quantities Quantities `json:"quantities"`
}

// TransferRequest es una instrucción de mover stock entre dos ubicaciones.
// Nunca se borra: sirve de rastro de auditoría.
type TransferRequest struct {
	ID          string            `json:"id"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Products    []TransferProduct `json:"products"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	RequestedBy string            `json:"requested_by"`
	BoxName     string            `json:"box_name,omitempty"`
	Note        string            `json:"note,omitempty"`
}

// CanTransition valida la máquina de estados:
// pending → partial|completed|denied; partial → completed.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusPartial || to == StatusCompleted || to == StatusDenied
	case StatusPartial:
		return to == StatusCompleted
	default:
		return false
	}
}
