package entity

import "time"

// StatusBackordered es el estado único de un backorder abierto; al saldarse
// el documento se elimina, nunca se deja con todas las cantidades en cero.
const StatusBackordered = "backordered"

// Backorder es el remanente no cumplido de una solicitud aprobada.
// OriginalRequestID es una referencia débil: la solicitud original puede
// haberse borrado de forma independiente, así que quien la use debe verificar
// existencia antes de actualizarla.
type Backorder struct {
	ID                string            `json:"id"`
	OriginalRequestID string            `json:"original_request_id"`
	From              string            `json:"from"`
	To                string            `json:"to"`
	Products          []TransferProduct `json:"products"`
	Quantities        Quantities        `json:"quantities"`
	Status            string            `json:"status"`
	CreatedAt         time.Time         `json:"created_at"`
}
