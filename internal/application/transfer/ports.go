package transfer

import (
	"context"

	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén,
// pasando repositorios atados a esa transacción. Toda mutación del ledger,
// las solicitudes o los backorders pasa por aquí: la unidad completa se
// confirma atómicamente o se aborta sin aplicación parcial observable.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		requestRepo repository.TransferRequestRepository,
		backorderRepo repository.BackorderRepository,
	) error) error
}

// Notifier es el colaborador externo que avisa sobre solicitudes nuevas
// (correo u otro canal; la entrega no es responsabilidad de este motor).
type Notifier interface {
	TransferRequested(ctx context.Context, req *entity.TransferRequest) error
}
