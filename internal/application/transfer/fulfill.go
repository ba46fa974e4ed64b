package transfer

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
	domaintransfer "github.com/jhoicas/traslados-api/internal/domain/transfer"
)

// FulfillOutcome resume el resultado de un intento de reposición.
type FulfillOutcome struct {
	Settled   bool              // el backorder quedó saldado y fue eliminado
	Moved     bool              // al menos una talla movió stock en este intento
	Remaining entity.Quantities // pendiente que quedó persistido (vacío si Settled)
}

// FulfillUseCase intenta satisfacer un backorder desde el stock de origen
// actual. Es la misma rutina para el botón "Fulfill Backorder" y para cada
// ítem del barrido periódico del watcher.
type FulfillUseCase struct {
	txRunner TxRunner
}

// NewFulfillUseCase construye el caso de uso.
func NewFulfillUseCase(txRunner TxRunner) *FulfillUseCase {
	return &FulfillUseCase{txRunner: txRunner}
}

// Fulfill ejecuta un intento de reposición en una transacción propia.
// Si todas las tallas quedan en cero: borra el backorder y, si la solicitud
// original todavía existe, la marca "completed" (la referencia es débil; que
// no exista no es un error, solo se omite ese efecto). Si no, persiste las
// cantidades reducidas. Sin stock disponible la operación es idempotente:
// no hay escrituras y el pendiente no cambia.
func (uc *FulfillUseCase) Fulfill(ctx context.Context, backorderID string) (*FulfillOutcome, error) {
	now := time.Now()
	outcome := &FulfillOutcome{}

	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		requestRepo repository.TransferRequestRepository,
		backorderRepo repository.BackorderRepository,
	) error {
		bo, err := backorderRepo.GetForUpdate(backorderID)
		if err != nil {
			return err
		}
		if bo == nil {
			return domain.ErrNotFound
		}

		sources, err := readSources(stockRepo, bo.From, bo.Products)
		if err != nil {
			return err
		}
		targets, err := ensureTargets(stockRepo, bo.To, sources, now)
		if err != nil {
			return err
		}

		res := domaintransfer.Drain(bo.Products, bo.Quantities, sources, domaintransfer.ModeRestock)
		if err := applyMoves(stockRepo, sources, targets, res.Moves, now); err != nil {
			return err
		}
		outcome.Moved = res.Moved()
		outcome.Remaining = res.Remaining

		if res.Settled() {
			if err := backorderRepo.Delete(bo.ID); err != nil {
				return err
			}
			outcome.Settled = true
			return uc.completeOriginal(requestRepo, bo.OriginalRequestID)
		}
		if outcome.Moved {
			return backorderRepo.UpdateQuantities(bo.ID, res.Remaining)
		}
		// Sin progreso: no se toca el documento, se reintenta en el siguiente ciclo.
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// completeOriginal propaga el cierre a la solicitud original si aún existe.
func (uc *FulfillUseCase) completeOriginal(requestRepo repository.TransferRequestRepository, originalRequestID string) error {
	if originalRequestID == "" {
		return nil
	}
	req, err := requestRepo.GetByID(originalRequestID)
	if err != nil {
		return err
	}
	if req == nil {
		log.Warn().Str("request_id", originalRequestID).Msg("solicitud original ya no existe, se omite la propagación de estado")
		return nil
	}
	if !entity.CanTransition(req.Status, entity.StatusCompleted) {
		return nil
	}
	return requestRepo.UpdateStatus(req.ID, entity.StatusCompleted)
}
