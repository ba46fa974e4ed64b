package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
	domaintransfer "github.com/jhoicas/traslados-api/internal/domain/transfer"
)

// ApproveUseCase aplica una solicitud aprobada contra el ledger dentro de una
// transacción: descuenta del origen, acredita al destino y, si el aprobado
// excede lo disponible, crea el backorder con el faltante.
type ApproveUseCase struct {
	txRunner TxRunner
}

// NewApproveUseCase construye el caso de uso.
func NewApproveUseCase(txRunner TxRunner) *ApproveUseCase {
	return &ApproveUseCase{txRunner: txRunner}
}

// Approve ejecuta la aprobación con las cantidades elegidas por el aprobador
// (pueden diferir de las solicitadas; la pista de "disponible" de la UI es
// solo informativa, no se valida contra el stock). Campos con monto <= 0 se
// descartan; si no queda ninguno válido se rechaza sin abrir transacción.
func (uc *ApproveUseCase) Approve(ctx context.Context, requestID string, approved entity.Quantities) error {
	approved = approved.Positive()
	if len(approved) == 0 {
		return domain.ErrInvalidInput
	}

	now := time.Now()
	backorderID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		requestRepo repository.TransferRequestRepository,
		backorderRepo repository.BackorderRepository,
	) error {
		req, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.StatusPending {
			return domain.ErrConflict
		}

		sources, err := readSources(stockRepo, req.From, req.Products)
		if err != nil {
			return err
		}
		targets, err := ensureTargets(stockRepo, req.To, sources, now)
		if err != nil {
			return err
		}

		res := domaintransfer.Drain(req.Products, approved, sources, domaintransfer.ModeDebt)
		if err := applyMoves(stockRepo, sources, targets, res.Moves, now); err != nil {
			return err
		}

		if !res.Settled() {
			bo := &entity.Backorder{
				ID:                backorderID,
				OriginalRequestID: req.ID,
				From:              req.From,
				To:                req.To,
				Products:          req.Products,
				Quantities:        res.Remaining,
				Status:            entity.StatusBackordered,
				CreatedAt:         now,
			}
			if err := backorderRepo.Create(bo); err != nil {
				return err
			}
			return requestRepo.UpdateStatus(req.ID, entity.StatusPartial)
		}
		return requestRepo.UpdateStatus(req.ID, entity.StatusCompleted)
	})
}

// Deny rechaza una solicitud pendiente (transición monótona: una solicitud
// rechazada o ya aplicada no puede volver a pending ni re-aprobarse).
func (uc *ApproveUseCase) Deny(ctx context.Context, requestID string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.StockRepository,
		requestRepo repository.TransferRequestRepository,
		_ repository.BackorderRepository,
	) error {
		req, err := requestRepo.GetForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransition(req.Status, entity.StatusDenied) {
			return domain.ErrConflict
		}
		return requestRepo.UpdateStatus(req.ID, entity.StatusDenied)
	})
}
