package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
)

// CreateRequestInput entrada para crear una solicitud de traslado.
type CreateRequestInput struct {
	From        string
	To          string
	RequestedBy string
	BoxName     string
	Note        string
	Products    []entity.TransferProduct
}

// CreateRequestUseCase registra una solicitud nueva (estado pending) y avisa
// al notificador. La aprobación es un paso separado, de otro actor.
type CreateRequestUseCase struct {
	txRunner TxRunner
	notifier Notifier
}

// NewCreateRequestUseCase construye el caso de uso.
func NewCreateRequestUseCase(txRunner TxRunner, notifier Notifier) *CreateRequestUseCase {
	return &CreateRequestUseCase{txRunner: txRunner, notifier: notifier}
}

// Create valida y persiste la solicitud. Requiere origen y destino distintos
// y al menos un producto con alguna cantidad > 0. El aviso al notificador va
// después del commit; si falla solo se registra (la solicitud ya existe).
func (uc *CreateRequestUseCase) Create(ctx context.Context, input CreateRequestInput) (*entity.TransferRequest, error) {
	if input.From == "" || input.To == "" || input.From == input.To {
		return nil, domain.ErrInvalidInput
	}
	products := make([]entity.TransferProduct, 0, len(input.Products))
	anyPositive := false
	for _, p := range input.Products {
		if p.ProductID == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Quantities = p.Quantities.Positive()
		if len(p.Quantities) > 0 {
			anyPositive = true
		}
		products = append(products, p)
	}
	if !anyPositive {
		return nil, domain.ErrInvalidInput
	}

	req := &entity.TransferRequest{
		ID:          uuid.New().String(),
		From:        input.From,
		To:          input.To,
		Products:    products,
		Status:      entity.StatusPending,
		CreatedAt:   time.Now(),
		RequestedBy: input.RequestedBy,
		BoxName:     input.BoxName,
		Note:        input.Note,
	}

	err := uc.txRunner.Run(ctx, func(
		_ repository.StockRepository,
		requestRepo repository.TransferRequestRepository,
		_ repository.BackorderRepository,
	) error {
		return requestRepo.Create(req)
	})
	if err != nil {
		return nil, err
	}

	if uc.notifier != nil {
		if err := uc.notifier.TransferRequested(ctx, req); err != nil {
			log.Warn().Err(err).Str("request_id", req.ID).Msg("no se pudo notificar la solicitud nueva")
		}
	}
	return req, nil
}
