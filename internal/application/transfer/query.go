package transfer

import (
	"context"

	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
)

// QueryUseCase lecturas para la capa de UI: listados de solicitudes y
// backorders y el snapshot del ledger que respalda la pista de "disponible"
// al aprobar. Usa repositorios atados al pool (fuera de transacción).
type QueryUseCase struct {
	stocks     repository.StockRepository
	requests   repository.TransferRequestRepository
	backorders repository.BackorderRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(
	stocks repository.StockRepository,
	requests repository.TransferRequestRepository,
	backorders repository.BackorderRepository,
) *QueryUseCase {
	return &QueryUseCase{stocks: stocks, requests: requests, backorders: backorders}
}

// ListRequests lista solicitudes, opcionalmente filtradas por estado.
func (uc *QueryUseCase) ListRequests(_ context.Context, status string) ([]entity.TransferRequest, error) {
	return uc.requests.List(status)
}

// GetRequest devuelve una solicitud por id.
func (uc *QueryUseCase) GetRequest(_ context.Context, id string) (*entity.TransferRequest, error) {
	req, err := uc.requests.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// ListOpenBackorders lista los backorders abiertos.
func (uc *QueryUseCase) ListOpenBackorders(_ context.Context) ([]entity.Backorder, error) {
	return uc.backorders.ListOpen()
}

// StockByLocation devuelve el ledger de una ubicación.
func (uc *QueryUseCase) StockByLocation(_ context.Context, locationID string) ([]entity.StockRecord, error) {
	if locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.stocks.ListByLocation(locationID)
}
