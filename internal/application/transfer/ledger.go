package transfer

import (
	"time"

	domaintransfer "github.com/jhoicas/traslados-api/internal/domain/transfer"

	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
)

// readSources lee (con bloqueo) los registros de origen existentes de cada
// producto. Un producto sin documento de origen no entra al mapa: el drenaje
// lo salta en vez de fallar el lote completo.
func readSources(stockRepo repository.StockRepository, locationID string, products []entity.TransferProduct) (map[string]*entity.StockRecord, error) {
	sources := make(map[string]*entity.StockRecord, len(products))
	for _, p := range products {
		rec, err := stockRepo.GetForUpdate(locationID, p.ProductID)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			sources[p.ProductID] = rec
		}
	}
	return sources, nil
}

// ensureTargets garantiza que exista registro destino para cada producto con
// origen: si falta, se sintetiza clonando los campos descriptivos con las
// cantidades en cero y se escribe de inmediato (el destino siempre existe al
// terminar la transacción).
func ensureTargets(stockRepo repository.StockRepository, locationID string, sources map[string]*entity.StockRecord, now time.Time) (map[string]*entity.StockRecord, error) {
	targets := make(map[string]*entity.StockRecord, len(sources))
	for productID, src := range sources {
		rec, err := stockRepo.GetForUpdate(locationID, productID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			rec = src.CloneEmpty(locationID, now)
			if err := stockRepo.Upsert(rec); err != nil {
				return nil, err
			}
		}
		targets[productID] = rec
	}
	return targets, nil
}

// applyMoves aplica el plan del drenaje sobre los registros leídos y persiste
// los que cambiaron (una escritura por registro).
func applyMoves(stockRepo repository.StockRepository, sources, targets map[string]*entity.StockRecord, moves []domaintransfer.Move, now time.Time) error {
	touched := make(map[*entity.StockRecord]bool)
	for _, m := range moves {
		src := sources[m.ProductID]
		tgt := targets[m.ProductID]
		if src == nil || tgt == nil {
			continue
		}
		src.AddQty(m.Field, m.SourceDelta)
		tgt.AddQty(m.Field, m.TargetDelta)
		src.UpdatedAt = now
		tgt.UpdatedAt = now
		touched[src] = true
		touched[tgt] = true
	}
	for rec := range touched {
		if err := stockRepo.Upsert(rec); err != nil {
			return err
		}
	}
	return nil
}
