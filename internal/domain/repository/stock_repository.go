package repository

import "github.com/jhoicas/traslados-api/internal/domain/entity"

// StockRepository acceso al ledger de stock por ubicación y producto.
// Get y GetForUpdate devuelven (nil, nil) cuando el registro no existe: el
// motor necesita distinguir "sin documento" (se salta o se sintetiza) de
// "cantidad cero".
type StockRepository interface {
	Get(locationID, productID string) (*entity.StockRecord, error)
	// GetForUpdate lee el registro bloqueándolo para la transacción en curso
	// (read-modify-write; nunca incrementos ciegos).
	GetForUpdate(locationID, productID string) (*entity.StockRecord, error)
	ListByLocation(locationID string) ([]entity.StockRecord, error)
	Upsert(rec *entity.StockRecord) error
}
