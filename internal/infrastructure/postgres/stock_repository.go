package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx). Las cantidades viven en una columna JSONB; los documentos
// legados guardan valores como string, así que el scan pasa por la frontera
// de coerción numérica antes de cualquier aritmética.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `location_id, product_id, name, sku, image_url, warehouse_location, quantities, updated_at`

func scanStock(row pgx.Row) (*entity.StockRecord, error) {
	var rec entity.StockRecord
	var raw map[string]any
	err := row.Scan(
		&rec.LocationID, &rec.ProductID, &rec.Name, &rec.SKU,
		&rec.ImageURL, &rec.WarehouseLocation, &raw, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Quantities = entity.CoerceQuantities(raw)
	return &rec, nil
}

// Get obtiene el registro de stock de un producto en una ubicación.
// Devuelve (nil, nil) si no existe el documento.
func (r *StockRepo) Get(locationID, productID string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records WHERE location_id = $1 AND product_id = $2`
	rec, err := scanStock(r.q.QueryRow(context.Background(), query, locationID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return rec, nil
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(locationID, productID string) (*entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records WHERE location_id = $1 AND product_id = $2
		FOR UPDATE`
	rec, err := scanStock(r.q.QueryRow(context.Background(), query, locationID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return rec, nil
}

// ListByLocation devuelve el ledger completo de una ubicación.
func (r *StockRepo) ListByLocation(locationID string) ([]entity.StockRecord, error) {
	query := `
		SELECT ` + stockColumns + `
		FROM stock_records WHERE location_id = $1
		ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var out []entity.StockRecord
	for rows.Next() {
		rec, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

// Upsert inserta o actualiza el registro (por ubicación y producto).
func (r *StockRepo) Upsert(rec *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (location_id, product_id, name, sku, image_url, warehouse_location, quantities, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (location_id, product_id)
		DO UPDATE SET quantities = EXCLUDED.quantities, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		rec.LocationID, rec.ProductID, rec.Name, rec.SKU,
		rec.ImageURL, rec.WarehouseLocation, rec.Quantities,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}
