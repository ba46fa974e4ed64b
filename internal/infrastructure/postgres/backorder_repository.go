package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
)

var _ repository.BackorderRepository = (*BackorderRepo)(nil)

// BackorderRepo implementación de BackorderRepository sobre PostgreSQL.
// Igual que el stock, las cantidades pasan por la frontera de coerción al
// leerse del JSONB.
type BackorderRepo struct {
	q Querier
}

// NewBackorderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBackorderRepository(q Querier) *BackorderRepo {
	return &BackorderRepo{q: q}
}

const backorderColumns = `id, original_request_id, from_location, to_location, products, quantities, status, created_at`

func scanBackorder(row pgx.Row) (*entity.Backorder, error) {
	var b entity.Backorder
	var raw map[string]any
	err := row.Scan(
		&b.ID, &b.OriginalRequestID, &b.From, &b.To,
		&b.Products, &raw, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Quantities = entity.CoerceQuantities(raw)
	return &b, nil
}

// Create inserta el backorder (una sola vez por aprobación parcial).
func (r *BackorderRepo) Create(b *entity.Backorder) error {
	query := `
		INSERT INTO backorders (id, original_request_id, from_location, to_location, products, quantities, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		b.ID, b.OriginalRequestID, b.From, b.To,
		b.Products, b.Quantities, b.Status, b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create backorder: %w", err)
	}
	return nil
}

// GetByID devuelve el backorder o (nil, nil) si no existe.
func (r *BackorderRepo) GetByID(id string) (*entity.Backorder, error) {
	query := `SELECT ` + backorderColumns + ` FROM backorders WHERE id = $1`
	b, err := scanBackorder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get backorder: %w", err)
	}
	return b, nil
}

// GetForUpdate devuelve el backorder bloqueando la fila (SELECT FOR UPDATE).
func (r *BackorderRepo) GetForUpdate(id string) (*entity.Backorder, error) {
	query := `SELECT ` + backorderColumns + ` FROM backorders WHERE id = $1 FOR UPDATE`
	b, err := scanBackorder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get backorder for update: %w", err)
	}
	return b, nil
}

// ListOpen devuelve los backorders abiertos, más antiguos primero.
func (r *BackorderRepo) ListOpen() ([]entity.Backorder, error) {
	query := `SELECT ` + backorderColumns + ` FROM backorders ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list backorders: %w", err)
	}
	defer rows.Close()

	var out []entity.Backorder
	for rows.Next() {
		b, err := scanBackorder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan backorder: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// UpdateQuantities persiste el pendiente reducido tras un intento parcial.
func (r *BackorderRepo) UpdateQuantities(id string, q entity.Quantities) error {
	query := `UPDATE backorders SET quantities = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, q)
	if err != nil {
		return fmt.Errorf("update backorder quantities: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el backorder saldado. Borrar uno ya inexistente no es error.
func (r *BackorderRepo) Delete(id string) error {
	query := `DELETE FROM backorders WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id); err != nil {
		return fmt.Errorf("delete backorder: %w", err)
	}
	return nil
}
