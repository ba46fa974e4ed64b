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

var _ repository.TransferRequestRepository = (*TransferRequestRepo)(nil)

// TransferRequestRepo implementación de TransferRequestRepository sobre
// PostgreSQL. Los productos van en JSONB; las solicitudes nunca se borran.
type TransferRequestRepo struct {
	q Querier
}

// NewTransferRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRequestRepository(q Querier) *TransferRequestRepo {
	return &TransferRequestRepo{q: q}
}

const requestColumns = `id, from_location, to_location, products, status, created_at, requested_by, box_name, note`

func scanRequest(row pgx.Row) (*entity.TransferRequest, error) {
	var req entity.TransferRequest
	err := row.Scan(
		&req.ID, &req.From, &req.To, &req.Products,
		&req.Status, &req.CreatedAt, &req.RequestedBy, &req.BoxName, &req.Note,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create inserta la solicitud.
func (r *TransferRequestRepo) Create(req *entity.TransferRequest) error {
	query := `
		INSERT INTO transfer_requests (id, from_location, to_location, products, status, created_at, requested_by, box_name, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.From, req.To, req.Products,
		req.Status, req.CreatedAt, req.RequestedBy, req.BoxName, req.Note,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("create transfer request: %w", err)
	}
	return nil
}

// GetByID devuelve la solicitud o (nil, nil) si no existe.
func (r *TransferRequestRepo) GetByID(id string) (*entity.TransferRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM transfer_requests WHERE id = $1`
	req, err := scanRequest(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer request: %w", err)
	}
	return req, nil
}

// GetForUpdate devuelve la solicitud bloqueando la fila (SELECT FOR UPDATE).
func (r *TransferRequestRepo) GetForUpdate(id string) (*entity.TransferRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM transfer_requests WHERE id = $1 FOR UPDATE`
	req, err := scanRequest(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer request for update: %w", err)
	}
	return req, nil
}

// List devuelve solicitudes, más recientes primero; status vacío = todas.
func (r *TransferRequestRepo) List(status string) ([]entity.TransferRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM transfer_requests`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfer requests: %w", err)
	}
	defer rows.Close()

	var out []entity.TransferRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transfer request: %w", err)
		}
		out = append(out, *req)
	}
	return out, rows.Err()
}

// UpdateStatus cambia el estado de la solicitud.
func (r *TransferRequestRepo) UpdateStatus(id, status string) error {
	query := `UPDATE transfer_requests SET status = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("update transfer request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
