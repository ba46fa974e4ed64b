package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isTxAbort verifica si un error es un abort transaccional recuperable:
// serialization_failure (40001) o deadlock_detected (40P01).
func isTxAbort(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}
