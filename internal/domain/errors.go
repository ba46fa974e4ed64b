package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrTransactionAborted = errors.New("la transacción no pudo confirmarse")
	ErrSweepInProgress    = errors.New("ya hay un barrido de backorders en curso")
)
