package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/traslados-api/internal/application/transfer"
	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
)

// Querier abstrae pool o tx para los repositorios.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Ensure TxRunner implements transfer.TxRunner.
var _ transfer.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL: la unidad
// completa hace Commit o Rollback, nunca escrituras sueltas. Los bloqueos de
// fila (SELECT FOR UPDATE) de los repositorios dan el aislamiento
// read-modify-write que exige el motor.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Un abort por contención se mapea a ErrTransactionAborted
// para que el caller decida (la aprobación lo muestra, el watcher reintenta).
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	requestRepo repository.TransferRequestRepository,
	backorderRepo repository.BackorderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStockRepository(tx), NewTransferRequestRepository(tx), NewBackorderRepository(tx)); err != nil {
		if isTxAbort(err) {
			return fmt.Errorf("%w: %v", domain.ErrTransactionAborted, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isTxAbort(err) {
			return fmt.Errorf("%w: %v", domain.ErrTransactionAborted, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
