package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
	"github.com/jhoicas/traslados-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func record(locationID, productID string, q entity.Quantities) *entity.StockRecord {
	return &entity.StockRecord{
		LocationID: locationID,
		ProductID:  productID,
		Name:       "Producto " + productID,
		Quantities: q,
		UpdatedAt:  time.Now(),
	}
}

// Una transacción que falla restaura el estado completo previo (el mismo
// contrato que el rollback de PostgreSQL).
func TestRun_RollbackRestauraEstado(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Stocks().Upsert(record("PH", "p1", entity.Quantities{"s": d("5")})))

	boom := errors.New("fallo a mitad de la transacción")
	err := store.Run(context.Background(), func(
		stockRepo repository.StockRepository,
		requestRepo repository.TransferRequestRepository,
		backorderRepo repository.BackorderRepository,
	) error {
		require.NoError(t, stockRepo.Upsert(record("PH", "p1", entity.Quantities{"s": d("99")})))
		require.NoError(t, requestRepo.Create(&entity.TransferRequest{ID: "req-x", Status: entity.StatusPending}))
		require.NoError(t, backorderRepo.Create(&entity.Backorder{ID: "bo-x"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	rec, getErr := store.Stocks().Get("PH", "p1")
	require.NoError(t, getErr)
	assert.True(t, rec.Qty("s").Equal(d("5")), "el stock debe volver al valor previo")

	req, getErr := store.Requests().GetByID("req-x")
	require.NoError(t, getErr)
	assert.Nil(t, req)

	bo, getErr := store.Backorders().GetByID("bo-x")
	require.NoError(t, getErr)
	assert.Nil(t, bo)
}

// Una transacción exitosa deja todas las escrituras visibles.
func TestRun_CommitAplicaEscrituras(t *testing.T) {
	store := memory.NewStore()

	err := store.Run(context.Background(), func(
		stockRepo repository.StockRepository,
		requestRepo repository.TransferRequestRepository,
		_ repository.BackorderRepository,
	) error {
		if err := stockRepo.Upsert(record("US", "p1", entity.Quantities{"s": d("3")})); err != nil {
			return err
		}
		return requestRepo.Create(&entity.TransferRequest{ID: "req-1", Status: entity.StatusPending})
	})
	require.NoError(t, err)

	rec, err := store.Stocks().Get("US", "p1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.True(t, rec.Qty("s").Equal(d("3")))

	req, err := store.Requests().GetByID("req-1")
	require.NoError(t, err)
	assert.NotNil(t, req)
}

// Get devuelve copias: mutar el resultado no altera el almacén.
func TestGet_DevuelveCopia(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Stocks().Upsert(record("PH", "p1", entity.Quantities{"s": d("5")})))

	rec, err := store.Stocks().Get("PH", "p1")
	require.NoError(t, err)
	rec.Quantities["s"] = d("100")

	again, err := store.Stocks().Get("PH", "p1")
	require.NoError(t, err)
	assert.True(t, again.Qty("s").Equal(d("5")))
}

// Documento ausente: (nil, nil), no error. El motor distingue "no existe" de
// "cantidad cero".
func TestGet_AusenteDevuelveNil(t *testing.T) {
	store := memory.NewStore()

	rec, err := store.Stocks().Get("PH", "no-existe")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

// Borrar un backorder inexistente no es error (Delete es tolerante, igual que
// el DELETE de SQL).
func TestBackorders_DeleteTolerante(t *testing.T) {
	store := memory.NewStore()
	assert.NoError(t, store.Backorders().Delete("no-existe"))
}
