package transfer_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/traslados-api/internal/application/transfer"
	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/infrastructure/memory"
	"github.com/jhoicas/traslados-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test (compartidos por los tests del paquete)
// ──────────────────────────────────────────────────────────────────────────────

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func seedStock(t *testing.T, store *memory.Store, locationID, productID string, q entity.Quantities) {
	t.Helper()
	err := store.Stocks().Upsert(&entity.StockRecord{
		LocationID: locationID,
		ProductID:  productID,
		Name:       "Producto " + productID,
		SKU:        "SKU-" + productID,
		Quantities: q,
		UpdatedAt:  time.Now(),
	})
	require.NoError(t, err)
}

func seedRequest(t *testing.T, store *memory.Store, id, from, to string, products ...entity.TransferProduct) {
	t.Helper()
	err := store.Requests().Create(&entity.TransferRequest{
		ID:          id,
		From:        from,
		To:          to,
		Products:    products,
		Status:      entity.StatusPending,
		CreatedAt:   time.Now(),
		RequestedBy: "u-tester",
	})
	require.NoError(t, err)
}

func requested(productID string, q entity.Quantities) entity.TransferProduct {
	return entity.TransferProduct{
		ProductID:  productID,
		Name:       "Producto " + productID,
		SKU:        "SKU-" + productID,
		Quantities: q,
	}
}

func stockQty(t *testing.T, store *memory.Store, locationID, productID, field string) decimal.Decimal {
	t.Helper()
	rec, err := store.Stocks().Get(locationID, productID)
	require.NoError(t, err)
	require.NotNil(t, rec, "debe existir el registro %s/%s", locationID, productID)
	return rec.Qty(field)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve
// ──────────────────────────────────────────────────────────────────────────────

// Stock suficiente: la solicitud queda completed, el stock viaja completo y no
// se crea ningún backorder.
func TestApprove_CompletaSinFaltante(t *testing.T) {
	store := memory.NewStore()
	seedStock(t, store, "PH", "p1", entity.Quantities{"s": d("12")})
	seedRequest(t, store, "req-1", "PH", "US", requested("p1", entity.Quantities{"s": d("10")}))

	uc := transfer.NewApproveUseCase(store)
	require.NoError(t, uc.Approve(context.Background(), "req-1", entity.Quantities{"s": d("10")}))

	assert.True(t, stockQty(t, store, "PH", "p1", "s").Equal(d("2")))
	assert.True(t, stockQty(t, store, "US", "p1", "s").Equal(d("10")))

	req, err := store.Requests().GetByID("req-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, req.Status)

	open, err := store.Backorders().ListOpen()
	require.NoError(t, err)
	assert.Empty(t, open)
}

// Aprobación parcial: stock 4, aprobado 10. El origen queda en -6 (deuda
// registrada), el destino recibe 4 y nace un backorder por 6; la solicitud
// pasa a partial.
func TestApprove_ParcialCreaBackorder(t *testing.T) {
	store := memory.NewStore()
	seedStock(t, store, "PH", "p1", entity.Quantities{"s": d("4")})
	seedRequest(t, store, "req-1", "PH", "US", requested("p1", entity.Quantities{"s": d("10")}))

	uc := transfer.NewApproveUseCase(store)
	require.NoError(t, uc.Approve(context.Background(), "req-1", entity.Quantities{"s": d("10")}))

	assert.True(t, stockQty(t, store, "PH", "p1", "s").Equal(d("-6")), "el origen registra la deuda completa")
	assert.True(t, stockQty(t, store, "US", "p1", "s").Equal(d("4")), "el destino solo recibe lo disponible")

	req, err := store.Requests().GetByID("req-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPartial, req.Status)

	open, err := store.Backorders().ListOpen()
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "req-1", open[0].OriginalRequestID)
	assert.Equal(t, entity.StatusBackordered, open[0].Status)
	assert.True(t, open[0].Quantities["s"].Equal(d("6")))
}

// El aprobador puede elegir cantidades distintas a las solicitadas: no se
// valida contra lo pedido ni contra el disponible.
func TestApprove_CantidadesDistintasALasSolicitadas(t *testing.T) {
	store := memory.NewStore()
	seedStock(t, store, "PH", "p1", entity.Quantities{"s": d("20")})
	seedRequest(t, store, "req-1", "PH", "US", requested("p1", entity.Quantities{"s": d("3")}))

	uc := transfer.NewApproveUseCase(store)
	require.NoError(t, uc.Approve(context.Background(), "req-1", entity.Quantities{"s": d("7")}))

	assert.True(t, stockQty(t, store, "PH", "p1", "s").Equal(d("13")))
	assert.True(t, stockQty(t, store, "US", "p1", "s").Equal(d("7")))
}

// Sin ninguna cantidad > 0 la aprobación se rechaza antes de abrir la
// transacción y la solicitud sigue pendiente.
func TestApprove_SinCantidadesValidas(t *testing.T) {
	store := memory.NewStore()
	seedRequest(t, store, "req-1", "PH", "US", requested("p1", entity.Quantities{"s": d("5")}))

	uc := transfer.NewApproveUseCase(store)
	err := uc.Approve(context.Background(), "req-1", entity.Quantities{"s": d("0"), "m": d("-2")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req, getErr := store.Requests().GetByID("req-1")
	require.NoError(t, getErr)
	assert.Equal(t, entity.StatusPending, req.Status)
}

func TestApprove_SolicitudInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := transfer.NewApproveUseCase(store)

	err := uc.Approve(context.Background(), "no-existe", entity.Quantities{"s": d("1")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Una solicitud ya aplicada no puede re-aprobarse (transición monótona).
func TestApprove_SegundaAprobacionConflicto(t *testing.T) {
	store := memory.NewStore()
	seedStock(t, store, "PH", "p1", entity.Quantities{"s": d("30")})
	seedRequest(t, store, "req-1", "PH", "US", requested("p1", entity.Quantities{"s": d("5")}))

	uc := transfer.NewApproveUseCase(store)
	require.NoError(t, uc.Approve(context.Background(), "req-1", entity.Quantities{"s": d("5")}))

	err := uc.Approve(context.Background(), "req-1", entity.Quantities{"s": d("5")})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, stockQty(t, store, "PH", "p1", "s").Equal(d("25")), "la segunda aprobación no debe tocar el stock")
}

// Si el destino no tiene documento se sintetiza uno nuevo con los campos
// descriptivos del origen y cantidades desde cero.
func TestApprove_SintetizaDestino(t *testing.T) {
	store := memory.NewStore()
	seedStock(t, store, "PH", "p1", entity.Quantities{"s": d("8")})
	seedRequest(t, store, "req-1", "PH", "US", requested("p1", entity.Quantities{"s": d("3")}))

	uc := transfer.NewApproveUseCase(store)
	require.NoError(t, uc.Approve(context.Background(), "req-1", entity.Quantities{"s": d("3")}))

	target, err := store.Stocks().Get("US", "p1")
	require.NoError(t, err)
	require.NotNil(t, target)
	assert.Equal(t, "Producto p1", target.Name)
	assert.Equal(t, "SKU-p1", target.SKU)
	assert.True(t, target.Qty("s").Equal(d("3")))
}

// Un producto sin registro en el origen se salta y el total por talla lo
// absorbe el primer producto que sí tiene registro.
func TestApprove_ProductoSinOrigenSeSalta(t *testing.T) {
	store := memory.NewStore()
	seedStock(t, store, "PH", "p2", entity.Quantities{"s": d("9")})
	seedRequest(t, store, "req-1", "PH", "US",
		requested("p1", entity.Quantities{"s": d("5")}),
		requested("p2", entity.Quantities{"s": d("5")}),
	)

	uc := transfer.NewApproveUseCase(store)
	require.NoError(t, uc.Approve(context.Background(), "req-1", entity.Quantities{"s": d("5")}))

	missing, err := store.Stocks().Get("US", "p1")
	require.NoError(t, err)
	assert.Nil(t, missing, "el producto saltado no debe crear destino")
	assert.True(t, stockQty(t, store, "PH", "p2", "s").Equal(d("4")))
	assert.True(t, stockQty(t, store, "US", "p2", "s").Equal(d("5")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Deny
// ──────────────────────────────────────────────────────────────────────────────

func TestDeny_SolicitudPendiente(t *testing.T) {
	store := memory.NewStore()
	seedRequest(t, store, "req-1", "PH", "US", requested("p1", entity.Quantities{"s": d("5")}))

	uc := transfer.NewApproveUseCase(store)
	require.NoError(t, uc.Deny(context.Background(), "req-1"))

	req, err := store.Requests().GetByID("req-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDenied, req.Status)
}

// Rechazar una solicitud ya aplicada viola la máquina de estados.
func TestDeny_SolicitudYaAplicada(t *testing.T) {
	store := memory.NewStore()
	seedStock(t, store, "PH", "p1", entity.Quantities{"s": d("10")})
	seedRequest(t, store, "req-1", "PH", "US", requested("p1", entity.Quantities{"s": d("5")}))

	uc := transfer.NewApproveUseCase(store)
	require.NoError(t, uc.Approve(context.Background(), "req-1", entity.Quantities{"s": d("5")}))

	assert.ErrorIs(t, uc.Deny(context.Background(), "req-1"), domain.ErrConflict)
}

func TestDeny_SolicitudInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := transfer.NewApproveUseCase(store)

	assert.ErrorIs(t, uc.Deny(context.Background(), "no-existe"), domain.ErrNotFound)
}
