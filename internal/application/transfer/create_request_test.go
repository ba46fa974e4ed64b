package transfer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/traslados-api/internal/application/transfer"
	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/infrastructure/memory"
)

type stubNotifier struct {
	notified []string
	fail     bool
}

func (n *stubNotifier) TransferRequested(_ context.Context, req *entity.TransferRequest) error {
	n.notified = append(n.notified, req.ID)
	if n.fail {
		return errors.New("canal de notificación caído")
	}
	return nil
}

func TestCreateRequest_Persiste(t *testing.T) {
	store := memory.NewStore()
	notifier := &stubNotifier{}
	uc := transfer.NewCreateRequestUseCase(store, notifier)

	req, err := uc.Create(context.Background(), transfer.CreateRequestInput{
		From:        "US",
		To:          "PH",
		RequestedBy: "u-tester",
		BoxName:     "caja 3",
		Products:    []entity.TransferProduct{requested("p1", entity.Quantities{"s": d("5")})},
	})
	require.NoError(t, err)
	require.NotNil(t, req)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, entity.StatusPending, req.Status)

	saved, err := store.Requests().GetByID(req.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "US", saved.From)
	assert.Equal(t, "caja 3", saved.BoxName)

	assert.Equal(t, []string{req.ID}, notifier.notified)
}

// Origen y destino iguales, o sin ninguna cantidad positiva: entrada inválida.
func TestCreateRequest_EntradaInvalida(t *testing.T) {
	store := memory.NewStore()
	uc := transfer.NewCreateRequestUseCase(store, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, transfer.CreateRequestInput{
		From: "PH", To: "PH",
		Products: []entity.TransferProduct{requested("p1", entity.Quantities{"s": d("5")})},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, transfer.CreateRequestInput{
		From: "PH", To: "US",
		Products: []entity.TransferProduct{requested("p1", entity.Quantities{"s": d("0")})},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, transfer.CreateRequestInput{From: "PH", To: "US"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Si el notificador falla la solicitud igual queda creada: el aviso es un
// efecto secundario post-commit, no parte de la transacción.
func TestCreateRequest_FalloDeNotificadorNoAborta(t *testing.T) {
	store := memory.NewStore()
	notifier := &stubNotifier{fail: true}
	uc := transfer.NewCreateRequestUseCase(store, notifier)

	req, err := uc.Create(context.Background(), transfer.CreateRequestInput{
		From: "PH", To: "US",
		Products: []entity.TransferProduct{requested("p1", entity.Quantities{"s": d("2")})},
	})
	require.NoError(t, err)

	saved, err := store.Requests().GetByID(req.ID)
	require.NoError(t, err)
	assert.NotNil(t, saved)
}

func TestQuery_GetRequestInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := transfer.NewQueryUseCase(store.Stocks(), store.Requests(), store.Backorders())

	_, err := uc.GetRequest(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuery_ListRequestsPorEstado(t *testing.T) {
	store := memory.NewStore()
	seedRequest(t, store, "req-1", "PH", "US", requested("p1", entity.Quantities{"s": d("1")}))
	seedRequest(t, store, "req-2", "US", "PH", requested("p2", entity.Quantities{"s": d("1")}))
	require.NoError(t, store.Requests().UpdateStatus("req-2", entity.StatusDenied))

	uc := transfer.NewQueryUseCase(store.Stocks(), store.Requests(), store.Backorders())
	ctx := context.Background()

	all, err := uc.ListRequests(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := uc.ListRequests(ctx, entity.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "req-1", pending[0].ID)
}
