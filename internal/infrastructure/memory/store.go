// Package memory implementa el almacén en memoria: mismo contrato
// transaccional que el adaptador de PostgreSQL (snapshot + rollback en lugar
// de BEGIN/COMMIT), usado por los tests y el modo de desarrollo local.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/traslados-api/internal/domain"
	"github.com/jhoicas/traslados-api/internal/domain/entity"
	"github.com/jhoicas/traslados-api/internal/domain/repository"
)

type stockKey struct {
	LocationID string
	ProductID  string
}

// Store guarda las tres colecciones bajo un mutex único: dentro de Run las
// vistas acceden sin volver a bloquear; fuera de Run cada llamada bloquea.
type Store struct {
	mu         sync.Mutex
	stocks     map[stockKey]*entity.StockRecord
	requests   map[string]*entity.TransferRequest
	backorders map[string]*entity.Backorder
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		stocks:     make(map[stockKey]*entity.StockRecord),
		requests:   make(map[string]*entity.TransferRequest),
		backorders: make(map[string]*entity.Backorder),
	}
}

// Run implementa transfer.TxRunner: toma snapshot, ejecuta fn con vistas
// atadas a la "transacción" y restaura el estado completo si fn falla. El
// mutex único garantiza el aislamiento (no hay lost update posible).
func (s *Store) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	requestRepo repository.TransferRequestRepository,
	backorderRepo repository.BackorderRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(&stockRepo{s: s, inTx: true}, &requestRepo{s: s, inTx: true}, &backorderRepo{s: s, inTx: true}); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// Stocks, Requests y Backorders devuelven vistas atadas al "pool" (bloquean
// en cada llamada), para consultas fuera de transacción.
func (s *Store) Stocks() repository.StockRepository { return &stockRepo{s: s} }

func (s *Store) Requests() repository.TransferRequestRepository { return &requestRepo{s: s} }

func (s *Store) Backorders() repository.BackorderRepository { return &backorderRepo{s: s} }

type snapshot struct {
	stocks     map[stockKey]*entity.StockRecord
	requests   map[string]*entity.TransferRequest
	backorders map[string]*entity.Backorder
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		stocks:     make(map[stockKey]*entity.StockRecord, len(s.stocks)),
		requests:   make(map[string]*entity.TransferRequest, len(s.requests)),
		backorders: make(map[string]*entity.Backorder, len(s.backorders)),
	}
	for k, v := range s.stocks {
		snap.stocks[k] = v.Clone()
	}
	for k, v := range s.requests {
		snap.requests[k] = cloneRequest(v)
	}
	for k, v := range s.backorders {
		snap.backorders[k] = cloneBackorder(v)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.stocks = snap.stocks
	s.requests = snap.requests
	s.backorders = snap.backorders
}

func cloneProducts(products []entity.TransferProduct) []entity.TransferProduct {
	out := make([]entity.TransferProduct, len(products))
	for i, p := range products {
		p.Quantities = p.Quantities.Clone()
		out[i] = p
	}
	return out
}

func cloneRequest(req *entity.TransferRequest) *entity.TransferRequest {
	cp := *req
	cp.Products = cloneProducts(req.Products)
	return &cp
}

func cloneBackorder(b *entity.Backorder) *entity.Backorder {
	cp := *b
	cp.Products = cloneProducts(b.Products)
	cp.Quantities = b.Quantities.Clone()
	return &cp
}

// ── StockRepository ───────────────────────────────────────────────────────────

type stockRepo struct {
	s    *Store
	inTx bool
}

func (r *stockRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *stockRepo) Get(locationID, productID string) (*entity.StockRecord, error) {
	defer r.lock()()
	rec, ok := r.s.stocks[stockKey{locationID, productID}]
	if !ok {
		return nil, nil
	}
	return rec.Clone(), nil
}

// GetForUpdate equivale a Get: el mutex del Store ya serializa las transacciones.
func (r *stockRepo) GetForUpdate(locationID, productID string) (*entity.StockRecord, error) {
	return r.Get(locationID, productID)
}

func (r *stockRepo) ListByLocation(locationID string) ([]entity.StockRecord, error) {
	defer r.lock()()
	var out []entity.StockRecord
	for k, rec := range r.s.stocks {
		if k.LocationID == locationID {
			out = append(out, *rec.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *stockRepo) Upsert(rec *entity.StockRecord) error {
	defer r.lock()()
	r.s.stocks[stockKey{rec.LocationID, rec.ProductID}] = rec.Clone()
	return nil
}

// ── TransferRequestRepository ─────────────────────────────────────────────────

type requestRepo struct {
	s    *Store
	inTx bool
}

func (r *requestRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *requestRepo) Create(req *entity.TransferRequest) error {
	defer r.lock()()
	if _, exists := r.s.requests[req.ID]; exists {
		return domain.ErrConflict
	}
	r.s.requests[req.ID] = cloneRequest(req)
	return nil
}

func (r *requestRepo) GetByID(id string) (*entity.TransferRequest, error) {
	defer r.lock()()
	req, ok := r.s.requests[id]
	if !ok {
		return nil, nil
	}
	return cloneRequest(req), nil
}

func (r *requestRepo) GetForUpdate(id string) (*entity.TransferRequest, error) {
	return r.GetByID(id)
}

func (r *requestRepo) List(status string) ([]entity.TransferRequest, error) {
	defer r.lock()()
	var out []entity.TransferRequest
	for _, req := range r.s.requests {
		if status == "" || req.Status == status {
			out = append(out, *cloneRequest(req))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *requestRepo) UpdateStatus(id, status string) error {
	defer r.lock()()
	req, ok := r.s.requests[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.Status = status
	return nil
}

// Remove borra una solicitud; existe solo para simular en tests el borrado
// externo del que se defiende la referencia débil de los backorders.
func (s *Store) Remove(requestID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.requests, requestID)
}

// ── BackorderRepository ───────────────────────────────────────────────────────

type backorderRepo struct {
	s    *Store
	inTx bool
}

func (r *backorderRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *backorderRepo) Create(b *entity.Backorder) error {
	defer r.lock()()
	if _, exists := r.s.backorders[b.ID]; exists {
		return domain.ErrConflict
	}
	r.s.backorders[b.ID] = cloneBackorder(b)
	return nil
}

func (r *backorderRepo) GetByID(id string) (*entity.Backorder, error) {
	defer r.lock()()
	b, ok := r.s.backorders[id]
	if !ok {
		return nil, nil
	}
	return cloneBackorder(b), nil
}

func (r *backorderRepo) GetForUpdate(id string) (*entity.Backorder, error) {
	return r.GetByID(id)
}

func (r *backorderRepo) ListOpen() ([]entity.Backorder, error) {
	defer r.lock()()
	var out []entity.Backorder
	for _, b := range r.s.backorders {
		out = append(out, *cloneBackorder(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *backorderRepo) UpdateQuantities(id string, q entity.Quantities) error {
	defer r.lock()()
	b, ok := r.s.backorders[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Quantities = q.Clone()
	return nil
}

func (r *backorderRepo) Delete(id string) error {
	defer r.lock()()
	delete(r.s.backorders, id)
	return nil
}
