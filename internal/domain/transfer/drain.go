// Package transfer contiene el algoritmo de drenaje compartido entre la
// aprobación manual y la reposición de backorders (manual y periódica).
// Es una función pura sobre un snapshot del ledger: recibe los registros de
// origen ya leídos y devuelve un plan de movimientos; el caso de uso aplica
// el plan dentro de su transacción.
package transfer

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/traslados-api/internal/domain/entity"
)

// Mode selecciona la variante del drenaje.
type Mode int

const (
	// ModeDebt (aprobación): descuenta del origen el monto aprobado completo
	// aunque exceda lo disponible. El origen puede quedar negativo: es deuda
	// registrada. El faltante se acumula como Remaining.
	ModeDebt Mode = iota
	// ModeRestock (reposición): descuenta como máximo el stock disponible;
	// el pendiente restante queda en Remaining para el siguiente intento.
	ModeRestock
)

// Move es un delta a aplicar sobre un producto y una talla:
// SourceDelta sale del origen (negativo), TargetDelta entra al destino.
type Move struct {
	ProductID   string
	Field       string
	SourceDelta decimal.Decimal
	TargetDelta decimal.Decimal
}

// Result es el plan calculado por Drain.
type Result struct {
	Moves     []Move
	Remaining entity.Quantities
}

// Settled indica que no quedó faltante ni pendiente.
func (r Result) Settled() bool {
	return r.Remaining.IsSettled()
}

// Moved indica que al menos una talla movió stock hacia el destino.
func (r Result) Moved() bool {
	for _, m := range r.Moves {
		if m.TargetDelta.GreaterThan(decimal.Zero) {
			return true
		}
	}
	return false
}

// Drain recorre los montos por talla drenándolos contra los productos en el
// orden listado (no proporcionalmente). Un producto sin registro de origen se
// salta sin fallar; una talla con monto <= 0 se salta sin generar escrituras.
//
// En ModeDebt el primer producto con registro absorbe el monto completo de la
// talla (equivale a poner quantitiesToMove[talla] en cero tras la primera
// aplicación); lo acreditado al destino se limita a lo disponible y el resto
// queda como faltante. En ModeRestock cada producto aporta hasta su stock
// disponible y el remanente sigue con el siguiente producto.
func Drain(products []entity.TransferProduct, amounts entity.Quantities, source map[string]*entity.StockRecord, mode Mode) Result {
	res := Result{Remaining: entity.Quantities{}}
	toMove := amounts.Positive()

	for _, field := range toMove.SortedFields() {
		pending := toMove[field]

		for _, p := range products {
			if !pending.GreaterThan(decimal.Zero) {
				break
			}
			rec, ok := source[p.ProductID]
			if !ok || rec == nil {
				// Sin documento de origen: se trata como stock cero y se salta.
				continue
			}
			avail := rec.Qty(field)

			if mode == ModeDebt {
				deduction := pending
				transferable := decimal.Min(decimal.Max(avail, decimal.Zero), deduction)
				res.Moves = append(res.Moves, Move{
					ProductID:   p.ProductID,
					Field:       field,
					SourceDelta: deduction.Neg(),
					TargetDelta: transferable,
				})
				if deduction.GreaterThan(avail) {
					res.Remaining[field] = res.Remaining[field].Add(deduction.Sub(avail))
				}
				pending = decimal.Zero
				continue
			}

			// ModeRestock: nunca por debajo de cero en el origen.
			stock := decimal.Max(avail, decimal.Zero)
			if !stock.GreaterThan(decimal.Zero) {
				continue
			}
			deduction := decimal.Min(pending, stock)
			res.Moves = append(res.Moves, Move{
				ProductID:   p.ProductID,
				Field:       field,
				SourceDelta: deduction.Neg(),
				TargetDelta: deduction,
			})
			pending = pending.Sub(deduction)
		}

		if mode == ModeRestock && pending.GreaterThan(decimal.Zero) {
			res.Remaining[field] = pending
		}
	}
	return res
}
