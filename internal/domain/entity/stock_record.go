package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockRecord representa el stock de un producto en una ubicación (PH, US).
// Los campos descriptivos se copian del origen la primera vez que entra stock
// a una ubicación que no tiene registro del producto. Las cantidades pueden
// quedar negativas en el origen tras una aprobación parcial (deuda registrada).
type StockRecord struct {
	LocationID        string     `json:"location_id"`
	ProductID         string     `json:"product_id"`
	Name              string     `json:"name"`
	SKU               string     `json:"sku"`
	ImageURL          string     `json:"image_url"`
	WarehouseLocation string     `json:"warehouse_location"`
	Quantities        Quantities `json:"quantities"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Qty devuelve la cantidad de una talla (cero si no existe el campo).
func (r *StockRecord) Qty(field string) decimal.Decimal {
	if r.Quantities == nil {
		return decimal.Zero
	}
	return r.Quantities[field]
}

// AddQty suma delta a la talla indicada (crea el campo si no existe).
func (r *StockRecord) AddQty(field string, delta decimal.Decimal) {
	if r.Quantities == nil {
		r.Quantities = Quantities{}
	}
	r.Quantities[field] = r.Quantities[field].Add(delta)
}

// CloneEmpty sintetiza el registro del producto en otra ubicación: copia los
// campos descriptivos y deja todas las cantidades en cero.
func (r *StockRecord) CloneEmpty(locationID string, now time.Time) *StockRecord {
	q := make(Quantities, len(r.Quantities))
	for field := range r.Quantities {
		q[field] = decimal.Zero
	}
	return &StockRecord{
		LocationID:        locationID,
		ProductID:         r.ProductID,
		Name:              r.Name,
		SKU:               r.SKU,
		ImageURL:          r.ImageURL,
		WarehouseLocation: r.WarehouseLocation,
		Quantities:        q,
		UpdatedAt:         now,
	}
}

// Clone devuelve una copia independiente del registro.
func (r *StockRecord) Clone() *StockRecord {
	cp := *r
	cp.Quantities = r.Quantities.Clone()
	return &cp
}
