package entity

import (
	"encoding/json"
	"sort"

	"github.com/shopspring/decimal"
)

// Tallas canónicas usadas por los productos con variantes. Los productos sin
// variantes usan el campo genérico FieldCountStocks.
const (
	FieldS           = "s"
	FieldM           = "m"
	FieldL           = "l"
	FieldXL          = "xl"
	FieldXXL         = "xxl"
	FieldOthers      = "others"
	FieldCountStocks = "countStocks"
)

// Quantities mapea una talla (sizeField) a una cantidad numérica.
// El motor no restringe el conjunto de claves; las constantes de arriba son
// solo las que aparecen en los documentos reales.
type Quantities map[string]decimal.Decimal

// CoerceQuantities es la frontera de coerción numérica: convierte un mapa
// crudo (JSONB, body HTTP) a Quantities. Los documentos legados guardan
// cantidades como string, así que aquí se aceptan número, string y
// json.Number; un valor no parseable se trata como cero.
func CoerceQuantities(raw map[string]any) Quantities {
	if raw == nil {
		return Quantities{}
	}
	q := make(Quantities, len(raw))
	for field, v := range raw {
		q[field] = coerceNumeric(v)
	}
	return q
}

func coerceNumeric(v any) decimal.Decimal {
	switch n := v.(type) {
	case decimal.Decimal:
		return n
	case float64:
		return decimal.NewFromFloat(n)
	case int:
		return decimal.NewFromInt(int64(n))
	case int64:
		return decimal.NewFromInt(n)
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(n)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// Positive devuelve una copia solo con los campos cuyo valor es > 0.
func (q Quantities) Positive() Quantities {
	out := make(Quantities, len(q))
	for field, v := range q {
		if v.GreaterThan(decimal.Zero) {
			out[field] = v
		}
	}
	return out
}

// IsSettled indica que ningún campo conserva un valor > 0.
func (q Quantities) IsSettled() bool {
	for _, v := range q {
		if v.GreaterThan(decimal.Zero) {
			return false
		}
	}
	return true
}

// Clone devuelve una copia independiente del mapa.
func (q Quantities) Clone() Quantities {
	out := make(Quantities, len(q))
	for field, v := range q {
		out[field] = v
	}
	return out
}

// SortedFields devuelve las claves ordenadas, para recorridos deterministas.
func (q Quantities) SortedFields() []string {
	fields := make([]string, 0, len(q))
	for field := range q {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}
