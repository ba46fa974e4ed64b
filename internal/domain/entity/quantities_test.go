package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/traslados-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Los documentos legados mezclan números y strings en el mismo mapa de
// cantidades: la frontera de coerción debe aceptar ambos.
func TestCoerceQuantities_TiposMezclados(t *testing.T) {
	q := entity.CoerceQuantities(map[string]any{
		"s":           float64(4),
		"m":           "7",
		"l":           json.Number("2.5"),
		"xl":          int64(3),
		"countStocks": "no-numérico",
		"others":      nil,
	})

	assert.True(t, q["s"].Equal(d("4")))
	assert.True(t, q["m"].Equal(d("7")), "cantidades guardadas como string se parsean")
	assert.True(t, q["l"].Equal(d("2.5")))
	assert.True(t, q["xl"].Equal(d("3")))
	assert.True(t, q["countStocks"].IsZero(), "un valor no parseable cuenta como cero")
	assert.True(t, q["others"].IsZero())
}

func TestCoerceQuantities_MapaNil(t *testing.T) {
	q := entity.CoerceQuantities(nil)
	assert.NotNil(t, q)
	assert.Empty(t, q)
}

func TestQuantities_Positive(t *testing.T) {
	q := entity.Quantities{"s": d("4"), "m": d("0"), "l": d("-2")}
	pos := q.Positive()

	assert.Len(t, pos, 1)
	assert.True(t, pos["s"].Equal(d("4")))
}

func TestQuantities_IsSettled(t *testing.T) {
	assert.True(t, entity.Quantities{}.IsSettled())
	assert.True(t, entity.Quantities{"s": d("0"), "m": d("-1")}.IsSettled())
	assert.False(t, entity.Quantities{"s": d("0.5")}.IsSettled())
}

// Clone debe ser una copia independiente: mutar la copia no toca el original.
func TestQuantities_Clone(t *testing.T) {
	q := entity.Quantities{"s": d("4")}
	cp := q.Clone()
	cp["s"] = d("99")

	assert.True(t, q["s"].Equal(d("4")))
}

func TestQuantities_SortedFields(t *testing.T) {
	q := entity.Quantities{"xl": d("1"), "m": d("1"), "s": d("1")}
	assert.Equal(t, []string{"m", "s", "xl"}, q.SortedFields())
}
