// Package pdf genera el manifiesto de traslado (packing slip) que acompaña
// la caja física entre bodegas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Manifiesto + Caja   │  Origen → Destino + Fecha    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Solicitante / Nota                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Cantidades por talla                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: ID de solicitud + estado                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/traslados-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ManifestGenerator genera el PDF del manifiesto usando Maroto v2.
type ManifestGenerator struct{}

// NewManifestGenerator construye el generador.
func NewManifestGenerator() *ManifestGenerator { return &ManifestGenerator{} }

// GenerateManifest genera el PDF y devuelve sus bytes.
func (g *ManifestGenerator) GenerateManifest(req *entity.TransferRequest) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Manifiesto de traslado", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(req))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(requesterRow(req))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableProductRows(req.Products) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(req))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar manifiesto: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + caja (izq) y ruta + fecha (der).
func headerRow(req *entity.TransferRequest) core.Row {
	box := req.BoxName
	if box == "" {
		box = "Sin caja asignada"
	}
	fecha := req.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New("Manifiesto de traslado", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Caja: "+box, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(req.From+" → "+req.To, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+fecha, props.Text{Size: 9, Align: align.Right, Top: 9, Color: colorGray}),
		),
	)
}

// requesterRow: solicitante y nota opcional.
func requesterRow(req *entity.TransferRequest) core.Row {
	nota := req.Note
	if nota == "" {
		nota = "—"
	}
	return row.New(10).Add(
		col.New(6).Add(
			text.New("Solicitado por: "+req.RequestedBy, props.Text{Size: 9, Top: 1}),
		),
		col.New(6).Add(
			text.New("Nota: "+nota, props.Text{Size: 9, Top: 1, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1}
	return row.New(8).Add(
		col.New(3).Add(text.New("SKU", header)),
		col.New(5).Add(text.New("Producto", header)),
		col.New(4).Add(text.New("Cantidades", header)),
	)
}

func tableProductRows(products []entity.TransferProduct) []core.Row {
	cell := props.Text{Size: 9, Top: 1}
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		rows = append(rows, row.New(7).Add(
			col.New(3).Add(text.New(p.SKU, cell)),
			col.New(5).Add(text.New(p.Name, cell)),
			col.New(4).Add(text.New(formatQuantities(p.Quantities), cell)),
		))
	}
	return rows
}

// formatQuantities imprime "s: 10  m: 4" en orden de talla estable.
func formatQuantities(q entity.Quantities) string {
	parts := make([]string, 0, len(q))
	for _, field := range q.SortedFields() {
		parts = append(parts, field+": "+q[field].String())
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, "  ")
}

func footerRow(req *entity.TransferRequest) core.Row {
	return row.New(8).Add(
		col.New(8).Add(
			text.New("Solicitud: "+req.ID, props.Text{Size: 8, Color: colorGray, Top: 1}),
		),
		col.New(4).Add(
			text.New("Estado: "+req.Status, props.Text{Size: 8, Align: align.Right, Color: colorGray, Top: 1}),
		),
	)
}
