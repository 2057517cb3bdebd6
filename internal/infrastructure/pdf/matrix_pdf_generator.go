// Package pdf genera la representación imprimible de la matriz de stock:
// una tabla por producto, con una fila por valor de opción (ej. color) y el
// saldo actual de cada variante. Las variantes en o bajo su stock mínimo se
// resaltan en rojo.
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/jhoicas/manufactura-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa reports.MatrixPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateMatrixPDF genera el PDF de la matriz y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateMatrixPDF(_ context.Context, matrix *dto.StockMatrixDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Matriz de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(matrix))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	for _, r := range matrix.Rows {
		m.AddRows(productTitleRow(r))
		m.AddRows(cellHeaderRow())
		for _, cell := range r.Cells {
			m.AddRows(cellRow(cell))
		}
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + variación + fecha de generación.
func headerRow(matrix *dto.StockMatrixDTO) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(16).Add(
		col.New(7).Add(
			text.New("MATRIZ DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Variación: "+matrix.VariationName, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// productTitleRow: nombre del producto como título de su bloque.
func productTitleRow(r dto.MatrixRowDTO) core.Row {
	return row.New(9).Add(
		col.New(12).Add(
			text.New(r.ProductName, props.Text{
				Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 2,
			}),
		),
	)
}

// cellHeaderRow: cabecera de la tabla de variantes de un producto.
func cellHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorGray, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Opción", 3, align.Left),
		h("SKU", 4, align.Left),
		h("Stock", 2, align.Right),
		h("Mínimo", 2, align.Right),
		h("Estado", 1, align.Center),
	)
}

// cellRow: una fila por variante; en rojo si requiere reposición.
func cellRow(cell dto.MatrixCellDTO) core.Row {
	qtyColor := colorGray
	estado := ""
	if cell.NeedsReorder {
		qtyColor = colorAlert
		estado = "⚠"
	}
	return row.New(6).Add(
		col.New(3).Add(text.New(cell.OptionValue, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(4).Add(text.New(cell.SKU, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(2).Add(text.New(cell.QuantityOnHand.String(), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1, Color: qtyColor,
		})),
		col.New(2).Add(text.New(cell.MinimumStock.String(), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(1).Add(text.New(estado, props.Text{
			Size: 8, Align: align.Center, Top: 1, Color: colorAlert,
		})),
	)
}
