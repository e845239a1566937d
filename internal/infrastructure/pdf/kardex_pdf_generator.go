// Package pdf genera el kardex (historia de movimientos) de un inventario en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Producto + categoría  │  Stock actual + fecha   QR │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Cant. | Anterior | Nuevo | Motivo     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: totales de entradas/salidas y versión               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/regma/inventario-api/internal/application/inventory"
	"github.com/regma/inventario-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorIn      = &props.Color{Red: 0, Green: 120, Blue: 60}
	colorOut     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ inventory.KardexGenerator = (*KardexPDFGenerator)(nil)

// KardexPDFGenerator implementa inventory.KardexGenerator usando Maroto v2.
type KardexPDFGenerator struct {
	printer *message.Printer
	loc     *time.Location
}

// NewKardexPDFGenerator construye el generador. Números con separador de miles en español.
func NewKardexPDFGenerator() *KardexPDFGenerator {
	loc, err := time.LoadLocation("America/Bogota")
	if err != nil {
		loc = time.UTC
	}
	return &KardexPDFGenerator{printer: message.NewPrinter(language.Spanish), loc: loc}
}

// GenerateKardex genera el PDF y devuelve sus bytes. product puede ser nil.
func (g *KardexPDFGenerator) GenerateKardex(ledger *entity.StockLedger, product *entity.ProductDetail) ([]byte, error) {
	if ledger == nil {
		return nil, fmt.Errorf("pdf: ledger nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Kardex de inventario", true).
		WithAuthor("REGMA", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(ledger, product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(ledger.Movements) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos registrados", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
		)))
	}
	for _, mov := range ledger.Movements {
		m.AddRows(g.movementRow(mov))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(ledger))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar kardex: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// productDetailLine categoría, variante, formato y precio; "-" si falta alguno.
func (g *KardexPDFGenerator) productDetailLine(p *entity.ProductDetail) string {
	category, variant, format := "-", "-", "-"
	if p.Category != nil {
		category = p.Category.Name
	}
	if p.Variant != nil {
		variant = p.Variant.Name
	}
	if p.Format != nil {
		format = p.Format.Name
	}
	line := fmt.Sprintf("Categoría: %s   |   Variante: %s   |   Formato: %s", category, variant, format)
	if !p.Price.IsZero() {
		line += "   |   Precio: $" + g.printer.Sprintf("%d", p.Price.IntPart())
	}
	return line
}

// headerRow: producto (izq), stock actual (centro) y QR con el id del ledger (der).
func (g *KardexPDFGenerator) headerRow(l *entity.StockLedger, p *entity.ProductDetail) core.Row {
	name, detail := "Producto no encontrado", l.ProductID
	if p != nil {
		name = p.Name
		detail = g.productDetailLine(p)
	}
	location := nonEmpty(l.Location, "Principal")

	return row.New(24).Add(
		col.New(7).Add(
			text.New("KARDEX DE INVENTARIO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 13, Top: 6}),
			text.New(detail, props.Text{Size: 7, Top: 14, Color: colorGray}),
			text.New("Ubicación: "+location, props.Text{Size: 7, Top: 19, Color: colorGray}),
		),
		col.New(3).Add(
			text.New("Stock actual", props.Text{Size: 8, Align: align.Right, Color: colorGray, Top: 1}),
			text.New(g.printer.Sprintf("%d", l.CurrentStock), props.Text{
				Style: fontstyle.Bold, Size: 16, Align: align.Right, Color: colorPrimary, Top: 6,
			}),
			text.New("Emitido: "+time.Now().In(g.loc).Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Right, Color: colorGray, Top: 17,
			}),
		),
		col.New(2).Add(code.NewQr(l.ID, props.Rect{Percent: 90, Center: true})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 1, align.Left),
		h("Cant.", 1, align.Right),
		h("Anterior", 1, align.Right),
		h("Nuevo", 1, align.Right),
		h("Motivo", 4, align.Left),
		h("Usuario", 2, align.Left),
	)
}

func (g *KardexPDFGenerator) movementRow(mov entity.StockMovement) core.Row {
	color := colorGray
	switch mov.Type {
	case entity.MovementEntrada:
		color = colorIn
	case entity.MovementSalida:
		color = colorOut
	}
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(6).Add(
		cell(mov.CreatedAt.In(g.loc).Format("02/01/2006 15:04"), 2, align.Left),
		col.New(1).Add(text.New(string(mov.Type), props.Text{Size: 7.5, Style: fontstyle.Bold, Color: color, Top: 1, Left: 1})),
		cell(g.printer.Sprintf("%d", mov.Quantity), 1, align.Right),
		cell(g.printer.Sprintf("%d", mov.PreviousStock), 1, align.Right),
		cell(g.printer.Sprintf("%d", mov.NewStock), 1, align.Right),
		cell(mov.Reason, 4, align.Left),
		cell(nonEmpty(mov.ActorID, "sistema"), 2, align.Left),
	)
}

// totalsRow: unidades entradas/salidas y cantidad de ajustes.
func (g *KardexPDFGenerator) totalsRow(l *entity.StockLedger) core.Row {
	var in, out, adjustments int
	for _, mov := range l.Movements {
		switch mov.Type {
		case entity.MovementEntrada:
			in += mov.Quantity
		case entity.MovementSalida:
			out += mov.Quantity
		case entity.MovementAjuste:
			adjustments++
		}
	}
	summary := g.printer.Sprintf("Entradas: %d   |   Salidas: %d   |   Ajustes: %d   |   Movimientos: %d   |   Versión: %d",
		in, out, adjustments, len(l.Movements), l.Version)
	return row.New(10).Add(col.New(12).Add(
		text.New(summary, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 3}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
