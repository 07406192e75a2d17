// Package pdf genera los documentos de exportación (instituciones, funcionarios, reporte de stock).
//
// Layout común de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del documento   │  Generado en dd/mm/aaaa    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: cabecera con fondo + una fila por registro           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES (solo reporte de stock)                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/application/report"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
)

var _ report.PDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// column describe una columna de tabla: título, ancho (grilla de 12) y alineación.
type column struct {
	label string
	size  int
	align align.Type
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador. author aparece en los metadatos del PDF.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: nonEmpty(author, "Almoxarifado")}
}

// InstitutionsPDF lista todas las instituciones con CNPJ, ciudad/UF y teléfono.
func (g *MarotoPDFGenerator) InstitutionsPDF(list []*entity.Institution, generatedAt time.Time) ([]byte, error) {
	cols := []column{
		{"Nome", 4, align.Left},
		{"CNPJ", 3, align.Left},
		{"Cidade/UF", 3, align.Left},
		{"Telefone", 2, align.Left},
	}
	rows := make([][]string, 0, len(list))
	for _, inst := range list {
		rows = append(rows, []string{
			inst.Name,
			inst.CNPJ,
			cityState(inst.City, inst.State),
			nonEmpty(inst.Phone, "-"),
		})
	}
	m := g.newDocument("Relatório de Instituições")
	m.AddRows(headerRow("Relatório de Instituições", generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableRows(cols, rows)...)
	m.AddRows(footerRow(fmt.Sprintf("Total de instituições: %d", len(list))))
	return generate(m)
}

// StaffPDF lista los funcionarios con email, teléfono e institución.
func (g *MarotoPDFGenerator) StaffPDF(list []*entity.StaffMember, institutionNames map[string]string, generatedAt time.Time) ([]byte, error) {
	cols := []column{
		{"Nome", 3, align.Left},
		{"Nascimento", 2, align.Center},
		{"Email", 3, align.Left},
		{"Telefone", 2, align.Left},
		{"Instituição", 2, align.Left},
	}
	rows := make([][]string, 0, len(list))
	for _, s := range list {
		rows = append(rows, []string{
			s.Name,
			s.BirthDate.Format("02/01/2006"),
			s.Email,
			nonEmpty(s.Phone, "-"),
			nonEmpty(institutionNames[s.InstitutionID], "-"),
		})
	}
	m := g.newDocument("Relatório de Funcionários")
	m.AddRows(headerRow("Relatório de Funcionários", generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableRows(cols, rows)...)
	m.AddRows(footerRow(fmt.Sprintf("Total de funcionários: %d", len(list))))
	return generate(m)
}

// StockReportPDF genera el reporte de stock con totales de ítems y valor.
// Los productos en stock bajo se marcan en rojo.
func (g *MarotoPDFGenerator) StockReportPDF(rep *dto.StockReportDTO, generatedAt time.Time) ([]byte, error) {
	if rep == nil {
		return nil, fmt.Errorf("pdf: reporte de stock nil")
	}
	cols := []column{
		{"Código", 2, align.Left},
		{"Produto", 4, align.Left},
		{"Qtd.", 1, align.Right},
		{"Mín.", 1, align.Right},
		{"Preço Unit.", 2, align.Right},
		{"Valor", 2, align.Right},
	}
	m := g.newDocument("Relatório de Estoque")
	m.AddRows(headerRow("Relatório de Estoque", generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(cols))
	for i, p := range rep.Products {
		values := []string{
			p.Code,
			p.Name,
			strconv.FormatInt(p.CurrentQuantity, 10),
			strconv.FormatInt(p.MinimumQuantity, 10),
			"R$ " + formatMoney(p.UnitPrice),
			"R$ " + formatMoney(p.StockValue),
		}
		var textColor *props.Color
		if p.LowStock {
			textColor = colorAlert
		}
		m.AddRows(tableDetailRow(cols, values, i%2 == 1, textColor))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(rep))
	return generate(m)
}

func (g *MarotoPDFGenerator) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.author, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y fecha de generación (der).
func headerRow(title string, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Gerado em", props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 2,
			}),
			text.New(generatedAt.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
		),
	)
}

func tableRows(cols []column, values [][]string) []core.Row {
	out := make([]core.Row, 0, len(values)+1)
	out = append(out, tableHeaderRow(cols))
	for i, v := range values {
		out = append(out, tableDetailRow(cols, v, i%2 == 1, nil))
	}
	return out
}

// tableHeaderRow: cabecera con fondo del color primario y texto blanco.
func tableHeaderRow(cols []column) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		cells = append(cells, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: c.align,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cells...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRow(cols []column, values []string, striped bool, textColor *props.Color) core.Row {
	cells := make([]core.Col, 0, len(cols))
	for i, c := range cols {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cells = append(cells, col.New(c.size).Add(text.New(v, props.Text{
			Size: 8, Align: c.align, Top: 1.5, Left: 1, Right: 1, Color: textColor,
		})))
	}
	r := row.New(7).Add(cells...)
	if striped {
		r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

func footerRow(msg string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(msg, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 3}),
	))
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(rep *dto.StockReportDTO) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 2,
		})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 8,
		})
	}
	return row.New(16).Add(
		col.New(6),
		col.New(3).Add(
			label("Produtos / Itens:"),
			grandLabel("VALOR TOTAL:"),
		),
		col.New(3).Add(
			text.New(fmt.Sprintf("%d / %d", len(rep.Products), rep.TotalItems), props.Text{
				Size: 9, Align: align.Right, Right: 1, Top: 2,
			}),
			text.New("R$ "+formatMoney(rep.TotalValue), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 8,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func cityState(city, state string) string {
	switch {
	case city != "" && state != "":
		return city + "/" + state
	case city != "":
		return city
	}
	return nonEmpty(state, "-")
}

// formatMoney formatea un valor con dos decimales en notación brasileña.
// Ej: 25000 → "25.000,00", 1234.5 → "1.234,50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}
