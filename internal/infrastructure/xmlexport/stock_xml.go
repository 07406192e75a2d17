// Package xmlexport serializa reportes a XML con etree.
package xmlexport

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/application/report"
)

var _ report.StockXMLExporter = (*Exporter)(nil)

// Exporter implementa report.StockXMLExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// StockReportXML genera:
//
//	<relatorioEstoque geradoEm="..." totalProdutos=".." totalItens=".." valorTotal="..">
//	  <produto id=".." codigo=".." estoqueBaixo="true|false">
//	    <nome/> <quantidade/> <minimo/> <precoUnitario/> <valor/>
//	  </produto>
//	</relatorioEstoque>
func (e *Exporter) StockReportXML(rep *dto.StockReportDTO, generatedAt time.Time) ([]byte, error) {
	if rep == nil {
		return nil, fmt.Errorf("xmlexport: reporte de stock nil")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("relatorioEstoque")
	root.CreateAttr("geradoEm", generatedAt.UTC().Format(time.RFC3339))
	root.CreateAttr("totalProdutos", strconv.Itoa(len(rep.Products)))
	root.CreateAttr("totalItens", strconv.FormatInt(rep.TotalItems, 10))
	root.CreateAttr("valorTotal", rep.TotalValue.StringFixed(2))

	for _, p := range rep.Products {
		el := root.CreateElement("produto")
		el.CreateAttr("id", p.ID)
		el.CreateAttr("codigo", p.Code)
		el.CreateAttr("estoqueBaixo", strconv.FormatBool(p.LowStock))
		if p.CategoryID != "" {
			el.CreateAttr("categoriaId", p.CategoryID)
		}
		el.CreateElement("nome").SetText(p.Name)
		el.CreateElement("quantidade").SetText(strconv.FormatInt(p.CurrentQuantity, 10))
		el.CreateElement("minimo").SetText(strconv.FormatInt(p.MinimumQuantity, 10))
		el.CreateElement("precoUnitario").SetText(p.UnitPrice.StringFixed(2))
		el.CreateElement("valor").SetText(p.StockValue.StringFixed(2))
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xmlexport: escribir documento: %w", err)
	}
	return out.Bytes(), nil
}
