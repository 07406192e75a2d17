package xmlexport_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/infrastructure/xmlexport"
)

func TestStockReportXML_EstructuraYTotales(t *testing.T) {
	rep := &dto.StockReportDTO{
		Products: []dto.ProductResponse{
			{ID: "p1", Code: "CAN-01", Name: "Caneta & Lápis", CurrentQuantity: 2, MinimumQuantity: 10,
				UnitPrice: decimal.RequireFromString("1.5"), StockValue: decimal.RequireFromString("3"), LowStock: true},
			{ID: "p2", Code: "PAP-01", Name: "Papel A4", CurrentQuantity: 40, MinimumQuantity: 10, CategoryID: "c1",
				UnitPrice: decimal.RequireFromString("25"), StockValue: decimal.RequireFromString("1000")},
		},
		TotalItems: 42,
		TotalValue: decimal.RequireFromString("1003"),
	}
	out, err := xmlexport.NewExporter().StockReportXML(rep, time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "relatorioEstoque", root.Tag)
	assert.Equal(t, "2026-05-04T10:30:00Z", root.SelectAttrValue("geradoEm", ""))
	assert.Equal(t, "42", root.SelectAttrValue("totalItens", ""))
	assert.Equal(t, "1003.00", root.SelectAttrValue("valorTotal", ""))

	products := root.SelectElements("produto")
	require.Len(t, products, 2)
	assert.Equal(t, "Caneta & Lápis", products[0].SelectElement("nome").Text())
	assert.Equal(t, "true", products[0].SelectAttrValue("estoqueBaixo", ""))
	assert.Equal(t, "1.50", products[0].SelectElement("precoUnitario").Text())
	assert.Equal(t, "", products[0].SelectAttrValue("categoriaId", ""))
	assert.Equal(t, "c1", products[1].SelectAttrValue("categoriaId", ""))
}

func TestStockReportXML_ReporteNil(t *testing.T) {
	_, err := xmlexport.NewExporter().StockReportXML(nil, time.Now())
	assert.Error(t, err)
}
