package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almoxarifado-api/internal/application/dto"
	"github.com/jhoicas/almoxarifado-api/internal/domain/entity"
)

var generatedAt = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "0,00",
		"12.5":     "12,50",
		"1234.5":   "1.234,50",
		"25000":    "25.000,00",
		"1000000":  "1.000.000,00",
		"-1500.75": "-1.500,75",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestCityState(t *testing.T) {
	assert.Equal(t, "Campinas/SP", cityState("Campinas", "SP"))
	assert.Equal(t, "Campinas", cityState("Campinas", ""))
	assert.Equal(t, "SP", cityState("", "SP"))
	assert.Equal(t, "-", cityState("", ""))
}

func TestInstitutionsPDF_GeneraDocumento(t *testing.T) {
	g := NewMarotoPDFGenerator("")
	list := []*entity.Institution{
		{Name: "Escola Municipal", CNPJ: "11.222.333/0001-81", City: "Campinas", State: "SP"},
		{Name: "Hospital Regional", CNPJ: "44.555.666/0001-81"},
	}
	out, err := g.InstitutionsPDF(list, generatedAt)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestStaffPDF_GeneraDocumentoVacio(t *testing.T) {
	out, err := NewMarotoPDFGenerator("Almoxarifado").StaffPDF(nil, nil, generatedAt)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestStockReportPDF(t *testing.T) {
	g := NewMarotoPDFGenerator("Almoxarifado")
	rep := &dto.StockReportDTO{
		Products: []dto.ProductResponse{
			{Code: "CAN-01", Name: "Caneta", CurrentQuantity: 2, MinimumQuantity: 10,
				UnitPrice: decimal.RequireFromString("1.50"), StockValue: decimal.RequireFromString("3.00"), LowStock: true},
			{Code: "PAP-01", Name: "Papel A4", CurrentQuantity: 40, MinimumQuantity: 10,
				UnitPrice: decimal.RequireFromString("25"), StockValue: decimal.RequireFromString("1000"), LowStock: false},
		},
		TotalItems: 42,
		TotalValue: decimal.RequireFromString("1003"),
	}
	out, err := g.StockReportPDF(rep, generatedAt)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = g.StockReportPDF(nil, generatedAt)
	assert.Error(t, err)
}
