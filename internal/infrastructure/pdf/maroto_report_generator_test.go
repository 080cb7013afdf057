package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Electrotienda-api/internal/application/dto"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "0,00", money(decimal.Zero))
	assert.Equal(t, "999,50", money(decimal.RequireFromString("999.5")))
	assert.Equal(t, "1.234.567,89", money(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "-25.000,00", money(decimal.NewFromInt(-25000)))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "BAJO", statusLabel(dto.StockStatusLowStock))
	assert.Equal(t, "AGOTADO", statusLabel(dto.StockStatusOutOfStock))
	assert.Equal(t, "OK", statusLabel(dto.StockStatusOK))
}

func TestGenerateInventoryReport(t *testing.T) {
	g := NewMarotoReportGenerator("Electrotienda Centro")
	report := &dto.InventoryReportResponse{
		Items: []dto.InventoryReportItem{
			{SKU: "TV-50", Name: "Televisor 50", CurrentQuantity: 7, AverageCost: decimal.NewFromInt(100),
				LastCost: decimal.NewFromInt(100), TotalValue: decimal.NewFromInt(700), Status: dto.StockStatusLowStock},
			{SKU: "CEL-A1", Name: "Celular A1", CurrentQuantity: 0, Status: dto.StockStatusOutOfStock},
		},
		TotalInventoryValue: decimal.NewFromInt(700),
		TotalProducts:       2,
		LowStockItems:       1,
		OutOfStockItems:     1,
		LowStockThreshold:   10,
		GeneratedAt:         time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
	}

	data, err := g.GenerateInventoryReport(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "debe ser un PDF")
}

func TestGenerateInventoryReport_Nil(t *testing.T) {
	_, err := NewMarotoReportGenerator("").GenerateInventoryReport(nil)
	assert.Error(t, err)
}
