package billing_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Electrotienda-api/internal/application/billing"
	"github.com/jhoicas/Electrotienda-api/internal/application/dto"
	"github.com/jhoicas/Electrotienda-api/internal/application/inventory"
	"github.com/jhoicas/Electrotienda-api/internal/domain"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	"github.com/jhoicas/Electrotienda-api/internal/infrastructure/memory"
)

type fixture struct {
	store    *memory.Store
	purchase *billing.PurchaseInvoiceUseCase
	sales    *billing.SalesInvoiceUseCase
	query    *inventory.QueryUseCase
}

func newFixture() *fixture {
	s := memory.NewStore()
	s.Products().Save(&entity.Product{
		ID:              "7",
		SKU:             "TV-55",
		Name:            "Televisor 55\"",
		Price:           decimal.NewFromInt(12),
		MinSellingPrice: decimal.NewFromInt(9),
		CreatedAt:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	s.Products().Save(&entity.Product{
		ID:              "8",
		SKU:             "LAV-01",
		Name:            "Lavadora",
		Price:           decimal.NewFromInt(40),
		MinSellingPrice: decimal.Zero,
		CreatedAt:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	ledger := inventory.NewLedger(nil, nil, nil)
	return &fixture{
		store:    s,
		purchase: billing.NewPurchaseInvoiceUseCase(s, ledger, s.PurchaseInvoices(), nil),
		sales:    billing.NewSalesInvoiceUseCase(s, ledger, s.SalesInvoices(), nil),
		query:    inventory.NewQueryUseCase(s.Movements(), s.Products(), nil),
	}
}

func (f *fixture) buy(t *testing.T, productID string, qty int64, cost string) *dto.PurchaseInvoiceResponse {
	t.Helper()
	inv, err := f.purchase.Create(context.Background(), "u1", dto.CreatePurchaseInvoiceRequest{
		Supplier: "Distribuidora Andina",
		Items:    []dto.PurchaseInvoiceItemRequest{{ProductID: productID, Quantity: qty, UnitCost: decimal.RequireFromString(cost)}},
	})
	require.NoError(t, err)
	return inv
}

func (f *fixture) stock(t *testing.T, productID string) *dto.ProductInventoryResponse {
	t.Helper()
	got, err := f.query.GetProductInventory(context.Background(), productID)
	require.NoError(t, err)
	require.NotNil(t, got)
	return got
}

func (f *fixture) movementCount(t *testing.T) int {
	t.Helper()
	rows, err := f.store.Movements().FindAll(context.Background())
	require.NoError(t, err)
	return len(rows)
}

// Escenario A + B + C: compra, venta con stock y venta sin stock.
func TestFlujoCompraVenta(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	inv := f.buy(t, "7", 20, "3.00")
	assert.True(t, inv.GrandTotal.Equal(decimal.NewFromInt(60)))
	got := f.stock(t, "7")
	assert.Equal(t, int64(20), got.CurrentQuantity)
	assert.True(t, got.AverageCost.Equal(decimal.NewFromInt(3)))
	assert.True(t, got.TotalValue.Equal(decimal.NewFromInt(60)))

	sale, err := f.sales.Create(ctx, "u2", dto.CreateSalesInvoiceRequest{
		Customer: "Cliente Mostrador",
		Items:    []dto.SalesInvoiceItemRequest{{ProductID: "7", Quantity: 5, UnitPrice: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	assert.True(t, sale.GrandTotal.Equal(decimal.NewFromInt(50)))
	got = f.stock(t, "7")
	assert.Equal(t, int64(15), got.CurrentQuantity, "la venta se anexa con signo negativo")
	assert.True(t, got.AverageCost.Equal(decimal.NewFromInt(3)), "las salidas no mueven el promedio")

	movs, err := f.query.GetMovements(ctx, "7")
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeSale, movs[0].Type)
	assert.Equal(t, int64(-5), movs[0].Quantity)
	assert.True(t, movs[0].UnitCost.Equal(decimal.NewFromInt(10)), "la fila de venta lleva el precio de la línea")

	before := f.movementCount(t)
	_, err = f.sales.Create(ctx, "u2", dto.CreateSalesInvoiceRequest{
		Customer: "Cliente Mostrador",
		Items: []dto.SalesInvoiceItemRequest{
			{ProductID: "7", Quantity: 1, UnitPrice: decimal.NewFromInt(10)},
			{ProductID: "7", Quantity: 15, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "líneas repetidas se validan por su suma")
	assert.Equal(t, before, f.movementCount(t))
	assert.Equal(t, int64(15), f.stock(t, "7").CurrentQuantity)
}

func TestVenta_SinStockNoGuardaFactura(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.buy(t, "7", 2, "3")

	_, err := f.sales.Create(ctx, "u2", dto.CreateSalesInvoiceRequest{
		Customer: "Cliente",
		Number:   "FV-9",
		Items: []dto.SalesInvoiceItemRequest{
			{ProductID: "7", Quantity: 1},
			{ProductID: "8", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, f.movementCount(t), "solo queda la compra")
}

func TestVenta_Precios(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.buy(t, "7", 10, "3")

	sale, err := f.sales.Create(ctx, "u2", dto.CreateSalesInvoiceRequest{
		Customer: "Cliente",
		Items:    []dto.SalesInvoiceItemRequest{{ProductID: "7", Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, sale.Lines[0].UnitPrice.Equal(decimal.NewFromInt(12)), "precio 0 toma el de lista")
	assert.NotEmpty(t, sale.Number)

	_, err = f.sales.Create(ctx, "u2", dto.CreateSalesInvoiceRequest{
		Customer: "Cliente",
		Items:    []dto.SalesInvoiceItemRequest{{ProductID: "7", Quantity: 1, UnitPrice: decimal.NewFromInt(5)}},
	})
	assert.ErrorIs(t, err, domain.ErrPriceBelowMinimum)
	assert.True(t, domain.IsValidation(err))

	_, err = f.sales.Create(ctx, "u2", dto.CreateSalesInvoiceRequest{
		Customer: "Cliente",
		Items:    []dto.SalesInvoiceItemRequest{{ProductID: "404", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompra_Validaciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.purchase.Create(ctx, "u1", dto.CreatePurchaseInvoiceRequest{Supplier: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.purchase.Create(ctx, "u1", dto.CreatePurchaseInvoiceRequest{
		Supplier: "X",
		Items:    []dto.PurchaseInvoiceItemRequest{{ProductID: "7", Quantity: 1, UnitCost: decimal.NewFromInt(-1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.purchase.Create(ctx, "u1", dto.CreatePurchaseInvoiceRequest{
		Supplier: "X",
		Items:    []dto.PurchaseInvoiceItemRequest{{ProductID: "404", Quantity: 1, UnitCost: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, f.movementCount(t))
}

func TestCompra_AtomicidadConFallaEnSegundaLinea(t *testing.T) {
	f := newFixture()
	f.store.FailAppendAt(2)

	_, err := f.purchase.Create(context.Background(), "u1", dto.CreatePurchaseInvoiceRequest{
		Supplier: "Distribuidora",
		Items: []dto.PurchaseInvoiceItemRequest{
			{ProductID: "7", Quantity: 4, UnitCost: decimal.NewFromInt(3)},
			{ProductID: "8", Quantity: 2, UnitCost: decimal.NewFromInt(30)},
		},
	})
	assert.ErrorIs(t, err, memory.ErrInjectedFailure)
	assert.Zero(t, f.movementCount(t))
	assert.Equal(t, int64(0), f.stock(t, "7").CurrentQuantity)
}

func TestAnularCompra(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.buy(t, "7", 10, "5")
	inv := f.buy(t, "7", 10, "9")

	res, err := f.purchase.Delete(ctx, "u1", inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.CompensatingCount)

	got := f.stock(t, "7")
	assert.Equal(t, int64(10), got.CurrentQuantity)
	assert.True(t, got.AverageCost.Equal(decimal.NewFromInt(5)), "el par compensado no participa del promedio")

	rows, err := f.store.Movements().FindByReference(ctx, entity.ReferencePurchaseInvoice, inv.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2, "el libro conserva la fila original y su compensación")
	assert.Equal(t, entity.MovementTypeReturnPurchase, rows[0].Type)
	assert.Equal(t, rows[1].ID, rows[0].ReversalOf)

	stored, err := f.purchase.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	_, err = f.purchase.Delete(ctx, "u1", inv.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnularCompra_UnidadesYaVendidas(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	inv := f.buy(t, "7", 10, "5")
	_, err := f.sales.Create(ctx, "u2", dto.CreateSalesInvoiceRequest{
		Customer: "Cliente",
		Items:    []dto.SalesInvoiceItemRequest{{ProductID: "7", Quantity: 8, UnitPrice: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	_, err = f.purchase.Delete(ctx, "u1", inv.ID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(2), f.stock(t, "7").CurrentQuantity)
}

func TestAnularVenta(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.buy(t, "7", 10, "5")
	sale, err := f.sales.Create(ctx, "u2", dto.CreateSalesInvoiceRequest{
		Customer: "Cliente",
		Items:    []dto.SalesInvoiceItemRequest{{ProductID: "7", Quantity: 4, UnitPrice: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	res, err := f.sales.Delete(ctx, "u2", sale.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.CompensatingCount)

	got := f.stock(t, "7")
	assert.Equal(t, int64(10), got.CurrentQuantity)
	assert.True(t, got.AverageCost.Equal(decimal.NewFromInt(5)))

	rows, err := f.store.Movements().FindByReference(ctx, entity.ReferenceSalesInvoice, sale.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, entity.MovementTypeReturnSale, rows[0].Type)
	assert.Equal(t, int64(4), rows[0].Quantity)
}

func TestAnularVenta_ConDevolucionesEsConflicto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.buy(t, "7", 10, "5")
	sale, err := f.sales.Create(ctx, "u2", dto.CreateSalesInvoiceRequest{
		Customer: "Cliente",
		Items:    []dto.SalesInvoiceItemRequest{{ProductID: "7", Quantity: 4, UnitPrice: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	require.NoError(t, f.store.SalesReturns().Create(ctx, &entity.ProductReturn{
		ID: "r1", InvoiceID: sale.ID, ProductID: "7", Quantity: 1,
	}))

	_, err = f.sales.Delete(ctx, "u2", sale.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Facturas sin número reciben uno propio; dos seguidas no chocan con la unicidad del número.
func TestFacturasSinNumero_NumerosUnicos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	c1 := f.buy(t, "7", 5, "3")
	c2 := f.buy(t, "7", 5, "3")
	assert.NotEqual(t, c1.Number, c2.Number)
	assert.True(t, strings.HasPrefix(c1.Number, "FC-"), c1.Number)

	venta := dto.CreateSalesInvoiceRequest{
		Customer: "Cliente",
		Items:    []dto.SalesInvoiceItemRequest{{ProductID: "7", Quantity: 1}},
	}
	v1, err := f.sales.Create(ctx, "u2", venta)
	require.NoError(t, err)
	v2, err := f.sales.Create(ctx, "u2", venta)
	require.NoError(t, err)
	assert.NotEqual(t, v1.Number, v2.Number)
	assert.True(t, strings.HasPrefix(v1.Number, "FV-"), v1.Number)
}

func TestFacturas_NumeroRepetidoEsConflicto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	compra := dto.CreatePurchaseInvoiceRequest{
		Supplier: "Distribuidora Andina",
		Number:   "FC-001",
		Items:    []dto.PurchaseInvoiceItemRequest{{ProductID: "7", Quantity: 4, UnitCost: decimal.NewFromInt(3)}},
	}
	_, err := f.purchase.Create(ctx, "u1", compra)
	require.NoError(t, err)
	_, err = f.purchase.Create(ctx, "u1", compra)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(4), f.stock(t, "7").CurrentQuantity, "la compra repetida no anexa movimientos")

	venta := dto.CreateSalesInvoiceRequest{
		Customer: "Cliente",
		Number:   "FV-77",
		Items:    []dto.SalesInvoiceItemRequest{{ProductID: "7", Quantity: 1}},
	}
	_, err = f.sales.Create(ctx, "u2", venta)
	require.NoError(t, err)
	_, err = f.sales.Create(ctx, "u2", venta)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, int64(3), f.stock(t, "7").CurrentQuantity)
}
