package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Electrotienda-api/internal/application/auth"
	"github.com/jhoicas/Electrotienda-api/internal/application/billing"
	"github.com/jhoicas/Electrotienda-api/internal/application/dto"
	"github.com/jhoicas/Electrotienda-api/internal/application/inventory"
	"github.com/jhoicas/Electrotienda-api/internal/application/returns"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	"github.com/jhoicas/Electrotienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/Electrotienda-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Electrotienda-api/internal/interfaces/http"
)

// stubPDF evita renderizar el PDF real en pruebas de handlers.
type stubPDF struct{}

func (stubPDF) GenerateInventoryReport(*dto.InventoryReportResponse) ([]byte, error) {
	return []byte("%PDF-1.3 stub"), nil
}

var _ inventory.ReportPDFGenerator = stubPDF{}
var _ inventory.ReportPDFGenerator = (*pdf.MarotoReportGenerator)(nil)

type apiFixture struct {
	app   *fiber.App
	store *memory.Store
	auth  *auth.AuthUseCase
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	s := memory.NewStore()
	s.Products().Save(&entity.Product{
		ID: "p-tv", SKU: "TV-50", Name: "Televisor 50",
		Price: decimal.NewFromInt(250), MinSellingPrice: decimal.NewFromInt(200),
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})

	ledger := inventory.NewLedger(nil, nil, nil)
	authUC := auth.NewAuthUseCase(s.Users(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}, nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:            authUC,
		Query:             inventory.NewQueryUseCase(s.Movements(), s.Products(), nil),
		Adjust:            inventory.NewAdjustUseCase(s, ledger, nil),
		Report:            inventory.NewReportUseCase(s.Movements(), s.Products(), stubPDF{}, 10, nil),
		PurchaseInvoiceUC: billing.NewPurchaseInvoiceUseCase(s, ledger, s.PurchaseInvoices(), nil),
		SalesInvoiceUC:    billing.NewSalesInvoiceUseCase(s, ledger, s.SalesInvoices(), nil),
		PurchaseReturnUC:  returns.NewPurchaseReturnUseCase(s, ledger, s.PurchaseReturns(), nil),
		SalesReturnUC:     returns.NewSalesReturnUseCase(s, ledger, s.SalesReturns(), nil),
		JWTSecret:         testJWTSecret,
		JWTIssuer:         testIssuer,
		ServiceName:       "electrotienda-test",
	})
	return &apiFixture{app: app, store: s, auth: authUC}
}

func (f *apiFixture) do(t *testing.T, method, path, role string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", tokenForRole(t, role))
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (f *apiFixture) buy(t *testing.T, qty int64, cost string) dto.PurchaseInvoiceResponse {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/purchase-invoices", "bodeguero", dto.CreatePurchaseInvoiceRequest{
		Supplier: "Distribuidora Andina",
		Items:    []dto.PurchaseInvoiceItemRequest{{ProductID: "p-tv", Quantity: qty, UnitCost: decimal.RequireFromString(cost)}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var inv dto.PurchaseInvoiceResponse
	decode(t, resp, &inv)
	return inv
}

func TestHealth(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	f := newAPI(t)
	_, err := f.auth.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "bodega@tienda.co", Password: "secreto-123", Role: entity.RoleBodeguero,
	})
	require.NoError(t, err)

	resp := f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "bodega@tienda.co", Password: "secreto-123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleBodeguero, out.User.Role)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	me, err := f.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, me.StatusCode)
	var user dto.UserResponse
	decode(t, me, &user)
	assert.Equal(t, "bodega@tienda.co", user.Email)

	resp = f.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "bodega@tienda.co", Password: "otra-clave"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegister_SoloAdmin(t *testing.T) {
	f := newAPI(t)
	req := dto.RegisterRequest{Email: "nuevo@tienda.co", Password: "secreto-123", Role: entity.RoleVendedor}

	resp := f.do(t, http.MethodPost, "/api/auth/register", "vendedor", req)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/auth/register", "admin", req)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/auth/register", "admin", req)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestInventory_CompraVentaYValoracion(t *testing.T) {
	f := newAPI(t)
	f.buy(t, 10, "100")

	resp := f.do(t, http.MethodPost, "/api/sales-invoices", "vendedor", dto.CreateSalesInvoiceRequest{
		Customer: "Ana Gómez",
		Items:    []dto.SalesInvoiceItemRequest{{ProductID: "p-tv", Quantity: 3}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/inventory/product/p-tv", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inv dto.ProductInventoryResponse
	decode(t, resp, &inv)
	assert.Equal(t, int64(7), inv.CurrentQuantity)
	assert.True(t, inv.AverageCost.Equal(decimal.NewFromInt(100)))
	assert.True(t, inv.TotalValue.Equal(decimal.NewFromInt(700)))

	resp = f.do(t, http.MethodGet, "/api/inventory/product/p-tv/movements", "vendedor", nil)
	var movs []dto.MovementResponse
	decode(t, resp, &movs)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeSale, movs[0].Type, "más reciente primero")
}

func TestSalesInvoice_StockInsuficiente409(t *testing.T) {
	f := newAPI(t)
	f.buy(t, 2, "100")

	resp := f.do(t, http.MethodPost, "/api/sales-invoices", "admin", dto.CreateSalesInvoiceRequest{
		Customer: "Ana Gómez",
		Items:    []dto.SalesInvoiceItemRequest{{ProductID: "p-tv", Quantity: 5}},
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
}

func TestSalesInvoice_PrecioBajoMinimo400(t *testing.T) {
	f := newAPI(t)
	f.buy(t, 2, "100")

	resp := f.do(t, http.MethodPost, "/api/sales-invoices", "vendedor", dto.CreateSalesInvoiceRequest{
		Customer: "Ana Gómez",
		Items:    []dto.SalesInvoiceItemRequest{{ProductID: "p-tv", Quantity: 1, UnitPrice: decimal.NewFromInt(150)}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "PRICE_BELOW_MINIMUM", e.Code)
}

func TestInventory_ProductoInexistente404(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/inventory/product/nope", "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/inventory/product/p-tv?as_of=ayer", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInventory_AsOf(t *testing.T) {
	f := newAPI(t)
	before := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	f.buy(t, 4, "50")

	resp := f.do(t, http.MethodGet, "/api/inventory/product/p-tv?as_of="+before, "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inv dto.ProductInventoryResponse
	decode(t, resp, &inv)
	assert.Equal(t, int64(0), inv.CurrentQuantity)
	assert.NotNil(t, inv.AsOf)
}

func TestAdjust_Roles(t *testing.T) {
	f := newAPI(t)
	f.buy(t, 10, "100")
	n := int64(8)
	body := dto.AdjustInventoryRequest{ProductID: "p-tv", NewQuantity: &n, Note: "conteo físico"}

	resp := f.do(t, http.MethodPost, "/api/inventory/adjust", "vendedor", body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/inventory/adjust", "bodeguero", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.AdjustInventoryResponse
	decode(t, resp, &out)
	assert.True(t, out.Applied)
	assert.Equal(t, int64(-2), out.Delta)

	resp = f.do(t, http.MethodPost, "/api/inventory/adjust", "bodeguero", body)
	decode(t, resp, &out)
	assert.False(t, out.Applied, "misma cantidad no registra movimiento")
}

func TestListMovements_Filtros(t *testing.T) {
	f := newAPI(t)
	inv := f.buy(t, 3, "100")

	resp := f.do(t, http.MethodGet, "/api/inventory/movements?reference_table=purchase_invoice&reference_id="+inv.ID, "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var movs []dto.MovementResponse
	decode(t, resp, &movs)
	require.Len(t, movs, 1)
	assert.Equal(t, inv.ID, movs[0].ReferenceID)

	resp = f.do(t, http.MethodGet, "/api/inventory/movements?reference_table=facturas", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReport(t *testing.T) {
	f := newAPI(t)
	f.buy(t, 3, "100")

	resp := f.do(t, http.MethodGet, "/api/inventory/report?low_stock_threshold=5", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var rep dto.InventoryReportResponse
	decode(t, resp, &rep)
	assert.Equal(t, 1, rep.LowStockItems)
	assert.Equal(t, int64(5), rep.LowStockThreshold)
	assert.True(t, rep.TotalInventoryValue.Equal(decimal.NewFromInt(300)))

	resp = f.do(t, http.MethodGet, "/api/inventory/report?low_stock_threshold=x", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/inventory/report?low_stock_threshold=-1", "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/inventory/report/pdf", "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestPurchaseInvoice_DeleteCompensa(t *testing.T) {
	f := newAPI(t)
	inv := f.buy(t, 5, "80")

	resp := f.do(t, http.MethodDelete, "/api/purchase-invoices/"+inv.ID, "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var del dto.DeletedResponse
	decode(t, resp, &del)
	assert.Equal(t, 1, del.CompensatingCount)

	resp = f.do(t, http.MethodGet, "/api/purchase-invoices/"+inv.ID, "admin", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/inventory/product/p-tv", "admin", nil)
	var pi dto.ProductInventoryResponse
	decode(t, resp, &pi)
	assert.Equal(t, int64(0), pi.CurrentQuantity)
}

func TestSalesReturn_Flujo(t *testing.T) {
	f := newAPI(t)
	f.buy(t, 10, "100")
	resp := f.do(t, http.MethodPost, "/api/sales-invoices", "vendedor", dto.CreateSalesInvoiceRequest{
		Customer: "Ana Gómez",
		Items:    []dto.SalesInvoiceItemRequest{{ProductID: "p-tv", Quantity: 4}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale dto.SalesInvoiceResponse
	decode(t, resp, &sale)

	resp = f.do(t, http.MethodPost, "/api/sales-returns", "vendedor", dto.CreateReturnRequest{InvoiceID: sale.ID, ProductID: "p-tv", Quantity: 5})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var e dto.ErrorResponse
	decode(t, resp, &e)
	assert.Equal(t, "RETURN_QUANTITY_EXCEEDED", e.Code)

	resp = f.do(t, http.MethodPost, "/api/sales-returns", "vendedor", dto.CreateReturnRequest{InvoiceID: sale.ID, ProductID: "p-tv", Quantity: 2})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var ret dto.ReturnResponse
	decode(t, resp, &ret)

	resp = f.do(t, http.MethodPut, "/api/sales-returns/"+ret.ID, "vendedor", dto.UpdateReturnRequest{Quantity: 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/inventory/product/p-tv", "vendedor", nil)
	var pi dto.ProductInventoryResponse
	decode(t, resp, &pi)
	assert.Equal(t, int64(9), pi.CurrentQuantity)

	resp = f.do(t, http.MethodPost, "/api/purchase-returns", "vendedor", dto.CreateReturnRequest{InvoiceID: "x", ProductID: "p-tv", Quantity: 1})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestProducts(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/products?limit=500", "vendedor", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page dto.ProductListResponse
	decode(t, resp, &page)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 100, page.Limit)

	resp = f.do(t, http.MethodGet, "/api/products/nope", "vendedor", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSinToken401(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/inventory/report", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
