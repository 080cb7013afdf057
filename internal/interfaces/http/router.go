package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Electrotienda-api/internal/application/auth"
	"github.com/jhoicas/Electrotienda-api/internal/application/billing"
	"github.com/jhoicas/Electrotienda-api/internal/application/inventory"
	"github.com/jhoicas/Electrotienda-api/internal/application/returns"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	Query             *inventory.QueryUseCase
	Adjust            *inventory.AdjustUseCase
	Report            *inventory.ReportUseCase
	PurchaseInvoiceUC *billing.PurchaseInvoiceUseCase
	SalesInvoiceUC    *billing.SalesInvoiceUseCase
	PurchaseReturnUC  *returns.UseCase
	SalesReturnUC     *returns.UseCase
	JWTSecret         string
	JWTIssuer         string
	ServiceName       string
}

// Router registra /health y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.JWTSecret, deps.JWTIssuer)

	// Auth: login público; el alta de usuarios la hace un admin
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/register", requireAuth, RequireRole(entity.RoleAdmin), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", requireAuth)
	protected.Get("/auth/me", authHandler.Me)

	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	sales := RequireRole(entity.RoleAdmin, entity.RoleVendedor)

	// Catálogo (lectura)
	productHandler := NewProductHandler(deps.Query)
	protected.Get("/products", productHandler.List)
	protected.Get("/products/:id", productHandler.GetByID)

	// Libro de inventario
	invHandler := NewInventoryHandler(deps.Query, deps.Adjust, deps.Report)
	inv := protected.Group("/inventory")
	inv.Get("/report", invHandler.GetReport)
	inv.Get("/report/pdf", invHandler.GetReportPDF)
	inv.Get("/product/:id", invHandler.GetProductInventory)
	inv.Get("/product/:id/movements", invHandler.GetProductMovements)
	inv.Get("/movements", invHandler.ListMovements)
	inv.Post("/adjust", warehouse, invHandler.Adjust)

	// Facturas de compra (bodega)
	piHandler := NewPurchaseInvoiceHandler(deps.PurchaseInvoiceUC)
	pi := protected.Group("/purchase-invoices")
	pi.Post("/", warehouse, piHandler.Create)
	pi.Get("/:id", piHandler.GetByID)
	pi.Delete("/:id", warehouse, piHandler.Delete)

	// Facturas de venta (mostrador)
	siHandler := NewSalesInvoiceHandler(deps.SalesInvoiceUC)
	si := protected.Group("/sales-invoices")
	si.Post("/", sales, siHandler.Create)
	si.Get("/:id", siHandler.GetByID)
	si.Delete("/:id", sales, siHandler.Delete)

	// Devoluciones
	mountReturns(protected.Group("/purchase-returns"), NewReturnHandler(deps.PurchaseReturnUC), warehouse)
	mountReturns(protected.Group("/sales-returns"), NewReturnHandler(deps.SalesReturnUC), sales)
}

func mountReturns(g fiber.Router, h *ReturnHandler, write fiber.Handler) {
	g.Post("/", write, h.Create)
	g.Get("/:id", h.GetByID)
	g.Put("/:id", write, h.Update)
	g.Delete("/:id", write, h.Delete)
}
