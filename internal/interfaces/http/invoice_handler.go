package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Electrotienda-api/internal/application/billing"
	"github.com/jhoicas/Electrotienda-api/internal/application/dto"
)

// PurchaseInvoiceHandler facturas de compra (protegido).
type PurchaseInvoiceHandler struct {
	uc *billing.PurchaseInvoiceUseCase
}

// NewPurchaseInvoiceHandler construye el handler.
func NewPurchaseInvoiceHandler(uc *billing.PurchaseInvoiceUseCase) *PurchaseInvoiceHandler {
	return &PurchaseInvoiceHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar factura de compra
// @Description  Crea la factura y anexa un movimiento PURCHASE por línea.
// @Tags         purchase-invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseInvoiceRequest  true  "supplier, items"
// @Success      201   {object}  dto.PurchaseInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-invoices [post]
func (h *PurchaseInvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura de compra
// @Tags         purchase-invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.PurchaseInvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-invoices/{id} [get]
func (h *PurchaseInvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "factura de compra")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Anular factura de compra
// @Description  Anexa movimientos compensatorios RETURN_PURCHASE; falla con 409 si el stock no alcanza.
// @Tags         purchase-invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchase-invoices/{id} [delete]
func (h *PurchaseInvoiceHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SalesInvoiceHandler facturas de venta (protegido).
type SalesInvoiceHandler struct {
	uc *billing.SalesInvoiceUseCase
}

// NewSalesInvoiceHandler construye el handler.
func NewSalesInvoiceHandler(uc *billing.SalesInvoiceUseCase) *SalesInvoiceHandler {
	return &SalesInvoiceHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar factura de venta
// @Description  Verifica stock, crea la factura y anexa un movimiento SALE por línea.
// @Tags         sales-invoices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSalesInvoiceRequest  true  "customer, items"
// @Success      201   {object}  dto.SalesInvoiceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales-invoices [post]
func (h *SalesInvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSalesInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener factura de venta
// @Tags         sales-invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.SalesInvoiceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales-invoices/{id} [get]
func (h *SalesInvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "factura de venta")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Anular factura de venta
// @Description  Anexa movimientos compensatorios RETURN_SALE que devuelven el stock.
// @Tags         sales-invoices
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.DeletedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales-invoices/{id} [delete]
func (h *SalesInvoiceHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
