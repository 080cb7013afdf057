package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Electrotienda-api/internal/application/dto"
	"github.com/jhoicas/Electrotienda-api/internal/application/inventory"
)

// InventoryHandler consultas del libro, ajustes y reporte (protegido).
type InventoryHandler struct {
	query  *inventory.QueryUseCase
	adjust *inventory.AdjustUseCase
	report *inventory.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(query *inventory.QueryUseCase, adjust *inventory.AdjustUseCase, report *inventory.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{query: query, adjust: adjust, report: report}
}

// GetProductInventory godoc
// @Summary      Valoración de un producto
// @Description  Cantidad, costo promedio ponderado, último costo y valor total derivados del libro.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        as_of  query  string  false  "Fecha de corte RFC3339"
// @Success      200  {object}  dto.ProductInventoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/product/{id} [get]
func (h *InventoryHandler) GetProductInventory(c *fiber.Ctx) error {
	id := c.Params("id")
	var (
		out *dto.ProductInventoryResponse
		err error
	)
	if raw := c.Query("as_of"); raw != "" {
		at, perr := time.Parse(time.RFC3339, raw)
		if perr != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of debe ser RFC3339"})
		}
		out, err = h.query.GetProductInventoryAsOf(c.UserContext(), id, at)
	} else {
		out, err = h.query.GetProductInventory(c.UserContext(), id)
	}
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "producto")
	}
	return c.JSON(out)
}

// GetProductMovements godoc
// @Summary      Movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}   dto.MovementResponse
// @Router       /api/inventory/product/{id}/movements [get]
func (h *InventoryHandler) GetProductMovements(c *fiber.Ctx) error {
	list, err := h.query.GetMovements(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Description  Más recientes primero. Sin filtros devuelve todo el libro.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id       query  string  false  "ID del producto"
// @Param        reference_table  query  string  false  "purchase_invoice, sales_invoice, purchase_return, sales_return, adjustment"
// @Param        reference_id     query  string  false  "ID del documento"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var filter dto.MovementFilter
	if err := c.QueryParser(&filter); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(filter); err != nil {
		return writeError(c, err)
	}
	list, err := h.query.ListMovements(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Adjust godoc
// @Summary      Ajuste manual de inventario
// @Description  Lleva la cantidad al valor contado. Sin diferencia no registra movimiento.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustInventoryRequest  true  "product_id, new_quantity, note"
// @Success      200   {object}  dto.AdjustInventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.adjust.Adjust(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReport godoc
// @Summary      Reporte de inventario valorizado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        low_stock_threshold  query  int  false  "Umbral de stock bajo (por defecto el configurado)"
// @Success      200  {object}  dto.InventoryReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/report [get]
func (h *InventoryHandler) GetReport(c *fiber.Ctx) error {
	threshold, ok := thresholdParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "low_stock_threshold debe ser entero"})
	}
	out, err := h.report.GetInventoryReport(c.UserContext(), threshold)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetReportPDF godoc
// @Summary      Reporte de inventario en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Param        low_stock_threshold  query  int  false  "Umbral de stock bajo"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/report/pdf [get]
func (h *InventoryHandler) GetReportPDF(c *fiber.Ctx) error {
	threshold, ok := thresholdParam(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "low_stock_threshold debe ser entero"})
	}
	data, err := h.report.GetInventoryReportPDF(c.UserContext(), threshold)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="inventario-`+time.Now().Format("20060102")+`.pdf"`)
	return c.Send(data)
}

// thresholdParam lee ?low_stock_threshold; nil si no viene. ok=false si no es entero.
func thresholdParam(c *fiber.Ctx) (*int64, bool) {
	raw := c.Query("low_stock_threshold")
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &v, true
}
