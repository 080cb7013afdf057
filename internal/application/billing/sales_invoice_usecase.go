package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Electrotienda-api/internal/application/dto"
	"github.com/jhoicas/Electrotienda-api/internal/application/inventory"
	"github.com/jhoicas/Electrotienda-api/internal/domain"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Electrotienda-api/internal/domain/inventory"
	"github.com/jhoicas/Electrotienda-api/internal/domain/repository"
	"github.com/jhoicas/Electrotienda-api/pkg/logger"
)

const (
	opCreateSalesInvoice = "create_sales_invoice"
	opDeleteSalesInvoice = "delete_sales_invoice"
)

// SalesInvoiceUseCase facturas de venta: cada línea sale del libro como SALE (cantidad negativa).
type SalesInvoiceUseCase struct {
	tx       inventory.TxRunner
	ledger   *inventory.Ledger
	invoices repository.SalesInvoiceRepository
	log      *logger.Logger
}

// NewSalesInvoiceUseCase construye el caso de uso.
func NewSalesInvoiceUseCase(
	tx inventory.TxRunner,
	ledger *inventory.Ledger,
	invoices repository.SalesInvoiceRepository,
	log *logger.Logger,
) *SalesInvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &SalesInvoiceUseCase{
		tx:       tx,
		ledger:   ledger,
		invoices: invoices,
		log:      log.Component("billing.sales"),
	}
}

// Create valida precios y stock bajo bloqueo de los productos y guarda la factura con un
// movimiento SALE por línea. Sin stock suficiente para alguna línea no se escribe nada.
func (uc *SalesInvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreateSalesInvoiceRequest) (*dto.SalesInvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, uc.ledger.Rejected(opCreateSalesInvoice, err)
	}
	for _, item := range in.Items {
		if item.UnitPrice.IsNegative() {
			return nil, uc.ledger.Rejected(opCreateSalesInvoice,
				fmt.Errorf("%w: precio unitario negativo para %s", domain.ErrInvalidInput, item.ProductID))
		}
	}

	now := time.Now().UTC()
	inv := &entity.SalesInvoice{
		ID:         uuid.NewString(),
		Customer:   strings.TrimSpace(in.Customer),
		Number:     strings.TrimSpace(in.Number),
		Date:       now,
		GrandTotal: decimal.Zero,
		UserID:     userID,
		CreatedAt:  now,
	}
	if in.Date != nil {
		inv.Date = in.Date.UTC()
	}
	if inv.Number == "" {
		inv.Number = defaultNumber(salesNumberPrefix, inv.ID)
	}

	productIDs := make([]string, 0, len(in.Items))
	requested := make(map[string]int64, len(in.Items))
	for _, item := range in.Items {
		productIDs = append(productIDs, item.ProductID)
		requested[item.ProductID] += item.Quantity
	}

	var appended []*entity.MovementLog
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		products, err := uc.ledger.LockProducts(ctx, r.Products, productIDs)
		if err != nil {
			return err
		}

		// Precios: 0 toma el precio de lista; nunca por debajo del mínimo.
		for _, item := range in.Items {
			p := products[item.ProductID]
			price := item.UnitPrice
			if price.IsZero() {
				price = p.Price
			}
			if price.LessThan(p.MinSellingPrice) {
				return fmt.Errorf("%w: %s a %s (mínimo %s)", domain.ErrPriceBelowMinimum,
					p.SKU, price.StringFixed(2), p.MinSellingPrice.StringFixed(2))
			}
			subtotal := price.Mul(decimal.NewFromInt(item.Quantity))
			inv.Lines = append(inv.Lines, &entity.SalesInvoiceLine{
				ID:        uuid.NewString(),
				InvoiceID: inv.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: price,
				Subtotal:  subtotal,
			})
			inv.GrandTotal = inv.GrandTotal.Add(subtotal)
		}

		// Stock: las líneas repetidas de un producto se validan por su suma.
		for id, qty := range requested {
			rows, err := r.Movements.FindByProduct(ctx, id)
			if err != nil {
				return err
			}
			if available := domaininv.CurrentQuantity(rows); available < qty {
				return fmt.Errorf("%w: %s (disponible %d, solicitado %d)",
					domain.ErrInsufficientStock, products[id].SKU, available, qty)
			}
		}

		if err := r.SalesInvoices.Create(ctx, inv); err != nil {
			return err
		}
		movements := make([]*entity.MovementLog, 0, len(inv.Lines))
		for _, line := range inv.Lines {
			movements = append(movements, &entity.MovementLog{
				ProductID:      line.ProductID,
				Type:           entity.MovementTypeSale,
				Quantity:       -line.Quantity,
				UnitCost:       line.UnitPrice,
				ReferenceTable: entity.ReferenceSalesInvoice,
				ReferenceID:    inv.ID,
				UserID:         userID,
			})
		}
		if err := uc.ledger.Append(ctx, r.Movements, movements); err != nil {
			return err
		}
		appended = movements
		return nil
	})
	if err != nil {
		return nil, uc.ledger.Rejected(opCreateSalesInvoice, err)
	}
	uc.ledger.Committed(ctx, opCreateSalesInvoice, appended)
	uc.log.Info().Str("invoice_id", inv.ID).Str("number", inv.Number).
		Int("lines", len(inv.Lines)).Str("grand_total", inv.GrandTotal.StringFixed(2)).
		Msg("factura de venta registrada")
	return toSalesInvoiceResponse(inv), nil
}

// Get factura de venta con líneas. Ausente: nil, nil.
func (uc *SalesInvoiceUseCase) Get(ctx context.Context, id string) (*dto.SalesInvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil || inv == nil {
		return nil, err
	}
	return toSalesInvoiceResponse(inv), nil
}

// Delete anula la factura: compensaciones RETURN_SALE devuelven las unidades al stock.
// Falla con ErrConflict si la factura tiene devoluciones de venta.
func (uc *SalesInvoiceUseCase) Delete(ctx context.Context, userID, id string) (*dto.DeletedResponse, error) {
	var appended []*entity.MovementLog
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		inv, err := r.SalesInvoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("%w: factura de venta %s", domain.ErrNotFound, id)
		}
		returns, err := r.SalesReturns.ListByInvoice(ctx, id)
		if err != nil {
			return err
		}
		if len(returns) > 0 {
			return fmt.Errorf("%w: la factura de venta %s tiene %d devoluciones", domain.ErrConflict, id, len(returns))
		}
		productIDs := make([]string, 0, len(inv.Lines))
		for _, l := range inv.Lines {
			productIDs = append(productIDs, l.ProductID)
		}
		if _, err := uc.ledger.LockProducts(ctx, r.Products, productIDs); err != nil {
			return err
		}
		comps, err := uc.ledger.Compensate(ctx, r.Movements, entity.ReferenceSalesInvoice, id,
			entity.MovementTypeReturnSale, userID, "anulación de factura de venta")
		if err != nil {
			return err
		}
		if err := uc.ledger.Append(ctx, r.Movements, comps); err != nil {
			return err
		}
		appended = comps
		return r.SalesInvoices.Delete(ctx, id)
	})
	if err != nil {
		return nil, uc.ledger.Rejected(opDeleteSalesInvoice, err)
	}
	uc.ledger.Committed(ctx, opDeleteSalesInvoice, appended)
	uc.log.Info().Str("invoice_id", id).Int("compensations", len(appended)).Msg("factura de venta anulada")
	return &dto.DeletedResponse{ID: id, CompensatingCount: len(appended)}, nil
}

func toSalesInvoiceResponse(inv *entity.SalesInvoice) *dto.SalesInvoiceResponse {
	out := &dto.SalesInvoiceResponse{
		ID:         inv.ID,
		Customer:   inv.Customer,
		Number:     inv.Number,
		Date:       inv.Date,
		GrandTotal: inv.GrandTotal,
		UserID:     inv.UserID,
		CreatedAt:  inv.CreatedAt,
		Lines:      make([]dto.SalesInvoiceLineResponse, 0, len(inv.Lines)),
	}
	for _, l := range inv.Lines {
		out.Lines = append(out.Lines, dto.SalesInvoiceLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	return out
}
