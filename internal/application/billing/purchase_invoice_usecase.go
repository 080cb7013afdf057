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
	"github.com/jhoicas/Electrotienda-api/internal/domain/repository"
	"github.com/jhoicas/Electrotienda-api/pkg/logger"
)

const (
	opCreatePurchaseInvoice = "create_purchase_invoice"
	opDeletePurchaseInvoice = "delete_purchase_invoice"
)

// PurchaseInvoiceUseCase facturas de compra: cada línea entra al libro como PURCHASE.
type PurchaseInvoiceUseCase struct {
	tx       inventory.TxRunner
	ledger   *inventory.Ledger
	invoices repository.PurchaseInvoiceRepository
	log      *logger.Logger
}

// NewPurchaseInvoiceUseCase construye el caso de uso.
func NewPurchaseInvoiceUseCase(
	tx inventory.TxRunner,
	ledger *inventory.Ledger,
	invoices repository.PurchaseInvoiceRepository,
	log *logger.Logger,
) *PurchaseInvoiceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &PurchaseInvoiceUseCase{
		tx:       tx,
		ledger:   ledger,
		invoices: invoices,
		log:      log.Component("billing.purchase"),
	}
}

// Create guarda cabecera, líneas y un movimiento PURCHASE (+cantidad, costo de la línea) por línea,
// todo en la misma transacción.
func (uc *PurchaseInvoiceUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseInvoiceRequest) (*dto.PurchaseInvoiceResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, uc.ledger.Rejected(opCreatePurchaseInvoice, err)
	}
	for _, item := range in.Items {
		if item.UnitCost.IsNegative() {
			return nil, uc.ledger.Rejected(opCreatePurchaseInvoice,
				fmt.Errorf("%w: costo unitario negativo para %s", domain.ErrInvalidInput, item.ProductID))
		}
	}

	now := time.Now().UTC()
	inv := &entity.PurchaseInvoice{
		ID:         uuid.NewString(),
		Supplier:   strings.TrimSpace(in.Supplier),
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
		inv.Number = defaultNumber(purchaseNumberPrefix, inv.ID)
	}
	productIDs := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		subtotal := item.UnitCost.Mul(decimal.NewFromInt(item.Quantity))
		inv.Lines = append(inv.Lines, &entity.PurchaseInvoiceLine{
			ID:        uuid.NewString(),
			InvoiceID: inv.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			Subtotal:  subtotal,
		})
		inv.GrandTotal = inv.GrandTotal.Add(subtotal)
		productIDs = append(productIDs, item.ProductID)
	}

	var appended []*entity.MovementLog
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		if _, err := uc.ledger.LockProducts(ctx, r.Products, productIDs); err != nil {
			return err
		}
		if err := r.PurchaseInvoices.Create(ctx, inv); err != nil {
			return err
		}
		movements := make([]*entity.MovementLog, 0, len(inv.Lines))
		for _, line := range inv.Lines {
			movements = append(movements, &entity.MovementLog{
				ProductID:      line.ProductID,
				Type:           entity.MovementTypePurchase,
				Quantity:       line.Quantity,
				UnitCost:       line.UnitCost,
				ReferenceTable: entity.ReferencePurchaseInvoice,
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
		return nil, uc.ledger.Rejected(opCreatePurchaseInvoice, err)
	}
	uc.ledger.Committed(ctx, opCreatePurchaseInvoice, appended)
	uc.log.Info().Str("invoice_id", inv.ID).Str("supplier", inv.Supplier).
		Int("lines", len(inv.Lines)).Str("grand_total", inv.GrandTotal.StringFixed(2)).
		Msg("factura de compra registrada")
	return toPurchaseInvoiceResponse(inv), nil
}

// Get factura de compra con líneas. Ausente: nil, nil.
func (uc *PurchaseInvoiceUseCase) Get(ctx context.Context, id string) (*dto.PurchaseInvoiceResponse, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil || inv == nil {
		return nil, err
	}
	return toPurchaseInvoiceResponse(inv), nil
}

// Delete anula la factura: anexa compensaciones RETURN_PURCHASE de sus movimientos activos y
// elimina el documento. Falla con ErrConflict si tiene devoluciones y con ErrInsufficientStock
// si las unidades ya salieron del inventario.
func (uc *PurchaseInvoiceUseCase) Delete(ctx context.Context, userID, id string) (*dto.DeletedResponse, error) {
	var appended []*entity.MovementLog
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		inv, err := r.PurchaseInvoices.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return fmt.Errorf("%w: factura de compra %s", domain.ErrNotFound, id)
		}
		returns, err := r.PurchaseReturns.ListByInvoice(ctx, id)
		if err != nil {
			return err
		}
		if len(returns) > 0 {
			return fmt.Errorf("%w: la factura de compra %s tiene %d devoluciones", domain.ErrConflict, id, len(returns))
		}
		productIDs := make([]string, 0, len(inv.Lines))
		for _, l := range inv.Lines {
			productIDs = append(productIDs, l.ProductID)
		}
		if _, err := uc.ledger.LockProducts(ctx, r.Products, productIDs); err != nil {
			return err
		}
		comps, err := uc.ledger.Compensate(ctx, r.Movements, entity.ReferencePurchaseInvoice, id,
			entity.MovementTypeReturnPurchase, userID, "anulación de factura de compra")
		if err != nil {
			return err
		}
		if err := uc.ledger.Append(ctx, r.Movements, comps); err != nil {
			return err
		}
		appended = comps
		return r.PurchaseInvoices.Delete(ctx, id)
	})
	if err != nil {
		return nil, uc.ledger.Rejected(opDeletePurchaseInvoice, err)
	}
	uc.ledger.Committed(ctx, opDeletePurchaseInvoice, appended)
	uc.log.Info().Str("invoice_id", id).Int("compensations", len(appended)).Msg("factura de compra anulada")
	return &dto.DeletedResponse{ID: id, CompensatingCount: len(appended)}, nil
}

func toPurchaseInvoiceResponse(inv *entity.PurchaseInvoice) *dto.PurchaseInvoiceResponse {
	out := &dto.PurchaseInvoiceResponse{
		ID:         inv.ID,
		Supplier:   inv.Supplier,
		Number:     inv.Number,
		Date:       inv.Date,
		GrandTotal: inv.GrandTotal,
		UserID:     inv.UserID,
		CreatedAt:  inv.CreatedAt,
		Lines:      make([]dto.PurchaseInvoiceLineResponse, 0, len(inv.Lines)),
	}
	for _, l := range inv.Lines {
		out.Lines = append(out.Lines, dto.PurchaseInvoiceLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
			Subtotal:  l.Subtotal,
		})
	}
	return out
}

const (
	purchaseNumberPrefix = "FC"
	salesNumberPrefix    = "FV"
)

// defaultNumber número para facturas sin consecutivo: prefijo + id de la factura,
// único igual que el id.
func defaultNumber(prefix, invoiceID string) string {
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(invoiceID, "-", ""))
}
