// Package returns devoluciones a proveedor (compra) y de cliente (venta).
// Ambas clases comparten el flujo; cambian la factura de origen, el signo y el costo del movimiento.
package returns

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

// UseCase devoluciones de una sola clase (entity.ReturnKindPurchase o entity.ReturnKindSales).
type UseCase struct {
	kind    string
	tx      inventory.TxRunner
	ledger  *inventory.Ledger
	returns repository.ReturnRepository
	log     *logger.Logger
}

// NewPurchaseReturnUseCase devoluciones a proveedor: sacan stock (RETURN_PURCHASE negativo).
func NewPurchaseReturnUseCase(tx inventory.TxRunner, ledger *inventory.Ledger, returns repository.ReturnRepository, log *logger.Logger) *UseCase {
	return newUseCase(entity.ReturnKindPurchase, tx, ledger, returns, log)
}

// NewSalesReturnUseCase devoluciones de cliente: reingresan stock (RETURN_SALE positivo).
func NewSalesReturnUseCase(tx inventory.TxRunner, ledger *inventory.Ledger, returns repository.ReturnRepository, log *logger.Logger) *UseCase {
	return newUseCase(entity.ReturnKindSales, tx, ledger, returns, log)
}

func newUseCase(kind string, tx inventory.TxRunner, ledger *inventory.Ledger, returns repository.ReturnRepository, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		kind:    kind,
		tx:      tx,
		ledger:  ledger,
		returns: returns,
		log:     log.Component("returns." + kind),
	}
}

// Kind clase de devolución que maneja el caso de uso.
func (uc *UseCase) Kind() string { return uc.kind }

func (uc *UseCase) op(action string) string {
	return action + "_" + uc.kind + "_return"
}

func (uc *UseCase) movementType() string {
	if uc.kind == entity.ReturnKindPurchase {
		return entity.MovementTypeReturnPurchase
	}
	return entity.MovementTypeReturnSale
}

func (uc *UseCase) referenceTable() string {
	if uc.kind == entity.ReturnKindPurchase {
		return entity.ReferencePurchaseReturn
	}
	return entity.ReferenceSalesReturn
}

// signed convierte unidades devueltas en delta de stock: la compra devuelta sale, la venta devuelta entra.
func (uc *UseCase) signed(units int64) int64 {
	if uc.kind == entity.ReturnKindPurchase {
		return -units
	}
	return units
}

// invoiced cantidad facturada del producto y costo unitario para el movimiento.
// Compra: costo ponderado de las líneas. Venta: costo promedio vigente del producto.
func (uc *UseCase) invoiced(ctx context.Context, r inventory.Repos, invoiceID string, product *entity.Product) (int64, decimal.Decimal, error) {
	if uc.kind == entity.ReturnKindPurchase {
		inv, err := r.PurchaseInvoices.GetByID(ctx, invoiceID)
		if err != nil {
			return 0, decimal.Zero, err
		}
		if inv == nil {
			return 0, decimal.Zero, fmt.Errorf("%w: factura de compra %s", domain.ErrNotFound, invoiceID)
		}
		qty, cost := inv.QuantityOf(product.ID)
		return qty, cost, nil
	}
	inv, err := r.SalesInvoices.GetByID(ctx, invoiceID)
	if err != nil {
		return 0, decimal.Zero, err
	}
	if inv == nil {
		return 0, decimal.Zero, fmt.Errorf("%w: factura de venta %s", domain.ErrNotFound, invoiceID)
	}
	qty := inv.QuantityOf(product.ID)
	if qty == 0 {
		return 0, decimal.Zero, nil
	}
	v, _, err := uc.ledger.Valuation(ctx, r.Movements, product)
	if err != nil {
		return 0, decimal.Zero, err
	}
	return qty, v.AverageCost, nil
}

// available unidades aún devolvibles: facturado − devoluciones existentes del mismo par
// factura/producto, excluyendo la devolución exceptID (para actualizaciones).
func (uc *UseCase) available(ctx context.Context, repo repository.ReturnRepository, invoiceID, productID, exceptID string, invoiced int64) (int64, error) {
	existing, err := repo.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return 0, err
	}
	var returned int64
	for _, ret := range existing {
		if ret.ProductID == productID && ret.ID != exceptID {
			returned += ret.Quantity
		}
	}
	return invoiced - returned, nil
}

// lock bloquea el producto y luego la fila de la devolución, en ese orden como el resto de
// productores. La devolución se relee bajo el bloqueo: la primera lectura solo ubica el producto
// y su cantidad pudo cambiar antes de obtenerlo.
func (uc *UseCase) lock(ctx context.Context, r inventory.Repos, repo repository.ReturnRepository, id string) (map[string]*entity.Product, *entity.ProductReturn, error) {
	ret, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if ret == nil {
		return nil, nil, fmt.Errorf("%w: devolución %s", domain.ErrNotFound, id)
	}
	products, err := uc.ledger.LockProducts(ctx, r.Products, []string{ret.ProductID})
	if err != nil {
		return nil, nil, err
	}
	ret, err = repo.LockForUpdate(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if ret == nil {
		return nil, nil, fmt.Errorf("%w: devolución %s", domain.ErrNotFound, id)
	}
	return products, ret, nil
}

// Create registra la devolución y su movimiento. La cantidad no puede superar lo facturado
// menos lo ya devuelto sobre la misma factura y producto.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	op := uc.op("create")
	if err := dto.Validate(in); err != nil {
		return nil, uc.ledger.Rejected(op, err)
	}

	now := time.Now().UTC()
	ret := &entity.ProductReturn{
		ID:        uuid.NewString(),
		Kind:      uc.kind,
		InvoiceID: in.InvoiceID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Note:      strings.TrimSpace(in.Note),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	var appended []*entity.MovementLog
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		products, err := uc.ledger.LockProducts(ctx, r.Products, []string{in.ProductID})
		if err != nil {
			return err
		}
		invoicedQty, unitCost, err := uc.invoiced(ctx, r, in.InvoiceID, products[in.ProductID])
		if err != nil {
			return err
		}
		if invoicedQty == 0 {
			return fmt.Errorf("%w: %s en factura %s", domain.ErrProductNotOnInvoice, in.ProductID, in.InvoiceID)
		}
		repo := r.Returns(uc.kind)
		avail, err := uc.available(ctx, repo, in.InvoiceID, in.ProductID, "", invoicedQty)
		if err != nil {
			return err
		}
		if in.Quantity > avail {
			return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrReturnQuantityExceeded, max(avail, 0), in.Quantity)
		}
		if err := repo.Create(ctx, ret); err != nil {
			return err
		}
		mov := &entity.MovementLog{
			ProductID:      in.ProductID,
			Type:           uc.movementType(),
			Quantity:       uc.signed(in.Quantity),
			UnitCost:       unitCost,
			ReferenceTable: uc.referenceTable(),
			ReferenceID:    ret.ID,
			Note:           ret.Note,
			UserID:         userID,
		}
		if err := uc.ledger.Append(ctx, r.Movements, []*entity.MovementLog{mov}); err != nil {
			return err
		}
		appended = append(appended, mov)
		return nil
	})
	if err != nil {
		return nil, uc.ledger.Rejected(op, err)
	}
	uc.ledger.Committed(ctx, op, appended)
	uc.log.Info().Str("return_id", ret.ID).Str("invoice_id", ret.InvoiceID).
		Str("product_id", ret.ProductID).Int64("quantity", ret.Quantity).Msg("devolución registrada")
	return toResponse(ret), nil
}

// Update cambia la cantidad de la devolución anexando un único movimiento con el delta.
// Delta cero no anexa nada.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateReturnRequest) (*dto.ReturnResponse, error) {
	op := uc.op("update")
	if err := dto.Validate(in); err != nil {
		return nil, uc.ledger.Rejected(op, err)
	}

	var (
		ret      *entity.ProductReturn
		appended []*entity.MovementLog
	)
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		repo := r.Returns(uc.kind)
		products, current, err := uc.lock(ctx, r, repo, id)
		if err != nil {
			return err
		}
		invoicedQty, unitCost, err := uc.invoiced(ctx, r, current.InvoiceID, products[current.ProductID])
		if err != nil {
			return err
		}
		avail, err := uc.available(ctx, repo, current.InvoiceID, current.ProductID, current.ID, invoicedQty)
		if err != nil {
			return err
		}
		if in.Quantity > avail {
			return fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrReturnQuantityExceeded, max(avail, 0), in.Quantity)
		}

		delta := in.Quantity - current.Quantity
		current.Quantity = in.Quantity
		if note := strings.TrimSpace(in.Note); note != "" {
			current.Note = note
		}
		current.UpdatedAt = time.Now().UTC()
		if err := repo.UpdateQuantity(ctx, current); err != nil {
			return err
		}
		ret = current
		if delta == 0 {
			return nil
		}
		mov := &entity.MovementLog{
			ProductID:      current.ProductID,
			Type:           uc.movementType(),
			Quantity:       uc.signed(delta),
			UnitCost:       unitCost,
			ReferenceTable: uc.referenceTable(),
			ReferenceID:    current.ID,
			Note:           "ajuste de devolución",
			UserID:         userID,
		}
		if err := uc.ledger.Append(ctx, r.Movements, []*entity.MovementLog{mov}); err != nil {
			return err
		}
		appended = append(appended, mov)
		return nil
	})
	if err != nil {
		return nil, uc.ledger.Rejected(op, err)
	}
	uc.ledger.Committed(ctx, op, appended)
	uc.log.Info().Str("return_id", id).Int64("quantity", ret.Quantity).Int("movements", len(appended)).Msg("devolución actualizada")
	return toResponse(ret), nil
}

// Delete elimina la devolución compensando todos sus movimientos activos.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) (*dto.DeletedResponse, error) {
	op := uc.op("delete")
	var appended []*entity.MovementLog
	err := uc.tx.Run(ctx, func(r inventory.Repos) error {
		repo := r.Returns(uc.kind)
		if _, _, err := uc.lock(ctx, r, repo, id); err != nil {
			return err
		}
		comps, err := uc.ledger.Compensate(ctx, r.Movements, uc.referenceTable(), id, "", userID, "anulación de devolución")
		if err != nil {
			return err
		}
		if err := uc.ledger.Append(ctx, r.Movements, comps); err != nil {
			return err
		}
		appended = comps
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return nil, uc.ledger.Rejected(op, err)
	}
	uc.ledger.Committed(ctx, op, appended)
	uc.log.Info().Str("return_id", id).Int("compensations", len(appended)).Msg("devolución anulada")
	return &dto.DeletedResponse{ID: id, CompensatingCount: len(appended)}, nil
}

// Get devolución por id. Ausente: nil, nil.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ReturnResponse, error) {
	ret, err := uc.returns.GetByID(ctx, id)
	if err != nil || ret == nil {
		return nil, err
	}
	return toResponse(ret), nil
}

func toResponse(r *entity.ProductReturn) *dto.ReturnResponse {
	return &dto.ReturnResponse{
		ID:        r.ID,
		Kind:      r.Kind,
		InvoiceID: r.InvoiceID,
		ProductID: r.ProductID,
		Quantity:  r.Quantity,
		Note:      r.Note,
		UserID:    r.UserID,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
