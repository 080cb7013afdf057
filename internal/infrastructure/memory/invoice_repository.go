package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Electrotienda-api/internal/domain"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	"github.com/jhoicas/Electrotienda-api/internal/domain/repository"
)

var (
	_ repository.PurchaseInvoiceRepository = (*PurchaseInvoiceRepo)(nil)
	_ repository.SalesInvoiceRepository    = (*SalesInvoiceRepo)(nil)
)

// PurchaseInvoiceRepo facturas de compra en memoria.
type PurchaseInvoiceRepo struct {
	v *view
}

func copyPurchaseInvoice(inv *entity.PurchaseInvoice) *entity.PurchaseInvoice {
	cp := *inv
	cp.Lines = make([]*entity.PurchaseInvoiceLine, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lc := *l
		cp.Lines = append(cp.Lines, &lc)
	}
	return &cp
}

// Create guarda la factura con sus líneas. ErrConflict si el id o el número ya existen.
func (r *PurchaseInvoiceRepo) Create(_ context.Context, inv *entity.PurchaseInvoice) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.purchaseInvoices[inv.ID]; ok {
			return domain.ErrConflict
		}
		for _, other := range st.purchaseInvoices {
			if other.Number == inv.Number {
				return fmt.Errorf("%w: número de factura de compra %q", domain.ErrConflict, inv.Number)
			}
		}
		st.purchaseInvoices[inv.ID] = copyPurchaseInvoice(inv)
		return nil
	})
}

// GetByID factura con líneas; nil, nil si no existe.
func (r *PurchaseInvoiceRepo) GetByID(_ context.Context, id string) (*entity.PurchaseInvoice, error) {
	var out *entity.PurchaseInvoice
	err := r.v.read(func(st *state) error {
		if inv, ok := st.purchaseInvoices[id]; ok {
			out = copyPurchaseInvoice(inv)
		}
		return nil
	})
	return out, err
}

// Delete elimina la factura y sus líneas.
func (r *PurchaseInvoiceRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		delete(st.purchaseInvoices, id)
		return nil
	})
}

// SalesInvoiceRepo facturas de venta en memoria.
type SalesInvoiceRepo struct {
	v *view
}

func copySalesInvoice(inv *entity.SalesInvoice) *entity.SalesInvoice {
	cp := *inv
	cp.Lines = make([]*entity.SalesInvoiceLine, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lc := *l
		cp.Lines = append(cp.Lines, &lc)
	}
	return &cp
}

// Create guarda la factura con sus líneas. ErrConflict si el id o el número ya existen.
func (r *SalesInvoiceRepo) Create(_ context.Context, inv *entity.SalesInvoice) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.salesInvoices[inv.ID]; ok {
			return domain.ErrConflict
		}
		for _, other := range st.salesInvoices {
			if other.Number == inv.Number {
				return fmt.Errorf("%w: número de factura de venta %q", domain.ErrConflict, inv.Number)
			}
		}
		st.salesInvoices[inv.ID] = copySalesInvoice(inv)
		return nil
	})
}

// GetByID factura con líneas; nil, nil si no existe.
func (r *SalesInvoiceRepo) GetByID(_ context.Context, id string) (*entity.SalesInvoice, error) {
	var out *entity.SalesInvoice
	err := r.v.read(func(st *state) error {
		if inv, ok := st.salesInvoices[id]; ok {
			out = copySalesInvoice(inv)
		}
		return nil
	})
	return out, err
}

// Delete elimina la factura y sus líneas.
func (r *SalesInvoiceRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		delete(st.salesInvoices, id)
		return nil
	})
}
