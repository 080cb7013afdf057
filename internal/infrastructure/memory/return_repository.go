package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Electrotienda-api/internal/domain"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	"github.com/jhoicas/Electrotienda-api/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo devoluciones en memoria de una clase.
type ReturnRepo struct {
	v    *view
	kind string
}

// Create guarda la devolución.
func (r *ReturnRepo) Create(_ context.Context, ret *entity.ProductReturn) error {
	return r.v.write(func(st *state) error {
		byID := st.returns[r.kind]
		if _, ok := byID[ret.ID]; ok {
			return domain.ErrConflict
		}
		cp := *ret
		cp.Kind = r.kind
		byID[ret.ID] = &cp
		return nil
	})
}

// GetByID devolución; nil, nil si no existe.
func (r *ReturnRepo) GetByID(_ context.Context, id string) (*entity.ProductReturn, error) {
	var out *entity.ProductReturn
	err := r.v.read(func(st *state) error {
		if ret, ok := st.returns[r.kind][id]; ok {
			cp := *ret
			out = &cp
		}
		return nil
	})
	return out, err
}

// LockForUpdate igual que GetByID: Store.Run ya serializa las unidades de trabajo.
func (r *ReturnRepo) LockForUpdate(ctx context.Context, id string) (*entity.ProductReturn, error) {
	return r.GetByID(ctx, id)
}

// UpdateQuantity reemplaza cantidad, nota y fecha de actualización.
func (r *ReturnRepo) UpdateQuantity(_ context.Context, ret *entity.ProductReturn) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.returns[r.kind][ret.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cp := *cur
		cp.Quantity = ret.Quantity
		cp.Note = ret.Note
		cp.UpdatedAt = ret.UpdatedAt
		st.returns[r.kind][ret.ID] = &cp
		return nil
	})
}

// Delete elimina la devolución.
func (r *ReturnRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		delete(st.returns[r.kind], id)
		return nil
	})
}

// ListByInvoice devoluciones de una factura, más antiguas primero.
func (r *ReturnRepo) ListByInvoice(_ context.Context, invoiceID string) ([]*entity.ProductReturn, error) {
	var out []*entity.ProductReturn
	err := r.v.read(func(st *state) error {
		for _, ret := range st.returns[r.kind] {
			if ret.InvoiceID == invoiceID {
				cp := *ret
				out = append(out, &cp)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}
