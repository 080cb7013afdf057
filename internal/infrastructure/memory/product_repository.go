package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	"github.com/jhoicas/Electrotienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo en memoria.
type ProductRepo struct {
	v *view
}

// Save inserta o reemplaza un producto (carga del catálogo).
func (r *ProductRepo) Save(p *entity.Product) {
	_ = r.v.write(func(st *state) error {
		cp := *p
		st.products[p.ID] = &cp
		return nil
	})
}

// GetByID producto por id; nil, nil si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			cp := *p
			out = &cp
		}
		return nil
	})
	return out, err
}

// List catálogo completo ordenado por SKU.
func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.read(func(st *state) error {
		for _, p := range st.products {
			cp := *p
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, err
}

// LockForUpdate en memoria el bloqueo lo da Run; equivale a GetByID.
func (r *ProductRepo) LockForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}
