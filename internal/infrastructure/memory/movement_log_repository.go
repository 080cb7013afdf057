package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Electrotienda-api/internal/domain"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Electrotienda-api/internal/domain/inventory"
	"github.com/jhoicas/Electrotienda-api/internal/domain/repository"
)

var _ repository.MovementLogRepository = (*MovementLogRepo)(nil)

// MovementLogRepo libro de movimientos en memoria.
type MovementLogRepo struct {
	v *view
}

// Append anexa una copia del movimiento.
func (r *MovementLogRepo) Append(_ context.Context, m *entity.MovementLog) error {
	r.v.appends++
	if r.v.failAt > 0 && r.v.appends == r.v.failAt {
		return ErrInjectedFailure
	}
	return r.v.write(func(st *state) error {
		if m.ID == "" {
			return fmt.Errorf("%w: movimiento sin id", domain.ErrInvalidInput)
		}
		cp := *m
		st.movements = append(st.movements, &cp)
		return nil
	})
}

// FindByProduct movimientos del producto, más reciente primero.
func (r *MovementLogRepo) FindByProduct(_ context.Context, productID string) ([]*entity.MovementLog, error) {
	return r.filter(func(m *entity.MovementLog) bool { return m.ProductID == productID })
}

// FindAll todos los movimientos, más reciente primero.
func (r *MovementLogRepo) FindAll(_ context.Context) ([]*entity.MovementLog, error) {
	return r.filter(func(*entity.MovementLog) bool { return true })
}

// FindByReference movimientos de un documento, más reciente primero.
func (r *MovementLogRepo) FindByReference(_ context.Context, table, id string) ([]*entity.MovementLog, error) {
	return r.filter(func(m *entity.MovementLog) bool {
		return m.ReferenceTable == table && m.ReferenceID == id
	})
}

// Delete borra un movimiento (mantenimiento auditado).
func (r *MovementLogRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		for i, m := range st.movements {
			if m.ID == id {
				st.movements = append(st.movements[:i:i], st.movements[i+1:]...)
				return nil
			}
		}
		return nil
	})
}

func (r *MovementLogRepo) filter(keep func(*entity.MovementLog) bool) ([]*entity.MovementLog, error) {
	var out []*entity.MovementLog
	err := r.v.read(func(st *state) error {
		for _, m := range st.movements {
			if keep(m) {
				cp := *m
				out = append(out, &cp)
			}
		}
		return nil
	})
	domaininv.SortNewestFirst(out)
	return out, err
}
