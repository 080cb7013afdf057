package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Electrotienda-api/internal/application/inventory"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
)

func mov(id, productID string, qty int64, at time.Time) *entity.MovementLog {
	return &entity.MovementLog{
		ID:             id,
		ProductID:      productID,
		Type:           entity.MovementTypePurchase,
		Quantity:       qty,
		UnitCost:       decimal.NewFromInt(3),
		ReferenceTable: entity.ReferencePurchaseInvoice,
		ReferenceID:    "inv-1",
		CreatedAt:      at,
	}
}

func TestStore_Run_CommitPublicaCambios(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now().UTC()

	err := s.Run(ctx, func(r inventory.Repos) error {
		return r.Movements.Append(ctx, mov("m1", "p1", 5, now))
	})
	require.NoError(t, err)

	rows, err := s.Movements().FindByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestStore_Run_RollbackDescartaTodo(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now().UTC()
	boom := errors.New("boom")

	err := s.Run(ctx, func(r inventory.Repos) error {
		if err := r.Movements.Append(ctx, mov("m1", "p1", 5, now)); err != nil {
			return err
		}
		if err := r.PurchaseInvoices.Create(ctx, &entity.PurchaseInvoice{ID: "inv-1"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	rows, _ := s.Movements().FindAll(ctx)
	assert.Empty(t, rows)
	inv, err := s.PurchaseInvoices().GetByID(ctx, "inv-1")
	require.NoError(t, err)
	assert.Nil(t, inv)
}

func TestStore_FailAppendAt(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	now := time.Now().UTC()
	s.FailAppendAt(2)

	err := s.Run(ctx, func(r inventory.Repos) error {
		if err := r.Movements.Append(ctx, mov("m1", "p1", 5, now)); err != nil {
			return err
		}
		return r.Movements.Append(ctx, mov("m2", "p1", 5, now))
	})
	assert.ErrorIs(t, err, ErrInjectedFailure)
	rows, _ := s.Movements().FindAll(ctx)
	assert.Empty(t, rows)

	// la falla solo aplica a una unidad de trabajo
	err = s.Run(ctx, func(r inventory.Repos) error {
		if err := r.Movements.Append(ctx, mov("m1", "p1", 5, now)); err != nil {
			return err
		}
		return r.Movements.Append(ctx, mov("m2", "p1", 5, now))
	})
	require.NoError(t, err)
}

func TestMovementLogRepo_OrdenDescendente(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := s.Movements()
	require.NoError(t, repo.Append(ctx, mov("a", "p1", 1, base)))
	require.NoError(t, repo.Append(ctx, mov("c", "p1", 1, base.Add(time.Hour))))
	require.NoError(t, repo.Append(ctx, mov("b", "p1", 1, base.Add(time.Hour))))

	rows, err := repo.FindByProduct(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})

	byRef, err := repo.FindByReference(ctx, entity.ReferencePurchaseInvoice, "inv-1")
	require.NoError(t, err)
	assert.Len(t, byRef, 3)
}

func TestReturnRepo_PorClase(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	ret := &entity.ProductReturn{ID: "r1", InvoiceID: "inv-1", ProductID: "p1", Quantity: 2}
	require.NoError(t, s.SalesReturns().Create(ctx, ret))

	got, err := s.PurchaseReturns().GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Nil(t, got, "las devoluciones de compra y venta no comparten espacio")

	list, err := s.SalesReturns().ListByInvoice(ctx, "inv-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.ReturnKindSales, list[0].Kind)
}
