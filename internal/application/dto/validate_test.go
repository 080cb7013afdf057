package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Electrotienda-api/internal/domain"
)

func TestValidate_AdjustRequest(t *testing.T) {
	zero := int64(0)
	ok := AdjustInventoryRequest{ProductID: "p1", NewQuantity: &zero}
	assert.NoError(t, Validate(ok))

	missing := AdjustInventoryRequest{ProductID: "p1"}
	err := Validate(missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), "NewQuantity")

	neg := int64(-3)
	err = Validate(AdjustInventoryRequest{ProductID: "p1", NewQuantity: &neg})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestValidate_PurchaseInvoiceItems(t *testing.T) {
	err := Validate(CreatePurchaseInvoiceRequest{Supplier: "Proveedor"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Items")

	err = Validate(CreatePurchaseInvoiceRequest{
		Supplier: "Proveedor",
		Items:    []PurchaseInvoiceItemRequest{{ProductID: "p1", Quantity: 0}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Quantity")
}

func TestValidate_MovementFilter(t *testing.T) {
	assert.NoError(t, Validate(MovementFilter{}))
	assert.NoError(t, Validate(MovementFilter{ReferenceTable: "sales_return"}))
	assert.Error(t, Validate(MovementFilter{ReferenceTable: "invoices"}))
}
