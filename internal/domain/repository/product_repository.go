package repository

import (
	"context"

	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo. Un producto ausente se devuelve como nil, nil.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	// LockForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	LockForUpdate(ctx context.Context, id string) (*entity.Product, error)
}
