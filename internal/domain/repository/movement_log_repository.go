package repository

import (
	"context"

	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
)

// MovementLogRepository puerto del libro de movimientos. Solo anexa: no hay actualización en sitio.
// Las lecturas devuelven los movimientos ordenados por CreatedAt descendente.
type MovementLogRepository interface {
	Append(ctx context.Context, movement *entity.MovementLog) error
	FindByProduct(ctx context.Context, productID string) ([]*entity.MovementLog, error)
	FindAll(ctx context.Context) ([]*entity.MovementLog, error)
	FindByReference(ctx context.Context, table, id string) ([]*entity.MovementLog, error)
	// Delete existe solo para mantenimiento auditado; ningún productor lo usa.
	Delete(ctx context.Context, id string) error
}
