package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Electrotienda-api/internal/application/dto"
	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
	"github.com/jhoicas/Electrotienda-api/pkg/logger"
)

const opAdjust = "adjust"

// AdjustUseCase ajuste manual: el usuario fija la cantidad objetivo y se anexa el delta.
type AdjustUseCase struct {
	tx     TxRunner
	ledger *Ledger
	log    *logger.Logger
}

// NewAdjustUseCase construye el caso de uso de ajuste.
func NewAdjustUseCase(tx TxRunner, ledger *Ledger, log *logger.Logger) *AdjustUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AdjustUseCase{tx: tx, ledger: ledger, log: log.Component("inventory.adjust")}
}

// Adjust calcula delta = nueva − actual bajo bloqueo del producto. Con delta 0 no anexa nada
// y responde éxito con Applied=false. El movimiento lleva el costo promedio vigente.
func (uc *AdjustUseCase) Adjust(ctx context.Context, userID string, in dto.AdjustInventoryRequest) (*dto.AdjustInventoryResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, uc.ledger.Rejected(opAdjust, err)
	}
	newQty := *in.NewQuantity

	out := &dto.AdjustInventoryResponse{ProductID: in.ProductID, NewQuantity: newQty}
	var appended []*entity.MovementLog
	err := uc.tx.Run(ctx, func(r Repos) error {
		products, err := uc.ledger.LockProducts(ctx, r.Products, []string{in.ProductID})
		if err != nil {
			return err
		}
		v, _, err := uc.ledger.Valuation(ctx, r.Movements, products[in.ProductID])
		if err != nil {
			return err
		}
		out.PreviousQuantity = v.CurrentQuantity
		out.Delta = newQty - v.CurrentQuantity
		if out.Delta == 0 {
			return nil
		}
		mov := &entity.MovementLog{
			ProductID:      in.ProductID,
			Type:           entity.MovementTypeAdjust,
			Quantity:       out.Delta,
			UnitCost:       v.AverageCost,
			ReferenceTable: entity.ReferenceAdjustment,
			ReferenceID:    uuid.NewString(),
			Note:           strings.TrimSpace(in.Note),
			UserID:         userID,
		}
		if err := uc.ledger.Append(ctx, r.Movements, []*entity.MovementLog{mov}); err != nil {
			return err
		}
		appended = append(appended, mov)
		return nil
	})
	if err != nil {
		return nil, uc.ledger.Rejected(opAdjust, fmt.Errorf("ajuste de %s: %w", in.ProductID, err))
	}
	if len(appended) == 0 {
		uc.log.Debug().Str("product_id", in.ProductID).Int64("quantity", newQty).Msg("ajuste sin cambios")
		return out, nil
	}

	uc.ledger.Committed(ctx, opAdjust, appended)
	out.Applied = true
	m := ToMovementResponse(appended[0])
	out.Movement = &m
	uc.log.Info().Str("product_id", in.ProductID).Int64("delta", out.Delta).Str("user_id", userID).Msg("ajuste aplicado")
	return out, nil
}
