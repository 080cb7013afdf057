// Package inventory contiene la proyección pura del libro de movimientos:
// el stock y el costo de un producto se obtienen plegando sus movimientos, nunca de un contador.
package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Electrotienda-api/internal/domain/entity"
)

// Valuation resultado del pliegue de los movimientos de un producto (costeo promedio ponderado).
type Valuation struct {
	CurrentQuantity  int64
	AverageCost      decimal.Decimal
	LastCost         decimal.Decimal
	TotalValue       decimal.Decimal // CurrentQuantity * AverageCost, no es costo histórico exacto
	LastMovementDate time.Time
	MovementCount    int
}

// Valuate pliega los movimientos de un producto. Sin movimientos todo es cero y
// LastMovementDate toma fallbackDate (fecha de creación del producto).
func Valuate(movements []*entity.MovementLog, fallbackDate time.Time) Valuation {
	v := Valuation{
		AverageCost:      decimal.Zero,
		LastCost:         decimal.Zero,
		TotalValue:       decimal.Zero,
		LastMovementDate: fallbackDate,
		MovementCount:    len(movements),
	}
	if len(movements) == 0 {
		return v
	}
	v.CurrentQuantity = CurrentQuantity(movements)
	v.AverageCost = AverageCost(movements)
	last := Latest(movements)
	v.LastCost = last.UnitCost
	v.LastMovementDate = last.CreatedAt
	v.TotalValue = decimal.NewFromInt(v.CurrentQuantity).Mul(v.AverageCost)
	return v
}

// ValuateAsOf pliega solo los movimientos con CreatedAt <= at ("stock a la fecha").
func ValuateAsOf(movements []*entity.MovementLog, at, fallbackDate time.Time) Valuation {
	upTo := make([]*entity.MovementLog, 0, len(movements))
	for _, m := range movements {
		if !m.CreatedAt.After(at) {
			upTo = append(upTo, m)
		}
	}
	return Valuate(upTo, fallbackDate)
}

// CurrentQuantity suma con signo de todas las cantidades. No hay re-signado por tipo.
func CurrentQuantity(movements []*entity.MovementLog) int64 {
	var sum int64
	for _, m := range movements {
		sum += m.Quantity
	}
	return sum
}

// AverageCost promedio ponderado sobre entradas (Quantity > 0):
// Σ(cantidad * costo) / Σ cantidad. Cero si no hay entradas.
// Los pares compensados (movimiento revertido y su compensación) no participan, ni las
// entradas RETURN_PURCHASE: solo deshacen parte de una devolución a proveedor.
func AverageCost(movements []*entity.MovementLog) decimal.Decimal {
	reversed := reversedIDs(movements)
	var qty int64
	num := decimal.Zero
	for _, m := range movements {
		if m.Quantity <= 0 || m.IsReversal() || reversed[m.ID] || m.Type == entity.MovementTypeReturnPurchase {
			continue
		}
		qty += m.Quantity
		num = num.Add(decimal.NewFromInt(m.Quantity).Mul(m.UnitCost))
	}
	if qty == 0 {
		return decimal.Zero
	}
	return num.Div(decimal.NewFromInt(qty))
}

// Latest devuelve el movimiento con CreatedAt más reciente; empate por ID mayor. nil si no hay.
func Latest(movements []*entity.MovementLog) *entity.MovementLog {
	var last *entity.MovementLog
	for _, m := range movements {
		if last == nil || newer(m, last) {
			last = m
		}
	}
	return last
}

// Active devuelve los movimientos que no son compensaciones ni han sido compensados.
func Active(movements []*entity.MovementLog) []*entity.MovementLog {
	reversed := reversedIDs(movements)
	out := make([]*entity.MovementLog, 0, len(movements))
	for _, m := range movements {
		if m.IsReversal() || reversed[m.ID] {
			continue
		}
		out = append(out, m)
	}
	return out
}

// SortNewestFirst ordena por CreatedAt descendente (empate por ID descendente).
func SortNewestFirst(movements []*entity.MovementLog) {
	sort.SliceStable(movements, func(i, j int) bool {
		return newer(movements[i], movements[j])
	})
}

func newer(a, b *entity.MovementLog) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func reversedIDs(movements []*entity.MovementLog) map[string]bool {
	ids := make(map[string]bool)
	for _, m := range movements {
		if m.IsReversal() {
			ids[m.ReversalOf] = true
		}
	}
	return ids
}
