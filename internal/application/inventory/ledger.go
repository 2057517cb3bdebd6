package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// applyMovement anexa un movimiento inmutable y aplica el delta al saldo
// materializado de la variante en una sola pasada. Llamar siempre dentro de la
// transacción de la operación. No es idempotente: dos llamadas duplican el
// efecto, el llamador garantiza una invocación por evento lógico.
// Devuelve el saldo resultante.
func applyMovement(
	movRepo repository.MovementRepository,
	balRepo repository.BalanceRepository,
	mov *entity.InventoryMovement,
) (decimal.Decimal, error) {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	if err := movRepo.Create(mov); err != nil {
		return decimal.Zero, err
	}
	return balRepo.ApplyDelta(mov.VariantID, mov.Quantity)
}
