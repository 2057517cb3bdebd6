package inventory

import (
	"context"

	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: o aterrizan todos los movimientos y saldos de una operación,
// o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		balRepo repository.BalanceRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
