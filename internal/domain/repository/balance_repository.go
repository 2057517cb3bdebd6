package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
)

// BalanceRepository define el puerto del saldo materializado por variante.
// Solo el motor de inventario escribe aquí, y siempre dentro de la misma
// transacción que el movimiento correspondiente.
type BalanceRepository interface {
	Get(variantID string) (*entity.InventoryBalance, error)
	List() ([]*entity.InventoryBalance, error)

	// ApplyDelta incrementa el saldo de la variante en delta de forma atómica,
	// creando la fila con valor delta si no existe (crear-si-falta /
	// incrementar-si-existe como escritura condicional única).
	// Devuelve el saldo resultante. No impone piso: el saldo puede quedar negativo.
	ApplyDelta(variantID string, delta decimal.Decimal) (decimal.Decimal, error)
}
