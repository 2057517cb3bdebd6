package repository

import "github.com/jhoicas/manufactura-api/internal/domain/entity"

// MovementRepository define el puerto de persistencia del libro de movimientos.
// Solo inserta y lee: los movimientos son hechos inmutables.
type MovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByVariant(variantID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByTransaction(transactionID string) ([]*entity.InventoryMovement, error)
}
