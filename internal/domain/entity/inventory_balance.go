package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryBalance representa el stock actual materializado de una variante.
// Invariante: QuantityOnHand == suma de los movimientos de la variante.
// Se crea de forma perezosa con el primer movimiento y nunca se borra.
// Puede ser negativo: un saldo negativo es sobreventa observable, no un error.
type InventoryBalance struct {
	VariantID      string
	QuantityOnHand decimal.Decimal
	UpdatedAt      time.Time
}
