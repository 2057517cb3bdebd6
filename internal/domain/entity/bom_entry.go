package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMEntry define un nivel de descomposición de producción: para producir
// 1 unidad de la variante padre se consumen QuantityRequired unidades de la
// variante componente. El BOM es de un solo nivel; una entrada nunca puede
// referenciarse a sí misma como componente.
type BOMEntry struct {
	ID                 string
	ParentVariantID    string
	ComponentVariantID string
	QuantityRequired   decimal.Decimal // admite fracciones (ej: gramos por unidad)
	CreatedAt          time.Time
}
