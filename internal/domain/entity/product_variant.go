package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant representa una configuración vendible/producible de un producto
// (ej: un color). Todo producto tiene al menos una variante por defecto.
// El SKU es el código externo estable que usan los canales de venta.
type ProductVariant struct {
	ID           string
	ProductID    string
	SKU          string // único en todo el catálogo
	MinimumStock decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VariantSelection describe qué distingue a una variante dentro de su producto:
// (nombre de variación, valor de opción), ej. ("color", "negro").
type VariantSelection struct {
	VariantID     string
	VariationName string
	OptionValue   string
}
