package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido. La transición es monótona: open -> fulfilled, nunca al revés.
const (
	OrderStatusOpen      = "open"
	OrderStatusFulfilled = "fulfilled"
)

// Origen del pedido.
const (
	OrderSourceManual   = "manual"   // capturado en el sistema
	OrderSourceExternal = "external" // entregado por el canal e-commerce
)

// Order representa la cabecera de un pedido (manual o externo).
// ExternalRef identifica el evento externo que lo originó; único cuando no es vacío,
// lo que garantiza un pedido interno por evento externo.
type Order struct {
	ID          string
	Number      string // número humano, ej. PED-000123
	Source      string
	ExternalRef string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ProcessedAt *time.Time // fecha de despacho; nil mientras el pedido esté abierto
}

// OrderItem representa una línea del pedido. Solo es editable mientras la
// cabecera esté en estado open.
type OrderItem struct {
	ID        string
	OrderID   string
	VariantID string
	Quantity  decimal.Decimal
}
