package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de un pedido manual (variante interna ya resuelta).
type OrderItemRequest struct {
	VariantID string          `json:"variant_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// ExternalOrderItemRequest línea de un pedido externo: referencia por SKU,
// el intake la resuelve a variante interna antes de tocar el motor.
type ExternalOrderItemRequest struct {
	SKU      string          `json:"sku"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ExternalOrderRequest body para POST /api/intake/orders. La autenticidad del
// evento la verifica el canal antes de llegar aquí; ExternalRef identifica el
// evento y garantiza un solo pedido interno por evento.
type ExternalOrderRequest struct {
	ExternalRef string                     `json:"external_ref"`
	Items       []ExternalOrderItemRequest `json:"items"`
}

// OrderItemDTO línea de pedido en respuestas.
type OrderItemDTO struct {
	ID        string          `json:"id"`
	VariantID string          `json:"variant_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// OrderResponse cabecera + líneas de un pedido.
type OrderResponse struct {
	ID          string         `json:"id"`
	Number      string         `json:"number"`
	Source      string         `json:"source"`
	ExternalRef string         `json:"external_ref,omitempty"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	ProcessedAt *time.Time     `json:"processed_at,omitempty"`
	Items       []OrderItemDTO `json:"items"`
}
