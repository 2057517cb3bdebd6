package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseLineRequest línea de una compra de materia prima.
type PurchaseLineRequest struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// PurchaseRequest body para POST /api/inventory/purchases.
type PurchaseRequest struct {
	Lines []PurchaseLineRequest `json:"lines"`
}

// ProductionLineRequest línea de una salida de producción.
// VariantID puede omitirse si el producto tiene una sola variante.
type ProductionLineRequest struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// ProductionRequest body para POST /api/inventory/production.
type ProductionRequest struct {
	Lines []ProductionLineRequest `json:"lines"`
}

// Direcciones de un ajuste manual.
const (
	AdjustmentIncrease = "increase"
	AdjustmentDecrease = "decrease"
)

// AdjustmentLineRequest línea de un ajuste de inventario. Cada línea lleva su
// propio motivo, por eso los ajustes no se agregan entre líneas.
type AdjustmentLineRequest struct {
	VariantID string          `json:"variant_id"`
	Direction string          `json:"direction"` // increase | decrease
	Quantity  decimal.Decimal `json:"quantity"`  // siempre positiva; el signo lo da direction
	Reason    string          `json:"reason"`
}

// AdjustmentRequest body para POST /api/inventory/adjustments.
type AdjustmentRequest struct {
	Lines []AdjustmentLineRequest `json:"lines"`
}

// MovementDTO un movimiento del libro en respuestas.
type MovementDTO struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	VariantID     string          `json:"variant_id"`
	Action        string          `json:"action"`
	Quantity      decimal.Decimal `json:"quantity"`
	Reason        string          `json:"reason,omitempty"`
	Date          time.Time       `json:"date"`
}

// BalanceDTO saldo actual de una variante.
type BalanceDTO struct {
	VariantID      string          `json:"variant_id"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// OversoldVariantDTO variante cuyo saldo quedó negativo tras un despacho.
// Es una advertencia observable, no un error: la operación sí se aplicó.
type OversoldVariantDTO struct {
	VariantID      string          `json:"variant_id"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
}

// OperationResultDTO resultado de una operación del motor de inventario.
type OperationResultDTO struct {
	TransactionID string               `json:"transaction_id"`
	Movements     int                  `json:"movements"`
	Oversold      []OversoldVariantDTO `json:"oversold,omitempty"`
}

// FulfillmentResultDTO resultado de despachar un pedido.
type FulfillmentResultDTO struct {
	OrderID     string               `json:"order_id"`
	ProcessedAt time.Time            `json:"processed_at"`
	Movements   int                  `json:"movements"`
	Oversold    []OversoldVariantDTO `json:"oversold,omitempty"`
}
