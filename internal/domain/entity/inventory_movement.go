package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Acciones que originan un movimiento de inventario.
const (
	ActionPurchase    = "PURCHASE"    // compra de materia prima
	ActionOutput      = "OUTPUT"      // salida de producción (producto terminado)
	ActionConsumption = "CONSUMPTION" // consumo de componentes según BOM
	ActionAdjustment  = "ADJUSTMENT"  // corrección manual con motivo
	ActionSale        = "SALE"        // despacho de pedido (manual o externo)
)

// InventoryMovement representa un hecho inmutable del libro de inventario:
// un cambio de cantidad con signo sobre una variante. Nunca se actualiza ni
// se borra; el historial de una variante es la secuencia de sus movimientos.
type InventoryMovement struct {
	ID            string
	TransactionID string // agrupa los movimientos de una misma operación lógica
	VariantID     string
	Action        string
	Quantity      decimal.Decimal // con signo: positivo entra, negativo sale
	Reason        string          // motivo textual (ajustes); vacío en el resto
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}
