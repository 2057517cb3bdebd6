package dto

import "github.com/shopspring/decimal"

// MatrixCellDTO celda (producto, valor de opción) de la matriz de stock.
// Solo existen celdas para variantes reales: "no producido en esa configuración"
// se distingue de "stock cero" por ausencia de celda.
type MatrixCellDTO struct {
	OptionValue    string          `json:"option_value"`
	VariantID      string          `json:"variant_id"`
	SKU            string          `json:"sku"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	MinimumStock   decimal.Decimal `json:"minimum_stock"`
	NeedsReorder   bool            `json:"needs_reorder"`
}

// MatrixRowDTO fila de la matriz: un producto con sus celdas por opción.
type MatrixRowDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Cells       []MatrixCellDTO `json:"cells"`
}

// StockMatrixDTO matriz de stock agrupada por producto y una variación
// designada (ej. color). Vista derivada: se recalcula en cada lectura.
type StockMatrixDTO struct {
	VariationName string         `json:"variation_name"`
	OptionValues  []string       `json:"option_values"` // columnas, orden estable
	Rows          []MatrixRowDTO `json:"rows"`
}

// LowStockItemDTO variante en o bajo su stock mínimo.
type LowStockItemDTO struct {
	VariantID      string          `json:"variant_id"`
	SKU            string          `json:"sku"`
	ProductName    string          `json:"product_name"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	MinimumStock   decimal.Decimal `json:"minimum_stock"`
	Deficit        decimal.Decimal `json:"deficit"` // MinimumStock - QuantityOnHand
}
