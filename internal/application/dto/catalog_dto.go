package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"` // RAW, INTERMEDIATE, FINAL
	UnitMeasure string `json:"unit_measure"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	UnitMeasure string    `json:"unit_measure"`
	CreatedAt   time.Time `json:"created_at"`
}

// VariantSelectionRequest par (variación, opción) de una variante, ej. ("color", "negro").
type VariantSelectionRequest struct {
	VariationName string `json:"variation_name"`
	OptionValue   string `json:"option_value"`
}

// CreateVariantRequest body para POST /api/products/:id/variants.
type CreateVariantRequest struct {
	SKU          string                    `json:"sku"`
	MinimumStock decimal.Decimal           `json:"minimum_stock"`
	Selections   []VariantSelectionRequest `json:"selections,omitempty"`
}

// VariantResponse variante en respuestas.
type VariantResponse struct {
	ID           string                    `json:"id"`
	ProductID    string                    `json:"product_id"`
	SKU          string                    `json:"sku"`
	MinimumStock decimal.Decimal           `json:"minimum_stock"`
	Selections   []VariantSelectionRequest `json:"selections,omitempty"`
}

// CreateBOMEntryRequest body para POST /api/bom. Define cuánto componente se
// consume por unidad producida de la variante padre.
type CreateBOMEntryRequest struct {
	ParentVariantID    string          `json:"parent_variant_id"`
	ComponentVariantID string          `json:"component_variant_id"`
	QuantityRequired   decimal.Decimal `json:"quantity_required"`
}

// BOMEntryResponse entrada de BOM en respuestas.
type BOMEntryResponse struct {
	ID                 string          `json:"id"`
	ParentVariantID    string          `json:"parent_variant_id"`
	ComponentVariantID string          `json:"component_variant_id"`
	QuantityRequired   decimal.Decimal `json:"quantity_required"`
}
