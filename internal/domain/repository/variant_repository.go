package repository

import "github.com/jhoicas/manufactura-api/internal/domain/entity"

// VariantRepository define el puerto de persistencia de variantes y sus selecciones.
type VariantRepository interface {
	Create(variant *entity.ProductVariant) error
	GetByID(id string) (*entity.ProductVariant, error)
	GetBySKU(sku string) (*entity.ProductVariant, error)
	ListByProduct(productID string) ([]*entity.ProductVariant, error)
	ListAll() ([]*entity.ProductVariant, error)
	Update(variant *entity.ProductVariant) error

	// Selecciones (variación -> valor) que distinguen a cada variante.
	AddSelection(sel *entity.VariantSelection) error
	ListSelections(variantID string) ([]*entity.VariantSelection, error)
	ListAllSelections() ([]*entity.VariantSelection, error)
}
