package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// ComponentRequirement cantidad requerida de una variante componente para
// cubrir una producción.
type ComponentRequirement struct {
	VariantID string
	Quantity  decimal.Decimal
}

// BOMResolver expande el BOM de un solo nivel de una variante producida.
type BOMResolver struct {
	bomRepo     repository.BOMRepository
	variantRepo repository.VariantRepository
}

// NewBOMResolver construye el resolver.
func NewBOMResolver(bomRepo repository.BOMRepository, variantRepo repository.VariantRepository) *BOMResolver {
	return &BOMResolver{bomRepo: bomRepo, variantRepo: variantRepo}
}

// ResolveComponents devuelve los componentes necesarios para producir
// producedQty unidades de la variante padre, escalando cada entrada del BOM
// con aritmética decimal (las cantidades fraccionarias son legítimas, ej.
// gramos por unidad). Lista vacía si la variante no tiene BOM (ítem comprado).
// Si una entrada referencia un componente inexistente devuelve
// ErrComponentNotFound: jamás se omite un componente en silencio.
func (r *BOMResolver) ResolveComponents(parentVariantID string, producedQty decimal.Decimal) ([]ComponentRequirement, error) {
	entries, err := r.bomRepo.ListByParent(parentVariantID)
	if err != nil {
		return nil, err
	}

	reqs := make([]ComponentRequirement, 0, len(entries))
	for _, e := range entries {
		component, err := r.variantRepo.GetByID(e.ComponentVariantID)
		if err != nil {
			return nil, err
		}
		if component == nil {
			return nil, fmt.Errorf("BOM de %s referencia la variante %s: %w",
				parentVariantID, e.ComponentVariantID, domain.ErrComponentNotFound)
		}
		reqs = append(reqs, ComponentRequirement{
			VariantID: e.ComponentVariantID,
			Quantity:  e.QuantityRequired.Mul(producedQty),
		})
	}
	return reqs, nil
}
