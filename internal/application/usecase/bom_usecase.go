package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// BOMUseCase administración de las entradas de BOM (un solo nivel).
type BOMUseCase struct {
	bomRepo     repository.BOMRepository
	variantRepo repository.VariantRepository
}

// NewBOMUseCase construye el caso de uso.
func NewBOMUseCase(bomRepo repository.BOMRepository, variantRepo repository.VariantRepository) *BOMUseCase {
	return &BOMUseCase{bomRepo: bomRepo, variantRepo: variantRepo}
}

// CreateEntry crea una entrada de BOM. Rechaza la auto-referencia y el ciclo
// directo (el componente ya tiene al padre en su propio BOM): con expansión de
// un solo nivel esos son los únicos ciclos alcanzables.
func (uc *BOMUseCase) CreateEntry(ctx context.Context, in dto.CreateBOMEntryRequest) (*dto.BOMEntryResponse, error) {
	if in.ParentVariantID == "" || in.ComponentVariantID == "" || !in.QuantityRequired.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentVariantID == in.ComponentVariantID {
		return nil, domain.ErrInvalidInput // una variante no puede consumirse a sí misma
	}
	parent, err := uc.variantRepo.GetByID(in.ParentVariantID)
	if err != nil {
		return nil, err
	}
	component, err := uc.variantRepo.GetByID(in.ComponentVariantID)
	if err != nil {
		return nil, err
	}
	if parent == nil || component == nil {
		return nil, domain.ErrNotFound
	}

	reverse, err := uc.bomRepo.ListByParent(in.ComponentVariantID)
	if err != nil {
		return nil, err
	}
	for _, e := range reverse {
		if e.ComponentVariantID == in.ParentVariantID {
			return nil, domain.ErrConflict // ciclo directo
		}
	}

	entry := &entity.BOMEntry{
		ID:                 uuid.New().String(),
		ParentVariantID:    in.ParentVariantID,
		ComponentVariantID: in.ComponentVariantID,
		QuantityRequired:   in.QuantityRequired,
		CreatedAt:          time.Now(),
	}
	if err := uc.bomRepo.Create(entry); err != nil {
		return nil, err
	}
	return toBOMEntryResponse(entry), nil
}

// ListByParent lista las entradas de BOM de una variante padre.
func (uc *BOMUseCase) ListByParent(ctx context.Context, parentVariantID string) ([]*dto.BOMEntryResponse, error) {
	entries, err := uc.bomRepo.ListByParent(parentVariantID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BOMEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toBOMEntryResponse(e))
	}
	return out, nil
}

// DeleteEntry elimina una entrada de BOM.
func (uc *BOMUseCase) DeleteEntry(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	return uc.bomRepo.Delete(id)
}

func toBOMEntryResponse(e *entity.BOMEntry) *dto.BOMEntryResponse {
	return &dto.BOMEntryResponse{
		ID:                 e.ID,
		ParentVariantID:    e.ParentVariantID,
		ComponentVariantID: e.ComponentVariantID,
		QuantityRequired:   e.QuantityRequired,
	}
}
