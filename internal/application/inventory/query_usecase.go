package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// QueryUseCase lecturas del libro: historial de movimientos y saldos.
type QueryUseCase struct {
	movRepo     repository.MovementRepository
	balRepo     repository.BalanceRepository
	variantRepo repository.VariantRepository
}

// NewQueryUseCase construye el caso de uso de consulta.
func NewQueryUseCase(
	movRepo repository.MovementRepository,
	balRepo repository.BalanceRepository,
	variantRepo repository.VariantRepository,
) *QueryUseCase {
	return &QueryUseCase{movRepo: movRepo, balRepo: balRepo, variantRepo: variantRepo}
}

// ListMovements historial de una variante, más recientes primero.
func (uc *QueryUseCase) ListMovements(ctx context.Context, variantID string, page dto.PageRequest) ([]dto.MovementDTO, error) {
	variant, err := uc.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	movements, err := uc.movRepo.ListByVariant(variantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementDTO{
			ID:            m.ID,
			TransactionID: m.TransactionID,
			VariantID:     m.VariantID,
			Action:        m.Action,
			Quantity:      m.Quantity,
			Reason:        m.Reason,
			Date:          m.Date,
		})
	}
	return out, nil
}

// GetBalance saldo actual de una variante. Una variante sin movimientos aún no
// tiene fila de saldo: se reporta cero.
func (uc *QueryUseCase) GetBalance(ctx context.Context, variantID string) (*dto.BalanceDTO, error) {
	variant, err := uc.variantRepo.GetByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	balance, err := uc.balRepo.Get(variantID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return &dto.BalanceDTO{VariantID: variantID, QuantityOnHand: decimal.Zero, UpdatedAt: time.Time{}}, nil
	}
	return &dto.BalanceDTO{
		VariantID:      balance.VariantID,
		QuantityOnHand: balance.QuantityOnHand,
		UpdatedAt:      balance.UpdatedAt,
	}, nil
}
