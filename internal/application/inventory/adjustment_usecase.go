package inventory

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

// RegisterAdjustmentUseCase registra correcciones manuales de inventario.
// A diferencia del resto de operaciones, las líneas NO se agregan: cada ajuste
// lleva su propio motivo y queda como movimiento individual en el libro.
type RegisterAdjustmentUseCase struct {
	txRunner    TxRunner
	variantRepo repository.VariantRepository
}

// NewRegisterAdjustmentUseCase construye el caso de uso.
func NewRegisterAdjustmentUseCase(txRunner TxRunner, variantRepo repository.VariantRepository) *RegisterAdjustmentUseCase {
	return &RegisterAdjustmentUseCase{txRunner: txRunner, variantRepo: variantRepo}
}

// RegisterAdjustment valida cada línea (variante existente, dirección conocida,
// cantidad positiva, motivo obligatorio) y aplica un movimiento ADJUSTMENT con
// signo por línea, todo en una transacción.
func (uc *RegisterAdjustmentUseCase) RegisterAdjustment(ctx context.Context, userID string, in dto.AdjustmentRequest) (*dto.OperationResultDTO, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	for _, l := range in.Lines {
		if l.VariantID == "" || l.Reason == "" || !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if l.Direction != dto.AdjustmentIncrease && l.Direction != dto.AdjustmentDecrease {
			return nil, domain.ErrInvalidInput
		}
		variant, err := uc.variantRepo.GetByID(l.VariantID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	txID := uuid.New().String()
	var oversold []dto.OversoldVariantDTO

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balRepo repository.BalanceRepository,
		_ repository.OrderRepository,
	) error {
		oversold = oversold[:0]
		for _, l := range in.Lines {
			qty := l.Quantity
			if l.Direction == dto.AdjustmentDecrease {
				qty = qty.Neg()
			}
			mov := &entity.InventoryMovement{
				TransactionID: txID,
				VariantID:     l.VariantID,
				Action:        entity.ActionAdjustment,
				Quantity:      qty,
				Reason:        l.Reason, // se persiste textual, sin normalizar
				Date:          now,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			newBal, err := applyMovement(movRepo, balRepo, mov)
			if err != nil {
				return err
			}
			if newBal.IsNegative() {
				oversold = append(oversold, dto.OversoldVariantDTO{VariantID: l.VariantID, QuantityOnHand: newBal})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.OperationResultDTO{
		TransactionID: txID,
		Movements:     len(in.Lines),
		Oversold:      oversold,
	}, nil
}
