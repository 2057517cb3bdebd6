package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	domaininv "github.com/jhoicas/manufactura-api/internal/domain/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// RegisterPurchaseUseCase registra compras de materia prima: un movimiento
// PURCHASE positivo por variante agregada, todo en una transacción.
type RegisterPurchaseUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
}

// NewRegisterPurchaseUseCase construye el caso de uso.
func NewRegisterPurchaseUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
) *RegisterPurchaseUseCase {
	return &RegisterPurchaseUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		variantRepo: variantRepo,
	}
}

// RegisterPurchase valida las líneas (solo productos RAW y la variante debe
// pertenecer al producto declarado), agrega por variante y aplica los
// movimientos. Cualquier fallo de validación aborta la operación completa sin
// efecto parcial en el libro.
func (uc *RegisterPurchaseUseCase) RegisterPurchase(ctx context.Context, userID string, in dto.PurchaseRequest) (*dto.OperationResultDTO, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Validar líneas fuera de la tx (solo lectura de catálogo)
	lines := make([]domaininv.Line, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.ProductID == "" || l.VariantID == "" || !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.Category != entity.CategoryRaw {
			return nil, domain.ErrInvalidInput
		}
		variant, err := uc.variantRepo.GetByID(l.VariantID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, domain.ErrNotFound
		}
		if variant.ProductID != l.ProductID {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, domaininv.Line{VariantID: l.VariantID, Quantity: l.Quantity})
	}

	net := domaininv.Aggregate(lines)
	now := time.Now()
	txID := uuid.New().String()

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balRepo repository.BalanceRepository,
		_ repository.OrderRepository,
	) error {
		for _, variantID := range domaininv.SortedVariantIDs(net) {
			mov := &entity.InventoryMovement{
				TransactionID: txID,
				VariantID:     variantID,
				Action:        entity.ActionPurchase,
				Quantity:      net[variantID],
				Date:          now,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if _, err := applyMovement(movRepo, balRepo, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.OperationResultDTO{TransactionID: txID, Movements: len(net)}, nil
}
