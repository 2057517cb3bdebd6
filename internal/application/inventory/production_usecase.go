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

// RegisterProductionUseCase registra salidas de producción: un movimiento
// OUTPUT positivo por variante producida y un CONSUMPTION negativo por cada
// componente distinto del BOM, agregado entre todas las líneas de la petición
// para no descontar dos veces un componente compartido. Todo en una transacción.
type RegisterProductionUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
	resolver    *BOMResolver
}

// NewRegisterProductionUseCase construye el caso de uso.
func NewRegisterProductionUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	resolver *BOMResolver,
) *RegisterProductionUseCase {
	return &RegisterProductionUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		variantRepo: variantRepo,
		resolver:    resolver,
	}
}

// RegisterProduction valida y resuelve cada línea (con fallback a la variante
// única del producto cuando no se indica), expande el BOM y aplica los
// movimientos. Si un componente del BOM no existe, la operación completa se
// aborta sin efecto parcial.
func (uc *RegisterProductionUseCase) RegisterProduction(ctx context.Context, userID string, in dto.ProductionRequest) (*dto.OperationResultDTO, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Resolver variante por línea (fuera de la tx, solo lectura de catálogo)
	outputLines := make([]domaininv.Line, 0, len(in.Lines))
	for _, l := range in.Lines {
		if l.ProductID == "" || !l.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(l.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.Category == entity.CategoryRaw {
			// La materia prima se compra, no se produce
			return nil, domain.ErrInvalidInput
		}
		variantID, err := uc.resolveVariant(product.ID, l.VariantID)
		if err != nil {
			return nil, err
		}
		outputLines = append(outputLines, domaininv.Line{VariantID: variantID, Quantity: l.Quantity})
	}

	// Agregar salidas por variante y expandir componentes sobre el agregado.
	// Los componentes se agregan igual que las líneas de un pedido: un solo
	// movimiento por componente aunque lo compartan varias salidas.
	outputs := domaininv.Aggregate(outputLines)
	var componentLines []domaininv.Line
	for _, variantID := range domaininv.SortedVariantIDs(outputs) {
		reqs, err := uc.resolver.ResolveComponents(variantID, outputs[variantID])
		if err != nil {
			return nil, err
		}
		for _, req := range reqs {
			componentLines = append(componentLines, domaininv.Line{VariantID: req.VariantID, Quantity: req.Quantity})
		}
	}
	consumptions := domaininv.Aggregate(componentLines)

	now := time.Now()
	txID := uuid.New().String()
	var oversold []dto.OversoldVariantDTO

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balRepo repository.BalanceRepository,
		_ repository.OrderRepository,
	) error {
		oversold = oversold[:0]
		for _, variantID := range domaininv.SortedVariantIDs(outputs) {
			mov := &entity.InventoryMovement{
				TransactionID: txID,
				VariantID:     variantID,
				Action:        entity.ActionOutput,
				Quantity:      outputs[variantID],
				Date:          now,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if _, err := applyMovement(movRepo, balRepo, mov); err != nil {
				return err
			}
		}
		for _, variantID := range domaininv.SortedVariantIDs(consumptions) {
			mov := &entity.InventoryMovement{
				TransactionID: txID,
				VariantID:     variantID,
				Action:        entity.ActionConsumption,
				Quantity:      consumptions[variantID].Neg(),
				Date:          now,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			newBal, err := applyMovement(movRepo, balRepo, mov)
			if err != nil {
				return err
			}
			if newBal.IsNegative() {
				oversold = append(oversold, dto.OversoldVariantDTO{VariantID: variantID, QuantityOnHand: newBal})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.OperationResultDTO{
		TransactionID: txID,
		Movements:     len(outputs) + len(consumptions),
		Oversold:      oversold,
	}, nil
}

// resolveVariant devuelve la variante indicada (verificando que pertenezca al
// producto) o, si no se indicó, la variante única del producto. Con más de una
// variante y ninguna indicada la línea es ambigua.
func (uc *RegisterProductionUseCase) resolveVariant(productID, variantID string) (string, error) {
	if variantID != "" {
		variant, err := uc.variantRepo.GetByID(variantID)
		if err != nil {
			return "", err
		}
		if variant == nil {
			return "", domain.ErrNotFound
		}
		if variant.ProductID != productID {
			return "", domain.ErrInvalidInput
		}
		return variant.ID, nil
	}
	variants, err := uc.variantRepo.ListByProduct(productID)
	if err != nil {
		return "", err
	}
	switch len(variants) {
	case 0:
		return "", domain.ErrNotFound
	case 1:
		return variants[0].ID, nil
	default:
		return "", domain.ErrAmbiguousVariant
	}
}
