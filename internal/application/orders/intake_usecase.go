package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// SystemUserID autor de los movimientos generados por el canal externo.
const SystemUserID = "intake"

// IntakeUseCase procesa pedidos del canal e-commerce ya autenticados por el
// transporte: resuelve SKUs a variantes internas, materializa UN pedido
// interno por evento externo (external_ref único) y lo despacha con el mismo
// algoritmo que un pedido manual.
type IntakeUseCase struct {
	orderRepo   repository.OrderRepository
	variantRepo repository.VariantRepository
	fulfill     *inventory.FulfillOrderUseCase
}

// NewIntakeUseCase construye el caso de uso.
func NewIntakeUseCase(
	orderRepo repository.OrderRepository,
	variantRepo repository.VariantRepository,
	fulfill *inventory.FulfillOrderUseCase,
) *IntakeUseCase {
	return &IntakeUseCase{orderRepo: orderRepo, variantRepo: variantRepo, fulfill: fulfill}
}

// ProcessExternalOrder crea y despacha el pedido de un evento externo.
// Una re-entrega del mismo evento (mismo external_ref) devuelve ErrDuplicate
// sin segundo descuento: la unicidad de external_ref es la garantía de
// "un pedido interno por evento" que asume el motor.
func (uc *IntakeUseCase) ProcessExternalOrder(ctx context.Context, in dto.ExternalOrderRequest) (*dto.FulfillmentResultDTO, error) {
	if in.ExternalRef == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Resolver SKUs antes de crear nada: el motor nunca ve referencias externas
	type resolved struct {
		variantID string
		quantity  decimal.Decimal
	}
	lines := make([]resolved, 0, len(in.Items))
	for _, it := range in.Items {
		if it.SKU == "" || !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		variant, err := uc.variantRepo.GetBySKU(it.SKU)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, fmt.Errorf("sku %s: %w", it.SKU, domain.ErrNotFound)
		}
		lines = append(lines, resolved{variantID: variant.ID, quantity: it.Quantity})
	}

	now := time.Now()
	order := &entity.Order{
		ID:          uuid.New().String(),
		Number:      fmt.Sprintf("EXT-%s", in.ExternalRef),
		Source:      entity.OrderSourceExternal,
		ExternalRef: in.ExternalRef,
		Status:      entity.OrderStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		// Evento re-entregado: el índice único sobre external_ref lo detiene
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrDuplicate
		}
		return nil, err
	}
	for _, l := range lines {
		item := &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			VariantID: l.variantID,
			Quantity:  l.quantity,
		}
		if err := uc.orderRepo.AddItem(item); err != nil {
			return nil, err
		}
	}

	return uc.fulfill.FulfillOrder(ctx, order.ID, SystemUserID)
}
