package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	domaininv "github.com/jhoicas/manufactura-api/internal/domain/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// FulfillOrderUseCase despacha un pedido: agrega las líneas por variante,
// aplica un movimiento SALE negativo por variante y marca el pedido como
// fulfilled, todo dentro de una transacción. El mismo algoritmo sirve para
// pedidos manuales y externos: ambos se reducen a una bolsa de
// (variante, cantidad) a descontar.
type FulfillOrderUseCase struct {
	txRunner TxRunner
}

// NewFulfillOrderUseCase construye el caso de uso.
func NewFulfillOrderUseCase(txRunner TxRunner) *FulfillOrderUseCase {
	return &FulfillOrderUseCase{txRunner: txRunner}
}

// FulfillOrder bloquea la fila del pedido (SELECT FOR UPDATE) y verifica
// status == open DENTRO de la transacción: dos despachos concurrentes del
// mismo pedido no pueden pasar ambos la verificación, y la guarda open ->
// fulfilled es la única protección contra el doble descuento en reintentos.
// Un saldo que queda negativo es sobreventa: se reporta como advertencia en el
// resultado, nunca bloquea el despacho.
func (uc *FulfillOrderUseCase) FulfillOrder(ctx context.Context, orderID, userID string) (*dto.FulfillmentResultDTO, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var result *dto.FulfillmentResultDTO

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balRepo repository.BalanceRepository,
		orderRepo repository.OrderRepository,
	) error {
		order, err := orderRepo.GetForUpdate(orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status != entity.OrderStatusOpen {
			return domain.ErrAlreadyFulfilled
		}

		items, err := orderRepo.ListItems(orderID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrInvalidInput // pedido sin líneas
		}

		lines := make([]domaininv.Line, 0, len(items))
		for _, it := range items {
			lines = append(lines, domaininv.Line{VariantID: it.VariantID, Quantity: it.Quantity})
		}
		net := domaininv.Aggregate(lines)

		var oversold []dto.OversoldVariantDTO
		for _, variantID := range domaininv.SortedVariantIDs(net) {
			mov := &entity.InventoryMovement{
				TransactionID: order.ID, // los movimientos referencian el pedido
				VariantID:     variantID,
				Action:        entity.ActionSale,
				Quantity:      net[variantID].Neg(),
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

		if err := orderRepo.MarkFulfilled(order.ID, now); err != nil {
			return err
		}

		result = &dto.FulfillmentResultDTO{
			OrderID:     order.ID,
			ProcessedAt: now,
			Movements:   len(net),
			Oversold:    oversold,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
