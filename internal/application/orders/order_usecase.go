package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// OrderUseCase gestión de pedidos manuales: creación y edición de líneas
// mientras el pedido siga abierto. El despacho es del motor de inventario.
type OrderUseCase struct {
	orderRepo   repository.OrderRepository
	variantRepo repository.VariantRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orderRepo repository.OrderRepository, variantRepo repository.VariantRepository) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, variantRepo: variantRepo}
}

// CreateOrder crea un pedido manual abierto con sus líneas.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.VariantID == "" || !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		variant, err := uc.variantRepo.GetByID(it.VariantID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		Number:    fmt.Sprintf("PED-%d", now.Unix()),
		Source:    entity.OrderSourceManual,
		Status:    entity.OrderStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	for _, it := range in.Items {
		item := &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		}
		if err := uc.orderRepo.AddItem(item); err != nil {
			return nil, err
		}
	}
	return uc.GetOrder(ctx, order.ID)
}

// AddItem agrega una línea a un pedido. Solo mientras el pedido esté abierto.
func (uc *OrderUseCase) AddItem(ctx context.Context, orderID string, in dto.OrderItemRequest) (*dto.OrderResponse, error) {
	if in.VariantID == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if order.Status != entity.OrderStatusOpen {
		return nil, domain.ErrConflict // las líneas son inmutables tras el despacho
	}
	variant, err := uc.variantRepo.GetByID(in.VariantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	item := &entity.OrderItem{
		ID:        uuid.New().String(),
		OrderID:   order.ID,
		VariantID: in.VariantID,
		Quantity:  in.Quantity,
	}
	if err := uc.orderRepo.AddItem(item); err != nil {
		return nil, err
	}
	return uc.GetOrder(ctx, order.ID)
}

// GetOrder devuelve la cabecera con sus líneas.
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ListItems(order.ID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

// ListOrders lista pedidos paginados, más recientes primero.
func (uc *OrderUseCase) ListOrders(ctx context.Context, page dto.PageRequest) ([]*dto.OrderResponse, error) {
	page.DefaultPage()
	orders, err := uc.orderRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		items, err := uc.orderRepo.ListItems(o.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toOrderResponse(o, items))
	}
	return out, nil
}

func toOrderResponse(order *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:          order.ID,
		Number:      order.Number,
		Source:      order.Source,
		ExternalRef: order.ExternalRef,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		ProcessedAt: order.ProcessedAt,
		Items:       make([]dto.OrderItemDTO, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemDTO{
			ID:        it.ID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		})
	}
	return resp
}
