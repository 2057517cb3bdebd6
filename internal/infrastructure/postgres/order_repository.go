package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos y líneas sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, number, source, external_ref, status, created_at, updated_at, processed_at`

// Create persiste la cabecera. El índice único sobre external_ref garantiza un
// pedido interno por evento externo: la redelivery llega como ErrDuplicate.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, number, source, external_ref, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	externalRef := (*string)(nil)
	if order.ExternalRef != "" {
		externalRef = &order.ExternalRef
	}
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.Number, order.Source, externalRef, order.Status,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID; nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByExternalRef obtiene el pedido originado por un evento externo.
func (r *OrderRepo) GetByExternalRef(externalRef string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE external_ref = $1`
	return r.scanOne(query, externalRef)
}

// GetForUpdate obtiene el pedido bloqueando la fila (SELECT FOR UPDATE) para
// que la verificación de estado y el despacho ocurran sin carreras.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

func (r *OrderRepo) scanOne(query string, arg any) (*entity.Order, error) {
	var o entity.Order
	var externalRef *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&o.ID, &o.Number, &o.Source, &externalRef, &o.Status,
		&o.CreatedAt, &o.UpdatedAt, &o.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if externalRef != nil {
		o.ExternalRef = *externalRef
	}
	return &o, nil
}

// List lista pedidos, más recientes primero.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		var externalRef *string
		if err := rows.Scan(&o.ID, &o.Number, &o.Source, &externalRef, &o.Status,
			&o.CreatedAt, &o.UpdatedAt, &o.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if externalRef != nil {
			o.ExternalRef = *externalRef
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// MarkFulfilled transición open -> fulfilled con processedAt.
func (r *OrderRepo) MarkFulfilled(id string, processedAt time.Time) error {
	query := `
		UPDATE orders SET status = $1, processed_at = $2, updated_at = $2
		WHERE id = $3`
	tag, err := r.q.Exec(context.Background(), query, entity.OrderStatusFulfilled, processedAt, id)
	if err != nil {
		return fmt.Errorf("mark order fulfilled: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddItem agrega una línea al pedido.
func (r *OrderRepo) AddItem(item *entity.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_items (id, order_id, variant_id, quantity)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, item.ID, item.OrderID, item.VariantID, item.Quantity)
	if err != nil {
		return fmt.Errorf("add order item: %w", err)
	}
	return nil
}

// UpdateItem actualiza la cantidad de una línea existente.
func (r *OrderRepo) UpdateItem(item *entity.OrderItem) error {
	query := `UPDATE order_items SET quantity = $1 WHERE id = $2 AND order_id = $3`
	tag, err := r.q.Exec(context.Background(), query, item.Quantity, item.ID, item.OrderID)
	if err != nil {
		return fmt.Errorf("update order item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListItems lista las líneas de un pedido.
func (r *OrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, variant_id, quantity
		FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.VariantID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
