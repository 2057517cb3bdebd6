package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)
var _ repository.BalanceRepository = (*BalanceRepo)(nil)
var _ repository.OrderRepository = (*OrderRepo)(nil)

// MovementRepo libro de movimientos en memoria.
// Con st != nil opera dentro de una transacción; si no, sobre el estado
// publicado bajo el mutex del store.
type MovementRepo struct {
	s  *Store
	st *txState
}

// NewMovementRepository adaptador fuera de transacción.
func NewMovementRepository(s *Store) *MovementRepo { return &MovementRepo{s: s} }

func (r *MovementRepo) withState(fn func(st *txState) error) error {
	if r.st != nil {
		return fn(r.st)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(r.s.state)
}

// Create anexa el movimiento. Nunca hay update ni delete.
func (r *MovementRepo) Create(movement *entity.InventoryMovement) error {
	return r.withState(func(st *txState) error {
		if movement.ID == "" {
			movement.ID = uuid.New().String()
		}
		st.movements = append(st.movements, *movement)
		return nil
	})
}

// ListByVariant lista movimientos de una variante, más recientes primero.
func (r *MovementRepo) ListByVariant(variantID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	err := r.withState(func(st *txState) error {
		var matched []entity.InventoryMovement
		for _, m := range st.movements {
			if m.VariantID == variantID {
				matched = append(matched, m)
			}
		}
		// Orden de inserción = orden de commit; se invierte para paginar desde el final
		for i := len(matched) - 1 - offset; i >= 0 && len(list) < limit; i-- {
			m := matched[i]
			list = append(list, &m)
		}
		return nil
	})
	return list, err
}

// ListByTransaction lista los movimientos de una operación lógica.
func (r *MovementRepo) ListByTransaction(transactionID string) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	err := r.withState(func(st *txState) error {
		for _, m := range st.movements {
			if m.TransactionID == transactionID {
				m := m
				list = append(list, &m)
			}
		}
		return nil
	})
	return list, err
}

// BalanceRepo saldo materializado por variante, en memoria.
type BalanceRepo struct {
	s  *Store
	st *txState
}

// NewBalanceRepository adaptador fuera de transacción.
func NewBalanceRepository(s *Store) *BalanceRepo { return &BalanceRepo{s: s} }

func (r *BalanceRepo) withState(fn func(st *txState) error) error {
	if r.st != nil {
		return fn(r.st)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(r.s.state)
}

// Get devuelve el saldo o nil si la variante aún no tiene movimientos.
func (r *BalanceRepo) Get(variantID string) (*entity.InventoryBalance, error) {
	var out *entity.InventoryBalance
	err := r.withState(func(st *txState) error {
		if b, ok := st.balances[variantID]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

// List devuelve todos los saldos.
func (r *BalanceRepo) List() ([]*entity.InventoryBalance, error) {
	var list []*entity.InventoryBalance
	err := r.withState(func(st *txState) error {
		for _, b := range st.balances {
			b := b
			list = append(list, &b)
		}
		return nil
	})
	return list, err
}

// ApplyDelta crea la fila con valor delta si no existe o incrementa la
// existente. Sin piso: el saldo puede quedar negativo.
func (r *BalanceRepo) ApplyDelta(variantID string, delta decimal.Decimal) (decimal.Decimal, error) {
	var result decimal.Decimal
	err := r.withState(func(st *txState) error {
		b, ok := st.balances[variantID]
		if !ok {
			b = entity.InventoryBalance{VariantID: variantID, QuantityOnHand: decimal.Zero}
		}
		b.QuantityOnHand = b.QuantityOnHand.Add(delta)
		b.UpdatedAt = time.Now()
		st.balances[variantID] = b
		result = b.QuantityOnHand
		return nil
	})
	return result, err
}

// OrderRepo pedidos y líneas en memoria.
type OrderRepo struct {
	s  *Store
	st *txState
}

// NewOrderRepository adaptador fuera de transacción.
func NewOrderRepository(s *Store) *OrderRepo { return &OrderRepo{s: s} }

func (r *OrderRepo) withState(fn func(st *txState) error) error {
	if r.st != nil {
		return fn(r.st)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return fn(r.s.state)
}

// Create persiste la cabecera. ExternalRef no vacío debe ser único: un pedido
// interno por evento externo.
func (r *OrderRepo) Create(order *entity.Order) error {
	return r.withState(func(st *txState) error {
		if order.ExternalRef != "" {
			for _, o := range st.orders {
				if o.ExternalRef == order.ExternalRef {
					return domain.ErrDuplicate
				}
			}
		}
		st.orders[order.ID] = *order
		return nil
	})
}

func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.withState(func(st *txState) error {
		if o, ok := st.orders[id]; ok {
			out = &o
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) GetByExternalRef(externalRef string) (*entity.Order, error) {
	var out *entity.Order
	err := r.withState(func(st *txState) error {
		for _, o := range st.orders {
			if o.ExternalRef == externalRef {
				o := o
				out = &o
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	var list []*entity.Order
	err := r.withState(func(st *txState) error {
		all := make([]entity.Order, 0, len(st.orders))
		for _, o := range st.orders {
			all = append(all, o)
		}
		// Más recientes primero
		for i := 0; i < len(all); i++ {
			for j := i + 1; j < len(all); j++ {
				if all[j].CreatedAt.After(all[i].CreatedAt) {
					all[i], all[j] = all[j], all[i]
				}
			}
		}
		for i := offset; i < len(all) && len(list) < limit; i++ {
			o := all[i]
			list = append(list, &o)
		}
		return nil
	})
	return list, err
}

// GetForUpdate en memoria equivale a GetByID: el TxRunner serializa todas las
// transacciones con el mutex global del store.
func (r *OrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.GetByID(id)
}

// MarkFulfilled transición open -> fulfilled con processedAt.
func (r *OrderRepo) MarkFulfilled(id string, processedAt time.Time) error {
	return r.withState(func(st *txState) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		o.Status = entity.OrderStatusFulfilled
		o.ProcessedAt = &processedAt
		o.UpdatedAt = processedAt
		st.orders[id] = o
		return nil
	})
}

func (r *OrderRepo) AddItem(item *entity.OrderItem) error {
	return r.withState(func(st *txState) error {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		st.orderItems[item.OrderID] = append(st.orderItems[item.OrderID], *item)
		return nil
	})
}

func (r *OrderRepo) UpdateItem(item *entity.OrderItem) error {
	return r.withState(func(st *txState) error {
		items := st.orderItems[item.OrderID]
		for i := range items {
			if items[i].ID == item.ID {
				items[i] = *item
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *OrderRepo) ListItems(orderID string) ([]*entity.OrderItem, error) {
	var list []*entity.OrderItem
	err := r.withState(func(st *txState) error {
		for _, it := range st.orderItems[orderID] {
			it := it
			list = append(list, &it)
		}
		return nil
	})
	return list, err
}
