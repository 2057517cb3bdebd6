// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Se usa en tests y en demos sin PostgreSQL; el TxRunner imita la
// semántica transaccional aplicando los cambios sobre una copia y
// publicándola solo si el callback termina sin error.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// Ensure Store implementa inventory.TxRunner.
var _ inventory.TxRunner = (*Store)(nil)

// Store contiene todo el estado en memoria. El catálogo (productos, variantes,
// BOM, usuarios) se muta directamente bajo el mutex; el estado del libro
// (movimientos, saldos, pedidos) vive en txState para poder clonarse por
// transacción.
type Store struct {
	mu sync.Mutex

	products   map[string]entity.Product
	variants   map[string]entity.ProductVariant
	selections []entity.VariantSelection
	bomEntries map[string]entity.BOMEntry
	users      map[string]entity.User

	state *txState
}

// txState estado transaccional: lo que una operación del motor puede tocar.
type txState struct {
	movements  []entity.InventoryMovement
	balances   map[string]entity.InventoryBalance
	orders     map[string]entity.Order
	orderItems map[string][]entity.OrderItem
}

func newTxState() *txState {
	return &txState{
		balances:   make(map[string]entity.InventoryBalance),
		orders:     make(map[string]entity.Order),
		orderItems: make(map[string][]entity.OrderItem),
	}
}

// clone copia profunda del estado transaccional.
func (st *txState) clone() *txState {
	c := newTxState()
	c.movements = append([]entity.InventoryMovement(nil), st.movements...)
	for k, v := range st.balances {
		c.balances[k] = v
	}
	for k, v := range st.orders {
		c.orders[k] = v
	}
	for k, items := range st.orderItems {
		c.orderItems[k] = append([]entity.OrderItem(nil), items...)
	}
	return c
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:   make(map[string]entity.Product),
		variants:   make(map[string]entity.ProductVariant),
		bomEntries: make(map[string]entity.BOMEntry),
		users:      make(map[string]entity.User),
		state:      newTxState(),
	}
}

// Run ejecuta fn sobre una copia del estado del libro y publica la copia solo
// si fn no devuelve error: o aterrizan todos los cambios de la operación o
// ninguno, igual que la transacción PostgreSQL a la que reemplaza.
func (s *Store) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	balRepo repository.BalanceRepository,
	orderRepo repository.OrderRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := s.state.clone()
	movRepo := &MovementRepo{st: staged}
	balRepo := &BalanceRepo{st: staged}
	orderRepo := &OrderRepo{st: staged}

	if err := fn(movRepo, balRepo, orderRepo); err != nil {
		return err
	}
	s.state = staged
	return nil
}
