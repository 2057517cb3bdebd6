package repository

import (
	"time"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia de pedidos y sus líneas.
// El motor de despacho solo escribe estado y fechas; nunca el contenido de las líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	GetByExternalRef(externalRef string) (*entity.Order, error)
	List(limit, offset int) ([]*entity.Order, error)

	// GetForUpdate obtiene el pedido bloqueando la fila (SELECT FOR UPDATE) para
	// que la verificación status == open y el cambio a fulfilled ocurran sin carreras.
	GetForUpdate(id string) (*entity.Order, error)

	// MarkFulfilled cambia el estado a fulfilled y estampa processedAt.
	MarkFulfilled(id string, processedAt time.Time) error

	AddItem(item *entity.OrderItem) error
	UpdateItem(item *entity.OrderItem) error
	ListItems(orderID string) ([]*entity.OrderItem, error)
}
