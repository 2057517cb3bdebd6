package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
// Solo INSERT y SELECT: los movimientos son hechos inmutables.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, transaction_id, variant_id, action, quantity, reason, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	reason := (*string)(nil)
	if movement.Reason != "" {
		reason = &movement.Reason
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.TransactionID, movement.VariantID, movement.Action,
		movement.Quantity, reason, movement.Date, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByVariant lista el historial de una variante, más recientes primero.
func (r *MovementRepo) ListByVariant(variantID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, transaction_id, variant_id, action, quantity, reason, date, created_at, created_by
		FROM inventory_movements WHERE variant_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, variantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list by variant: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByTransaction lista los movimientos de una operación lógica.
func (r *MovementRepo) ListByTransaction(transactionID string) ([]*entity.InventoryMovement, error) {
	query := `
		SELECT id, transaction_id, variant_id, action, quantity, reason, date, created_at, created_by
		FROM inventory_movements WHERE transaction_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list by transaction: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var reason, createdBy *string
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.VariantID, &m.Action,
			&m.Quantity, &reason, &m.Date, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if reason != nil {
			m.Reason = *reason
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
