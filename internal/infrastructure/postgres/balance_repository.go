package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo saldo materializado por variante sobre PostgreSQL (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get obtiene el saldo actual de una variante; nil si aún no tiene movimientos.
func (r *BalanceRepo) Get(variantID string) (*entity.InventoryBalance, error) {
	query := `
		SELECT variant_id, quantity_on_hand, updated_at
		FROM inventory_balances WHERE variant_id = $1`
	var b entity.InventoryBalance
	err := r.q.QueryRow(context.Background(), query, variantID).Scan(
		&b.VariantID, &b.QuantityOnHand, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// List devuelve todos los saldos.
func (r *BalanceRepo) List() ([]*entity.InventoryBalance, error) {
	query := `
		SELECT variant_id, quantity_on_hand, updated_at
		FROM inventory_balances ORDER BY variant_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryBalance
	for rows.Next() {
		var b entity.InventoryBalance
		if err := rows.Scan(&b.VariantID, &b.QuantityOnHand, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// ApplyDelta incrementa el saldo en delta con una sola escritura condicional:
// crea la fila con valor delta si no existe o incrementa la existente. El
// upsert toma el row lock, así que dos transacciones concurrentes sobre la
// misma variante se serializan aquí. Sin piso: el saldo puede quedar negativo.
func (r *BalanceRepo) ApplyDelta(variantID string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO inventory_balances (variant_id, quantity_on_hand, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (variant_id)
		DO UPDATE SET quantity_on_hand = inventory_balances.quantity_on_hand + EXCLUDED.quantity_on_hand, updated_at = now()
		RETURNING quantity_on_hand`
	var result decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, variantID, delta).Scan(&result); err != nil {
		return decimal.Zero, fmt.Errorf("apply balance delta: %w", err)
	}
	return result, nil
}
