package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo entradas de BOM sobre PostgreSQL (usable con pool o tx).
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// Create persiste una entrada de BOM. El par (padre, componente) es único.
func (r *BOMRepo) Create(entry *entity.BOMEntry) error {
	query := `
		INSERT INTO bom_entries (id, parent_variant_id, component_variant_id, quantity_required, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ParentVariantID, entry.ComponentVariantID,
		entry.QuantityRequired, entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create bom entry: %w", err)
	}
	return nil
}

// ListByParent lista las entradas de BOM de una variante padre.
func (r *BOMRepo) ListByParent(parentVariantID string) ([]*entity.BOMEntry, error) {
	query := `
		SELECT id, parent_variant_id, component_variant_id, quantity_required, created_at
		FROM bom_entries WHERE parent_variant_id = $1 ORDER BY component_variant_id`
	rows, err := r.q.Query(context.Background(), query, parentVariantID)
	if err != nil {
		return nil, fmt.Errorf("list bom entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.BOMEntry
	for rows.Next() {
		var e entity.BOMEntry
		if err := rows.Scan(&e.ID, &e.ParentVariantID, &e.ComponentVariantID, &e.QuantityRequired, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bom entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Delete elimina una entrada de BOM.
func (r *BOMRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM bom_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bom entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
