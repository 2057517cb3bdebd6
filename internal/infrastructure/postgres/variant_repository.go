package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo variantes y selecciones sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantColumns = `id, product_id, sku, minimum_stock, created_at, updated_at`

// Create persiste una variante. El índice único sobre sku mapea a ErrDuplicate.
func (r *VariantRepo) Create(variant *entity.ProductVariant) error {
	query := `
		INSERT INTO product_variants (id, product_id, sku, minimum_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.ProductID, variant.SKU, variant.MinimumStock,
		variant.CreatedAt, variant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID; nil si no existe.
func (r *VariantRepo) GetByID(id string) (*entity.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE id = $1`
	return r.scanOne(query, id)
}

// GetBySKU obtiene una variante por su SKU; nil si no existe.
func (r *VariantRepo) GetBySKU(sku string) (*entity.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE sku = $1`
	return r.scanOne(query, sku)
}

func (r *VariantRepo) scanOne(query string, arg any) (*entity.ProductVariant, error) {
	var v entity.ProductVariant
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.MinimumStock, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return &v, nil
}

// ListByProduct lista las variantes de un producto, ordenadas por SKU.
func (r *VariantRepo) ListByProduct(productID string) ([]*entity.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE product_id = $1 ORDER BY sku`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants by product: %w", err)
	}
	defer rows.Close()
	return scanVariants(rows)
}

// ListAll lista todas las variantes del catálogo, ordenadas por SKU.
func (r *VariantRepo) ListAll() ([]*entity.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants ORDER BY sku`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()
	return scanVariants(rows)
}

func scanVariants(rows pgx.Rows) ([]*entity.ProductVariant, error) {
	var list []*entity.ProductVariant
	for rows.Next() {
		var v entity.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.MinimumStock, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables de una variante.
func (r *VariantRepo) Update(variant *entity.ProductVariant) error {
	query := `
		UPDATE product_variants SET sku = $1, minimum_stock = $2, updated_at = $3
		WHERE id = $4`
	tag, err := r.q.Exec(context.Background(), query,
		variant.SKU, variant.MinimumStock, variant.UpdatedAt, variant.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddSelection registra un par (variación, opción) de la variante.
func (r *VariantRepo) AddSelection(sel *entity.VariantSelection) error {
	query := `
		INSERT INTO variant_selections (variant_id, variation_name, option_value)
		VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, sel.VariantID, sel.VariationName, sel.OptionValue)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("add variant selection: %w", err)
	}
	return nil
}

// ListSelections lista las selecciones de una variante.
func (r *VariantRepo) ListSelections(variantID string) ([]*entity.VariantSelection, error) {
	query := `
		SELECT variant_id, variation_name, option_value
		FROM variant_selections WHERE variant_id = $1 ORDER BY variation_name`
	rows, err := r.q.Query(context.Background(), query, variantID)
	if err != nil {
		return nil, fmt.Errorf("list selections: %w", err)
	}
	defer rows.Close()
	return scanSelections(rows)
}

// ListAllSelections lista todas las selecciones del catálogo (para la matriz).
func (r *VariantRepo) ListAllSelections() ([]*entity.VariantSelection, error) {
	query := `
		SELECT variant_id, variation_name, option_value
		FROM variant_selections ORDER BY variant_id, variation_name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list all selections: %w", err)
	}
	defer rows.Close()
	return scanSelections(rows)
}

func scanSelections(rows pgx.Rows) ([]*entity.VariantSelection, error) {
	var list []*entity.VariantSelection
	for rows.Next() {
		var sel entity.VariantSelection
		if err := rows.Scan(&sel.VariantID, &sel.VariationName, &sel.OptionValue); err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		list = append(list, &sel)
	}
	return list, rows.Err()
}
