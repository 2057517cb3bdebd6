package repository

import "github.com/jhoicas/manufactura-api/internal/domain/entity"

// BOMRepository define el puerto de persistencia de las entradas de BOM
// (un solo nivel de descomposición por variante padre).
type BOMRepository interface {
	Create(entry *entity.BOMEntry) error
	ListByParent(parentVariantID string) ([]*entity.BOMEntry, error)
	Delete(id string) error
}
