package entity

import "time"

// Categorías de producto según su papel en la producción.
const (
	CategoryRaw          = "RAW"          // materia prima (se compra)
	CategoryIntermediate = "INTERMEDIATE" // ensamble intermedio (se produce y consume)
	CategoryFinal        = "FINAL"        // producto terminado (se produce y vende)
)

// Product representa un producto del catálogo. El stock no vive aquí:
// se lleva por variante en InventoryBalance.
type Product struct {
	ID          string
	Name        string
	Category    string // RAW, INTERMEDIATE, FINAL
	UnitMeasure string // und, kg, g, m, etc.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidCategory indica si la categoría es una de las conocidas.
func ValidCategory(c string) bool {
	switch c {
	case CategoryRaw, CategoryIntermediate, CategoryFinal:
		return true
	}
	return false
}
