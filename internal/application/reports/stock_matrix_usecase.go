package reports

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/domain/repository"
)

// DefaultVariation variación por defecto de la matriz cuando no se indica otra.
const DefaultVariation = "color"

// MatrixPDFGenerator puerto para exportar la matriz como PDF.
type MatrixPDFGenerator interface {
	GenerateMatrixPDF(ctx context.Context, matrix *dto.StockMatrixDTO) ([]byte, error)
}

// StockMatrixUseCase proyección de solo lectura: agrupa los saldos actuales por
// producto y una variación designada (ej. color). Vista derivada sin estado
// propio: se recalcula desde los saldos en cada lectura, nunca se cachea.
type StockMatrixUseCase struct {
	productRepo repository.ProductRepository
	variantRepo repository.VariantRepository
	balRepo     repository.BalanceRepository
}

// NewStockMatrixUseCase construye el caso de uso.
func NewStockMatrixUseCase(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	balRepo repository.BalanceRepository,
) *StockMatrixUseCase {
	return &StockMatrixUseCase{productRepo: productRepo, variantRepo: variantRepo, balRepo: balRepo}
}

// Matrix construye la matriz para la variación indicada. Solo hay celda donde
// existe una variante con esa variación: la ausencia distingue "no producido
// en esa configuración" de "stock cero". needsReorder = saldo <= stock mínimo.
func (uc *StockMatrixUseCase) Matrix(ctx context.Context, variationName string) (*dto.StockMatrixDTO, error) {
	if variationName == "" {
		variationName = DefaultVariation
	}

	variants, err := uc.variantRepo.ListAll()
	if err != nil {
		return nil, err
	}
	selections, err := uc.variantRepo.ListAllSelections()
	if err != nil {
		return nil, err
	}
	balances, err := uc.balRepo.List()
	if err != nil {
		return nil, err
	}

	optionByVariant := make(map[string]string)
	for _, sel := range selections {
		if sel.VariationName == variationName {
			optionByVariant[sel.VariantID] = sel.OptionValue
		}
	}
	qtyByVariant := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		qtyByVariant[b.VariantID] = b.QuantityOnHand
	}

	// Agrupar celdas por producto; columnas = valores de opción observados
	cellsByProduct := make(map[string][]dto.MatrixCellDTO)
	optionSet := make(map[string]struct{})
	for _, v := range variants {
		option, ok := optionByVariant[v.ID]
		if !ok {
			continue // la variante no participa en esta variación: celda ausente
		}
		qty, ok := qtyByVariant[v.ID]
		if !ok {
			qty = decimal.Zero // variante sin movimientos todavía
		}
		optionSet[option] = struct{}{}
		cellsByProduct[v.ProductID] = append(cellsByProduct[v.ProductID], dto.MatrixCellDTO{
			OptionValue:    option,
			VariantID:      v.ID,
			SKU:            v.SKU,
			QuantityOnHand: qty,
			MinimumStock:   v.MinimumStock,
			NeedsReorder:   qty.LessThanOrEqual(v.MinimumStock),
		})
	}

	optionValues := make([]string, 0, len(optionSet))
	for o := range optionSet {
		optionValues = append(optionValues, o)
	}
	sort.Strings(optionValues)

	matrix := &dto.StockMatrixDTO{VariationName: variationName, OptionValues: optionValues}
	productIDs := make([]string, 0, len(cellsByProduct))
	for id := range cellsByProduct {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)
	for _, productID := range productIDs {
		product, err := uc.productRepo.GetByID(productID)
		if err != nil {
			return nil, err
		}
		name := productID
		if product != nil {
			name = product.Name
		}
		cells := cellsByProduct[productID]
		sort.Slice(cells, func(i, j int) bool { return cells[i].OptionValue < cells[j].OptionValue })
		matrix.Rows = append(matrix.Rows, dto.MatrixRowDTO{
			ProductID:   productID,
			ProductName: name,
			Cells:       cells,
		})
	}
	sort.Slice(matrix.Rows, func(i, j int) bool { return matrix.Rows[i].ProductName < matrix.Rows[j].ProductName })
	return matrix, nil
}

// LowStock devuelve las variantes en o bajo su stock mínimo (mínimo > 0),
// ordenadas por mayor déficit primero.
func (uc *StockMatrixUseCase) LowStock(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	variants, err := uc.variantRepo.ListAll()
	if err != nil {
		return nil, err
	}
	balances, err := uc.balRepo.List()
	if err != nil {
		return nil, err
	}
	qtyByVariant := make(map[string]decimal.Decimal, len(balances))
	for _, b := range balances {
		qtyByVariant[b.VariantID] = b.QuantityOnHand
	}

	productNames := make(map[string]string)
	var items []dto.LowStockItemDTO
	for _, v := range variants {
		if !v.MinimumStock.GreaterThan(decimal.Zero) {
			continue
		}
		qty, ok := qtyByVariant[v.ID]
		if !ok {
			qty = decimal.Zero
		}
		if qty.GreaterThan(v.MinimumStock) {
			continue
		}
		name, ok := productNames[v.ProductID]
		if !ok {
			product, err := uc.productRepo.GetByID(v.ProductID)
			if err != nil {
				return nil, err
			}
			if product != nil {
				name = product.Name
			}
			productNames[v.ProductID] = name
		}
		items = append(items, dto.LowStockItemDTO{
			VariantID:      v.ID,
			SKU:            v.SKU,
			ProductName:    name,
			QuantityOnHand: qty,
			MinimumStock:   v.MinimumStock,
			Deficit:        v.MinimumStock.Sub(qty),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Deficit.GreaterThan(items[j].Deficit)
	})
	return items, nil
}
