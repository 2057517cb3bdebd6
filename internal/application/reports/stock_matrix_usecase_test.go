package reports

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/memory"
)

type matrixEnv struct {
	store       *memory.Store
	products    *memory.ProductRepo
	variants    *memory.VariantRepo
	balances    *memory.BalanceRepo
	stockMatrix *StockMatrixUseCase
}

func newMatrixEnv(t *testing.T) *matrixEnv {
	t.Helper()
	store := memory.NewStore()
	products := memory.NewProductRepository(store)
	variants := memory.NewVariantRepository(store)
	balances := memory.NewBalanceRepository(store)
	return &matrixEnv{
		store:       store,
		products:    products,
		variants:    variants,
		balances:    balances,
		stockMatrix: NewStockMatrixUseCase(products, variants, balances),
	}
}

func (e *matrixEnv) seedProduct(t *testing.T, name, category string) string {
	t.Helper()
	p := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  category,
		CreatedAt: time.Now(),
	}
	require.NoError(t, e.products.Create(p))
	return p.ID
}

func (e *matrixEnv) seedVariant(t *testing.T, productID, sku, color string, minStock decimal.Decimal) string {
	t.Helper()
	v := &entity.ProductVariant{
		ID:           uuid.New().String(),
		ProductID:    productID,
		SKU:          sku,
		MinimumStock: minStock,
	}
	require.NoError(t, e.variants.Create(v))
	if color != "" {
		require.NoError(t, e.variants.AddSelection(&entity.VariantSelection{
			VariantID:     v.ID,
			VariationName: "color",
			OptionValue:   color,
		}))
	}
	return v.ID
}

func (e *matrixEnv) setBalance(t *testing.T, variantID string, qty decimal.Decimal) {
	t.Helper()
	_, err := e.balances.ApplyDelta(variantID, qty)
	require.NoError(t, err)
}

func TestMatrixGroupsByProductAndColor(t *testing.T) {
	env := newMatrixEnv(t)
	ctx := context.Background()

	camiseta := env.seedProduct(t, "Camiseta", entity.CategoryFinal)
	gorra := env.seedProduct(t, "Gorra", entity.CategoryFinal)

	camRoja := env.seedVariant(t, camiseta, "CAM-R", "rojo", decimal.Zero)
	camAzul := env.seedVariant(t, camiseta, "CAM-A", "azul", decimal.Zero)
	gorraRoja := env.seedVariant(t, gorra, "GOR-R", "rojo", decimal.Zero)

	env.setBalance(t, camRoja, decimal.NewFromInt(10))
	env.setBalance(t, camAzul, decimal.NewFromInt(4))
	env.setBalance(t, gorraRoja, decimal.NewFromInt(7))

	matrix, err := env.stockMatrix.Matrix(ctx, "color")
	require.NoError(t, err)

	assert.Equal(t, "color", matrix.VariationName)
	assert.Equal(t, []string{"azul", "rojo"}, matrix.OptionValues)
	require.Len(t, matrix.Rows, 2)

	// Filas ordenadas por nombre de producto
	assert.Equal(t, "Camiseta", matrix.Rows[0].ProductName)
	require.Len(t, matrix.Rows[0].Cells, 2)
	assert.Equal(t, "azul", matrix.Rows[0].Cells[0].OptionValue)
	assert.True(t, matrix.Rows[0].Cells[0].QuantityOnHand.Equal(decimal.NewFromInt(4)))
	assert.Equal(t, "rojo", matrix.Rows[0].Cells[1].OptionValue)
	assert.True(t, matrix.Rows[0].Cells[1].QuantityOnHand.Equal(decimal.NewFromInt(10)))

	// La gorra solo existe en rojo: la celda azul está ausente, no en cero
	assert.Equal(t, "Gorra", matrix.Rows[1].ProductName)
	require.Len(t, matrix.Rows[1].Cells, 1)
	assert.Equal(t, "rojo", matrix.Rows[1].Cells[0].OptionValue)
}

func TestMatrixVariantWithoutMovementsShowsZero(t *testing.T) {
	env := newMatrixEnv(t)

	producto := env.seedProduct(t, "Camiseta", entity.CategoryFinal)
	env.seedVariant(t, producto, "CAM-V", "verde", decimal.Zero)

	matrix, err := env.stockMatrix.Matrix(context.Background(), "color")
	require.NoError(t, err)
	require.Len(t, matrix.Rows, 1)
	require.Len(t, matrix.Rows[0].Cells, 1)
	assert.True(t, matrix.Rows[0].Cells[0].QuantityOnHand.IsZero())
}

func TestMatrixFlagsReorderAtOrBelowMinimum(t *testing.T) {
	env := newMatrixEnv(t)

	producto := env.seedProduct(t, "Camiseta", entity.CategoryFinal)
	enMinimo := env.seedVariant(t, producto, "CAM-R", "rojo", decimal.NewFromInt(5))
	holgado := env.seedVariant(t, producto, "CAM-A", "azul", decimal.NewFromInt(5))

	env.setBalance(t, enMinimo, decimal.NewFromInt(5))
	env.setBalance(t, holgado, decimal.NewFromInt(6))

	matrix, err := env.stockMatrix.Matrix(context.Background(), "color")
	require.NoError(t, err)
	require.Len(t, matrix.Rows, 1)
	byOption := make(map[string]bool)
	for _, cell := range matrix.Rows[0].Cells {
		byOption[cell.OptionValue] = cell.NeedsReorder
	}
	assert.True(t, byOption["rojo"], "saldo == mínimo debe marcar reposición")
	assert.False(t, byOption["azul"])
}

func TestLowStockSortedByDeficit(t *testing.T) {
	env := newMatrixEnv(t)

	producto := env.seedProduct(t, "Tela", entity.CategoryRaw)
	critico := env.seedVariant(t, producto, "TELA-R", "rojo", decimal.NewFromInt(20))
	leve := env.seedVariant(t, producto, "TELA-A", "azul", decimal.NewFromInt(10))
	sinMinimo := env.seedVariant(t, producto, "TELA-V", "verde", decimal.Zero)
	sano := env.seedVariant(t, producto, "TELA-N", "negro", decimal.NewFromInt(5))

	env.setBalance(t, critico, decimal.NewFromInt(2))  // déficit 18
	env.setBalance(t, leve, decimal.NewFromInt(8))     // déficit 2
	env.setBalance(t, sinMinimo, decimal.NewFromInt(0))
	env.setBalance(t, sano, decimal.NewFromInt(50))

	items, err := env.stockMatrix.LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "TELA-R", items[0].SKU)
	assert.True(t, items[0].Deficit.Equal(decimal.NewFromInt(18)))
	assert.Equal(t, "TELA-A", items[1].SKU)
	assert.True(t, items[1].Deficit.Equal(decimal.NewFromInt(2)))
}
