package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/manufactura-api/internal/application/dto"
	appinv "github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/domain"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/memory"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	store      *memory.Store
	purchase   *appinv.RegisterPurchaseUseCase
	production *appinv.RegisterProductionUseCase
	adjustment *appinv.RegisterAdjustmentUseCase
	fulfill    *appinv.FulfillOrderUseCase
}

func newTestEnv() *testEnv {
	store := memory.NewStore()
	productRepo := memory.NewProductRepository(store)
	variantRepo := memory.NewVariantRepository(store)
	bomRepo := memory.NewBOMRepository(store)
	resolver := appinv.NewBOMResolver(bomRepo, variantRepo)

	return &testEnv{
		store:      store,
		purchase:   appinv.NewRegisterPurchaseUseCase(store, productRepo, variantRepo),
		production: appinv.NewRegisterProductionUseCase(store, productRepo, variantRepo, resolver),
		adjustment: appinv.NewRegisterAdjustmentUseCase(store, variantRepo),
		fulfill:    appinv.NewFulfillOrderUseCase(store),
	}
}

func (e *testEnv) seedProduct(t *testing.T, name, category string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Category:    category,
		UnitMeasure: "und",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, memory.NewProductRepository(e.store).Create(p))
	return p
}

func (e *testEnv) seedVariant(t *testing.T, productID, sku string, minStock int64) *entity.ProductVariant {
	t.Helper()
	now := time.Now()
	v := &entity.ProductVariant{
		ID:           uuid.New().String(),
		ProductID:    productID,
		SKU:          sku,
		MinimumStock: decimal.NewFromInt(minStock),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, memory.NewVariantRepository(e.store).Create(v))
	return v
}

func (e *testEnv) seedBOM(t *testing.T, parentVariantID, componentVariantID string, qtyPerUnit float64) {
	t.Helper()
	require.NoError(t, memory.NewBOMRepository(e.store).Create(&entity.BOMEntry{
		ID:                 uuid.New().String(),
		ParentVariantID:    parentVariantID,
		ComponentVariantID: componentVariantID,
		QuantityRequired:   decimal.NewFromFloat(qtyPerUnit),
		CreatedAt:          time.Now(),
	}))
}

func (e *testEnv) seedOrder(t *testing.T, items ...entity.OrderItem) *entity.Order {
	t.Helper()
	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		Number:    "PED-TEST",
		Source:    entity.OrderSourceManual,
		Status:    entity.OrderStatusOpen,
		CreatedAt: now,
		UpdatedAt: now,
	}
	orderRepo := memory.NewOrderRepository(e.store)
	require.NoError(t, orderRepo.Create(order))
	for i := range items {
		items[i].OrderID = order.ID
		require.NoError(t, orderRepo.AddItem(&items[i]))
	}
	return order
}

func (e *testEnv) balance(t *testing.T, variantID string) decimal.Decimal {
	t.Helper()
	b, err := memory.NewBalanceRepository(e.store).Get(variantID)
	require.NoError(t, err)
	if b == nil {
		return decimal.Zero
	}
	return b.QuantityOnHand
}

func (e *testEnv) movements(t *testing.T, variantID string) []*entity.InventoryMovement {
	t.Helper()
	list, err := memory.NewMovementRepository(e.store).ListByVariant(variantID, 1000, 0)
	require.NoError(t, err)
	return list
}

// assertLedgerConsistent verifica el invariante central: para toda variante,
// el saldo materializado es igual a la suma de sus movimientos.
func (e *testEnv) assertLedgerConsistent(t *testing.T) {
	t.Helper()
	balances, err := memory.NewBalanceRepository(e.store).List()
	require.NoError(t, err)
	for _, b := range balances {
		sum := decimal.Zero
		for _, m := range e.movements(t, b.VariantID) {
			sum = sum.Add(m.Quantity)
		}
		assert.Truef(t, sum.Equal(b.QuantityOnHand),
			"variante %s: saldo %s != suma de movimientos %s", b.VariantID, b.QuantityOnHand, sum)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterPurchase_AgregaLineasPorVariante(t *testing.T) {
	env := newTestEnv()
	raw := env.seedProduct(t, "Tela", entity.CategoryRaw)
	v := env.seedVariant(t, raw.ID, "TELA-NEGRA", 0)

	res, err := env.purchase.RegisterPurchase(context.Background(), testUserID, dto.PurchaseRequest{
		Lines: []dto.PurchaseLineRequest{
			{ProductID: raw.ID, VariantID: v.ID, Quantity: decimal.NewFromInt(3)},
			{ProductID: raw.ID, VariantID: v.ID, Quantity: decimal.NewFromInt(5)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Movements)

	movs := env.movements(t, v.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.ActionPurchase, movs[0].Action)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(8)))
	assert.True(t, env.balance(t, v.ID).Equal(decimal.NewFromInt(8)))
	env.assertLedgerConsistent(t)
}

func TestRegisterPurchase_RechazaProductoNoMateriaPrima(t *testing.T) {
	env := newTestEnv()
	final := env.seedProduct(t, "Camisa", entity.CategoryFinal)
	v := env.seedVariant(t, final.ID, "CAM-001", 0)

	_, err := env.purchase.RegisterPurchase(context.Background(), testUserID, dto.PurchaseRequest{
		Lines: []dto.PurchaseLineRequest{
			{ProductID: final.ID, VariantID: v.ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, env.movements(t, v.ID))
}

func TestRegisterPurchase_RechazaVarianteDeOtroProducto(t *testing.T) {
	env := newTestEnv()
	rawA := env.seedProduct(t, "Tela", entity.CategoryRaw)
	rawB := env.seedProduct(t, "Hilo", entity.CategoryRaw)
	vB := env.seedVariant(t, rawB.ID, "HILO-001", 0)

	_, err := env.purchase.RegisterPurchase(context.Background(), testUserID, dto.PurchaseRequest{
		Lines: []dto.PurchaseLineRequest{
			{ProductID: rawA.ID, VariantID: vB.ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegisterPurchase_SinLineas(t *testing.T) {
	env := newTestEnv()
	_, err := env.purchase.RegisterPurchase(context.Background(), testUserID, dto.PurchaseRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Producción
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterProduction_EscalaBOMConDecimales(t *testing.T) {
	env := newTestEnv()
	raw := env.seedProduct(t, "Tela", entity.CategoryRaw)
	compX := env.seedVariant(t, raw.ID, "TELA-X", 0)
	final := env.seedProduct(t, "Camisa", entity.CategoryFinal)
	prod := env.seedVariant(t, final.ID, "CAM-001", 0)
	env.seedBOM(t, prod.ID, compX.ID, 2.5)

	// Producir 4 unidades con 2.5 de componente por unidad -> consumo exacto de 10
	res, err := env.production.RegisterProduction(context.Background(), testUserID, dto.ProductionRequest{
		Lines: []dto.ProductionLineRequest{
			{ProductID: final.ID, VariantID: prod.ID, Quantity: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Movements)

	compMovs := env.movements(t, compX.ID)
	require.Len(t, compMovs, 1)
	assert.Equal(t, entity.ActionConsumption, compMovs[0].Action)
	assert.True(t, compMovs[0].Quantity.Equal(decimal.NewFromInt(-10)),
		"consumo esperado -10, fue %s", compMovs[0].Quantity)

	prodMovs := env.movements(t, prod.ID)
	require.Len(t, prodMovs, 1)
	assert.Equal(t, entity.ActionOutput, prodMovs[0].Action)
	assert.True(t, prodMovs[0].Quantity.Equal(decimal.NewFromInt(4)))
	env.assertLedgerConsistent(t)
}

func TestRegisterProduction_FallbackVarianteUnica(t *testing.T) {
	env := newTestEnv()
	final := env.seedProduct(t, "Camisa", entity.CategoryFinal)
	v := env.seedVariant(t, final.ID, "CAM-001", 0)

	_, err := env.production.RegisterProduction(context.Background(), testUserID, dto.ProductionRequest{
		Lines: []dto.ProductionLineRequest{
			{ProductID: final.ID, Quantity: decimal.NewFromInt(2)}, // sin variante
		},
	})
	require.NoError(t, err)
	assert.True(t, env.balance(t, v.ID).Equal(decimal.NewFromInt(2)))
}

func TestRegisterProduction_VarianteAmbigua(t *testing.T) {
	env := newTestEnv()
	final := env.seedProduct(t, "Camisa", entity.CategoryFinal)
	env.seedVariant(t, final.ID, "CAM-NEGRA", 0)
	env.seedVariant(t, final.ID, "CAM-BLANCA", 0)

	_, err := env.production.RegisterProduction(context.Background(), testUserID, dto.ProductionRequest{
		Lines: []dto.ProductionLineRequest{
			{ProductID: final.ID, Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrAmbiguousVariant)
}

func TestRegisterProduction_ComponenteFaltanteAbortaTodo(t *testing.T) {
	env := newTestEnv()
	raw := env.seedProduct(t, "Tela", entity.CategoryRaw)
	comp := env.seedVariant(t, raw.ID, "TELA-X", 0)
	final := env.seedProduct(t, "Camisa", entity.CategoryFinal)
	prodA := env.seedVariant(t, final.ID, "CAM-A", 0)
	otro := env.seedProduct(t, "Pantalón", entity.CategoryFinal)
	prodB := env.seedVariant(t, otro.ID, "PAN-B", 0)

	env.seedBOM(t, prodA.ID, comp.ID, 1)
	// BOM de prodB referencia una variante inexistente: violación de integridad
	env.seedBOM(t, prodB.ID, "variante-que-no-existe", 1)

	_, err := env.production.RegisterProduction(context.Background(), testUserID, dto.ProductionRequest{
		Lines: []dto.ProductionLineRequest{
			{ProductID: final.ID, VariantID: prodA.ID, Quantity: decimal.NewFromInt(5)},
			{ProductID: otro.ID, VariantID: prodB.ID, Quantity: decimal.NewFromInt(5)},
		},
	})
	require.ErrorIs(t, err, domain.ErrComponentNotFound)

	// Ningún movimiento de NINGUNA línea debe haberse persistido
	assert.Empty(t, env.movements(t, prodA.ID))
	assert.Empty(t, env.movements(t, prodB.ID))
	assert.Empty(t, env.movements(t, comp.ID))
}

func TestRegisterProduction_ComponenteCompartidoSeAgrega(t *testing.T) {
	env := newTestEnv()
	raw := env.seedProduct(t, "Tela", entity.CategoryRaw)
	comp := env.seedVariant(t, raw.ID, "TELA-X", 0)
	final := env.seedProduct(t, "Camisa", entity.CategoryFinal)
	negra := env.seedVariant(t, final.ID, "CAM-NEGRA", 0)
	blanca := env.seedVariant(t, final.ID, "CAM-BLANCA", 0)
	env.seedBOM(t, negra.ID, comp.ID, 2)
	env.seedBOM(t, blanca.ID, comp.ID, 3)

	_, err := env.production.RegisterProduction(context.Background(), testUserID, dto.ProductionRequest{
		Lines: []dto.ProductionLineRequest{
			{ProductID: final.ID, VariantID: negra.ID, Quantity: decimal.NewFromInt(10)},
			{ProductID: final.ID, VariantID: blanca.ID, Quantity: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)

	// Un único CONSUMPTION de -(2*10 + 3*10) = -50 para el componente compartido
	compMovs := env.movements(t, comp.ID)
	require.Len(t, compMovs, 1)
	assert.True(t, compMovs[0].Quantity.Equal(decimal.NewFromInt(-50)))
	env.assertLedgerConsistent(t)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterAdjustment_LineasIndividualesConMotivo(t *testing.T) {
	env := newTestEnv()
	raw := env.seedProduct(t, "Tela", entity.CategoryRaw)
	v := env.seedVariant(t, raw.ID, "TELA-X", 0)

	// Dos ajustes sobre la misma variante NO se agregan: cada uno con su motivo
	_, err := env.adjustment.RegisterAdjustment(context.Background(), testUserID, dto.AdjustmentRequest{
		Lines: []dto.AdjustmentLineRequest{
			{VariantID: v.ID, Direction: dto.AdjustmentIncrease, Quantity: decimal.NewFromInt(10), Reason: "conteo físico"},
			{VariantID: v.ID, Direction: dto.AdjustmentDecrease, Quantity: decimal.NewFromInt(3), Reason: "merma por daño"},
		},
	})
	require.NoError(t, err)

	movs := env.movements(t, v.ID)
	require.Len(t, movs, 2)
	reasons := []string{movs[0].Reason, movs[1].Reason}
	assert.Contains(t, reasons, "conteo físico")
	assert.Contains(t, reasons, "merma por daño")
	assert.True(t, env.balance(t, v.ID).Equal(decimal.NewFromInt(7)))
	env.assertLedgerConsistent(t)
}

func TestRegisterAdjustment_MotivoObligatorio(t *testing.T) {
	env := newTestEnv()
	raw := env.seedProduct(t, "Tela", entity.CategoryRaw)
	v := env.seedVariant(t, raw.ID, "TELA-X", 0)

	_, err := env.adjustment.RegisterAdjustment(context.Background(), testUserID, dto.AdjustmentRequest{
		Lines: []dto.AdjustmentLineRequest{
			{VariantID: v.ID, Direction: dto.AdjustmentIncrease, Quantity: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Despacho de pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestFulfillOrder_AgregaLineasEnUnMovimiento(t *testing.T) {
	env := newTestEnv()
	final := env.seedProduct(t, "Camisa", entity.CategoryFinal)
	v := env.seedVariant(t, final.ID, "CAM-001", 0)

	order := env.seedOrder(t,
		entity.OrderItem{VariantID: v.ID, Quantity: decimal.NewFromInt(3)},
		entity.OrderItem{VariantID: v.ID, Quantity: decimal.NewFromInt(5)},
	)

	res, err := env.fulfill.FulfillOrder(context.Background(), order.ID, testUserID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Movements)

	// Exactamente un SALE de -8, no dos movimientos
	movs := env.movements(t, v.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.ActionSale, movs[0].Action)
	assert.True(t, movs[0].Quantity.Equal(decimal.NewFromInt(-8)))
	env.assertLedgerConsistent(t)
}

func TestFulfillOrder_SegundoDespachoConflicto(t *testing.T) {
	env := newTestEnv()
	final := env.seedProduct(t, "Camisa", entity.CategoryFinal)
	v := env.seedVariant(t, final.ID, "CAM-001", 0)
	order := env.seedOrder(t, entity.OrderItem{VariantID: v.ID, Quantity: decimal.NewFromInt(4)})

	_, err := env.fulfill.FulfillOrder(context.Background(), order.ID, testUserID)
	require.NoError(t, err)

	_, err = env.fulfill.FulfillOrder(context.Background(), order.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrAlreadyFulfilled)

	// El descuento se aplicó exactamente una vez
	assert.True(t, env.balance(t, v.ID).Equal(decimal.NewFromInt(-4)))
	require.Len(t, env.movements(t, v.ID), 1)
}

func TestFulfillOrder_SobreventaNoBloquea(t *testing.T) {
	env := newTestEnv()
	final := env.seedProduct(t, "Camisa", entity.CategoryFinal)
	v := env.seedVariant(t, final.ID, "CAM-001", 0)
	order := env.seedOrder(t, entity.OrderItem{VariantID: v.ID, Quantity: decimal.NewFromInt(2)})

	// Sin stock: el despacho procede y el saldo negativo queda como advertencia
	res, err := env.fulfill.FulfillOrder(context.Background(), order.ID, testUserID)
	require.NoError(t, err)
	require.Len(t, res.Oversold, 1)
	assert.Equal(t, v.ID, res.Oversold[0].VariantID)
	assert.True(t, env.balance(t, v.ID).Equal(decimal.NewFromInt(-2)))
	env.assertLedgerConsistent(t)
}

func TestFulfillOrder_PedidoSinLineas(t *testing.T) {
	env := newTestEnv()
	order := env.seedOrder(t)

	_, err := env.fulfill.FulfillOrder(context.Background(), order.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// El pedido sigue abierto para reintento
	got, err := memory.NewOrderRepository(env.store).GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusOpen, got.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo: compra -> producción -> despacho
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenarioCompraProduccionDespacho(t *testing.T) {
	env := newTestEnv()
	raw := env.seedProduct(t, "Tela", entity.CategoryRaw)
	r := env.seedVariant(t, raw.ID, "TELA-R", 0)
	final := env.seedProduct(t, "Camisa", entity.CategoryFinal)
	f := env.seedVariant(t, final.ID, "CAM-F", 0)
	env.seedBOM(t, f.ID, r.ID, 3) // 1 camisa consume 3 de tela

	ctx := context.Background()

	// Compra de 100 de materia prima
	_, err := env.purchase.RegisterPurchase(ctx, testUserID, dto.PurchaseRequest{
		Lines: []dto.PurchaseLineRequest{{ProductID: raw.ID, VariantID: r.ID, Quantity: decimal.NewFromInt(100)}},
	})
	require.NoError(t, err)
	assert.True(t, env.balance(t, r.ID).Equal(decimal.NewFromInt(100)))
	env.assertLedgerConsistent(t)

	// Producción de 10 camisas: F=10, R=100-30=70
	_, err = env.production.RegisterProduction(ctx, testUserID, dto.ProductionRequest{
		Lines: []dto.ProductionLineRequest{{ProductID: final.ID, VariantID: f.ID, Quantity: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)
	assert.True(t, env.balance(t, f.ID).Equal(decimal.NewFromInt(10)))
	assert.True(t, env.balance(t, r.ID).Equal(decimal.NewFromInt(70)))
	env.assertLedgerConsistent(t)

	// Despacho de un pedido de 4 camisas: F=6 y un SALE de -4
	order := env.seedOrder(t, entity.OrderItem{VariantID: f.ID, Quantity: decimal.NewFromInt(4)})
	_, err = env.fulfill.FulfillOrder(ctx, order.ID, testUserID)
	require.NoError(t, err)
	assert.True(t, env.balance(t, f.ID).Equal(decimal.NewFromInt(6)))

	var sales []*entity.InventoryMovement
	for _, m := range env.movements(t, f.ID) {
		if m.Action == entity.ActionSale {
			sales = append(sales, m)
		}
	}
	require.Len(t, sales, 1)
	assert.True(t, sales[0].Quantity.Equal(decimal.NewFromInt(-4)))
	env.assertLedgerConsistent(t)
}
