package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/manufactura-api/internal/application/auth"
	"github.com/jhoicas/manufactura-api/internal/application/dto"
	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/application/orders"
	"github.com/jhoicas/manufactura-api/internal/application/reports"
	"github.com/jhoicas/manufactura-api/internal/application/usecase"
	"github.com/jhoicas/manufactura-api/internal/domain/entity"
	"github.com/jhoicas/manufactura-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProductUC    *usecase.ProductUseCase
	BOMUC        *usecase.BOMUseCase
	PurchaseUC   *inventory.RegisterPurchaseUseCase
	ProductionUC *inventory.RegisterProductionUseCase
	AdjustmentUC *inventory.RegisterAdjustmentUseCase
	QueryUC      *inventory.QueryUseCase
	FulfillUC    *inventory.FulfillOrderUseCase
	OrderUC      *orders.OrderUseCase
	IntakeUC     *orders.IntakeUseCase
	ReportUC     *reports.StockMatrixUseCase
	MatrixPDF    reports.MatrixPDFGenerator
	JWTSecret    string
	Intake       config.IntakeConfig
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Intake (canal e-commerce; sin JWT, con rate limit por IP)
	intake := api.Group("/intake", limiter.New(limiter.Config{
		Max:        deps.Intake.MaxRequests,
		Expiration: time.Duration(deps.Intake.WindowSeconds) * time.Second,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas peticiones; reintente luego"})
		},
	}))
	intakeHandler := NewIntakeHandler(deps.IntakeUC)
	intake.Post("/orders", intakeHandler.ReceiveOrder)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo (protegido; escritura solo admin/producción)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleProduccion), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/variants", RequireRole(entity.RoleAdmin, entity.RoleProduccion), productHandler.CreateVariant)
	products.Get("/:id/variants", productHandler.ListVariants)

	// BOM (protegido; escritura solo admin/producción)
	bom := protected.Group("/bom")
	bomHandler := NewBOMHandler(deps.BOMUC)
	bom.Post("/", RequireRole(entity.RoleAdmin, entity.RoleProduccion), bomHandler.Create)
	bom.Get("/:parent_variant_id", bomHandler.ListByParent)
	bom.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleProduccion), bomHandler.Delete)

	// Motor de inventario (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.PurchaseUC, deps.ProductionUC, deps.AdjustmentUC, deps.QueryUC)
	invGroup.Post("/purchases", RequireRole(entity.RoleAdmin, entity.RoleProduccion), inventoryHandler.RegisterPurchase)
	invGroup.Post("/production", RequireRole(entity.RoleAdmin, entity.RoleProduccion), inventoryHandler.RegisterProduction)
	invGroup.Post("/adjustments", RequireRole(entity.RoleAdmin), inventoryHandler.RegisterAdjustment)
	invGroup.Get("/movements/:variant_id", inventoryHandler.ListMovements)
	invGroup.Get("/balances/:variant_id", inventoryHandler.GetBalance)

	// Pedidos (protegido; despacho admin/ventas)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.FulfillUC)
	ordersGroup.Post("/", RequireRole(entity.RoleAdmin, entity.RoleVentas), orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/:id/items", RequireRole(entity.RoleAdmin, entity.RoleVentas), orderHandler.AddItem)
	ordersGroup.Post("/:id/fulfill", RequireRole(entity.RoleAdmin, entity.RoleVentas), orderHandler.Fulfill)

	// Reportes (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.MatrixPDF)
	reportsGroup.Get("/stock-matrix", reportHandler.StockMatrix)
	reportsGroup.Get("/stock-matrix/pdf", reportHandler.StockMatrixPDF)
	reportsGroup.Get("/low-stock", reportHandler.LowStock)
}
