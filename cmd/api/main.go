package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/manufactura-api/internal/application/auth"
	"github.com/jhoicas/manufactura-api/internal/application/inventory"
	"github.com/jhoicas/manufactura-api/internal/application/orders"
	"github.com/jhoicas/manufactura-api/internal/application/reports"
	"github.com/jhoicas/manufactura-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/manufactura-api/internal/infrastructure/pdf"
	"github.com/jhoicas/manufactura-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/manufactura-api/internal/interfaces/http"
	"github.com/jhoicas/manufactura-api/pkg/config"
	"github.com/jhoicas/manufactura-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repos sobre el pool (lecturas y catálogo); el TxRunner ata sus propios
	// repos a cada transacción del motor.
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor de inventario
	bomResolver := inventory.NewBOMResolver(bomRepo, variantRepo)
	purchaseUC := inventory.NewRegisterPurchaseUseCase(txRunner, productRepo, variantRepo)
	productionUC := inventory.NewRegisterProductionUseCase(txRunner, productRepo, variantRepo, bomResolver)
	adjustmentUC := inventory.NewRegisterAdjustmentUseCase(txRunner, variantRepo)
	queryUC := inventory.NewQueryUseCase(movementRepo, balanceRepo, variantRepo)
	fulfillUC := inventory.NewFulfillOrderUseCase(txRunner)

	// Catálogo, BOM y pedidos
	productUC := usecase.NewProductUseCase(productRepo, variantRepo)
	bomUC := usecase.NewBOMUseCase(bomRepo, variantRepo)
	orderUC := orders.NewOrderUseCase(orderRepo, variantRepo)
	intakeUC := orders.NewIntakeUseCase(orderRepo, variantRepo, fulfillUC)

	// Reportes y PDF
	reportUC := reports.NewStockMatrixUseCase(productRepo, variantRepo, balanceRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Manufactura API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		BOMUC:        bomUC,
		PurchaseUC:   purchaseUC,
		ProductionUC: productionUC,
		AdjustmentUC: adjustmentUC,
		QueryUC:      queryUC,
		FulfillUC:    fulfillUC,
		OrderUC:      orderUC,
		IntakeUC:     intakeUC,
		ReportUC:     reportUC,
		MatrixPDF:    pdfGenerator,
		JWTSecret:    cfg.JWT.Secret,
		Intake:       cfg.Intake,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
