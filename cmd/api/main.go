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

	"github.com/knockFahim/inventory-management-system-sub001/internal/application/auth"
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/inventory"
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/purchases"
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/sales"
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/usecase"
	infrapdf "github.com/knockFahim/inventory-management-system-sub001/internal/infrastructure/pdf"
	"github.com/knockFahim/inventory-management-system-sub001/internal/infrastructure/postgres"
	httpRouter "github.com/knockFahim/inventory-management-system-sub001/internal/interfaces/http"
	"github.com/knockFahim/inventory-management-system-sub001/pkg/config"
	"github.com/knockFahim/inventory-management-system-sub001/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	ledgerRepo := postgres.NewStockLedgerRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockSvc := inventory.NewStockService(txRunner)
	ledgerUC := inventory.NewLedgerUseCase(ledgerRepo, productRepo)
	productUC := usecase.NewProductUseCase(txRunner, productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	salesUC := sales.NewUseCase(txRunner, stockSvc, saleRepo, customerRepo, productRepo)
	purchasesUC := purchases.NewUseCase(txRunner, stockSvc, purchaseRepo, supplierRepo, productRepo)

	// PDF: representación gráfica de la factura de venta
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	salesPDFUC := sales.NewPDFUseCase(saleRepo, customerRepo, productRepo, pdfGenerator)

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
	if !setupSwagger(app, "./docs/swagger.json", cfg.App.Name) {
		log.Warn().Msg("docs/swagger.json no encontrado, swagger UI deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		CategoryUC:  categoryUC,
		SupplierUC:  supplierUC,
		CustomerUC:  customerUC,
		StockSvc:    stockSvc,
		LedgerUC:    ledgerUC,
		SalesUC:     salesUC,
		SalesPDFUC:  salesPDFUC,
		PurchasesUC: purchasesUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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

// setupSwagger registra el middleware de swagger solo si el archivo del spec
// existe: swagger.New entra en pánico con un FilePath inexistente y el
// servidor debe poder arrancar sin la documentación generada.
func setupSwagger(app *fiber.App, filePath, title string) bool {
	if _, err := os.Stat(filePath); err != nil {
		return false
	}
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	}))
	return true
}
