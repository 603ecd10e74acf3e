package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/knockFahim/inventory-management-system-sub001/internal/application/auth"
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/inventory"
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/purchases"
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/sales"
	"github.com/knockFahim/inventory-management-system-sub001/internal/application/usecase"
	"github.com/knockFahim/inventory-management-system-sub001/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	SupplierUC  *usecase.SupplierUseCase
	CustomerUC  *usecase.CustomerUseCase
	StockSvc    *inventory.StockService
	LedgerUC    *inventory.LedgerUseCase
	SalesUC     *sales.UseCase
	SalesPDFUC  *sales.PDFUseCase
	PurchasesUC *purchases.UseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Middlewares de rol compartidos
	managerUp := RequireRole(entity.RoleAdmin, entity.RoleManager)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Products: lectura para todos; escritura con chequeo de ownership en el handler
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Categories: escritura para admin/manager, borrado solo admin
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", managerUp, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", managerUp, categoryHandler.Update)
	categories.Delete("/:id", adminOnly, categoryHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", managerUp, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", managerUp, supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	// Customers: cualquier usuario autenticado crea/edita, borrado solo admin
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", adminOnly, customerHandler.Delete)

	// Inventory: ajustes manuales solo admin/manager; ledger visible para todos
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockSvc, deps.LedgerUC)
	invGroup.Post("/adjustments", managerUp, inventoryHandler.Adjust)
	invGroup.Get("/products/:id/ledger", inventoryHandler.Ledger)

	// Sales: crear/completar cualquier usuario; cancelar admin/manager; borrar admin
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC, deps.SalesPDFUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/pdf", saleHandler.GetPDF)
	salesGroup.Post("/:id/complete", saleHandler.Complete)
	salesGroup.Post("/:id/cancel", managerUp, saleHandler.Cancel)
	salesGroup.Delete("/:id", adminOnly, saleHandler.Delete)

	// Purchases: todo el ciclo es de admin/manager; borrar admin
	purchasesGroup := protected.Group("/purchases", managerUp)
	purchaseHandler := NewPurchaseHandler(deps.PurchasesUC)
	purchasesGroup.Post("/", purchaseHandler.Create)
	purchasesGroup.Get("/", purchaseHandler.List)
	purchasesGroup.Get("/:id", purchaseHandler.GetByID)
	purchasesGroup.Post("/:id/receive", purchaseHandler.Receive)
	purchasesGroup.Post("/:id/cancel", purchaseHandler.Cancel)
	purchasesGroup.Delete("/:id", adminOnly, purchaseHandler.Delete)
}
