package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/erp-pro/internal/application/auth"
	"github.com/tu-usuario/erp-pro/internal/application/finance"
	"github.com/tu-usuario/erp-pro/internal/application/inventory"
	"github.com/tu-usuario/erp-pro/internal/application/purchasing"
	"github.com/tu-usuario/erp-pro/internal/application/reports"
	"github.com/tu-usuario/erp-pro/internal/application/sales"
	"github.com/tu-usuario/erp-pro/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	UserUC         *usecase.UserUseCase
	ProductUC      *usecase.ProductUseCase
	CategoryUC     *usecase.CategoryUseCase
	WarehouseUC    *usecase.WarehouseUseCase
	CustomerUC     *usecase.CustomerUseCase
	SupplierUC     *usecase.SupplierUseCase
	InventoryUC    *inventory.UseCase
	SalesUC        *sales.UseCase
	PurchasingUC   *purchasing.UseCase
	FinanceUC      *finance.UseCase
	NotificationUC *usecase.NotificationUseCase
	ActivityUC     *usecase.ActivityUseCase
	ReportsUC      *reports.UseCase

	JWTSecret string
	// Limiter puede ser nil: sin Redis no hay rate-limit.
	Limiter        RateLimiter
	LoginRateLimit int
	LoginRateWin   time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público (con rate-limit), register protegido y solo ADMIN
	// (el caso de uso vuelve a validar el rol).
	authHandler := NewAuthHandler(deps.AuthUC, deps.ActivityUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", RateLimit(deps.Limiter, deps.LoginRateLimit, deps.LoginRateWin), authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole("ADMIN"), authHandler.Register)

	// Todo lo demás requiere Bearer Token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (ADMIN/MANAGER)
	users := protected.Group("/users", RequireRole("ADMIN", "MANAGER"))
	userHandler := NewUserHandler(deps.UserUC, deps.ActivityUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/", userHandler.Update)
	users.Delete("/", userHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.ActivityUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/", productHandler.Update)
	products.Delete("/", productHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Put("/", categoryHandler.Update)
	categories.Delete("/", categoryHandler.Delete)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/", warehouseHandler.Update)
	warehouses.Delete("/", warehouseHandler.Delete)

	// Inventory
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ActivityUC)
	invGroup.Post("/", inventoryHandler.Adjust)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Put("/", inventoryHandler.UpdateMeta)
	invGroup.Delete("/", inventoryHandler.Delete)
	invGroup.Get("/:id/movements", inventoryHandler.Movements)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/", customerHandler.Update)
	customers.Delete("/", customerHandler.Delete)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/", supplierHandler.Update)
	suppliers.Delete("/", supplierHandler.Delete)

	// Sales orders
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.SalesUC, deps.ActivityUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/", orderHandler.Update)
	orders.Delete("/", orderHandler.Delete)
	orders.Post("/:id/confirm", orderHandler.Confirm)
	orders.Get("/:id/pdf", orderHandler.PDF)

	// Purchases
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchasingUC, deps.ActivityUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Put("/", purchaseHandler.Update)
	purchases.Delete("/", purchaseHandler.Delete)
	purchases.Post("/:id/receive", purchaseHandler.Receive)

	// Finance
	financeHandler := NewFinanceHandler(deps.FinanceUC, deps.ActivityUC)
	accounts := protected.Group("/accounts")
	accounts.Post("/", financeHandler.CreateAccount)
	accounts.Get("/", financeHandler.AccountTree)
	accounts.Delete("/", financeHandler.DeleteAccount)
	transactions := protected.Group("/transactions")
	transactions.Post("/", financeHandler.CreateTransaction)
	transactions.Get("/", financeHandler.ListTransactions)
	transactions.Get("/:id", financeHandler.GetTransaction)
	transactions.Get("/:id/voucher", financeHandler.Voucher)

	// Notifications (crear: ADMIN/MANAGER)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Post("/", RequireRole("ADMIN", "MANAGER"), notificationHandler.Create)
	notifications.Get("/", notificationHandler.List)
	notifications.Post("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/", notificationHandler.Delete)

	// Activity log (solo lectura, ADMIN/MANAGER)
	activities := protected.Group("/activities", RequireRole("ADMIN", "MANAGER"))
	activityHandler := NewActivityHandler(deps.ActivityUC)
	activities.Get("/", activityHandler.List)

	// Reports
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportsUC)
	reportsGroup.Get("/sales", reportHandler.Sales)
	reportsGroup.Get("/inventory", reportHandler.Inventory)
}
