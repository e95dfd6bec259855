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

	"github.com/tu-usuario/erp-pro/internal/application/auth"
	"github.com/tu-usuario/erp-pro/internal/application/finance"
	"github.com/tu-usuario/erp-pro/internal/application/inventory"
	"github.com/tu-usuario/erp-pro/internal/application/purchasing"
	"github.com/tu-usuario/erp-pro/internal/application/reports"
	"github.com/tu-usuario/erp-pro/internal/application/sales"
	"github.com/tu-usuario/erp-pro/internal/application/usecase"
	"github.com/tu-usuario/erp-pro/internal/infrastructure/cache"
	infrapdf "github.com/tu-usuario/erp-pro/internal/infrastructure/pdf"
	"github.com/tu-usuario/erp-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/erp-pro/internal/infrastructure/voucher"
	httpRouter "github.com/tu-usuario/erp-pro/internal/interfaces/http"
	"github.com/tu-usuario/erp-pro/pkg/config"
	"github.com/tu-usuario/erp-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	// Redis es opcional: sin él, reportes sin caché y login sin rate-limit.
	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		redisCache, err = cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, se continúa sin caché")
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	// Repositorios sobre el pool; las transacciones usan los runners.
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	movRepo := postgres.NewInventoryMovementRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	counterRepo := postgres.NewDocumentCounterRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)

	invTxRunner := postgres.NewTxRunner(pool)
	salesTxRunner := postgres.NewSalesTxRunner(pool)
	purchaseTxRunner := postgres.NewPurchaseTxRunner(pool)
	financeTxRunner := postgres.NewFinanceTxRunner(pool)

	pdfGenerator := infrapdf.NewOrderPDFGenerator()
	voucherBuilder := voucher.NewXMLBuilder()

	authUC := auth.NewUseCase(userRepo, &auth.JWTIssuer{
		Secret:     cfg.JWT.Secret,
		Issuer:     cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, invRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, productRepo)
	warehouseUC := usecase.NewWarehouseUseCase(warehouseRepo, invRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, orderRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, purchaseRepo)
	notificationUC := usecase.NewNotificationUseCase(notificationRepo, userRepo)
	activityUC := usecase.NewActivityUseCase(activityRepo)

	inventoryUC := inventory.NewUseCase(invTxRunner, invRepo, movRepo, productRepo, warehouseRepo)
	salesUC := sales.NewUseCase(salesTxRunner, orderRepo, customerRepo, productRepo, counterRepo, pdfGenerator, notificationUC)
	purchasingUC := purchasing.NewUseCase(purchaseTxRunner, purchaseRepo, supplierRepo, productRepo, warehouseRepo, counterRepo, notificationUC)
	financeUC := finance.NewUseCase(financeTxRunner, accountRepo, txRepo, counterRepo, voucherBuilder)

	var reportCache reports.Cache
	if redisCache != nil {
		reportCache = redisCache
	}
	reportsUC := reports.NewUseCase(reportRepo, movRepo, reportCache,
		time.Duration(cfg.Redis.ReportTTLSecs)*time.Second)

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
		Title:    "ERP Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	var limiter httpRouter.RateLimiter
	if redisCache != nil && cfg.Redis.RateLimit > 0 {
		limiter = redisCache
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		UserUC:         userUC,
		ProductUC:      productUC,
		CategoryUC:     categoryUC,
		WarehouseUC:    warehouseUC,
		CustomerUC:     customerUC,
		SupplierUC:     supplierUC,
		InventoryUC:    inventoryUC,
		SalesUC:        salesUC,
		PurchasingUC:   purchasingUC,
		FinanceUC:      financeUC,
		NotificationUC: notificationUC,
		ActivityUC:     activityUC,
		ReportsUC:      reportsUC,
		JWTSecret:      cfg.JWT.Secret,
		Limiter:        limiter,
		LoginRateLimit: cfg.Redis.RateLimit,
		LoginRateWin:   time.Minute,
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
