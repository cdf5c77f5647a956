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
	"github.com/quimidom/quimidom-api/internal/application/analytics"
	"github.com/quimidom/quimidom-api/internal/application/auth"
	"github.com/quimidom/quimidom-api/internal/application/billing"
	"github.com/quimidom/quimidom-api/internal/application/usecase"
	infrapdf "github.com/quimidom/quimidom-api/internal/infrastructure/pdf"
	"github.com/quimidom/quimidom-api/internal/infrastructure/postgres"
	httpRouter "github.com/quimidom/quimidom-api/internal/interfaces/http"
	"github.com/quimidom/quimidom-api/pkg/config"
	"github.com/quimidom/quimidom-api/pkg/logger"
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

	// Migraciones del esquema public (registro de tenants). Los esquemas de
	// cada tenant se migran al aprovisionarlos.
	if err := postgres.MigratePublic(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones public")
	}

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	quoteRepo := postgres.NewQuoteRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	purchaseRepo := postgres.NewPurchaseRepository(pool)
	sequenceRepo := postgres.NewFiscalSequenceRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	schemaManager := postgres.NewSchemaManager(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	productUC := usecase.NewProductUseCase(productRepo, movementRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	purchaseUC := usecase.NewPurchaseUseCase(purchaseRepo, supplierRepo)
	sequenceUC := usecase.NewSequenceUseCase(sequenceRepo)
	tenantUC := usecase.NewTenantUseCase(tenantRepo, schemaManager)

	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, customerRepo, productRepo, paymentRepo)
	paymentUC := billing.NewPaymentUseCase(txRunner, paymentRepo)
	quoteUC := billing.NewQuoteUseCase(txRunner, quoteRepo, customerRepo, productRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	documentUC := billing.NewDocumentUseCase(invoiceRepo, quoteRepo, customerRepo, productRepo, pdfGenerator)

	financeUC := analytics.NewFinanceUseCase(analyticsRepo)

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
		Title:    "Quimidom API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TenantRepo:  tenantRepo,
		AuthUC:      authUC,
		UserUC:      userUC,
		CustomerUC:  customerUC,
		ProductUC:   productUC,
		SupplierUC:  supplierUC,
		PurchaseUC:  purchaseUC,
		SequenceUC:  sequenceUC,
		TenantUC:    tenantUC,
		InvoiceUC:   invoiceUC,
		PaymentUC:   paymentUC,
		QuoteUC:     quoteUC,
		DocumentUC:  documentUC,
		FinanceUC:   financeUC,
		JWTSecret:   cfg.JWT.Secret,
		AdminAPIKey: cfg.App.AdminAPIKey,
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
