package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/quimidom/quimidom-api/internal/application/analytics"
	"github.com/quimidom/quimidom-api/internal/application/auth"
	"github.com/quimidom/quimidom-api/internal/application/billing"
	"github.com/quimidom/quimidom-api/internal/application/usecase"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TenantRepo  repository.TenantRepository
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	CustomerUC  *usecase.CustomerUseCase
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	PurchaseUC  *usecase.PurchaseUseCase
	SequenceUC  *usecase.SequenceUseCase
	TenantUC    *usecase.TenantUseCase
	InvoiceUC   *billing.InvoiceUseCase
	PaymentUC   *billing.PaymentUseCase
	QuoteUC     *billing.QuoteUseCase
	DocumentUC  *billing.DocumentUseCase
	FinanceUC   *analytics.FinanceUseCase
	JWTSecret   string
	AdminAPIKey string
}

// Router registra las rutas de la API.
// Todas las rutas bajo /api resuelven primero el tenant (hostname o X-Tenant);
// /admin opera sobre la plataforma y se protege con X-Admin-Key.
func Router(app *fiber.App, deps RouterDeps) {
	// Administración de plataforma (sin tenant)
	admin := app.Group("/admin", AdminKeyMiddleware(deps.AdminAPIKey))
	tenantHandler := NewTenantHandler(deps.TenantUC)
	admin.Post("/tenants", tenantHandler.Create)
	admin.Get("/tenants", tenantHandler.List)
	admin.Get("/tenants/:id", tenantHandler.GetByID)
	admin.Post("/tenants/:id/provision", tenantHandler.Provision)

	api := app.Group("/api", TenantMiddleware(deps.TenantRepo))

	// Auth (público dentro del tenant; el registro requiere admin)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireAdmin(), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token del tenant)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (solo admin)
	users := protected.Group("/users", RequireAdmin())
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id/role", userHandler.SetRole)
	users.Delete("/:id", userHandler.Deactivate)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)

	// Products e inventario
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", productHandler.RegisterMovement)
	invGroup.Get("/movements", productHandler.ListMovements)

	// Suppliers y compras
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)

	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Post("/:id/payments", purchaseHandler.RegisterPayment)

	// Secuencias fiscales NCF (admin o manager)
	sequences := protected.Group("/fiscal-sequences", RequireRole(entity.RoleAdmin, entity.RoleManager))
	sequenceHandler := NewSequenceHandler(deps.SequenceUC)
	sequences.Post("/", sequenceHandler.Create)
	sequences.Get("/", sequenceHandler.List)
	sequences.Post("/:id/deactivate", sequenceHandler.Deactivate)

	// Invoices, pagos y PDF
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.PaymentUC, deps.DocumentUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Post("/:id/issue", invoiceHandler.Issue)
	invoices.Post("/:id/void", invoiceHandler.Void)
	invoices.Post("/:id/payments", invoiceHandler.RecordPayment)
	invoices.Get("/:id/payments", invoiceHandler.ListPayments)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
	protected.Get("/payment-methods", invoiceHandler.ListPaymentMethods)

	// Quotes
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.DocumentUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Post("/:id/approve", quoteHandler.Approve)
	quotes.Post("/:id/reject", quoteHandler.Reject)
	quotes.Post("/:id/convert", quoteHandler.Convert)
	quotes.Get("/:id/pdf", quoteHandler.PDF)

	// Panel financiero
	finance := protected.Group("/finance")
	financeHandler := NewFinanceHandler(deps.FinanceUC)
	finance.Get("/summary", financeHandler.Summary)
}
