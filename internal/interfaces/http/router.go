package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ventas-api/internal/application/analytics"
	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/catalog"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *catalog.ProductUseCase
	AdjustStock *catalog.AdjustStockUseCase
	CategoryUC  *catalog.CategoryUseCase
	CreateOrder *sales.CreateOrderUseCase
	OrderUC     *sales.OrderUseCase
	QuotationUC *sales.QuotationUseCase
	DeliveryUC  *sales.DeliveryUseCase
	PDFUC       *sales.PDFUseCase
	ReportUC    *analytics.ReportUseCase
	SettingUC   *usecase.SettingUseCase
	AuditUC     *usecase.AuditUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login es público, register solo para administradores.
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole("admin"), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (protegido, solo admin)
	users := protected.Group("/users", RequireRole("admin"))
	users.Get("/", authHandler.ListUsers)
	users.Put("/:id", authHandler.UpdateUser)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.AdjustStock)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole("admin", "manager"), productHandler.Delete)
	products.Post("/:id/stock-adjustments", RequireRole("admin", "manager"), productHandler.AdjustStock)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", RequireRole("admin", "manager"), categoryHandler.Delete)

	// Orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.OrderUC, deps.PDFUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Get("/:id/pdf", orderHandler.DownloadPDF)

	// Quotations (protegido)
	quotations := protected.Group("/quotations")
	quotationHandler := NewQuotationHandler(deps.QuotationUC, deps.PDFUC)
	quotations.Post("/", quotationHandler.Create)
	quotations.Get("/", quotationHandler.List)
	quotations.Get("/:id", quotationHandler.GetByID)
	quotations.Put("/:id/items", quotationHandler.ReplaceItems)
	quotations.Patch("/:id/status", quotationHandler.UpdateStatus)
	quotations.Post("/:id/convert", quotationHandler.Convert)
	quotations.Get("/:id/pdf", quotationHandler.DownloadPDF)

	// Deliveries (protegido)
	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC, deps.PDFUC)
	deliveries.Post("/", deliveryHandler.CreateStandalone)
	deliveries.Post("/from-order", deliveryHandler.CreateFromOrder)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Patch("/:id/status", deliveryHandler.UpdateStatus)
	deliveries.Get("/:id/pdf", deliveryHandler.DownloadPDF)

	// Reports (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/sales", reportHandler.SalesSummary)
	reports.Get("/products", reportHandler.ProductPerformance)
	reports.Get("/stock", reportHandler.StockReport)
	reports.Get("/deliveries", reportHandler.DeliveryReport)

	// Audit logs (protegido, admin/manager)
	audit := protected.Group("/audit-logs", RequireRole("admin", "manager"))
	auditHandler := NewAuditHandler(deps.AuditUC)
	audit.Get("/", auditHandler.List)

	// Settings (protegido, admin/manager)
	settings := protected.Group("/settings", RequireRole("admin", "manager"))
	settingHandler := NewSettingHandler(deps.SettingUC)
	settings.Get("/", settingHandler.List)
	settings.Get("/:key", settingHandler.Get)
	settings.Put("/:key", settingHandler.Set)
}
