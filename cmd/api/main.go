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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ventas-api/internal/application/analytics"
	"github.com/jhoicas/ventas-api/internal/application/auth"
	"github.com/jhoicas/ventas-api/internal/application/catalog"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/application/usecase"
	"github.com/jhoicas/ventas-api/internal/domain/numbering"
	infrapdf "github.com/jhoicas/ventas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/ventas-api/internal/interfaces/http"
	"github.com/jhoicas/ventas-api/pkg/config"
	"github.com/jhoicas/ventas-api/pkg/logger"
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

	defaultTaxPercent, err := decimal.NewFromString(cfg.Sales.DefaultTaxPercent)
	if err != nil {
		log.Fatal().Err(err).Str("value", cfg.Sales.DefaultTaxPercent).Msg("DEFAULT_TAX_PERCENT inválido")
	}

	orderGen, err := numbering.NewGenerator(cfg.Numbering.OrderPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("prefijo de pedidos inválido")
	}
	quotationGen, err := numbering.NewGenerator(cfg.Numbering.QuotationPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("prefijo de cotizaciones inválido")
	}
	deliveryGen, err := numbering.NewGenerator(cfg.Numbering.DeliveryPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("prefijo de entregas inválido")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	quotationRepo := postgres.NewQuotationRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auditRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	productUC := catalog.NewProductUseCase(productRepo, categoryRepo)
	categoryUC := catalog.NewCategoryUseCase(categoryRepo)
	adjustStockUC := catalog.NewAdjustStockUseCase(txRunner, productRepo)

	createOrderUC := sales.NewCreateOrderUseCase(txRunner, productRepo, orderGen, defaultTaxPercent, log)
	orderUC := sales.NewOrderUseCase(orderRepo, auditRepo, log)
	quotationUC := sales.NewQuotationUseCase(txRunner, quotationRepo, productRepo, quotationGen, orderGen, defaultTaxPercent, log)
	deliveryUC := sales.NewDeliveryUseCase(txRunner, deliveryRepo, orderRepo, deliveryGen, log)

	// PDF: pedidos, cotizaciones y notas de entrega con membrete de la empresa.
	pdfGenerator := infrapdf.NewMarotoDocumentGenerator(infrapdf.CompanyInfo{
		Name:    cfg.Company.Name,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
		Email:   cfg.Company.Email,
	}, cfg.Sales.Currency)
	pdfUC := sales.NewPDFUseCase(orderRepo, quotationRepo, deliveryRepo, pdfGenerator)

	reportUC := analytics.NewReportUseCase(reportRepo, cfg.Sales.Currency)
	settingUC := usecase.NewSettingUseCase(settingRepo, auditRepo, log)
	auditUC := usecase.NewAuditUseCase(auditRepo)

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
		Title:    "Ventas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		AdjustStock: adjustStockUC,
		CategoryUC:  categoryUC,
		CreateOrder: createOrderUC,
		OrderUC:     orderUC,
		QuotationUC: quotationUC,
		DeliveryUC:  deliveryUC,
		PDFUC:       pdfUC,
		ReportUC:    reportUC,
		SettingUC:   settingUC,
		AuditUC:     auditUC,
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
