package main

import (
	"strings"

	"bikestock-backend/internal/admin"
	"bikestock-backend/internal/audit"
	"bikestock-backend/internal/auth"
	"bikestock-backend/internal/config"
	"bikestock-backend/internal/database"
	"bikestock-backend/internal/inventory"
	"bikestock-backend/internal/ledger"
	"bikestock-backend/internal/models"
	"bikestock-backend/internal/receipt"
	"bikestock-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	ledgerSvc := ledger.NewService(database.DB)
	receiptSvc := receipt.NewService(database.DB, ledgerSvc)
	reportSvc := report.NewService(database.DB)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.WithError(err).Error("Beklenmeyen hata")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den temizleyerek geçir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Post("/auth/change-password", auth.ChangePasswordHandler(ledgerSvc))

	// Stok işlemleri
	protected.Post("/stock/entry", inventory.StockEntryHandler(ledgerSvc))
	protected.Post("/stock/exit", inventory.StockExitHandler(ledgerSvc))
	protected.Post("/stock/transfer", inventory.StockTransferHandler(ledgerSvc))
	protected.Get("/stock", inventory.ListStockHandler())
	protected.Get("/stock/totals", inventory.StockTotalsHandler())

	// Ürünler
	protected.Post("/products", inventory.CreateProductHandler(ledgerSvc))
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Get("/products/search", inventory.SearchProductsHandler())
	protected.Get("/products/:id/stock", inventory.ProductStockHandler())
	protected.Put("/products/:id", inventory.UpdateProductHandler(ledgerSvc))

	// Fişler (toplu çıkış)
	protected.Post("/receipts", receipt.CreateBatchHandler(receiptSvc))
	protected.Get("/receipts", receipt.ListReceiptsHandler(receiptSvc))
	protected.Get("/receipts/:id", receipt.GetReceiptHandler(receiptSvc))

	// Referans veriler
	protected.Get("/warehouses", admin.ListWarehousesHandler())
	protected.Get("/carriers", admin.ListCarriersHandler())
	protected.Get("/platforms", admin.ListPlatformsHandler())
	protected.Get("/customers", admin.ListCustomersHandler())
	protected.Post("/customers", admin.CreateCustomerHandler())
	protected.Put("/customers/:id", admin.UpdateCustomerHandler())
	protected.Get("/settings", admin.ListSettingsHandler())
	protected.Get("/settings/:key", admin.GetSettingHandler())

	// Raporlar
	protected.Get("/reports/daily", report.DailyHandler(reportSvc))
	protected.Get("/reports/period", report.PeriodHandler(reportSvc))
	protected.Get("/reports/period/excel", report.PeriodExcelHandler(reportSvc))

	// İşlem geçmişi
	protected.Get("/ledger-events", audit.ListEventsHandler())

	// Admin routes
	adminRoutes := protected.Group("")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	adminRoutes.Delete("/products/:id", inventory.DeleteProductHandler(ledgerSvc))

	adminRoutes.Post("/warehouses", admin.CreateWarehouseHandler())
	adminRoutes.Put("/warehouses/:id", admin.UpdateWarehouseHandler())

	adminRoutes.Post("/carriers", admin.CreateCarrierHandler())
	adminRoutes.Put("/carriers/:id", admin.UpdateCarrierHandler())

	adminRoutes.Post("/platforms", admin.CreatePlatformHandler())
	adminRoutes.Put("/platforms/:id", admin.UpdatePlatformHandler())

	adminRoutes.Put("/settings/:key", admin.UpsertSettingHandler(ledgerSvc))

	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Post("/users", admin.CreateUserHandler())
	adminRoutes.Post("/users/:id/reset-password", admin.ResetPasswordHandler(ledgerSvc))
	adminRoutes.Put("/users/:id/toggle-active", admin.ToggleUserActiveHandler())

	log.Infof("Server çalışıyor port: %s", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
