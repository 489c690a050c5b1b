package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pharmacy-pos/internal/handler"
	"go-pharmacy-pos/internal/middleware"
	"go-pharmacy-pos/internal/model"
	"go-pharmacy-pos/internal/repository"
	"go-pharmacy-pos/internal/service"
	"go-pharmacy-pos/internal/ws"
	"go-pharmacy-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Product{},
		&model.Customer{},
		&model.Supplier{},
		&model.Setting{},
		&model.Bill{},
		&model.BillItem{},
		&model.PurchaseBill{},
		&model.PurchaseBillItem{},
		&model.StockAdjustment{},
	)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	billRepo := repository.NewBillRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	settingRepo := repository.NewSettingRepo(db)
	adjustmentRepo := repository.NewStockAdjustmentRepo(db)
	reportRepo := repository.NewReportRepo(db)

	sessions := service.NewSessionStore()
	authService := service.NewAuthService(envOr("POS_USERNAME", "admin"), envOr("POS_PASSWORD", "admin123"), sessions)
	catalogService := service.NewCatalogService(productRepo, adjustmentRepo, settingRepo, db, wsHub)
	directoryService := service.NewDirectoryService(customerRepo, supplierRepo, billRepo)
	billingService := service.NewBillingService(billRepo, productRepo, customerRepo, db, wsHub)
	purchaseService := service.NewPurchaseService(purchaseRepo, productRepo, supplierRepo, db, wsHub)
	reportService := service.NewReportService(reportRepo, settingRepo)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	customerHandler := handler.NewCustomerHandler(directoryService)
	settingHandler := handler.NewSettingHandler(catalogService)
	billHandler := handler.NewBillHandler(billingService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	reportHandler := handler.NewReportHandler(reportService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Pharmacy POS v4.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// Billing terminal assets
	app.Static("/", "./static")

	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	api.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	// Everything else requires an active login session.
	protected := api.Group("", middleware.RequireSession(authService))

	protected.Post("/logout", authHandler.Logout)
	protected.Post("/logout-beacon", authHandler.LogoutBeacon)

	// Products
	protected.Get("/products", productHandler.GetProducts)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Get("/products/search", productHandler.SearchProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	// Customers
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Post("/customers", customerHandler.CreateCustomer)
	protected.Get("/customers/search", customerHandler.SearchCustomers)
	protected.Get("/customers/:id", customerHandler.GetCustomer)
	protected.Put("/customers/:id", customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", customerHandler.DeleteCustomer)
	protected.Get("/customers/:id/history", customerHandler.GetCustomerHistory)

	// Suppliers
	protected.Get("/suppliers", customerHandler.GetSuppliers)

	// Settings
	protected.Get("/settings", settingHandler.GetSettings)
	protected.Post("/settings", settingHandler.SaveSettings)

	// Bills
	protected.Get("/bills", billHandler.GetBills)
	protected.Get("/held-bills", billHandler.GetHeldBills)
	protected.Post("/bills", billHandler.CreateBill)
	protected.Get("/bills/:id", billHandler.GetBill)
	protected.Put("/bills/:id", billHandler.UpdateBill)
	protected.Delete("/bills/:id", billHandler.DeleteBill)

	// Purchases
	protected.Get("/purchases", purchaseHandler.GetPurchases)
	protected.Post("/purchases", purchaseHandler.CreatePurchase)
	protected.Get("/purchases/:id", purchaseHandler.GetPurchase)

	// Stock adjustments
	protected.Post("/stock-adjustments", productHandler.CreateStockAdjustment)
	protected.Get("/stock-adjustments", productHandler.GetStockAdjustments)

	// Reports & misc
	protected.Get("/reports", reportHandler.GetReport)
	protected.Get("/dashboard-stats", reportHandler.GetDashboardStats)
	protected.Get("/current-ist-date", reportHandler.GetCurrentISTDate)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 6. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
