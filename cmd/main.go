package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront-service/internal/clients"
	"storefront-service/internal/config"
	"storefront-service/internal/events"
	"storefront-service/internal/handlers"
	"storefront-service/internal/middleware"
	"storefront-service/internal/repository"
	"storefront-service/internal/services"
	"storefront-service/internal/workers"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	redisClient := config.InitRedis(cfg)
	publisher := events.NewPublisher(cfg.NATSURL, logger)
	defer publisher.Close()

	// Repositories
	productsRepo := repository.NewProductsRepository(db, redisClient)
	storesRepo := repository.NewStoresRepository(db, redisClient)
	cartsRepo := repository.NewCartsRepository(db)
	ordersRepo := repository.NewOrdersRepository(db)
	salesRepo := repository.NewSalesRepository(db)
	receivablesRepo := repository.NewReceivablesRepository(db)
	purchasesRepo := repository.NewPurchasesRepository(db)

	// Services
	resolver := services.NewVariantResolver()
	aggregator := services.NewCartAggregator(cfg.DefaultContactPhone)
	productService := services.NewProductService(productsRepo, cfg.DefaultCurrency, logger)
	authService := services.NewAuthService(storesRepo, cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour, logger)
	cartService := services.NewCartService(cartsRepo, productsRepo, storesRepo, resolver,
		time.Duration(cfg.CartTTLHours)*time.Hour, logger)
	checkoutService := services.NewCheckoutService(aggregator, ordersRepo, storesRepo, publisher, logger)
	saleService := services.NewSaleService(salesRepo, cfg.DefaultCurrency, publisher, logger)
	whatsappClient := clients.NewWhatsAppClient(cfg.WhatsAppGatewayURL, logger)
	reminderService := services.NewReminderService(receivablesRepo, aggregator, whatsappClient, publisher, logger)
	exportService := services.NewExportService()
	rateService := services.NewRateService(cfg.BCVRateURL, cfg.BCVRateCacheTTL, redisClient, logger)
	searchStateService := services.NewSearchStateService(redisClient, cfg.SearchStateTTL)

	// Workers
	reminderWorker := workers.NewReminderWorker(reminderService, time.Minute, logger)
	reminderWorker.Start()
	defer reminderWorker.Stop()

	cartWorker := workers.NewCartExpirationWorker(cartsRepo, 15*time.Minute, logger)
	cartWorker.Start()
	defer cartWorker.Stop()

	// Handlers
	healthHandler := handlers.NewHealthHandler(map[string]handlers.StatsReporter{
		"reminders":      reminderWorker,
		"cartExpiration": cartWorker,
	})
	productsHandler := handlers.NewProductsHandler(productsRepo, productService, resolver)
	storesHandler := handlers.NewStoresHandler(storesRepo, authService)
	authHandler := handlers.NewAuthHandler(authService)
	cartsHandler := handlers.NewCartsHandler(cartService, checkoutService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, cartService)
	salesHandler := handlers.NewSalesHandler(salesRepo, saleService)
	receivablesHandler := handlers.NewReceivablesHandler(receivablesRepo, reminderService)
	purchasesHandler := handlers.NewPurchasesHandler(purchasesRepo)
	ordersHandler := handlers.NewOrdersHandler(ordersRepo)
	exportHandler := handlers.NewExportHandler(exportService, salesRepo, receivablesRepo, purchasesRepo, productsRepo)
	ratesHandler := handlers.NewRatesHandler(rateService)
	searchStateHandler := handlers.NewSearchStateHandler(searchStateService)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.SetupCORS())
	router.Use(middleware.TenantID())
	router.Use(middleware.CustomerID())

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	api.Use(middleware.RequireTenantID())
	{
		// Storefront (public within a tenant)
		api.GET("/rates/bcv", ratesHandler.GetRate)
		api.GET("/products", productsHandler.ListProducts)
		api.GET("/products/:id", productsHandler.GetProduct)
		api.POST("/products/:id/resolve", productsHandler.ResolveVariant)
		api.GET("/stores", storesHandler.ListStores)
		api.GET("/stores/:id", storesHandler.GetStore)
		api.GET("/stores/:id/contacts", storesHandler.GetStoreContacts)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/checkout/preview", checkoutHandler.Preview)

		cart := api.Group("/cart")
		cart.Use(middleware.RequireCustomerID())
		{
			cart.GET("", cartsHandler.GetCart)
			cart.DELETE("", cartsHandler.Clear)
			cart.POST("/items", cartsHandler.AddItem)
			cart.PATCH("/items/:itemId", cartsHandler.UpdateItem)
			cart.DELETE("/items/:itemId", cartsHandler.RemoveItem)
		}

		api.POST("/checkout", checkoutHandler.Checkout)

		// Back-office (authenticated store users)
		admin := api.Group("")
		admin.Use(middleware.Auth(authService))
		{
			admin.POST("/products", middleware.RequirePermission("products:create"), productsHandler.CreateProduct)
			admin.PATCH("/products/:id", middleware.RequirePermission("products:update"), productsHandler.UpdateProduct)
			admin.DELETE("/products/:id", middleware.RequirePermission("products:delete"), productsHandler.DeleteProduct)
			admin.POST("/products/:id/attributes", middleware.RequirePermission("products:update"), productsHandler.CreateAttribute)
			admin.DELETE("/products/:id/attributes/:attributeId", middleware.RequirePermission("products:update"), productsHandler.DeleteAttribute)
			admin.POST("/products/:id/attributes/:attributeId/variants", middleware.RequirePermission("products:update"), productsHandler.CreateVariant)
			admin.DELETE("/products/:id/variants/:variantId", middleware.RequirePermission("products:update"), productsHandler.DeleteVariant)
			admin.POST("/products/:id/combinations", middleware.RequirePermission("products:update"), productsHandler.CreateCombination)
			admin.PATCH("/products/:id/combinations/:combinationId", middleware.RequirePermission("products:update"), productsHandler.UpdateCombination)
			admin.DELETE("/products/:id/combinations/:combinationId", middleware.RequirePermission("products:update"), productsHandler.DeleteCombination)

			admin.POST("/stores", middleware.RequirePermission("stores:create"), storesHandler.CreateStore)
			admin.PATCH("/stores/:id", middleware.RequirePermission("stores:update"), storesHandler.UpdateStore)
			admin.DELETE("/stores/:id", middleware.RequirePermission("stores:delete"), storesHandler.DeleteStore)
			admin.POST("/stores/:id/users", middleware.RequirePermission("users:create"), storesHandler.CreateStoreUser)
			admin.GET("/stores/:id/users", middleware.RequirePermission("users:read"), storesHandler.ListStoreUsers)
			admin.PATCH("/stores/:id/users/:userId", middleware.RequirePermission("users:update"), storesHandler.UpdateStoreUser)
			admin.DELETE("/stores/:id/users/:userId", middleware.RequirePermission("users:delete"), storesHandler.DeleteStoreUser)

			admin.POST("/sales", middleware.RequirePermission("sales:create"), salesHandler.CreateSale)
			admin.GET("/sales", middleware.RequirePermission("sales:read"), salesHandler.ListSales)
			admin.GET("/sales/:id", middleware.RequirePermission("sales:read"), salesHandler.GetSale)
			admin.POST("/sales/:id/void", middleware.RequirePermission("sales:update"), salesHandler.VoidSale)

			admin.POST("/receivables", middleware.RequirePermission("receivables:create"), receivablesHandler.CreateReceivable)
			admin.GET("/receivables", middleware.RequirePermission("receivables:read"), receivablesHandler.ListReceivables)
			admin.GET("/receivables/:id", middleware.RequirePermission("receivables:read"), receivablesHandler.GetReceivable)
			admin.POST("/receivables/:id/payments", middleware.RequirePermission("receivables:update"), receivablesHandler.RecordPayment)
			admin.POST("/receivables/:id/reminders", middleware.RequirePermission("receivables:update"), receivablesHandler.ScheduleReminder)
			admin.GET("/receivables/:id/reminder-link", middleware.RequirePermission("receivables:read"), receivablesHandler.GetReminderLink)
			admin.DELETE("/receivables/:id", middleware.RequirePermission("receivables:delete"), receivablesHandler.DeleteReceivable)

			admin.POST("/purchases", middleware.RequirePermission("purchases:create"), purchasesHandler.CreatePurchase)
			admin.GET("/purchases", middleware.RequirePermission("purchases:read"), purchasesHandler.ListPurchases)
			admin.GET("/purchases/:id", middleware.RequirePermission("purchases:read"), purchasesHandler.GetPurchase)
			admin.PATCH("/purchases/:id", middleware.RequirePermission("purchases:update"), purchasesHandler.UpdatePurchase)
			admin.DELETE("/purchases/:id", middleware.RequirePermission("purchases:delete"), purchasesHandler.DeletePurchase)

			admin.GET("/orders", middleware.RequirePermission("orders:read"), ordersHandler.ListOrders)
			admin.GET("/orders/:id", middleware.RequirePermission("orders:read"), ordersHandler.GetOrder)
			admin.PATCH("/orders/:id/status", middleware.RequirePermission("orders:update"), ordersHandler.UpdateStatus)

			admin.GET("/export/:entity", middleware.RequirePermission("reports:read"), exportHandler.Export)

			admin.PUT("/search-state/:view", searchStateHandler.SaveState)
			admin.GET("/search-state/:view", searchStateHandler.GetState)
			admin.DELETE("/search-state/:view", searchStateHandler.ClearState)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Starting storefront-service")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Forced shutdown")
	}
	logger.Info("Server stopped")
}
