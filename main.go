package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"foodorder/internal/config"
	"foodorder/internal/database"
	"foodorder/internal/handlers"
	"foodorder/internal/logging"
	"foodorder/internal/metrics"
	"foodorder/internal/middleware"
	"foodorder/internal/orders"
)

func main() {
	cfg, dotenvLoaded, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if !dotenvLoaded {
		logger.Info(".env not loaded, using process environment")
	}

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		logger.Fatal("mongo connection failed", zap.Error(err))
	}
	db := client.Database(cfg.DBName)
	logger.Info("MongoDB connected", zap.String("database", db.Name()))

	if err := database.EnsureOrderIndexes(db, logger); err != nil {
		logger.Warn("order index warning", zap.Error(err))
	}
	if err := database.EnsureOrderItemIndexes(db, logger); err != nil {
		logger.Warn("order item index warning", zap.Error(err))
	}
	if err := database.EnsureMealIndexes(db, logger); err != nil {
		logger.Warn("meal index warning", zap.Error(err))
	}

	store := database.NewEntityStore(db)
	opts := []orders.Option{
		orders.WithLogger(logger),
		orders.WithConcurrency(cfg.MealLookupConcurrency),
		orders.WithLocation(cfg.BalanceLocation),
	}
	resolver := orders.NewDetailResolver(store, opts...)
	calculator := orders.NewBalanceCalculator(store, opts...)
	lifecycleOpts := opts
	if cfg.StrictStatusTransitions {
		lifecycleOpts = append(lifecycleOpts, orders.WithStrictTransitions())
	}
	lifecycle := orders.NewLifecycle(store, lifecycleOpts...)

	m := metrics.New()
	env := handlers.Env{Logger: logger, Metrics: m, Timeout: cfg.QueryTimeout}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(logger, m))

	r.GET("/healthz", handlers.Healthz(env, store))
	r.GET("/metrics", gin.WrapH(m.Handler()))

	user := r.Group("/")
	user.Use(middleware.UserAuth(cfg.JWTSecret, logger))
	{
		user.GET("/orders/:id/details", handlers.GetOrderDetails(env, resolver))
		user.POST("/orders/:id/checkout", handlers.CheckoutOrder(env, lifecycle))
		user.POST("/orders/:id/cancel", handlers.CancelOrder(env, lifecycle))
		user.GET("/me/balance", handlers.GetMyBalance(env, calculator))
	}

	seller := r.Group("/seller")
	seller.Use(middleware.SellerAuth(cfg.JWTSecret, logger))
	{
		seller.PATCH("/orders/:id/status", handlers.UpdateOrderStatus(env, lifecycle))
		seller.GET("/shops/:id/balance", handlers.GetShopBalance(env, calculator))
	}

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
