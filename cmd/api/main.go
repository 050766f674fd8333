package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/printlabth/printlab-backend/api/controllers"
	"github.com/printlabth/printlab-backend/api/routes"
	"github.com/printlabth/printlab-backend/internal/orders"
	"github.com/printlabth/printlab-backend/internal/pricing"
	"github.com/printlabth/printlab-backend/internal/products"
	"github.com/printlabth/printlab-backend/internal/users"
	"github.com/printlabth/printlab-backend/pkg/config"
	"github.com/printlabth/printlab-backend/pkg/db"
	"github.com/printlabth/printlab-backend/pkg/logger"
	"github.com/printlabth/printlab-backend/pkg/metrics"
	"github.com/printlabth/printlab-backend/pkg/migrate"
	"github.com/printlabth/printlab-backend/pkg/redis"
	"github.com/printlabth/printlab-backend/pkg/storage/local"
	"github.com/printlabth/printlab-backend/pkg/telegram"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" || cfg.Redis.Address != "" {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, catalog cache disabled")
	}

	fileStore, err := local.NewStore(cfg.Upload.Dir, cfg.Upload.PublicPath)
	if err != nil {
		logg.Error(context.Background(), "failed to init file store", err)
		os.Exit(1)
	}

	var notifier orders.Notifier
	if cfg.Telegram.Enabled() {
		telegramClient, err := telegram.NewClient(context.Background(), cfg.Telegram, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to init telegram client", err)
			os.Exit(1)
		}
		notifier = telegramClient
	} else {
		logg.Warn(context.Background(), "telegram not configured, order notifications disabled")
	}

	registry := prometheus.NewRegistry()
	intakeMetrics := metrics.NewIntakeMetrics(registry)

	engine := pricing.NewEngine()

	var productCache products.Cache
	if redisClient != nil {
		productCache = redisClient
	}
	productService, err := products.NewService(
		products.NewRepository(dbClient.DB()),
		productCache,
		cfg.Catalog.CacheTTL,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		users.NewRepository(dbClient.DB()),
		engine,
		dbClient,
		fileStore,
		notifier,
		intakeMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	var redisPinger controllers.Pinger
	if redisClient != nil {
		redisPinger = redisClient
	}
	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisPinger,
			PricingEngine:  engine,
			OrdersService:  orderService,
			ProductService: productService,
			Metrics:        registry,
			UploadDir:      fileStore.Dir(),
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
