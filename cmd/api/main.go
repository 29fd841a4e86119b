package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/nakula/catalog-admin-service/config"
	"github.com/nakula/catalog-admin-service/internal/auth"
	"github.com/nakula/catalog-admin-service/pkg/broker"
	"github.com/nakula/catalog-admin-service/pkg/cache"
	"github.com/nakula/catalog-admin-service/pkg/database/postgres"
	"github.com/nakula/catalog-admin-service/pkg/logger"
	"github.com/nakula/catalog-admin-service/pkg/search"

	attrH "github.com/nakula/catalog-admin-service/internal/attribute/handler"
	attrRepoPkg "github.com/nakula/catalog-admin-service/internal/attribute/repository"
	attrUCPkg "github.com/nakula/catalog-admin-service/internal/attribute/usecase"

	catH "github.com/nakula/catalog-admin-service/internal/category/handler"
	catRepoPkg "github.com/nakula/catalog-admin-service/internal/category/repository"
	catUCPkg "github.com/nakula/catalog-admin-service/internal/category/usecase"

	couponH "github.com/nakula/catalog-admin-service/internal/coupon/handler"
	couponRepoPkg "github.com/nakula/catalog-admin-service/internal/coupon/repository"
	couponUCPkg "github.com/nakula/catalog-admin-service/internal/coupon/usecase"

	lotH "github.com/nakula/catalog-admin-service/internal/lot/handler"
	lotListenerPkg "github.com/nakula/catalog-admin-service/internal/lot/listener"
	lotRepoPkg "github.com/nakula/catalog-admin-service/internal/lot/repository"
	lotUCPkg "github.com/nakula/catalog-admin-service/internal/lot/usecase"

	prodH "github.com/nakula/catalog-admin-service/internal/product/handler"
	prodRepoPkg "github.com/nakula/catalog-admin-service/internal/product/repository"
	prodUCPkg "github.com/nakula/catalog-admin-service/internal/product/usecase"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     false,
		DisableStacktrace: false,
	}

	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = "console"
		logConfig.Level = "debug"
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	attrRepo := attrRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	lotRepo := lotRepoPkg.NewPGRepository(db)
	couponRepo := couponRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka Consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 5.8 Initialize Elasticsearch
	esClient, err := search.NewClient(&search.Config{
		Addresses: cfg.Elastic.Addresses,
		Username:  cfg.Elastic.Username,
		Password:  cfg.Elastic.Password,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Elasticsearch (Search features might be limited)", zap.Error(err))
		esClient = nil
	} else {
		appLogger.Info("Connected to Elasticsearch", zap.Strings("addresses", cfg.Elastic.Addresses))
	}

	// 6. Initialize UseCases
	catUC := catUCPkg.NewCategoryUseCase(catRepo, appLogger)
	attrUC := attrUCPkg.NewAttributeUseCase(attrRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, attrRepo, redisClient, esClient, appLogger)
	lotUC := lotUCPkg.NewLotUseCase(lotRepo, redisClient, appLogger)
	couponUC := couponUCPkg.NewCouponUseCase(couponRepo, appLogger)

	// 6.5 Initialize Listeners
	lotListener := lotListenerPkg.NewLotListener(kafkaConsumer, lotUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go lotListener.Start(ctx)

	// 7. Initialize Handlers and Router
	catHandler := catH.NewCategoryHandler(catUC, appLogger)
	attrHandler := attrH.NewAttributeHandler(attrUC, appLogger)
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	lotHandler := lotH.NewLotHandler(lotUC, appLogger)
	couponHandler := couponH.NewCouponHandler(couponUC, appLogger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(requestLogger(appLogger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(auth.Middleware)
		catHandler.Routes(api)
		attrHandler.Routes(api)
		prodHandler.Routes(api)
		lotHandler.Routes(api)
		couponHandler.Routes(api)
	})

	// 8. Start HTTP Server
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}

func requestLogger(log logger.ZapLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimw.GetReqID(r.Context())),
			)
		})
	}
}
