package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fekuna/omnipos-stock-ledger/config"
	"github.com/fekuna/omnipos-stock-ledger/internal/customer"
	"github.com/fekuna/omnipos-stock-ledger/internal/inventory"
	"github.com/fekuna/omnipos-stock-ledger/internal/ledger"
	"github.com/fekuna/omnipos-stock-ledger/internal/order"
	"github.com/fekuna/omnipos-stock-ledger/internal/report"
	"github.com/fekuna/omnipos-stock-ledger/internal/storage/memory"
	pgstore "github.com/fekuna/omnipos-stock-ledger/internal/storage/postgres"
	"github.com/fekuna/omnipos-stock-ledger/migrations"
	stockv1 "github.com/fekuna/omnipos-stock-ledger/pkg/api/stockv1"
	"github.com/fekuna/omnipos-stock-ledger/pkg/broker"
	"github.com/fekuna/omnipos-stock-ledger/pkg/cache"
	"github.com/fekuna/omnipos-stock-ledger/pkg/database/postgres"
	"github.com/fekuna/omnipos-stock-ledger/pkg/logger"
	"github.com/fekuna/omnipos-stock-ledger/pkg/middleware"
	"github.com/fekuna/omnipos-stock-ledger/pkg/tracing"

	custH "github.com/fekuna/omnipos-stock-ledger/internal/customer/handler"
	custUCPkg "github.com/fekuna/omnipos-stock-ledger/internal/customer/usecase"

	invH "github.com/fekuna/omnipos-stock-ledger/internal/inventory/handler"
	invPublisherPkg "github.com/fekuna/omnipos-stock-ledger/internal/inventory/publisher"
	invUCPkg "github.com/fekuna/omnipos-stock-ledger/internal/inventory/usecase"

	orderH "github.com/fekuna/omnipos-stock-ledger/internal/order/handler"
	orderListenerPkg "github.com/fekuna/omnipos-stock-ledger/internal/order/listener"
	orderUCPkg "github.com/fekuna/omnipos-stock-ledger/internal/order/usecase"

	reportH "github.com/fekuna/omnipos-stock-ledger/internal/report/handler"
	reportUCPkg "github.com/fekuna/omnipos-stock-ledger/internal/report/usecase"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// backend is what every storage driver provides.
type backend interface {
	ledger.TxManager
	inventory.Repository
	order.Repository
	customer.Repository
	report.Repository
}

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "development" || cfg.Server.AppEnv == "dev" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Tracing
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.Setup(ctx, &tracing.Config{
			ServiceName:    "omnipos-stock-ledger",
			ServiceVersion: "1.0.0",
			Endpoint:       cfg.Tracing.Endpoint,
			Insecure:       cfg.Tracing.Insecure,
		})
		if err != nil {
			appLogger.Fatal("Could not set up tracing", zap.Error(err))
		}
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer scancel()
			_ = shutdown(sctx)
		}()
		appLogger.Info("Tracing enabled", zap.String("endpoint", cfg.Tracing.Endpoint))
	}

	// 4. Storage
	var store backend
	switch cfg.Storage.Driver {
	case "memory":
		store = memory.NewStore()
		appLogger.Warn("Using in-memory storage; data is lost on exit")
	case "postgres":
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

		if cfg.Postgres.Migrate {
			if err := postgres.Migrate(db.DB, migrations.FS); err != nil {
				appLogger.Fatal("Could not apply migrations", zap.Error(err))
			}
			appLogger.Info("Database migrations applied")
		}
		store = pgstore.NewStore(db)
	default:
		appLogger.Fatal("Unknown storage driver", zap.String("driver", cfg.Storage.Driver))
	}

	// 5. Redis report cache
	var reportCache reportUCPkg.Cache
	var notifiers []ledger.Notifier
	if cfg.Redis.Enabled {
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
		reportCache = redisClient
		notifiers = append(notifiers, reportUCPkg.NewInvalidator(redisClient))
	}

	// 6. Kafka movement publisher
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.MovementsTopic,
		})
		defer producer.Close()
		notifiers = append(notifiers, invPublisherPkg.NewMovementPublisher(producer))
		appLogger.Info("Publishing stock movements", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.MovementsTopic))
	}

	// 7. Initialize UseCases
	writer := ledger.NewWriter(store, ledger.Config{
		AllowNegativeStock: cfg.Ledger.AllowNegativeStock,
		OperationTimeout:   cfg.Ledger.OperationTimeout,
		MaxRetries:         cfg.Ledger.MaxRetries,
	}, appLogger, notifiers...)

	custUC := custUCPkg.NewCustomerUseCase(store, appLogger)
	invUC := invUCPkg.NewInventoryUseCase(store, writer, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(store, store, writer, appLogger)
	reportUC := reportUCPkg.NewReportUseCase(store, reportCache, cfg.Report.CacheTTL, appLogger)

	if cfg.Storage.Driver == "memory" && cfg.Storage.Seed {
		if err := seed(ctx, custUC, invUC, orderUC); err != nil {
			appLogger.Fatal("Could not seed demo data", zap.Error(err))
		}
		appLogger.Info("Seeded demo data")
	}

	// 8. Kafka order listener
	if cfg.Kafka.Enabled {
		kafkaConsumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.OrdersTopic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer kafkaConsumer.Close()
		orderListener := orderListenerPkg.NewOrderListener(kafkaConsumer, orderUC, appLogger)
		go orderListener.Start(ctx)
		appLogger.Info("Listening for order requests", zap.String("topic", cfg.Kafka.OrdersTopic), zap.String("group", cfg.Kafka.GroupID))
	}

	// 9. Start gRPC Server
	port := cfg.Server.GRPCPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	lis, err := net.Listen("tcp", port)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.ContextInterceptor(),
			middleware.LoggingInterceptor(appLogger),
		),
	)

	// Register Services
	stockv1.RegisterInventoryServiceServer(grpcServer, invH.NewInventoryHandler(invUC, appLogger))
	stockv1.RegisterOrderServiceServer(grpcServer, orderH.NewOrderHandler(orderUC, appLogger))
	stockv1.RegisterCustomerServiceServer(grpcServer, custH.NewCustomerHandler(custUC, appLogger))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Register Reflection
	reflection.Register(grpcServer)

	appLogger.Info("Starting gRPC server", zap.String("port", port))
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// 10. Start HTTP reporting server
	httpPort := cfg.Server.HTTPPort
	if !strings.HasPrefix(httpPort, ":") {
		httpPort = ":" + httpPort
	}
	router := mux.NewRouter()
	reportH.NewReportHandler(reportUC, appLogger).Register(router)
	httpServer := &http.Server{
		Addr:              httpPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", httpPort))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve http", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	healthServer.Shutdown()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Warn("HTTP server shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	appLogger.Info("Server stopped")
}
