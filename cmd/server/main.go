package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	billingcommand "github.com/ndumiso/bizstock/internal/billing/usecase/command"
	"github.com/ndumiso/bizstock/kafka"
	"github.com/ndumiso/bizstock/pkg/database"
	"github.com/ndumiso/bizstock/pkg/logger"
	"github.com/ndumiso/bizstock/pkg/tracing"
	"github.com/ndumiso/bizstock/web"

	billinghttp "github.com/ndumiso/bizstock/internal/billing/delivery/http"
	billingrepo "github.com/ndumiso/bizstock/internal/billing/repository"
	cataloghttp "github.com/ndumiso/bizstock/internal/catalog/delivery/http"
	catalogrepo "github.com/ndumiso/bizstock/internal/catalog/repository"
	customerhttp "github.com/ndumiso/bizstock/internal/customer/delivery/http"
	customerrepo "github.com/ndumiso/bizstock/internal/customer/repository"
	dashboardhttp "github.com/ndumiso/bizstock/internal/dashboard/delivery/http"
	dashboardquery "github.com/ndumiso/bizstock/internal/dashboard/usecase/query"
	manufacturingrepo "github.com/ndumiso/bizstock/internal/manufacturing/repository"
	vendorhttp "github.com/ndumiso/bizstock/internal/vendors/delivery/http"
	vendorrepo "github.com/ndumiso/bizstock/internal/vendors/repository"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	serviceName := getEnv("OTEL_SERVICE_NAME", "bizstock")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	ctx := context.Background()
	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting bizstock server")

	// Tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Tracing disabled")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(shutdownCtx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
			}
		}()
	}

	// Database
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "bizstock"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	// Separate plain connection for the health check
	healthDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer healthDB.Close()

	// Repositories and migrations
	vendors := vendorrepo.NewGormVendorRepository(db)
	products := catalogrepo.NewGormProductRepository(db)
	categories := catalogrepo.NewGormCategoryRepository(db)
	customers := customerrepo.NewGormCustomerRepository(db)
	billing := billingrepo.NewGormBillingRepositoryWithTracing(db)
	jobs := manufacturingrepo.NewGormJobRepository(db)

	for _, migrate := range []func() error{
		vendors.AutoMigrate,
		products.AutoMigrate,
		customers.AutoMigrate,
		billing.AutoMigrate,
		jobs.AutoMigrate,
	} {
		if err := migrate(); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	// Kafka publisher is optional; without brokers events are skipped
	var publisher billingcommand.EventPublisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		p, err := kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka disabled")
		} else {
			publisher = p
			defer p.Close()
		}
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load templates")
	}

	// Handlers
	createInvoice := billingcommand.NewCreateInvoiceHandler(billing, products, publisher)
	dashboard := dashboardquery.NewGetDashboardHandler(products, categories, billing, jobs)

	vendorHandler := vendorhttp.NewVendorHandler(vendors, renderer)
	catalogHandler := cataloghttp.NewCatalogHandler(products, categories)
	customerHandler := customerhttp.NewCustomerHandler(customers)
	billingHandler := billinghttp.NewBillingHandler(createInvoice)
	dashboardHandler := dashboardhttp.NewDashboardHandler(dashboard, customers, categories, renderer)

	router := mux.NewRouter()
	vendorHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router, vendorhttp.RequireSession)
	customerHandler.RegisterRoutes(router, vendorhttp.RequireSession)
	billingHandler.RegisterRoutes(router, vendorhttp.RequireSession)
	dashboardHandler.RegisterRoutes(router, vendorhttp.RequireSession)
	dashboardHandler.RegisterHealthCheck(router, healthDB)
	router.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	port := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: otelhttp.NewHandler(c.Handler(router), "http.server"),
	}

	go func() {
		logger.Logger.Info().
			Str("port", port).
			Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
