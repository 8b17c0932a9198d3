package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	backofficeserver "github.com/Apurer/go-retail-backoffice/server"

	catalogmemory "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/ports"
	customersmemory "github.com/Apurer/go-retail-backoffice/internal/domains/customers/adapters/memory"
	customerspostgres "github.com/Apurer/go-retail-backoffice/internal/domains/customers/adapters/persistence/postgres"
	customersapp "github.com/Apurer/go-retail-backoffice/internal/domains/customers/application"
	customersports "github.com/Apurer/go-retail-backoffice/internal/domains/customers/ports"
	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/catalogstock"
	fulfillmentmemory "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/memory"
	fulfillmentobs "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/observability"
	fulfillmentpostgres "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/persistence/postgres"
	fulfillmentworkflows "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/workflows"
	fulfillmentapp "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application"
	fulfillmentports "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/ports"
	platformobservability "github.com/Apurer/go-retail-backoffice/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-retail-backoffice/internal/platform/postgres"
)

// Run boots the back-office HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "retail-backoffice-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repos, cleanupRepos := buildRepositories(ctx, logger, cfg.PostgresDSN)
	defer cleanupRepos()

	catalogService := catalogapp.NewService(repos.catalog)
	customersService := customersapp.NewService(repos.customers)

	coreFulfillment := fulfillmentapp.NewService(repos.orders, repos.shipments, catalogstock.New(catalogService))
	fulfillmentService := fulfillmentobs.New(
		coreFulfillment,
		fulfillmentobs.WithLogger(logger),
		fulfillmentobs.WithTracer(instruments.Tracer("internal.fulfillment.application")),
		fulfillmentobs.WithMeter(instruments.Meter("internal.fulfillment.application")),
	)

	var ledgerRepairs fulfillmentports.WorkflowOrchestrator = fulfillmentworkflows.NewInlineLedgerRepairs(fulfillmentService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running ledger repairs inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		ledgerRepairs = fulfillmentworkflows.NewTemporalLedgerRepairs(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := backofficeserver.ApiHandleFunctions{
		FulfillmentAPI: backofficeserver.NewFulfillmentAPI(fulfillmentService, ledgerRepairs),
		CatalogAPI:     backofficeserver.NewCatalogAPI(catalogService),
		CustomersAPI:   backofficeserver.NewCustomersAPI(customersService),
	}

	router := backofficeserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("back-office API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("back-office API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

type repositories struct {
	orders    fulfillmentports.OrderRepository
	shipments fulfillmentports.ShipmentRepository
	catalog   catalogports.Repository
	customers customersports.Repository
}

func buildRepositories(ctx context.Context, logger *slog.Logger, dsn string) (repositories, func()) {
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memoryRepositories(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memoryRepositories(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return memoryRepositories(), func() {}
	}
	logger.Info("repositories configured with postgres")
	fulfillmentRepo := fulfillmentpostgres.NewRepository(db)
	return repositories{
		orders:    fulfillmentRepo,
		shipments: fulfillmentRepo,
		catalog:   catalogpostgres.NewRepository(db),
		customers: customerspostgres.NewRepository(db),
	}, func() { _ = sqlDB.Close() }
}

func memoryRepositories() repositories {
	fulfillmentRepo := fulfillmentmemory.NewRepository()
	return repositories{
		orders:    fulfillmentRepo,
		shipments: fulfillmentRepo,
		catalog:   catalogmemory.NewRepository(),
		customers: customersmemory.NewRepository(),
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
