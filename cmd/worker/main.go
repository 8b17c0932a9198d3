package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	catalogmemory "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/ports"
	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/catalogstock"
	fulfillmentmemory "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/memory"
	fulfillmentobs "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/observability"
	fulfillmentpostgres "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/persistence/postgres"
	fulfillmentapp "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application"
	fulfillmentports "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/ports"
	platformobservability "github.com/Apurer/go-retail-backoffice/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-retail-backoffice/internal/platform/postgres"
	repairactivities "github.com/Apurer/go-retail-backoffice/internal/platform/temporal/activities/fulfillment"
	repairworkflows "github.com/Apurer/go-retail-backoffice/internal/platform/temporal/workflows/fulfillment"
)

func main() {
	ctx := context.Background()
	const serviceName = "retail-backoffice-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	orders, shipments, catalogRepo, cleanupRepos := buildRepositories(ctx, logger)
	defer cleanupRepos()
	catalogService := catalogapp.NewService(catalogRepo)
	fulfillmentService := fulfillmentobs.New(
		fulfillmentapp.NewService(orders, shipments, catalogstock.New(catalogService)),
		fulfillmentobs.WithLogger(logger),
		fulfillmentobs.WithTracer(instruments.Tracer("internal.fulfillment.application")),
		fulfillmentobs.WithMeter(instruments.Meter("internal.fulfillment.application")),
	)
	activities := repairactivities.NewActivities(fulfillmentService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, repairworkflows.LedgerRepairTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(repairworkflows.LedgerRepairWorkflow, workflow.RegisterOptions{Name: repairworkflows.LedgerRepairWorkflowName})
	w.RegisterActivityWithOptions(activities.RepairOrderLedger, activity.RegisterOptions{Name: repairactivities.RepairOrderLedgerActivityName})

	logger.Info("worker listening", slog.String("taskQueue", repairworkflows.LedgerRepairTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildRepositories(ctx context.Context, logger *slog.Logger) (fulfillmentports.OrderRepository, fulfillmentports.ShipmentRepository, catalogports.Repository, func()) {
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		memRepo := fulfillmentmemory.NewRepository()
		return memRepo, memRepo, catalogmemory.NewRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, dsn)
	if err != nil {
		logger.Warn("worker failed to connect to postgres (falling back to memory)", slog.String("error", err.Error()))
		memRepo := fulfillmentmemory.NewRepository()
		return memRepo, memRepo, catalogmemory.NewRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("worker failed to unwrap postgres connection (falling back to memory)", slog.String("error", err.Error()))
		memRepo := fulfillmentmemory.NewRepository()
		return memRepo, memRepo, catalogmemory.NewRepository(), func() {}
	}
	logger.Info("worker repositories configured with postgres")
	repo := fulfillmentpostgres.NewRepository(db)
	return repo, repo, catalogpostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
