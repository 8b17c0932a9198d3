package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	catalogpostgres "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/application"
	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/catalogstock"
	fulfillmentpostgres "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/persistence/postgres"
	fulfillmentapp "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application"
	platformpostgres "github.com/Apurer/go-retail-backoffice/internal/platform/postgres"
)

// Reconciles the line ledger of the given orders against their shipment
// history. Order IDs are passed as arguments; the pass is idempotent, so
// rerunning after a partial failure is safe.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if len(os.Args) < 2 {
		log.Fatal("usage: ledger-repair <orderId> [orderId...]")
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot repair ledgers")
	}

	repo := fulfillmentpostgres.NewRepository(db)
	catalogService := catalogapp.NewService(catalogpostgres.NewRepository(db))
	service := fulfillmentapp.NewService(repo, repo, catalogstock.New(catalogService))

	for _, arg := range os.Args[1:] {
		orderID, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			log.Fatalf("invalid order id %q: %v", arg, err)
		}
		report, err := service.RepairOrderLedger(ctx, orderID)
		if err != nil {
			log.Fatalf("failed to repair order %d: %v", orderID, err)
		}
		logger.Info("ledger repair completed",
			slog.Int64("orderId", report.OrderID),
			slog.String("orderNumber", report.OrderNumber),
			slog.Int("linesAdjusted", report.LinesAdjusted),
			slog.Int64("unitsRecovered", report.UnitsRecovered),
			slog.Int("manualReview", len(report.ManualReview)),
			slog.String("status", string(report.Status)),
		)
	}
}
