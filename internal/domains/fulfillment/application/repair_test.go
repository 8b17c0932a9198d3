package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/memory"
	types "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application/types"
	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/domain"
	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/ports"
)

// orphanShipment persists a shipment with its lines without touching the
// order ledger, reproducing the state left behind by a crash between the
// shipment insert and the line updates.
func orphanShipment(t *testing.T, repo *memory.Repository, order *domain.SalesOrder, shippedAt time.Time, quantities map[int64]int64) {
	t.Helper()
	lines := make([]domain.ShipmentLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		qty, ok := quantities[line.ID]
		if !ok {
			continue
		}
		lines = append(lines, domain.ShipmentLine{OrderLineID: line.ID, ProductID: line.ProductID, Quantity: qty})
	}
	shipment, lines, err := domain.NewShipment(order.ID,
		domain.CarrierInfo{Type: "ups"},
		domain.Address{Line1: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"},
		lines, shippedAt, "warehouse-7", "")
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), shipment, lines)
	require.NoError(t, err)
}

func TestRepairOrderLedger_CatchesUpFromShipments(t *testing.T) {
	svc, repo := newTestService(stubStock{})
	order := confirmedOrder(t, svc,
		types.OrderLineInput{ProductID: 1, Quantity: 4},
		types.OrderLineInput{ProductID: 2, Quantity: 2},
	)
	shippedAt := time.Date(2024, 5, 9, 8, 0, 0, 0, time.UTC)
	orphanShipment(t, repo, order, shippedAt, map[int64]int64{
		order.Lines[0].ID: 4,
		order.Lines[1].ID: 1,
	})

	report, err := svc.RepairOrderLedger(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, order.ID, report.OrderID)
	require.Equal(t, order.Number, report.OrderNumber)
	require.Equal(t, 2, report.LinesAdjusted)
	require.Equal(t, int64(5), report.UnitsRecovered)
	require.Empty(t, report.ManualReview)
	require.Equal(t, domain.StatusPartiallyShipped, report.Status)

	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, int64(4), stored.Lines[0].Shipped)
	require.Equal(t, int64(1), stored.Lines[1].Shipped)
	require.Equal(t, domain.StatusPartiallyShipped, stored.Status)
	require.NotNil(t, stored.FirstShippedAt)
	require.True(t, stored.FirstShippedAt.Equal(shippedAt))
	require.Equal(t, "warehouse-7", stored.ShippedBy)
}

func TestRepairOrderLedger_FullCatchUpMarksShipped(t *testing.T) {
	svc, repo := newTestService(stubStock{})
	order := confirmedOrder(t, svc, types.OrderLineInput{ProductID: 1, Quantity: 3})
	orphanShipment(t, repo, order, time.Now(), map[int64]int64{order.Lines[0].ID: 3})

	report, err := svc.RepairOrderLedger(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusShipped, report.Status)
	require.Equal(t, int64(3), report.UnitsRecovered)
}

func TestRepairOrderLedger_IdempotentOnConsistentOrder(t *testing.T) {
	svc, repo := newTestService(stubStock{1: 50})
	order := confirmedOrder(t, svc, types.OrderLineInput{ProductID: 1, Quantity: 3})

	_, err := svc.ValidateShipment(context.Background(),
		shipmentInput(order.ID, types.ShipmentItemInput{OrderLineID: order.Lines[0].ID, ProductID: 1, QuantityToShip: 2}))
	require.NoError(t, err)

	before, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)

	report, err := svc.RepairOrderLedger(context.Background(), order.ID)
	require.NoError(t, err)
	require.Zero(t, report.LinesAdjusted)
	require.Zero(t, report.UnitsRecovered)
	require.Empty(t, report.ManualReview)
	require.Equal(t, before.Status, report.Status)

	after, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, before.Lines, after.Lines)
	require.True(t, after.FirstShippedAt.Equal(*before.FirstShippedAt))
}

func TestRepairOrderLedger_LedgerAheadFlagsManualReview(t *testing.T) {
	svc, repo := newTestService(stubStock{1: 50})
	order := confirmedOrder(t, svc, types.OrderLineInput{ProductID: 1, Quantity: 4})

	// Ledger says two units shipped, but no shipment row backs them up.
	_, err := repo.RecordLineShipment(context.Background(), order.Lines[0].ID, 2)
	require.NoError(t, err)

	report, err := svc.RepairOrderLedger(context.Background(), order.ID)
	require.NoError(t, err)
	require.Zero(t, report.LinesAdjusted)
	require.Equal(t, []int64{order.Lines[0].ID}, report.ManualReview)

	// Quantities are never decremented by a repair pass.
	stored, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), stored.Lines[0].Shipped)
}

func TestRepairOrderLedger_UnknownOrder(t *testing.T) {
	svc, _ := newTestService(stubStock{})
	_, err := svc.RepairOrderLedger(context.Background(), 404)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
