//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/domain"
	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/ports"
	"github.com/Apurer/go-retail-backoffice/internal/platform/migrations"
)

func setupFulfillmentPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("backoffice_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedConfirmedOrder(t *testing.T, repo *Repository, ordered ...int64) *domain.SalesOrder {
	t.Helper()
	lines := make([]domain.OrderLine, 0, len(ordered))
	for i, qty := range ordered {
		lines = append(lines, domain.OrderLine{ProductID: int64(i + 1), Ordered: qty})
	}
	order, err := domain.NewSalesOrder("SO-7001", 1, lines)
	require.NoError(t, err)
	require.NoError(t, order.Confirm(time.Now()))
	saved, err := repo.Save(context.Background(), order)
	require.NoError(t, err)
	return saved
}

func TestRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupFulfillmentPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	saved := seedConfirmedOrder(t, repo, 3, 2)

	fetched, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Number, fetched.Number)
	assert.Equal(t, domain.StatusConfirmed, fetched.Status)
	require.Len(t, fetched.Lines, 2)
	assert.Equal(t, int64(3), fetched.Lines[0].Ordered)

	_, err = repo.GetByID(context.Background(), 99999)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_RecordLineShipment_BoundCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupFulfillmentPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	saved := seedConfirmedOrder(t, repo, 3)
	lineID := saved.Lines[0].ID

	total, err := repo.RecordLineShipment(context.Background(), lineID, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	_, err = repo.RecordLineShipment(context.Background(), lineID, 2)
	assert.ErrorIs(t, err, domain.ErrOverShipment)

	total, err = repo.RecordLineShipment(context.Background(), lineID, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	_, err = repo.RecordLineShipment(context.Background(), 99999, 1)
	assert.ErrorIs(t, err, ports.ErrLineNotFound)
}

// The conditional update carries the bound check into the database, so
// concurrent passes against one line can never jointly exceed the order.
func TestRepository_RecordLineShipment_Concurrent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupFulfillmentPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	const ordered = 10
	saved := seedConfirmedOrder(t, repo, ordered)
	lineID := saved.Lines[0].ID

	var wg sync.WaitGroup
	errs := make(chan error, 30)
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.RecordLineShipment(context.Background(), lineID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	wins := 0
	for err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, domain.ErrOverShipment)
		}
	}
	assert.Equal(t, ordered, wins)

	fetched, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(ordered), fetched.Lines[0].Shipped)
}

func TestRepository_StampFirstShipment_WriteOnce(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupFulfillmentPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	saved := seedConfirmedOrder(t, repo, 3)

	first := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.StampFirstShipment(context.Background(), saved.ID, first, "warehouse-7"))
	require.NoError(t, repo.StampFirstShipment(context.Background(), saved.ID, first.Add(time.Hour), "warehouse-8"))

	fetched, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.FirstShippedAt)
	assert.True(t, fetched.FirstShippedAt.Equal(first))
	assert.Equal(t, "warehouse-7", fetched.ShippedBy)
}

func TestRepository_ShipmentsRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupFulfillmentPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	saved := seedConfirmedOrder(t, repo, 5)

	address := domain.Address{Line1: "1 Main St", City: "Springfield", PostalCode: "12345", Country: "US"}
	shipment, lines, err := domain.NewShipment(saved.ID,
		domain.CarrierInfo{Type: "ups", TrackingNumber: "1Z42"}, address,
		[]domain.ShipmentLine{{OrderLineID: saved.Lines[0].ID, ProductID: 1, Quantity: 2}},
		time.Now().UTC(), "warehouse-7", "dock 3")
	require.NoError(t, err)

	created, err := repo.Create(context.Background(), shipment, lines)
	require.NoError(t, err)
	assert.Equal(t, shipment.ID, created.ID)

	history, err := repo.ListByOrder(context.Background(), saved.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "1Z42", history[0].Carrier.TrackingNumber)
	assert.Equal(t, "dock 3", history[0].Notes)

	shippedLines, err := repo.LinesByOrder(context.Background(), saved.ID)
	require.NoError(t, err)
	require.Len(t, shippedLines, 1)
	assert.Equal(t, saved.Lines[0].ID, shippedLines[0].OrderLineID)
	assert.Equal(t, int64(2), shippedLines[0].Quantity)
}

func TestRepository_UpdateStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupFulfillmentPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	saved := seedConfirmedOrder(t, repo, 3)

	require.NoError(t, repo.UpdateStatus(context.Background(), saved.ID, domain.StatusPartiallyShipped))
	fetched, err := repo.GetByID(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPartiallyShipped, fetched.Status)

	assert.ErrorIs(t, repo.UpdateStatus(context.Background(), 99999, domain.StatusShipped), ports.ErrNotFound)
}
