//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-retail-backoffice/test/pact"

	backofficeserver "github.com/Apurer/go-retail-backoffice/server"

	catalogmemory "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/application"
	catalogdomain "github.com/Apurer/go-retail-backoffice/internal/domains/catalog/domain"
	customersmemory "github.com/Apurer/go-retail-backoffice/internal/domains/customers/adapters/memory"
	customersapp "github.com/Apurer/go-retail-backoffice/internal/domains/customers/application"
	"github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/catalogstock"
	fulfillmentmemory "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/memory"
	fulfillmentobs "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/observability"
	fulfillmentworkflows "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/adapters/workflows"
	fulfillmentapp "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/application"
	fulfillmentdomain "github.com/Apurer/go-retail-backoffice/internal/domains/fulfillment/domain"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestBackofficeProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateOrdersBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
		pacttest.StateOrderShippable: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedShippableOrder(t)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.seedShippableOrder(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	fulfillmentRepo *fulfillmentmemory.Repository
	catalogRepo     *catalogmemory.Repository
	server          *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	fulfillmentRepo := fulfillmentmemory.NewRepository()
	catalogRepo := catalogmemory.NewRepository()
	catalogService := catalogapp.NewService(catalogRepo)
	customersService := customersapp.NewService(customersmemory.NewRepository())

	fulfillmentService := fulfillmentobs.New(
		fulfillmentapp.NewService(fulfillmentRepo, fulfillmentRepo, catalogstock.New(catalogService)),
	)
	workflows := fulfillmentworkflows.NewInlineLedgerRepairs(fulfillmentService)

	handlers := backofficeserver.ApiHandleFunctions{
		FulfillmentAPI: backofficeserver.NewFulfillmentAPI(fulfillmentService, workflows),
		CatalogAPI:     backofficeserver.NewCatalogAPI(catalogService),
		CustomersAPI:   backofficeserver.NewCustomersAPI(customersService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = backofficeserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		fulfillmentRepo: fulfillmentRepo,
		catalogRepo:     catalogRepo,
		server:          server,
	}
}

// seedShippableOrder resets order 301 to a freshly confirmed state with a
// single unshipped line, and makes sure product 77 has stock on hand.
// Saving under the same IDs overwrites whatever an earlier interaction left.
func (a *contractProviderApp) seedShippableOrder(t testing.TB) {
	t.Helper()

	product := &catalogdomain.Product{
		ID:     pacttest.ExistingProduct,
		SKU:    "SKU-PACT-77",
		Name:   "Pact Widget",
		OnHand: 100,
		Active: true,
	}
	_, err := a.catalogRepo.Save(context.Background(), product)
	require.NoError(t, err)

	order, err := fulfillmentdomain.NewSalesOrder(pacttest.ExampleOrderNumber, 1, []fulfillmentdomain.OrderLine{
		{ID: pacttest.ExistingLineID, ProductID: pacttest.ExistingProduct, Ordered: pacttest.ExistingOrderQty},
	})
	require.NoError(t, err)
	order.ID = pacttest.ExistingOrderID
	require.NoError(t, order.Confirm(time.Now()))
	_, err = a.fulfillmentRepo.Save(context.Background(), order)
	require.NoError(t, err)
}
