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

	pacttest "github.com/commercekit/go-order-api/test/pact"

	catalogmemory "github.com/commercekit/go-order-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/commercekit/go-order-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/commercekit/go-order-api/internal/domains/catalog/application"
	catalogdomain "github.com/commercekit/go-order-api/internal/domains/catalog/domain"
	customermemory "github.com/commercekit/go-order-api/internal/domains/customers/adapters/memory"
	customerobs "github.com/commercekit/go-order-api/internal/domains/customers/adapters/observability"
	customerapp "github.com/commercekit/go-order-api/internal/domains/customers/application"
	customerdomain "github.com/commercekit/go-order-api/internal/domains/customers/domain"
	orderlocal "github.com/commercekit/go-order-api/internal/domains/orders/adapters/local"
	ordermemory "github.com/commercekit/go-order-api/internal/domains/orders/adapters/memory"
	orderobs "github.com/commercekit/go-order-api/internal/domains/orders/adapters/observability"
	orderworkflows "github.com/commercekit/go-order-api/internal/domains/orders/adapters/workflows"
	orderapp "github.com/commercekit/go-order-api/internal/domains/orders/application"
	orderdomain "github.com/commercekit/go-order-api/internal/domains/orders/domain"
	"github.com/commercekit/go-order-api/internal/transport/httpapi"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestOrderProviderPact(t *testing.T) {
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
		pacttest.StateCatalogSeeded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedBaseline(t)
			}
			return nil, nil
		},
		pacttest.StateOrderExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedBaseline(t)
				app.seedOrder(t, pacttest.ExistingOrderID)
			}
			return nil, nil
		},
		pacttest.StateOrderMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			return nil, nil
		},
		pacttest.StateGadgetShortage: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			if setup {
				app.seedBaseline(t)
				app.seedGadgetShortage(t)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.seedBaseline(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	customerRepo *customermemory.Repository
	productRepo  *catalogmemory.Repository
	orderRepo    *ordermemory.Repository
	server       *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	customerRepo := customermemory.NewRepository()
	productRepo := catalogmemory.NewRepository()
	orderRepo := ordermemory.NewRepository()

	customerService := customerobs.New(customerapp.NewService(customerRepo))
	productService := catalogobs.New(catalogapp.NewService(productRepo))
	orderService := orderobs.New(orderapp.NewService(
		orderRepo,
		orderlocal.NewCustomerDirectory(customerRepo),
		orderlocal.NewProductCatalog(productRepo),
		orderapp.WithIdempotencyStore(ordermemory.NewIdempotencyStore()),
	))
	workflows := orderworkflows.NewInlineOrderWorkflows(orderService)

	handlers := httpapi.ApiHandleFunctions{
		CustomersAPI: httpapi.NewCustomersAPI(customerService),
		ProductsAPI:  httpapi.NewProductsAPI(productService),
		OrdersAPI:    httpapi.NewOrdersAPI(orderService, workflows),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = httpapi.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
		server:       server,
	}
}

// seedBaseline upserts the fixed customer and products, restoring quantities
// consumed by earlier interactions.
func (a *contractProviderApp) seedBaseline(t testing.TB) {
	t.Helper()
	ctx := context.Background()

	customer, err := customerdomain.NewCustomer(pacttest.ExistingCustomerID, "Pact Shopper", "shopper@example.pact")
	require.NoError(t, err)
	_, err = a.customerRepo.Save(ctx, customer)
	require.NoError(t, err)

	widget, err := catalogdomain.NewProduct(pacttest.WidgetProductID, "widget", 9.99, 10)
	require.NoError(t, err)
	_, err = a.productRepo.Save(ctx, widget)
	require.NoError(t, err)

	gadget, err := catalogdomain.NewProduct(pacttest.GadgetProductID, "gadget", 25.50, 3)
	require.NoError(t, err)
	_, err = a.productRepo.Save(ctx, gadget)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedOrder(t testing.TB, id string) {
	t.Helper()
	lineA, err := orderdomain.NewLine(pacttest.WidgetProductID, 9.99, 4)
	require.NoError(t, err)
	lineB, err := orderdomain.NewLine(pacttest.GadgetProductID, 25.50, 1)
	require.NoError(t, err)
	order, err := orderdomain.NewOrder(pacttest.ExistingCustomerID, []orderdomain.Line{lineA, lineB})
	require.NoError(t, err)
	order.ID = id
	_, err = a.orderRepo.Create(context.Background(), order)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedGadgetShortage(t testing.TB) {
	t.Helper()
	gadget, err := catalogdomain.NewProduct(pacttest.GadgetProductID, "gadget", 25.50, 1)
	require.NoError(t, err)
	_, err = a.productRepo.Save(context.Background(), gadget)
	require.NoError(t, err)
}
