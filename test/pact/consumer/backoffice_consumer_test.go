//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Apurer/go-retail-backoffice/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type shipmentResult struct {
	Success      bool   `json:"success"`
	OrderNumber  string `json:"orderNumber"`
	NewStatus    string `json:"newStatus"`
	ShipmentID   string `json:"shipmentId"`
	ItemsShipped int    `json:"itemsShipped"`
}

type orderPayload struct {
	ID     int64  `json:"id"`
	Number string `json:"number"`
	Status string `json:"status"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status int
	title  string
	detail string
}

func (e apiError) Error() string {
	msg := e.title
	if msg == "" {
		msg = "api error"
	}
	if e.detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.detail)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.status)
}

func (e apiError) Status() int {
	return e.status
}

func TestWarehousePortalContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")

	shipmentResultMatcher := matchers.Map{
		"success":      matchers.Like(true),
		"orderNumber":  matchers.Like(pacttest.ExampleOrderNumber),
		"newStatus":    matchers.Term("partially_shipped", "partially_shipped|shipped"),
		"shipmentId":   matchers.Like("5f0640ea-5db3-4c03-9e4e-1c2b6e7a9d42"),
		"itemsShipped": matchers.Like(1),
	}

	pact.AddInteraction().
		Given(pacttest.StateOrderShippable).
		UponReceiving("a request to record a shipment against a confirmed order").
		WithRequest("POST", fmt.Sprintf("/v1/orders/%d/shipments", pacttest.ExistingOrderID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.MapMatcher{
				"items": matchers.ArrayMinLike(matchers.Map{
					"orderLineId":    matchers.Like(pacttest.ExistingLineID),
					"productId":      matchers.Like(pacttest.ExistingProduct),
					"quantityToShip": matchers.Like(2),
				}, 1),
				"carrierInfo": matchers.Map{
					"carrierType":    matchers.S("ups"),
					"trackingNumber": matchers.Like(pacttest.ExampleTrackingNumber),
				},
				"shippingAddress": matchers.Map{
					"line1":      matchers.Like("1 Main St"),
					"city":       matchers.Like("Springfield"),
					"postalCode": matchers.Like("12345"),
					"country":    matchers.Like("US"),
				},
			})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(shipmentResultMatcher)
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderShippable).
		UponReceiving("a request to fetch an existing order").
		WithRequest("GET", fmt.Sprintf("/v1/orders/%d", pacttest.ExistingOrderID)).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"id":     matchers.Like(pacttest.ExistingOrderID),
				"number": matchers.Like(pacttest.ExampleOrderNumber),
				"status": matchers.Term("confirmed", "draft|confirmed|partially_shipped|shipped|delivered|cancelled|closed"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a request for a missing order").
		WithRequest("GET", fmt.Sprintf("/v1/orders/%d", pacttest.MissingOrderID)).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderShippable).
		UponReceiving("a request to over-ship an order line").
		WithRequest("POST", fmt.Sprintf("/v1/orders/%d/shipments", pacttest.ExistingOrderID), func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(matchers.MapMatcher{
				"items": matchers.ArrayMinLike(matchers.Map{
					"orderLineId":    matchers.Like(pacttest.ExistingLineID),
					"productId":      matchers.Like(pacttest.ExistingProduct),
					"quantityToShip": matchers.Like(100),
				}, 1),
				"carrierInfo": matchers.Map{
					"carrierType": matchers.S("ups"),
				},
				"shippingAddress": matchers.Map{
					"line1":      matchers.Like("1 Main St"),
					"city":       matchers.Like("Springfield"),
					"postalCode": matchers.Like("12345"),
					"country":    matchers.Like("US"),
				},
			})
		}).
		WillRespondWith(http.StatusConflict, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/over-shipment"),
				"title":  matchers.S("Over-Shipment"),
				"status": matchers.Like(http.StatusConflict),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newBackofficeClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := client.ValidateShipment(ctx, pacttest.ExistingOrderID, 2)
		if err != nil {
			return fmt.Errorf("validate shipment: %w", err)
		}
		if !result.Success || result.ShipmentID == "" {
			return fmt.Errorf("expected successful shipment result, got %+v", result)
		}

		order, err := client.GetOrder(ctx, pacttest.ExistingOrderID)
		if err != nil {
			return fmt.Errorf("get order: %w", err)
		}
		if order.ID != pacttest.ExistingOrderID {
			return fmt.Errorf("expected order id %d, got %+v", pacttest.ExistingOrderID, order)
		}

		if _, err := client.GetOrder(ctx, pacttest.MissingOrderID); err == nil {
			return fmt.Errorf("expected 404 for order %d", pacttest.MissingOrderID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.Status())
		}

		if _, err := client.ValidateShipment(ctx, pacttest.ExistingOrderID, 100); err == nil {
			return fmt.Errorf("expected over-shipment rejection")
		} else if apiErr, ok := err.(apiError); ok && apiErr.Status() != http.StatusConflict {
			return fmt.Errorf("expected 409, got %d", apiErr.Status())
		}

		return nil
	})
	require.NoError(t, err)
}

type backofficeClient struct {
	baseURL    string
	httpClient *http.Client
}

func newBackofficeClient(config pactconsumer.MockServerConfig) *backofficeClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client := &http.Client{Transport: transport, Timeout: 10 * time.Second}
	return &backofficeClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: client,
	}
}

func (c *backofficeClient) ValidateShipment(ctx context.Context, orderID int64, quantity int64) (*shipmentResult, error) {
	payload := pacttest.ExampleShipmentPayload()
	payload["items"] = []map[string]any{
		{
			"orderLineId":    pacttest.ExistingLineID,
			"productId":      pacttest.ExistingProduct,
			"quantityToShip": quantity,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/v1/orders/%d/shipments", c.baseURL, orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var result shipmentResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *backofficeClient) GetOrder(ctx context.Context, id int64) (*orderPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/orders/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		return nil, decodeAPIError(res)
	}

	var payload orderPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func decodeAPIError(res *http.Response) error {
	var problem problemDetail
	_ = json.NewDecoder(res.Body).Decode(&problem)
	status := problem.Status
	if status == 0 {
		status = res.StatusCode
	}
	return apiError{
		status: status,
		title:  problem.Title,
		detail: problem.Detail,
	}
}
