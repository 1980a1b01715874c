package paypal_test

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/numinix/paypal-rest-api-sub010/pkg/mocks"
	"github.com/numinix/paypal-rest-api-sub010/pkg/paypal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const baseURL = "https://api.paypal.test"

func testConfig() paypal.Config {
	return paypal.Config{
		BaseURL:      baseURL,
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Timeout:      30 * time.Second,
	}
}

func tokenHeaders() map[string]string {
	credentials := base64.StdEncoding.EncodeToString([]byte("client-id:client-secret"))
	return map[string]string{
		"Content-Type":  "application/x-www-form-urlencoded",
		"Authorization": "Basic " + credentials,
	}
}

func bearerHeaders() map[string]string {
	return map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer test-token",
	}
}

func mutatingHeaders() interface{} {
	return mock.MatchedBy(func(headers map[string]string) bool {
		return headers["Authorization"] == "Bearer test-token" &&
			headers["Content-Type"] == "application/json" &&
			headers["PayPal-Request-Id"] != ""
	})
}

func expectToken(client *mocks.HTTPClient) {
	body := `{"access_token": "test-token", "token_type": "Bearer", "expires_in": 32400}`
	response := &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(strings.NewReader(body)),
	}

	client.On("Post", context.Background(), baseURL+"/v1/oauth2/token", mock.Anything, tokenHeaders()).
		Return(response, nil).Once()
}

func TestGateway_GetOrderStatus(t *testing.T) {
	t.Run("successful lookup", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gateway := paypal.NewGateway(testConfig(), mockClient)

		expectToken(mockClient)

		body := `{
			"id": "5O190127TN364715T",
			"status": "COMPLETED",
			"payment_source": {"paypal": {}},
			"purchase_units": [{
				"payments": {
					"captures": [{
						"id": "2GG1234",
						"status": "COMPLETED",
						"amount": {"currency_code": "USD", "value": "50.00"},
						"links": [{"href": "https://api.paypal.test/v2/payments/authorizations/0VF5678", "rel": "up"}]
					}]
				}
			}]
		}`

		response := &http.Response{
			StatusCode: 200,
			Body:       io.NopCloser(strings.NewReader(body)),
		}

		mockClient.On("Get", context.Background(), baseURL+"/v2/checkout/orders/5O190127TN364715T",
			bearerHeaders()).Return(response, nil)

		detail, err := gateway.GetOrderStatus(context.Background(), "5O190127TN364715T")

		assert.NoError(t, err)
		assert.Equal(t, "COMPLETED", detail.Status)
		assert.Equal(t, "paypal", paypal.PrimaryPaymentSource(detail.PaymentSource))
		assert.Len(t, detail.PurchaseUnits, 1)
		assert.Len(t, detail.PurchaseUnits[0].Payments["captures"], 1)
		mockClient.AssertExpectations(t)
	})

	t.Run("structured API error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gateway := paypal.NewGateway(testConfig(), mockClient)

		expectToken(mockClient)

		body := `{
			"name": "RESOURCE_NOT_FOUND",
			"message": "The specified resource does not exist.",
			"debug_id": "b6b9a374802ea",
			"details": [{"issue": "INVALID_RESOURCE_ID", "description": "Specified resource ID does not exist."}]
		}`

		response := &http.Response{
			StatusCode: 404,
			Body:       io.NopCloser(strings.NewReader(body)),
		}

		mockClient.On("Get", context.Background(), baseURL+"/v2/checkout/orders/MISSING",
			bearerHeaders()).Return(response, nil)

		detail, err := gateway.GetOrderStatus(context.Background(), "MISSING")

		assert.Nil(t, detail)

		var apiErr *paypal.APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.StatusCode)
		assert.Equal(t, "RESOURCE_NOT_FOUND", apiErr.Name)
		assert.Equal(t, "INVALID_RESOURCE_ID: Specified resource ID does not exist.", apiErr.UserMessage())
		mockClient.AssertExpectations(t)
	})

	t.Run("timeout maps to sentinel", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gateway := paypal.NewGateway(testConfig(), mockClient)

		expectToken(mockClient)

		mockClient.On("Get", context.Background(), baseURL+"/v2/checkout/orders/SLOW",
			bearerHeaders()).Return((*http.Response)(nil), context.DeadlineExceeded)

		_, err := gateway.GetOrderStatus(context.Background(), "SLOW")

		assert.ErrorIs(t, err, paypal.ErrTimeout)
		mockClient.AssertExpectations(t)
	})

	t.Run("token is cached across calls", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gateway := paypal.NewGateway(testConfig(), mockClient)

		expectToken(mockClient)

		for _, id := range []string{"FIRST", "SECOND"} {
			response := &http.Response{
				StatusCode: 200,
				Body:       io.NopCloser(strings.NewReader(`{"id": "` + id + `", "status": "CREATED"}`)),
			}
			mockClient.On("Get", context.Background(), baseURL+"/v2/checkout/orders/"+id,
				bearerHeaders()).Return(response, nil)
		}

		_, err := gateway.GetOrderStatus(context.Background(), "FIRST")
		assert.NoError(t, err)

		_, err = gateway.GetOrderStatus(context.Background(), "SECOND")
		assert.NoError(t, err)

		mockClient.AssertExpectations(t)
		mockClient.AssertNumberOfCalls(t, "Post", 1)
	})
}

func TestGateway_CapturePayment(t *testing.T) {
	t.Run("successful capture", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gateway := paypal.NewGateway(testConfig(), mockClient)

		expectToken(mockClient)

		body := `{
			"id": "2GG1234",
			"status": "COMPLETED",
			"amount": {"currency_code": "USD", "value": "50.00"},
			"seller_receivable_breakdown": {
				"gross_amount": {"currency_code": "USD", "value": "50.00"},
				"paypal_fee": {"currency_code": "USD", "value": "2.24"},
				"net_amount": {"currency_code": "USD", "value": "47.76"}
			}
		}`

		response := &http.Response{
			StatusCode: 201,
			Body:       io.NopCloser(strings.NewReader(body)),
		}

		mockClient.On("Post", context.Background(), baseURL+"/v2/payments/authorizations/0VF5678/capture",
			mock.Anything, mutatingHeaders()).Return(response, nil)

		request := paypal.CaptureRequest{
			Amount:       &paypal.Amount{CurrencyCode: "USD", Value: "50.00"},
			InvoiceID:    "PAYPALR-1045",
			FinalCapture: true,
		}

		capture, err := gateway.CapturePayment(context.Background(), "0VF5678", request)

		assert.NoError(t, err)
		assert.Equal(t, "2GG1234", capture.ID)
		assert.Equal(t, "COMPLETED", capture.Status)
		assert.Equal(t, "2.24", capture.SellerReceivableBreakdown.PaypalFee.Value)
		mockClient.AssertExpectations(t)
	})
}

func TestGateway_VoidPayment(t *testing.T) {
	t.Run("void returns no payload", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gateway := paypal.NewGateway(testConfig(), mockClient)

		expectToken(mockClient)

		response := &http.Response{
			StatusCode: 204,
			Body:       io.NopCloser(strings.NewReader("")),
		}

		mockClient.On("Post", context.Background(), baseURL+"/v2/payments/authorizations/0VF5678/void",
			mock.Anything, mutatingHeaders()).Return(response, nil)

		err := gateway.VoidPayment(context.Background(), "0VF5678")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("void failure surfaces API error", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gateway := paypal.NewGateway(testConfig(), mockClient)

		expectToken(mockClient)

		body := `{
			"name": "UNPROCESSABLE_ENTITY",
			"message": "The requested action could not be performed.",
			"debug_id": "c1d2e3",
			"details": [{"issue": "PREVIOUSLY_CAPTURED", "description": "Authorization has been previously captured."}]
		}`

		response := &http.Response{
			StatusCode: 422,
			Body:       io.NopCloser(strings.NewReader(body)),
		}

		mockClient.On("Post", context.Background(), baseURL+"/v2/payments/authorizations/0VF5678/void",
			mock.Anything, mutatingHeaders()).Return(response, nil)

		err := gateway.VoidPayment(context.Background(), "0VF5678")

		var apiErr *paypal.APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "PREVIOUSLY_CAPTURED: Authorization has been previously captured.", apiErr.UserMessage())
		mockClient.AssertExpectations(t)
	})

	t.Run("network error is returned as-is", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gateway := paypal.NewGateway(testConfig(), mockClient)

		expectToken(mockClient)

		networkErr := errors.New("connection reset")
		mockClient.On("Post", context.Background(), baseURL+"/v2/payments/authorizations/0VF5678/void",
			mock.Anything, mutatingHeaders()).Return((*http.Response)(nil), networkErr)

		err := gateway.VoidPayment(context.Background(), "0VF5678")

		assert.ErrorIs(t, err, networkErr)
		mockClient.AssertExpectations(t)
	})
}

func TestGateway_RefundCapture(t *testing.T) {
	t.Run("full refund sends no amount", func(t *testing.T) {
		mockClient := &mocks.HTTPClient{}
		gateway := paypal.NewGateway(testConfig(), mockClient)

		expectToken(mockClient)

		body := `{
			"id": "1JU0870",
			"status": "COMPLETED",
			"amount": {"currency_code": "USD", "value": "50.00"}
		}`

		response := &http.Response{
			StatusCode: 201,
			Body:       io.NopCloser(strings.NewReader(body)),
		}

		mockClient.On("Post", context.Background(), baseURL+"/v2/payments/captures/2GG1234/refund",
			mock.MatchedBy(func(reader io.Reader) bool {
				raw, err := io.ReadAll(reader)
				if err != nil {
					return false
				}
				return !strings.Contains(string(raw), `"amount"`)
			}), mutatingHeaders()).Return(response, nil)

		request := paypal.RefundRequest{
			Amount:    &paypal.Amount{CurrencyCode: "USD", Value: "50.00"},
			InvoiceID: "PAYPALR-1045",
		}

		refund, err := gateway.RefundCaptureFull(context.Background(), "2GG1234", request)

		assert.NoError(t, err)
		assert.Equal(t, "1JU0870", refund.ID)
		mockClient.AssertExpectations(t)
	})
}
