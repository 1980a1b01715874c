package paypal

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/numinix/paypal-rest-api-sub010/pkg/httpclient"
)

const (
	tokenEndpoint          = "/v1/oauth2/token"
	ordersEndpoint         = "/v2/checkout/orders/"
	authorizationsEndpoint = "/v2/payments/authorizations/"
	capturesEndpoint       = "/v2/payments/captures/"
)

// Gateway is the remote processor boundary. It is the only source of truth
// for an order's payment state.
type Gateway interface {
	GetOrderStatus(ctx context.Context, orderTxnID string) (*OrderDetail, error)
	CapturePayment(ctx context.Context, authorizationID string, request CaptureRequest) (*PaymentEntry, error)
	RefundCaptureFull(ctx context.Context, captureID string, request RefundRequest) (*PaymentEntry, error)
	RefundCapturePartial(ctx context.Context, captureID string, request RefundRequest) (*PaymentEntry, error)
	VoidPayment(ctx context.Context, authorizationID string) error
	GetAuthorizationStatus(ctx context.Context, authorizationID string) (*PaymentEntry, error)
	GetCaptureStatus(ctx context.Context, captureID string) (*PaymentEntry, error)
}

type gateway struct {
	client httpclient.HTTPClient
	config Config

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

func NewGateway(cfg Config, client httpclient.HTTPClient) Gateway {
	return &gateway{config: cfg, client: client}
}

func (g *gateway) GetOrderStatus(ctx context.Context, orderTxnID string) (*OrderDetail, error) {
	var detail OrderDetail
	if err := g.get(ctx, ordersEndpoint+orderTxnID, &detail); err != nil {
		return nil, err
	}

	return &detail, nil
}

func (g *gateway) CapturePayment(ctx context.Context, authorizationID string, request CaptureRequest) (*PaymentEntry, error) {
	var capture PaymentEntry
	if err := g.post(ctx, authorizationsEndpoint+authorizationID+"/capture", request, &capture); err != nil {
		return nil, err
	}

	return &capture, nil
}

func (g *gateway) RefundCaptureFull(ctx context.Context, captureID string, request RefundRequest) (*PaymentEntry, error) {
	request.Amount = nil
	return g.refund(ctx, captureID, request)
}

func (g *gateway) RefundCapturePartial(ctx context.Context, captureID string, request RefundRequest) (*PaymentEntry, error) {
	return g.refund(ctx, captureID, request)
}

func (g *gateway) refund(ctx context.Context, captureID string, request RefundRequest) (*PaymentEntry, error) {
	var refund PaymentEntry
	if err := g.post(ctx, capturesEndpoint+captureID+"/refund", request, &refund); err != nil {
		return nil, err
	}

	return &refund, nil
}

// VoidPayment cancels an authorization. A successful void returns no payload,
// only a confirmation status.
func (g *gateway) VoidPayment(ctx context.Context, authorizationID string) error {
	return g.post(ctx, authorizationsEndpoint+authorizationID+"/void", struct{}{}, nil)
}

func (g *gateway) GetAuthorizationStatus(ctx context.Context, authorizationID string) (*PaymentEntry, error) {
	var authorization PaymentEntry
	if err := g.get(ctx, authorizationsEndpoint+authorizationID, &authorization); err != nil {
		return nil, err
	}

	return &authorization, nil
}

func (g *gateway) GetCaptureStatus(ctx context.Context, captureID string) (*PaymentEntry, error) {
	var capture PaymentEntry
	if err := g.get(ctx, capturesEndpoint+captureID, &capture); err != nil {
		return nil, err
	}

	return &capture, nil
}

func (g *gateway) get(ctx context.Context, path string, out any) error {
	headers, err := g.requestHeaders(ctx, false)
	if err != nil {
		return err
	}

	resp, err := g.client.Get(ctx, g.config.BaseURL+path, headers)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func (g *gateway) post(ctx context.Context, path string, body any, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return fmt.Errorf("encoding error: %w", err)
	}

	headers, err := g.requestHeaders(ctx, true)
	if err != nil {
		return err
	}

	resp, err := g.client.Post(ctx, g.config.BaseURL+path, &buf, headers)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return err
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func (g *gateway) requestHeaders(ctx context.Context, mutating bool) (map[string]string, error) {
	token, err := g.token(ctx)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer " + token,
	}
	if mutating {
		headers["PayPal-Request-Id"] = uuid.NewString()
	}

	return headers, nil
}

// token returns a cached client-credentials access token, fetching a fresh
// one when the cached token is within a minute of expiry.
func (g *gateway) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accessToken != "" && time.Now().Before(g.tokenExpiry.Add(-time.Minute)) {
		return g.accessToken, nil
	}

	credentials := base64.StdEncoding.EncodeToString([]byte(g.config.ClientID + ":" + g.config.ClientSecret))
	headers := map[string]string{
		"Content-Type":  "application/x-www-form-urlencoded",
		"Authorization": "Basic " + credentials,
	}

	body := strings.NewReader("grant_type=client_credentials")
	resp, err := g.client.Post(ctx, g.config.BaseURL+tokenEndpoint, body, headers)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", err
	}
	defer resp.Body.Close()

	var token tokenResponse
	if err := decodeResponse(resp, &token); err != nil {
		return "", err
	}

	g.accessToken = token.AccessToken
	g.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)

	return g.accessToken, nil
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding error: %w", err)
		}

		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading error response: %w", err)
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Name == "" {
		apiErr.Name = "UNKNOWN_ERROR"
		apiErr.Message = strings.TrimSpace(string(raw))
	}

	return apiErr
}
