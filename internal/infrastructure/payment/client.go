// Package payment talks to the external payment processor's REST API.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DanielPopoola/ficmart-storefront/internal/config"
)

// Processor is the subset of the processor API the storefront uses.
type Processor interface {
	CreatePaymentIntent(ctx context.Context, req CreateIntentRequest, idempotencyKey string) (*IntentResponse, error)
}

type HTTPClient struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(cfg config.PaymentConfig) *HTTPClient {
	return &HTTPClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		secretKey: cfg.SecretKey,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

// CreatePaymentIntent creates a card payment intent tagged with the order ID,
// which the processor echoes back in webhook events.
func (c *HTTPClient) CreatePaymentIntent(ctx context.Context, req CreateIntentRequest, idempotencyKey string) (*IntentResponse, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountCents, 10))
	form.Set("currency", req.Currency)
	form.Add("payment_method_types[]", "card")
	form.Set("metadata[order_id]", req.OrderID)
	if req.ReceiptEmail != "" {
		form.Set("receipt_email", req.ReceiptEmail)
	}

	u := fmt.Sprintf("%s/v1/payment_intents", c.baseURL)
	return sendRequest[IntentResponse](c, ctx, http.MethodPost, u, form, idempotencyKey)
}

func sendRequest[Resp any](c *HTTPClient, ctx context.Context, method, u string, form url.Values, idempotencyKey string) (*Resp, error) {
	var bodyReader io.Reader
	if form != nil {
		bodyReader = strings.NewReader(form.Encode())
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		var envelope errorEnvelope
		if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error.Message == "" {
			return nil, &ProcessorError{
				Code:       "unexpected_response",
				Message:    strings.TrimSpace(string(body)),
				StatusCode: resp.StatusCode,
			}
		}
		return nil, &ProcessorError{
			Type:       envelope.Error.Type,
			Code:       envelope.Error.Code,
			Message:    envelope.Error.Message,
			StatusCode: resp.StatusCode,
		}
	}

	var out Resp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &out, nil
}
