package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/ficmart-storefront/internal/webhook"
	"github.com/stretchr/testify/require"
)

// TestClient wraps HTTP calls to the storefront.
type TestClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Do sends a JSON request, attaching the session token when one is held,
// and returns the status code and raw body.
func (c *TestClient) Do(t *testing.T, method, path string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

// DoData is Do for successful calls; it decodes the envelope's data field.
func (c *TestClient) DoData(t *testing.T, method, path string, body any, wantStatus int, out any) {
	t.Helper()

	status, raw := c.Do(t, method, path, body)
	require.Equal(t, wantStatus, status, "body: %s", raw)
	if out == nil {
		return
	}

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	require.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func (c *TestClient) Login(t *testing.T, email, password string) {
	t.Helper()

	var session handlers.SessionResponse
	c.DoData(t, http.MethodPost, "/sessions", map[string]string{"email": email, "password": password}, http.StatusCreated, &session)
	require.NotEmpty(t, session.Token)
	c.token = session.Token
}

func (c *TestClient) GetOrder(t *testing.T, id string) handlers.OrderResponse {
	t.Helper()

	var order handlers.OrderResponse
	c.DoData(t, http.MethodGet, "/orders/"+id, nil, http.StatusOK, &order)
	return order
}

// DeliverWebhook posts payload the way the processor does. signature
// overrides the computed header when non-empty.
func (c *TestClient) DeliverWebhook(t *testing.T, secret string, payload []byte, signature string) (int, []byte) {
	t.Helper()

	if signature == "" {
		signature = webhook.SignPayload(secret, time.Now().Unix(), payload)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/webhook", bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(webhook.SignatureHeader, signature)

	resp, err := c.httpClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func completionEvent(eventID, eventType, orderID, objectID string) []byte {
	return []byte(`{"id":"` + eventID + `","object":"event","type":"` + eventType +
		`","created":` + strconv.FormatInt(time.Now().Unix(), 10) +
		`,"livemode":false,"data":{"object":{"id":"` + objectID +
		`","object":"checkout.session","payment_status":"paid","metadata":{"order_id":"` + orderID + `"}}}}`)
}
