package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/application/services"
	"github.com/DanielPopoola/ficmart-storefront/internal/application/services/testhelpers"
	"github.com/DanielPopoola/ficmart-storefront/internal/config"
	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/payment"
	"github.com/DanielPopoola/ficmart-storefront/internal/infrastructure/session"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest/openapi"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest/router"
	"github.com/DanielPopoola/ficmart-storefront/internal/metrics"
	"github.com/DanielPopoola/ficmart-storefront/internal/webhook"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

const signingSecret = "whsec_e2e"

var completionTypes = []string{"checkout.session.completed", "payment_intent.succeeded"}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

// E2ETestSuite drives the whole HTTP surface in-process: real router,
// services, verifier and session manager over in-memory stores.
type E2ETestSuite struct {
	suite.Suite
	server    *httptest.Server
	processor *httptest.Server
	orders    *testhelpers.MemoryOrderRepository
	metrics   *metrics.Registry
	client    *TestClient
}

func TestE2ESuite(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}

func (s *E2ETestSuite) SetupTest() {
	t := s.T()
	logger := testhelpers.DiscardLogger()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s.processor = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payment.IntentResponse{
			ID:           "pi_" + r.PostForm.Get("metadata[order_id]"),
			Object:       "payment_intent",
			ClientSecret: "pi_secret_e2e",
			Amount:       5000,
			Currency:     r.PostForm.Get("currency"),
			Status:       "requires_payment_method",
		})
	}))
	t.Cleanup(s.processor.Close)

	sessionCfg := config.SessionConfig{
		Secret:     "e2e-session-secret-0123456789",
		Issuer:     "storefront-e2e",
		TTL:        time.Hour,
		CookieName: "token",
	}
	sessions := session.NewManager(sessionCfg, session.NewRedisRevocationStore(rdb))

	s.metrics = metrics.New()
	s.orders = testhelpers.NewMemoryOrderRepository()
	ledger := services.NewOrderLedger(s.orders, "usd", s.metrics, logger)

	processor := payment.NewClient(config.PaymentConfig{
		BaseURL:     s.processor.URL,
		SecretKey:   "sk_test",
		ConnTimeout: 5 * time.Second,
	})
	users := services.NewUserService(testhelpers.NewMemoryUserRepository(), sessions, logger).WithHashCost(bcrypt.MinCost)
	products := services.NewProductService(testhelpers.NewMemoryProductRepository(), "usd")
	payments := services.NewPaymentService(ledger, processor, logger)

	verifier, err := webhook.NewVerifier(config.WebhookConfig{
		SigningSecret:   signingSecret,
		Tolerance:       5 * time.Minute,
		CompletionTypes: completionTypes,
		MaxBodyBytes:    64 << 10,
	})
	require.NoError(t, err)
	dispatcher := webhook.NewDispatcher(ledger, completionTypes, logger)

	contract, err := openapi.Load(context.Background())
	require.NoError(t, err)

	handler, err := router.New(router.Deps{
		Handlers:    handlers.NewHandlers(ledger, users, products, payments, sessionCfg, logger),
		Webhook:     handlers.NewWebhookHandler(verifier, dispatcher, s.metrics, 64<<10, logger),
		Sessions:    sessions,
		CookieName:  sessionCfg.CookieName,
		RateLimiter: middleware.NewRateLimiter(config.RateLimitConfig{RPS: 100, Burst: 100}, logger),
		Metrics:     s.metrics,
		DB:          okPinger{},
		Contract:    contract,
		Timeout:     5 * time.Second,
		Logger:      logger,
	})
	require.NoError(t, err)

	s.server = httptest.NewServer(handler)
	t.Cleanup(s.server.Close)

	s.client = NewTestClient(s.server.URL)
}

func (s *E2ETestSuite) signUp(email string) {
	s.client.DoData(s.T(), http.MethodPost, "/users",
		map[string]string{"email": email, "password": "correct horse"}, http.StatusCreated, nil)
	s.client.Login(s.T(), email, "correct horse")
}

func (s *E2ETestSuite) createOrder() handlers.OrderResponse {
	var order handlers.OrderResponse
	s.client.DoData(s.T(), http.MethodPost, "/orders", map[string]any{
		"items":  []map[string]any{{"sku": "A", "qty": 1}},
		"amount": 5000,
	}, http.StatusCreated, &order)
	return order
}

func (s *E2ETestSuite) TestOrderPaidThroughWebhook() {
	t := s.T()
	s.signUp("ann@example.com")

	order := s.createOrder()
	assert.Equal(t, string(domain.StatusPending), order.Status)
	assert.Equal(t, int64(5000), order.AmountCents)

	var intent handlers.PaymentIntentResponse
	s.client.DoData(t, http.MethodPost, "/orders/"+order.ID+"/payment-intent", nil, http.StatusCreated, &intent)
	assert.Equal(t, "pi_secret_e2e", intent.ClientSecret)
	assert.Equal(t, "pi_"+order.ID, intent.IntentID)

	payload := completionEvent("evt_1", "checkout.session.completed", order.ID, "cs_1")

	status, body := s.client.DeliverWebhook(t, signingSecret, payload, "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"received":true}`, string(body))

	paid := s.client.GetOrder(t, order.ID)
	assert.Equal(t, string(domain.StatusPaid), paid.Status)
	require.NotNil(t, paid.PaymentReference)
	assert.Equal(t, "cs_1", *paid.PaymentReference)
	require.NotNil(t, paid.PaidAt)

	status, _ = s.client.DeliverWebhook(t, signingSecret, payload, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(domain.StatusPaid), s.client.GetOrder(t, order.ID).Status)
	assert.Equal(t, 1, s.orders.CountEvents(order.ID, domain.EventOrderPaid))

	tampered := webhook.SignPayload(signingSecret, time.Now().Unix(), payload)
	tampered = tampered[:len(tampered)-1] + flipHex(tampered[len(tampered)-1])
	status, body = s.client.DeliverWebhook(t, signingSecret, payload, tampered)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), domain.ErrCodeAuthentication)
	assert.Equal(t, string(domain.StatusPaid), s.client.GetOrder(t, order.ID).Status)

	_, metricsBody := s.client.Do(t, http.MethodGet, "/metrics", nil)
	assert.Contains(t, string(metricsBody), "storefront_orders_paid_total 1")
	assert.Contains(t, string(metricsBody), `storefront_webhook_events_total{outcome="rejected"} 1`)

	status, _ = s.client.Do(t, http.MethodPost, "/orders/"+order.ID+"/payment-intent", nil)
	assert.Equal(t, http.StatusConflict, status)
}

func (s *E2ETestSuite) TestForgedEventLeavesOrderPending() {
	t := s.T()
	s.signUp("bob@example.com")
	order := s.createOrder()

	payload := completionEvent("evt_forged", "checkout.session.completed", order.ID, "cs_forged")
	status, _ := s.client.DeliverWebhook(t, "whsec_attacker", payload, "")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, string(domain.StatusPending), s.client.GetOrder(t, order.ID).Status)
	assert.Zero(t, s.orders.CountEvents(order.ID, domain.EventOrderPaid))
}

func (s *E2ETestSuite) TestUnrecognizedAndUnknownEventsAcknowledged() {
	t := s.T()
	s.signUp("cy@example.com")
	order := s.createOrder()

	status, _ := s.client.DeliverWebhook(t, signingSecret,
		completionEvent("evt_2", "payment_intent.created", order.ID, "pi_2"), "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, string(domain.StatusPending), s.client.GetOrder(t, order.ID).Status)

	status, _ = s.client.DeliverWebhook(t, signingSecret,
		completionEvent("evt_3", "payment_intent.succeeded", "no-such-order", "pi_3"), "")
	assert.Equal(t, http.StatusOK, status)
}

func (s *E2ETestSuite) TestOrdersAreOwnerScoped() {
	t := s.T()
	s.signUp("dee@example.com")
	order := s.createOrder()

	other := NewTestClient(s.server.URL)
	other.DoData(t, http.MethodPost, "/users",
		map[string]string{"email": "eve@example.com", "password": "pw"}, http.StatusCreated, nil)
	other.Login(t, "eve@example.com", "pw")

	status, _ := other.Do(t, http.MethodGet, "/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	var listed []handlers.OrderResponse
	other.DoData(t, http.MethodGet, "/orders", nil, http.StatusOK, &listed)
	assert.Empty(t, listed)
}

func (s *E2ETestSuite) TestContractValidation() {
	t := s.T()
	s.signUp("fay@example.com")

	status, body := s.client.Do(t, http.MethodPost, "/orders", map[string]any{
		"items":  []map[string]any{{"sku": "A", "qty": 1}},
		"amount": "fifty",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), domain.ErrCodeValidation)

	status, _ = s.client.Do(t, http.MethodPost, "/orders", map[string]any{
		"items":  []map[string]any{},
		"amount": 5000,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.client.Do(t, http.MethodGet, "/orders?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *E2ETestSuite) TestSessionLifecycle() {
	t := s.T()

	status, _ := s.client.Do(t, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	s.signUp("gus@example.com")
	status, _ = s.client.Do(t, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = s.client.Do(t, http.MethodDelete, "/sessions", nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = s.client.Do(t, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func (s *E2ETestSuite) TestOperationalEndpoints() {
	t := s.T()

	status, body := s.client.Do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), `"ok"`)

	status, body = s.client.Do(t, http.MethodGet, "/openapi.yaml", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, strings.HasPrefix(string(body), "openapi:"))

	status, body = s.client.Do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body), "storefront_http_requests_total")
}

func flipHex(c byte) string {
	if c == '0' {
		return "1"
	}
	return "0"
}
