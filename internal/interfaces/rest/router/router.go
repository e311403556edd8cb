// Package router assembles the storefront HTTP surface.
package router

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest/openapi"
	"github.com/DanielPopoola/ficmart-storefront/internal/metrics"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Handlers    *handlers.Handlers
	Webhook     *handlers.WebhookHandler
	Sessions    middleware.SessionVerifier
	CookieName  string
	RateLimiter *middleware.RateLimiter
	Metrics     *metrics.Registry
	DB          handlers.Pinger
	Contract    *openapi3.T
	Timeout     time.Duration
	Logger      *slog.Logger
}

// New wires every route. The webhook sits outside the contract validator
// and the session check so its raw body reaches the verifier unchanged.
func New(d Deps) (http.Handler, error) {
	validate, err := openapi.Validator(d.Contract, d.Logger)
	if err != nil {
		return nil, fmt.Errorf("build request validator: %w", err)
	}
	requireSession := middleware.RequireSession(d.Sessions, d.CookieName, d.Logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logging(d.Logger))
	r.Use(d.Metrics.InstrumentHandler)
	r.Use(middleware.Timeout(d.Timeout))

	r.Get("/", handlers.Banner)
	r.Get("/healthz", handlers.Health(d.DB, d.Logger))
	r.Handle("/metrics", d.Metrics.Handler())
	r.Handle("/openapi.yaml", openapi.DocumentHandler())
	r.Post("/webhook", d.Webhook.HandleWebhook)

	r.Group(func(r chi.Router) {
		r.Use(validate)

		r.Group(func(r chi.Router) {
			r.Use(d.RateLimiter.Middleware)
			r.Post("/users", d.Handlers.HandleRegister)
			r.Post("/sessions", d.Handlers.HandleLogin)
		})

		r.Get("/products", d.Handlers.HandleListProducts)

		r.Group(func(r chi.Router) {
			r.Use(requireSession)
			r.Delete("/sessions", d.Handlers.HandleLogout)
			r.Post("/products", d.Handlers.HandleCreateProduct)
			r.Post("/orders", d.Handlers.HandleCreateOrder)
			r.Get("/orders", d.Handlers.HandleListOrders)
			r.Get("/orders/{orderID}", d.Handlers.HandleGetOrder)
			r.Post("/orders/{orderID}/payment-intent", d.Handlers.HandleCreatePaymentIntent)
		})
	})

	return r, nil
}
