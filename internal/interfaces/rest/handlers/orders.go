package handlers

import (
	"net/http"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest/middleware"
	"github.com/go-chi/chi/v5"
)

func (h *Handlers) HandleCreateOrder(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		rest.WriteError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	var req CreateOrderRequest
	if err := h.decode(r, &req); err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	items := make([]domain.Item, len(req.Items))
	for i, it := range req.Items {
		items[i] = domain.Item{SKU: it.SKU, Quantity: it.Quantity}
	}

	order, err := h.ledger.CreateOrder(r.Context(), principal.Email, items, req.Amount)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.RespondWithJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *Handlers) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		rest.WriteError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	limit, offset := pagination(r)
	orders, err := h.ledger.ListOrders(r.Context(), principal.Email, limit, offset)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	rest.RespondWithJSON(w, http.StatusOK, out)
}

func (h *Handlers) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		rest.WriteError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	order, err := h.ledger.GetOrder(r.Context(), principal.Email, chi.URLParam(r, "orderID"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.RespondWithJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *Handlers) HandleCreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		rest.WriteError(w, domain.ErrUnauthenticated, h.logger)
		return
	}

	intent, err := h.payments.CreateIntent(r.Context(), principal.Email, chi.URLParam(r, "orderID"))
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.RespondWithJSON(w, http.StatusCreated, PaymentIntentResponse{
		OrderID:      intent.OrderID,
		IntentID:     intent.IntentID,
		ClientSecret: intent.ClientSecret,
		Amount:       intent.AmountCents,
		Currency:     intent.Currency,
	})
}
