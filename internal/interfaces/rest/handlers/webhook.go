package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/ficmart-storefront/internal/application"
	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/DanielPopoola/ficmart-storefront/internal/interfaces/rest"
	"github.com/DanielPopoola/ficmart-storefront/internal/webhook"
)

type EventVerifier interface {
	Verify(rawPayload []byte, signatureHeader string) (*webhook.PaymentEvent, error)
}

type EventDispatcher interface {
	Dispatch(ctx context.Context, ev *webhook.PaymentEvent) (webhook.Outcome, error)
}

type WebhookMetrics interface {
	WebhookEvent(outcome string)
}

const (
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

// WebhookHandler receives processor events. It answers 400 only when the
// event cannot be authenticated and 500 only when the store failed.
type WebhookHandler struct {
	verifier   EventVerifier
	dispatcher EventDispatcher
	metrics    WebhookMetrics
	maxBody    int64
	logger     *slog.Logger
}

func NewWebhookHandler(
	verifier EventVerifier,
	dispatcher EventDispatcher,
	metrics WebhookMetrics,
	maxBody int64,
	logger *slog.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		verifier:   verifier,
		dispatcher: dispatcher,
		metrics:    metrics,
		maxBody:    maxBody,
		logger:     logger,
	}
}

func (h *WebhookHandler) record(outcome string) {
	if h.metrics != nil {
		h.metrics.WebhookEvent(outcome)
	}
}

func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		h.record(outcomeRejected)
		h.logger.Warn("webhook body unreadable", "error", err)
		rest.WriteError(w, domain.NewAuthenticationError("payload unreadable or too large", err), h.logger)
		return
	}

	ev, err := h.verifier.Verify(payload, r.Header.Get(webhook.SignatureHeader))
	if err != nil {
		h.record(outcomeRejected)
		h.logger.Warn("webhook rejected", "error", err, "remote_addr", r.RemoteAddr)
		rest.WriteError(w, err, h.logger)
		return
	}

	outcome, err := h.dispatcher.Dispatch(r.Context(), ev)
	if err != nil {
		h.record(outcomeFailed)
		rest.WriteError(w, application.NewInternalError(err), h.logger)
		return
	}

	h.record(string(outcome))
	h.logger.Info("webhook handled",
		"event_id", ev.ID,
		"type", ev.Type,
		"outcome", outcome,
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]bool{"received": true})
}
