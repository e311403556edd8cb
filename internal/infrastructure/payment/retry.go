package payment

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/config"
)

type RetryClient struct {
	inner      Processor
	baseDelay  time.Duration
	maxRetries int
}

func NewRetryClient(inner Processor, cfg config.RetryConfig) *RetryClient {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RetryClient{
		inner:      inner,
		baseDelay:  cfg.BaseDelay,
		maxRetries: maxRetries,
	}
}

// CreatePaymentIntent with retry logic. The idempotency key is reused on
// every attempt so the processor never creates two intents.
func (r *RetryClient) CreatePaymentIntent(ctx context.Context, req CreateIntentRequest, idempotencyKey string) (*IntentResponse, error) {
	return retry(
		r,
		ctx,
		func(ctx context.Context) (*IntentResponse, error) {
			return r.inner.CreatePaymentIntent(ctx, req, idempotencyKey)
		},
	)
}

// Generic retry helper
func retry[T any](r *RetryClient, ctx context.Context, operation func(ctx context.Context) (*T, error)) (*T, error) {
	var lastErr error

	for attempt := 0; attempt < r.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := operation(ctx)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}

		if attempt < r.maxRetries-1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.backoff(attempt)):
			}
		}
	}

	return nil, fmt.Errorf("maximum retries exceeded: %w", lastErr)
}

// Helper: to check retryable errors
func isRetryable(err error) bool {
	if procErr, ok := IsProcessorError(err); ok {
		return procErr.IsRetryable()
	}

	if errors.Is(err, context.Canceled) {
		return false
	}

	// transport failures and timeouts
	return true
}

// Backoff calculation with exponential delay and jitter
func (r *RetryClient) backoff(attempt int) time.Duration {
	base := r.baseDelay * time.Duration(1<<attempt)
	if r.baseDelay <= 0 {
		return 0
	}

	jitter := time.Duration(rand.Int63n(int64(r.baseDelay)))

	return base + jitter
}
