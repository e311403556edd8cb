package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/DanielPopoola/ficmart-storefront/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutbox struct {
	mu      sync.Mutex
	pending []domain.OutboxMessage
	done    []domain.OutboxMessage
}

func (f *fakeOutbox) ProcessBatch(ctx context.Context, limit int, handle func(context.Context, []domain.OutboxMessage) error) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := min(limit, len(f.pending))
	if n == 0 {
		return 0, nil
	}
	batch := f.pending[:n]
	if err := handle(ctx, batch); err != nil {
		return 0, err
	}
	f.done = append(f.done, batch...)
	f.pending = f.pending[n:]
	return n, nil
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []domain.OutboxMessage
	err       error
}

func (p *recordingPublisher) Publish(_ context.Context, msgs ...domain.OutboxMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, msgs...)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type relayCounter struct {
	mu sync.Mutex
	n  int
}

func (c *relayCounter) OutboxRelayed(n int) {
	c.mu.Lock()
	c.n += n
	c.mu.Unlock()
}

func messages(n int) []domain.OutboxMessage {
	out := make([]domain.OutboxMessage, n)
	for i := range out {
		out[i] = domain.OutboxMessage{ID: string(rune('a' + i)), AggregateID: "order", EventType: domain.EventOrderPaid}
	}
	return out
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOutboxRelay_RelayOnceDrainsAllBatches(t *testing.T) {
	store := &fakeOutbox{pending: messages(5)}
	pub := &recordingPublisher{}
	counter := &relayCounter{}
	relay := worker.NewOutboxRelay(store, pub, counter, time.Hour, 2, discard())

	n, err := relay.RelayOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 5, n)
	assert.Len(t, pub.published, 5)
	assert.Empty(t, store.pending)
	assert.Equal(t, 5, counter.n)
}

func TestOutboxRelay_PublishFailureKeepsMessages(t *testing.T) {
	store := &fakeOutbox{pending: messages(3)}
	pub := &recordingPublisher{err: errors.New("broker down")}
	relay := worker.NewOutboxRelay(store, pub, nil, time.Hour, 10, discard())

	n, err := relay.RelayOnce(context.Background())
	require.Error(t, err)
	assert.Zero(t, n)
	assert.Len(t, store.pending, 3)

	pub.err = nil
	n, err = relay.RelayOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestOutboxRelay_StartStopsOnCancel(t *testing.T) {
	store := &fakeOutbox{pending: messages(1)}
	pub := &recordingPublisher{}
	relay := worker.NewOutboxRelay(store, pub, nil, 10*time.Millisecond, 10, discard())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		relay.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		pub.mu.Lock()
		defer pub.mu.Unlock()
		return len(pub.published) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("relay did not stop")
	}
}
