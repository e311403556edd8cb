package webhook_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/config"
	"github.com/DanielPopoola/ficmart-storefront/internal/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

var fixedNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func newVerifier(t *testing.T, tolerance time.Duration) *webhook.Verifier {
	v, err := webhook.NewVerifier(config.WebhookConfig{
		SigningSecret: testSecret,
		Tolerance:     tolerance,
	})
	require.NoError(t, err)
	return v.WithClock(func() time.Time { return fixedNow })
}

func checkoutCompleted(orderID string) []byte {
	return []byte(fmt.Sprintf(`{
  "id": "evt_1",
  "object": "event",
  "type": "checkout.session.completed",
  "created": %d,
  "livemode": false,
  "data": {"object": {"id": "cs_test_1", "object": "checkout.session", "client_reference_id": null, "metadata": {"order_id": %q}}}
}`, fixedNow.Unix(), orderID))
}

func TestVerifier_ValidSignature(t *testing.T) {
	v := newVerifier(t, 5*time.Minute)
	payload := checkoutCompleted("ord-1")
	header := webhook.SignPayload(testSecret, fixedNow.Unix(), payload)

	ev, err := v.Verify(payload, header)
	require.NoError(t, err)

	assert.Equal(t, "evt_1", ev.ID)
	assert.Equal(t, "checkout.session.completed", ev.Type)
	assert.Equal(t, "ord-1", ev.OrderReference)
	assert.Equal(t, "cs_test_1", ev.SourceIntentID)
	assert.Equal(t, fixedNow, ev.Created)
}

func TestVerifier_OrderReferenceFallback(t *testing.T) {
	v := newVerifier(t, 0)
	payload := []byte(`{"id":"evt_2","type":"checkout.session.completed","data":{"object":{"id":"cs_2","client_reference_id":"ord-9"}}}`)

	ev, err := v.Verify(payload, webhook.SignPayload(testSecret, fixedNow.Unix(), payload))
	require.NoError(t, err)
	assert.Equal(t, "ord-9", ev.OrderReference)
}

func TestVerifier_AcceptsAnyMatchingSignature(t *testing.T) {
	v := newVerifier(t, 0)
	payload := checkoutCompleted("ord-1")
	ts := fixedNow.Unix()
	header := fmt.Sprintf("t=%d,v1=%s,v1=%s,v0=ignored",
		ts,
		webhook.ComputeSignature("whsec_rotated_out", ts, payload),
		webhook.ComputeSignature(testSecret, ts, payload),
	)

	_, err := v.Verify(payload, header)
	assert.NoError(t, err)
}

func TestVerifier_SingleByteMutations(t *testing.T) {
	v := newVerifier(t, 0)
	payload := checkoutCompleted("ord-1")
	ts := fixedNow.Unix()
	sig := webhook.ComputeSignature(testSecret, ts, payload)

	t.Run("payload", func(t *testing.T) {
		for i := range payload {
			mutated := append([]byte(nil), payload...)
			mutated[i] ^= 0x01

			_, err := v.Verify(mutated, fmt.Sprintf("t=%d,v1=%s", ts, sig))
			require.ErrorIs(t, err, webhook.ErrAuthentication, "byte %d", i)
		}
	})

	t.Run("signature", func(t *testing.T) {
		for i := range sig {
			b := []byte(sig)
			if b[i] == '0' {
				b[i] = '1'
			} else {
				b[i] = '0'
			}

			_, err := v.Verify(payload, fmt.Sprintf("t=%d,v1=%s", ts, b))
			require.ErrorIs(t, err, webhook.ErrAuthentication, "char %d", i)
		}
	})

	t.Run("timestamp", func(t *testing.T) {
		_, err := v.Verify(payload, fmt.Sprintf("t=%d,v1=%s", ts+1, sig))
		assert.ErrorIs(t, err, webhook.ErrAuthentication)
	})
}

func TestVerifier_Rejects(t *testing.T) {
	payload := checkoutCompleted("ord-1")
	ts := fixedNow.Unix()

	tests := []struct {
		name      string
		tolerance time.Duration
		payload   []byte
		header    string
	}{
		{"missing header", 0, payload, ""},
		{"no timestamp", 0, payload, "v1=" + webhook.ComputeSignature(testSecret, ts, payload)},
		{"no signature", 0, payload, fmt.Sprintf("t=%d", ts)},
		{"malformed timestamp", 0, payload, "t=yesterday,v1=" + webhook.ComputeSignature(testSecret, ts, payload)},
		{"wrong secret", 0, payload, webhook.SignPayload("whsec_other", ts, payload)},
		{"too old", time.Minute, payload, webhook.SignPayload(testSecret, ts-120, payload)},
		{"too far ahead", time.Minute, payload, webhook.SignPayload(testSecret, ts+120, payload)},
		{"not json", 0, []byte("hello"), webhook.SignPayload(testSecret, ts, []byte("hello"))},
		{"not an envelope", 0, []byte(`{"id":"evt"}`), webhook.SignPayload(testSecret, ts, []byte(`{"id":"evt"}`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newVerifier(t, tt.tolerance)

			ev, err := v.Verify(tt.payload, tt.header)
			assert.Nil(t, ev)
			assert.ErrorIs(t, err, webhook.ErrAuthentication)
		})
	}
}

func TestVerifier_ToleranceDisabled(t *testing.T) {
	v := newVerifier(t, 0)
	payload := checkoutCompleted("ord-1")
	old := fixedNow.Add(-72 * time.Hour).Unix()

	_, err := v.Verify(payload, webhook.SignPayload(testSecret, old, payload))
	assert.NoError(t, err)
}

func TestNewVerifier_RequiresSecret(t *testing.T) {
	_, err := webhook.NewVerifier(config.WebhookConfig{})
	assert.Error(t, err)
}

func TestSignPayload_Format(t *testing.T) {
	header := webhook.SignPayload(testSecret, 1700000000, []byte("{}"))
	assert.True(t, strings.HasPrefix(header, "t=1700000000,v1="))
	assert.Len(t, strings.TrimPrefix(header, "t=1700000000,v1="), 64)
}
