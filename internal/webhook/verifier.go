// Package webhook authenticates payment processor events and routes
// completion events to the order ledger.
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DanielPopoola/ficmart-storefront/internal/config"
	"github.com/DanielPopoola/ficmart-storefront/internal/domain"
	"github.com/xeipuuv/gojsonschema"
)

// SignatureHeader is the header carrying the processor's signature.
const SignatureHeader = "Stripe-Signature"

const signatureScheme = "v1"

// ErrAuthentication matches every verification failure.
var ErrAuthentication = domain.ErrAuthentication

// envelopeSchema is the minimum an event must look like before any field
// is trusted.
const envelopeSchema = `{
	"type": "object",
	"required": ["id", "type", "data"],
	"properties": {
		"id": {"type": "string", "minLength": 1},
		"type": {"type": "string", "minLength": 1},
		"created": {"type": "integer"},
		"data": {
			"type": "object",
			"required": ["object"],
			"properties": {
				"object": {
					"type": "object",
					"properties": {
						"id": {"type": "string"},
						"client_reference_id": {"type": ["string", "null"]},
						"metadata": {"type": ["object", "null"]}
					}
				}
			}
		}
	}
}`

// PaymentEvent is a verified processor event reduced to what the ledger needs.
type PaymentEvent struct {
	ID   string
	Type string
	// OrderReference is the storefront order the event is about, empty when
	// the processor object carries none.
	OrderReference string
	SourceIntentID string
	Created        time.Time
	Livemode       bool
}

type rawEvent struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Created  int64  `json:"created"`
	Livemode bool   `json:"livemode"`
	Data     struct {
		Object struct {
			ID                string         `json:"id"`
			ClientReferenceID *string        `json:"client_reference_id"`
			Metadata          map[string]any `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// Verifier holds read-only configuration and is safe for concurrent use.
type Verifier struct {
	secret    []byte
	tolerance time.Duration
	schema    *gojsonschema.Schema
	now       func() time.Time
}

func NewVerifier(cfg config.WebhookConfig) (*Verifier, error) {
	if cfg.SigningSecret == "" {
		return nil, fmt.Errorf("webhook signing secret is required")
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(envelopeSchema))
	if err != nil {
		return nil, fmt.Errorf("compile event schema: %w", err)
	}

	return &Verifier{
		secret:    []byte(cfg.SigningSecret),
		tolerance: cfg.Tolerance,
		schema:    schema,
		now:       time.Now,
	}, nil
}

// WithClock replaces the time source used for the tolerance check.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

// Verify authenticates rawPayload against signatureHeader and decodes it.
// Any failure is reported as ErrAuthentication.
func (v *Verifier) Verify(rawPayload []byte, signatureHeader string) (*PaymentEvent, error) {
	timestamp, signatures, err := parseHeader(signatureHeader)
	if err != nil {
		return nil, err
	}

	expected := computeMAC(v.secret, timestamp, rawPayload)
	matched := false
	for _, sig := range signatures {
		if hmac.Equal(expected, sig) {
			matched = true
			break
		}
	}
	if !matched {
		return nil, domain.NewAuthenticationError("no signature matches the payload", nil)
	}

	if v.tolerance > 0 {
		age := v.now().Sub(time.Unix(timestamp, 0))
		if age > v.tolerance || age < -v.tolerance {
			return nil, domain.NewAuthenticationError("signature timestamp outside tolerance", nil)
		}
	}

	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(rawPayload))
	if err != nil {
		return nil, domain.NewAuthenticationError("payload is not valid JSON", err)
	}
	if !result.Valid() {
		return nil, domain.NewAuthenticationError("payload is not an event envelope: "+describe(result.Errors()), nil)
	}

	var raw rawEvent
	if err := json.Unmarshal(rawPayload, &raw); err != nil {
		return nil, domain.NewAuthenticationError("payload could not be decoded", err)
	}

	return toPaymentEvent(raw), nil
}

func toPaymentEvent(raw rawEvent) *PaymentEvent {
	obj := raw.Data.Object

	ref := ""
	if s, ok := obj.Metadata["order_id"].(string); ok {
		ref = strings.TrimSpace(s)
	}
	if ref == "" && obj.ClientReferenceID != nil {
		ref = strings.TrimSpace(*obj.ClientReferenceID)
	}

	ev := &PaymentEvent{
		ID:             raw.ID,
		Type:           raw.Type,
		OrderReference: ref,
		SourceIntentID: obj.ID,
		Livemode:       raw.Livemode,
	}
	if raw.Created > 0 {
		ev.Created = time.Unix(raw.Created, 0).UTC()
	}
	return ev
}

// parseHeader reads "t=<unix>,v1=<hex>[,v1=<hex>...]". Unknown schemes and
// undecodable signatures are skipped.
func parseHeader(header string) (int64, [][]byte, error) {
	if strings.TrimSpace(header) == "" {
		return 0, nil, domain.NewAuthenticationError("missing signature header", nil)
	}

	var (
		timestamp  int64
		haveTime   bool
		signatures [][]byte
	)
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return 0, nil, domain.NewAuthenticationError("malformed signature timestamp", err)
			}
			timestamp, haveTime = ts, true
		case signatureScheme:
			sig, err := hex.DecodeString(value)
			if err != nil {
				continue
			}
			signatures = append(signatures, sig)
		}
	}

	if !haveTime {
		return 0, nil, domain.NewAuthenticationError("signature header has no timestamp", nil)
	}
	if len(signatures) == 0 {
		return 0, nil, domain.NewAuthenticationError("signature header has no "+signatureScheme+" signature", nil)
	}
	return timestamp, signatures, nil
}

func computeMAC(secret []byte, timestamp int64, payload []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(strconv.FormatInt(timestamp, 10)))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}

// ComputeSignature returns the hex v1 signature the processor would send.
func ComputeSignature(secret string, timestamp int64, payload []byte) string {
	return hex.EncodeToString(computeMAC([]byte(secret), timestamp, payload))
}

// SignPayload builds a complete signature header value for payload.
func SignPayload(secret string, timestamp int64, payload []byte) string {
	return fmt.Sprintf("t=%d,%s=%s", timestamp, signatureScheme, ComputeSignature(secret, timestamp, payload))
}

func describe(errs []gojsonschema.ResultError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.String())
	}
	return strings.Join(msgs, "; ")
}
