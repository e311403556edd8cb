package payment

// CreateIntentRequest asks the processor for a client-usable payment handle.
type CreateIntentRequest struct {
	AmountCents  int64
	Currency     string
	OrderID      string
	ReceiptEmail string
}

type IntentResponse struct {
	ID           string `json:"id"`
	Object       string `json:"object"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
	Created      int64  `json:"created"`
}

type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
