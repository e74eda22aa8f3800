package payment

import "context"

// Order is a gateway-side order a client pays against.
type Order struct {
	Id       string
	Amount   float64 // major units (INR)
	Currency string
	Receipt  string
}

// RefundResult is the gateway's acknowledgement of a refund.
type RefundResult struct {
	Id     string
	Status string
}

// Gateway abstracts the payment provider. Amounts cross this boundary
// in major currency units; conversion to the provider's minor units
// happens inside the implementation.
type Gateway interface {
	// CreateOrder registers an order with the provider and returns its id.
	CreateOrder(ctx context.Context, amount float64, receipt string) (*Order, error)

	// VerifyPaymentSignature checks the signature a client submits after
	// completing checkout.
	VerifyPaymentSignature(orderId, paymentId, signature string) bool

	// VerifyWebhookSignature checks the signature header on a webhook
	// delivery against the raw request body.
	VerifyWebhookSignature(body []byte, signature string) bool

	// Refund asks the provider to return amount against a captured payment.
	Refund(ctx context.Context, paymentId string, amount float64) (*RefundResult, error)
}
