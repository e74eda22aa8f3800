package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway talks to Razorpay. Amounts are converted to paise at
// this boundary and back on the way out.
type RazorpayGateway struct {
	client        *razorpay.Client
	keySecret     string
	webhookSecret string
}

func NewRazorpayGateway(keyId, keySecret, webhookSecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client:        razorpay.NewClient(keyId, keySecret),
		keySecret:     keySecret,
		webhookSecret: webhookSecret,
	}
}

func toPaise(amount float64) int {
	return int(math.Round(amount * 100))
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount float64, receipt string) (*Order, error) {
	data := map[string]interface{}{
		"amount":   toPaise(amount),
		"currency": "INR",
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order create: missing order id in response")
	}

	return &Order{
		Id:       id,
		Amount:   amount,
		Currency: "INR",
		Receipt:  receipt,
	}, nil
}

func (g *RazorpayGateway) VerifyPaymentSignature(orderId, paymentId, signature string) bool {
	payload := orderId + "|" + paymentId
	return verifyHMAC(payload, signature, g.keySecret)
}

func (g *RazorpayGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	return verifyHMAC(string(body), signature, g.webhookSecret)
}

func (g *RazorpayGateway) Refund(ctx context.Context, paymentId string, amount float64) (*RefundResult, error) {
	data := map[string]interface{}{
		"amount": toPaise(amount),
	}

	body, err := g.client.Payment.Refund(paymentId, toPaise(amount), data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay refund: %w", err)
	}

	id, _ := body["id"].(string)
	status, _ := body["status"].(string)

	return &RefundResult{
		Id:     id,
		Status: status,
	}, nil
}

func verifyHMAC(payload, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
