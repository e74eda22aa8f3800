package payment

import (
	"context"
	"fmt"
	"sync"
)

// FakeGateway is an in-memory Gateway for tests. Signatures verify when
// they equal "valid".
type FakeGateway struct {
	mu      sync.Mutex
	seq     int
	Orders  []Order
	Refunds []RefundResult

	FailOrders  bool
	FailRefunds bool
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{}
}

func (g *FakeGateway) CreateOrder(ctx context.Context, amount float64, receipt string) (*Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailOrders {
		return nil, fmt.Errorf("gateway unavailable")
	}

	g.seq++
	order := Order{
		Id:       fmt.Sprintf("order_fake_%d", g.seq),
		Amount:   amount,
		Currency: "INR",
		Receipt:  receipt,
	}
	g.Orders = append(g.Orders, order)
	return &order, nil
}

func (g *FakeGateway) VerifyPaymentSignature(orderId, paymentId, signature string) bool {
	return signature == "valid"
}

func (g *FakeGateway) VerifyWebhookSignature(body []byte, signature string) bool {
	return signature == "valid"
}

func (g *FakeGateway) Refund(ctx context.Context, paymentId string, amount float64) (*RefundResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailRefunds {
		return nil, fmt.Errorf("gateway unavailable")
	}

	g.seq++
	res := RefundResult{
		Id:     fmt.Sprintf("rfnd_fake_%d", g.seq),
		Status: "processed",
	}
	g.Refunds = append(g.Refunds, res)
	return &res, nil
}
