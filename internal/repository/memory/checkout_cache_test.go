package memory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCheckoutCache_SaveAndGet(t *testing.T) {
	c := NewCheckoutCache(10 * time.Minute)

	draft := &CheckoutDraft{
		OrderId:   "order_abc",
		BookingId: uuid.New(),
		UserId:    uuid.New(),
		Amount:    2400,
		CreatedAt: time.Now(),
	}
	c.Save(draft)

	got, found := c.Get("order_abc")
	assert.True(t, found)
	assert.Equal(t, draft.BookingId, got.BookingId)
	assert.Equal(t, 2400.0, got.Amount)
}

func TestCheckoutCache_MissingKey(t *testing.T) {
	c := NewCheckoutCache(10 * time.Minute)

	_, found := c.Get("order_missing")
	assert.False(t, found)
}

func TestCheckoutCache_Delete(t *testing.T) {
	c := NewCheckoutCache(10 * time.Minute)

	c.Save(&CheckoutDraft{OrderId: "order_del"})
	c.Delete("order_del")

	_, found := c.Get("order_del")
	assert.False(t, found)
}

func TestCheckoutCache_Expiry(t *testing.T) {
	c := NewCheckoutCache(50 * time.Millisecond)

	c.Save(&CheckoutDraft{OrderId: "order_ttl"})
	time.Sleep(80 * time.Millisecond)

	_, found := c.Get("order_ttl")
	assert.False(t, found)
}
