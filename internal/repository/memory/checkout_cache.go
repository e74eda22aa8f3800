package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CheckoutDraft holds the data a guest needs to finish paying for a
// booking they just created. It lives only for the checkout window.
type CheckoutDraft struct {
	OrderId         string
	BookingId       uuid.UUID
	UserId          uuid.UUID
	AccommodationId uuid.UUID
	Amount          float64
	CreatedAt       time.Time
}

type CheckoutCache struct {
	cache *cache.Cache
}

// NewCheckoutCache builds a cache whose entries expire after ttl.
// Expired drafts are purged every 2 minutes.
func NewCheckoutCache(ttl time.Duration) *CheckoutCache {
	c := cache.New(ttl, 2*time.Minute)
	return &CheckoutCache{
		cache: c,
	}
}

func (r *CheckoutCache) Save(draft *CheckoutDraft) {
	r.cache.Set(draft.OrderId, draft, cache.DefaultExpiration)
}

func (r *CheckoutCache) Get(orderId string) (*CheckoutDraft, bool) {
	if x, found := r.cache.Get(orderId); found {
		return x.(*CheckoutDraft), true
	}
	return nil, false
}

func (r *CheckoutCache) Delete(orderId string) {
	r.cache.Delete(orderId)
}
