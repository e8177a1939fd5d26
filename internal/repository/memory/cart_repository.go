package memory

import (
	"sync"
	"time"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/order"

	"github.com/patrickmn/go-cache"
)

// CartRepository holds active carts with the same TTL policy as the
// session store so a cart never outlives its conversation.
type CartRepository struct {
	cache *cache.Cache

	// mu makes the miss path of GetOrCreate atomic, same as the
	// session repository: one cart per session id, ever.
	mu sync.Mutex
}

func NewCartRepository(ttl time.Duration) *CartRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &CartRepository{
		cache: c,
	}
}

func (r *CartRepository) GetOrCreate(sessionID string) *order.Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(sessionID); found {
		cart := x.(*order.Cart)
		r.cache.Set(sessionID, cart, cache.DefaultExpiration)
		return cart
	}
	cart := order.NewCart(sessionID)
	r.cache.Set(sessionID, cart, cache.DefaultExpiration)
	return cart
}

func (r *CartRepository) Save(cart *order.Cart) {
	r.cache.Set(cart.SessionID, cart, cache.DefaultExpiration)
}

func (r *CartRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
