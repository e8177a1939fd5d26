package memory

import (
	"sync"
	"time"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps conversational state in process memory with a
// sliding TTL. An evicted session starts clean: the customer loses the
// shown-products cache, never the persisted conversation log.
type SessionRepository struct {
	cache  *cache.Cache
	window int

	// mu makes the miss path of GetOrCreate atomic. Two concurrent first
	// messages for a new session id must share one Session, otherwise
	// each turn would hold a different per-session mutex.
	mu sync.Mutex
}

func NewSessionRepository(ttl time.Duration, summaryWindow int) *SessionRepository {
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache:  c,
		window: summaryWindow,
	}
}

// GetOrCreate returns the live session for the id, creating one when the
// id is new or expired.
func (r *SessionRepository) GetOrCreate(sessionID string) *store.Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if x, found := r.cache.Get(sessionID); found {
		sess := x.(*store.Session)
		r.cache.Set(sessionID, sess, cache.DefaultExpiration) // slide TTL
		return sess
	}
	sess := store.NewSession(sessionID)
	sess.Window = r.window
	r.cache.Set(sessionID, sess, cache.DefaultExpiration)
	return sess
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
