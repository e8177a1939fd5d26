package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
)

// MaxExchanges bounds how many recent exchanges feed the summarizer
// when no explicit window is configured.
const MaxExchanges = 12

// Exchange is one customer/assistant round trip kept for summarization.
type Exchange struct {
	Customer  string
	Assistant string
}

// Session is the in-memory conversational state for one customer.
// The cart lives in its own store; this holds what the conversation
// is currently about.
type Session struct {
	ID string

	// ShownProducts caches every catalog row offered to the customer,
	// keyed by the lowercased search term that produced it. It only
	// grows within a session so vague references stay resolvable.
	ShownProducts map[string][]entity.Product

	// FocalProducts is the subject of the most recent action-bearing
	// turn. One element means a single focal product, several mean the
	// customer talked about a list. Empty means unset.
	FocalProducts []string

	// LastValidAction is the most recent actionable intent. It persists
	// across turns that carry no actionable intent.
	LastValidAction string

	// AwaitingCustomerDetails is true between a finalize turn and the
	// turn where the customer supplies delivery details.
	AwaitingCustomerDetails bool

	// Derived caches fed back to the detector as contextual hints.
	// Reconstructible from the exchanges, never authoritative for the cart.
	ConversationSummary string
	ShortProductSummary string

	Exchanges []Exchange

	// Window caps Exchanges. Zero means MaxExchanges.
	Window int

	// mu serializes whole turns for this session so concurrent webhook
	// deliveries cannot race on the caches or the cart.
	mu sync.Mutex
}

func NewSession(id string) *Session {
	return &Session{
		ID:            id,
		ShownProducts: make(map[string][]entity.Product),
	}
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// CacheShown records catalog rows under the search term that produced them.
func (s *Session) CacheShown(term string, rows []entity.Product) {
	if len(rows) == 0 {
		return
	}
	if s.ShownProducts == nil {
		s.ShownProducts = make(map[string][]entity.Product)
	}
	key := strings.ToLower(strings.TrimSpace(term))
	s.ShownProducts[key] = append(s.ShownProducts[key], rows...)
}

// FindShown scans every cached row for a case-insensitive substring match
// in either direction between the mention and the product name. Terms are
// visited in sorted order so the same mention always picks the same row.
func (s *Session) FindShown(mention string) *entity.Product {
	needle := strings.ToLower(strings.TrimSpace(mention))
	if needle == "" {
		return nil
	}
	terms := make([]string, 0, len(s.ShownProducts))
	for term := range s.ShownProducts {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	for _, term := range terms {
		rows := s.ShownProducts[term]
		for i := range rows {
			name := strings.ToLower(rows[i].Name)
			if strings.Contains(name, needle) || strings.Contains(needle, name) {
				p := rows[i]
				return &p
			}
		}
	}
	return nil
}

// ShownNames returns every distinct cached product name.
func (s *Session) ShownNames() []string {
	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, rows := range s.ShownProducts {
		for _, row := range rows {
			if !seen[row.Name] {
				seen[row.Name] = true
				names = append(names, row.Name)
			}
		}
	}
	return names
}

// RecordExchange appends a round trip, keeping only the most recent window.
func (s *Session) RecordExchange(customer, assistant string) {
	window := s.Window
	if window <= 0 {
		window = MaxExchanges
	}
	s.Exchanges = append(s.Exchanges, Exchange{Customer: customer, Assistant: assistant})
	if len(s.Exchanges) > window {
		s.Exchanges = s.Exchanges[len(s.Exchanges)-window:]
	}
}
