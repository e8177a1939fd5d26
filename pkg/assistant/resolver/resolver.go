package resolver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/constant"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/catalog"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/llm"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/store"
)

// Resolution is the outcome of resolving one product mention. Exactly
// one of the branches is populated:
//   - Product: a single confident match, ready to act on
//   - Candidates: several catalog rows, the customer must pick one
//   - Ingredients: the mention was a dish, these are suggested products
//
// All empty means nothing in the store relates to the mention.
type Resolution struct {
	Product     *entity.Product
	Candidates  []*entity.Product
	Ingredients []*entity.Product
	Dish        string
}

func (r *Resolution) IsEmpty() bool {
	return r.Product == nil && len(r.Candidates) == 0 && len(r.Ingredients) == 0
}

// Cataloger is the slice of the catalog the resolver needs.
type Cataloger interface {
	Lookup(ctx context.Context, term string, nameOnly bool) ([]*entity.Product, error)
}

// Resolver turns free-text product mentions into catalog rows. It works
// through widening stages: the session's shown-products cache, a model
// match over shown names, the catalog itself, and finally dish
// decomposition.
type Resolver struct {
	catalog     Cataloger
	llmProvider llm.LLMProvider
	model       string
	logger      *log.Logger
}

func NewResolver(cat Cataloger, llmProvider llm.LLMProvider, model string, logger *log.Logger) *Resolver {
	return &Resolver{
		catalog:     cat,
		llmProvider: llmProvider,
		model:       model,
		logger:      logger,
	}
}

// ResolveMention resolves one mention against the session and catalog.
// Catalog rows that get shown to the customer are cached on the session
// so later vague references still resolve.
func (r *Resolver) ResolveMention(ctx context.Context, sess *store.Session, mention string) (*Resolution, error) {
	mention = strings.TrimSpace(mention)
	if mention == "" {
		return &Resolution{}, nil
	}

	// Stage 1: something we already showed this customer.
	if p := sess.FindShown(mention); p != nil {
		r.logger.Printf("[RESOLVER] %q hit shown-products cache: %s", mention, p.Name)
		return &Resolution{Product: p}, nil
	}

	// Stage 2: let the model map the mention onto a shown name.
	if p := r.fuzzyShownMatch(ctx, sess, mention); p != nil {
		r.logger.Printf("[RESOLVER] %q fuzzy-matched shown product: %s", mention, p.Name)
		return &Resolution{Product: p}, nil
	}

	// Stage 3: the catalog.
	rows, err := r.catalog.Lookup(ctx, mention, false)
	if err == nil {
		sess.CacheShown(mention, deref(rows))
		if len(rows) == 1 {
			return &Resolution{Product: rows[0]}, nil
		}
		return &Resolution{Candidates: rows}, nil
	}
	if !errors.Is(err, catalog.ErrNotFound) {
		return nil, err
	}

	// Stage 4: maybe the customer named a dish, not a product.
	ingredients, err := r.DecomposeDish(ctx, sess, mention)
	if err != nil {
		return nil, err
	}
	if len(ingredients) > 0 {
		return &Resolution{Ingredients: ingredients, Dish: mention}, nil
	}

	return &Resolution{}, nil
}

// fuzzyShownMatch asks the model which shown product a vague mention
// refers to. The answer only counts when it names a product we actually
// showed AND shares a token with either the mention or the product
// name, so a hallucinated mapping cannot put things in the cart.
func (r *Resolver) fuzzyShownMatch(ctx context.Context, sess *store.Session, mention string) *entity.Product {
	names := sess.ShownNames()
	if len(names) == 0 {
		return nil
	}

	prompt := fmt.Sprintf(constant.FuzzyMatchPrompt, mention, "- "+strings.Join(names, "\n- "))
	response, err := r.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.0),
		llm.WithModel(r.model),
	)
	if err != nil {
		r.logger.Printf("[WARN] Fuzzy shown-product match failed: %v", err)
		return nil
	}

	answer := strings.TrimSpace(strings.Trim(strings.TrimSpace(response), `"'.`))
	if answer == "" || strings.EqualFold(answer, "NONE") {
		return nil
	}

	p := sess.FindShown(answer)
	if p == nil {
		r.logger.Printf("[WARN] Fuzzy match %q is not a shown product, ignoring", answer)
		return nil
	}
	if !sharesToken(mention, p.Name) {
		r.logger.Printf("[WARN] Fuzzy match %q shares no token with %q, ignoring", p.Name, mention)
		return nil
	}
	return p
}

// sharesToken reports whether any meaningful word appears in both
// strings. Short words (articles, prepositions) don't count.
func sharesToken(a, b string) bool {
	tokens := make(map[string]bool)
	for _, tok := range strings.Fields(normalize(a)) {
		if len([]rune(tok)) > 2 {
			tokens[tok] = true
		}
	}
	for _, tok := range strings.Fields(normalize(b)) {
		if len([]rune(tok)) > 2 && tokens[tok] {
			return true
		}
	}
	return false
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u",
)

func normalize(text string) string {
	return accentReplacer.Replace(strings.ToLower(text))
}

func deref(rows []*entity.Product) []entity.Product {
	out := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		if row != nil {
			out = append(out, *row)
		}
	}
	return out
}
