package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/constant"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/assistant/catalog"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/llm"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/store"
)

// DecomposeDish asks the model for the ingredients of a dish and maps
// each one onto the catalog. Ingredient lookups are name-only so
// "aceite" never expands into every brand the store carries. Matches
// are cached on the session under the dish name.
func (r *Resolver) DecomposeDish(ctx context.Context, sess *store.Session, dish string) ([]*entity.Product, error) {
	prompt := fmt.Sprintf(constant.IngredientsPrompt, dish, dish)
	response, err := r.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.0),
		llm.WithModel(r.model),
	)
	if err != nil {
		r.logger.Printf("[WARN] Dish decomposition failed for %q: %v", dish, err)
		return nil, nil
	}

	answer := strings.TrimSpace(response)
	if answer == "" || strings.EqualFold(answer, "NONE") {
		return nil, nil
	}

	seen := make(map[string]bool)
	var matches []*entity.Product
	for _, raw := range strings.Split(answer, ",") {
		ingredient := strings.TrimSpace(raw)
		if ingredient == "" {
			continue
		}

		rows, err := r.catalog.Lookup(ctx, ingredient, true)
		if errors.Is(err, catalog.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		for _, row := range rows {
			if seen[row.Name] {
				continue
			}
			seen[row.Name] = true
			matches = append(matches, row)
		}
	}

	if len(matches) > 0 {
		sess.CacheShown(dish, deref(matches))
		r.logger.Printf("[RESOLVER] Dish %q decomposed into %d available ingredients", dish, len(matches))
	}
	return matches, nil
}
