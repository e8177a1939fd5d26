package catalog

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/contract"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/repository/specification"
)

// ErrNotFound reports that no stage of the lookup matched the term.
// Callers branch on it to suggest alternatives instead of failing.
var ErrNotFound = errors.New("catalog: no product matched")

// Catalog resolves free-text search terms against the product database
// through widening stages: whole-category match, prefix on the first
// word, then substring anywhere past the start.
type Catalog struct {
	products contract.ProductRepository
	logger   *log.Logger
}

func NewCatalog(products contract.ProductRepository, logger *log.Logger) *Catalog {
	return &Catalog{
		products: products,
		logger:   logger,
	}
}

// Lookup runs the staged search. nameOnly restricts matching to product
// names, which keeps ingredient lookups from dragging in whole brands.
func (c *Catalog) Lookup(ctx context.Context, term string, nameOnly bool) ([]*entity.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrNotFound
	}

	if !nameOnly {
		rows, err := c.products.FindAll(ctx, specification.CategoryNamed{Name: term})
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			c.logger.Printf("[CATALOG] %q matched category (%d rows)", term, len(rows))
			return rows, nil
		}
	}

	rows, err := c.products.FindAll(ctx, specification.FirstWordPrefix{Term: term, NameOnly: nameOnly})
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		c.logger.Printf("[CATALOG] %q matched prefix (%d rows)", term, len(rows))
		return rows, nil
	}

	rows, err = c.products.FindAll(ctx, specification.NameContainsNotPrefix{Term: term})
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		c.logger.Printf("[CATALOG] %q matched substring (%d rows)", term, len(rows))
		return rows, nil
	}

	return nil, ErrNotFound
}
