package response

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/constant"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/entity"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/llm"
)

// Synthesizer produces every customer-facing message. LLM phrasing is
// cosmetic: each method has a deterministic Spanish template behind it,
// so the customer always gets an answer even with the model down.
type Synthesizer struct {
	llmProvider llm.LLMProvider
	model       string
	storeInfo   string
	logger      *log.Logger
}

func NewSynthesizer(llmProvider llm.LLMProvider, model, storeInfo string, logger *log.Logger) *Synthesizer {
	return &Synthesizer{
		llmProvider: llmProvider,
		model:       model,
		storeInfo:   storeInfo,
		logger:      logger,
	}
}

// generateOr runs the prompt and falls back to the deterministic text
// on any failure or empty reply.
func (s *Synthesizer) generateOr(ctx context.Context, prompt, fallback string) string {
	out, err := s.llmProvider.Generate(ctx, prompt,
		llm.WithTemperature(0.6),
		llm.WithModel(s.model),
	)
	if err != nil {
		s.logger.Printf("[WARN] Responder model failed, using template: %v", err)
		return fallback
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return fallback
	}
	return out
}

// ConfirmAdd rephrases the add-confirmation. The deterministic text
// carries the quantities and totals, the model only adjusts tone.
func (s *Synthesizer) ConfirmAdd(ctx context.Context, deterministic string) string {
	return s.generateOr(ctx, fmt.Sprintf(constant.ConfirmAddPrompt, deterministic), deterministic)
}

// ConfirmIntent asks the customer to confirm a hesitantly detected
// action before anything executes.
func (s *Synthesizer) ConfirmIntent(ctx context.Context, action string) string {
	fallback := fmt.Sprintf(constant.TemplateConfirmIntent, action)
	return s.generateOr(ctx, fmt.Sprintf(constant.ConfirmIntentPrompt, action), fallback)
}

// Clarify asks which of several candidate products the customer meant.
func (s *Synthesizer) Clarify(ctx context.Context, mention string, candidates []*entity.Product) string {
	var options strings.Builder
	for i, p := range candidates {
		options.WriteString(fmt.Sprintf("%d. %s ($%.2f)\n", i+1, p.Name, p.SalePrice))
	}
	fallback := fmt.Sprintf(constant.TemplateClarify, mention, strings.TrimRight(options.String(), "\n"))
	return s.generateOr(ctx, fmt.Sprintf(constant.ClarifyPrompt, mention, options.String()), fallback)
}

// NotAvailable tells the customer nothing in the store matched.
func (s *Synthesizer) NotAvailable(ctx context.Context, mention string) string {
	fallback := fmt.Sprintf(constant.TemplateNotAvailable, mention)
	return s.generateOr(ctx, fmt.Sprintf(constant.NotAvailablePrompt, mention), fallback)
}

// ChitChat answers small talk grounded on store info and the summary.
func (s *Synthesizer) ChitChat(ctx context.Context, utterance, summary string) string {
	prompt := fmt.Sprintf(constant.ChitChatPrompt, s.storeInfo, summary, utterance)
	return s.generateOr(ctx, prompt, constant.TemplateChitChatFallback)
}

// StoreInfo answers questions about the store (hours, address, payment).
func (s *Synthesizer) StoreInfo(ctx context.Context, query string) string {
	if s.storeInfo == "" {
		return constant.TemplateStoreInfoFallback
	}
	prompt := fmt.Sprintf(constant.StoreInfoPrompt, s.storeInfo, query)
	return s.generateOr(ctx, prompt, constant.TemplateStoreInfoFallback)
}

// ProductList renders the catalog rows offered to the customer. Always
// deterministic: prices quoted to a customer must come from the rows.
func (s *Synthesizer) ProductList(products []*entity.Product) string {
	var listing strings.Builder
	for _, p := range products {
		listing.WriteString(fmt.Sprintf(constant.TemplateProductListLine, p.Name, p.SalePrice))
	}
	return fmt.Sprintf(constant.TemplateProductList, listing.String())
}

// IngredientSuggestion renders the dish-decomposition offer.
func (s *Synthesizer) IngredientSuggestion(dish string, products []*entity.Product) string {
	var listing strings.Builder
	for _, p := range products {
		listing.WriteString(fmt.Sprintf(constant.TemplateProductListLine, p.Name, p.SalePrice))
	}
	return fmt.Sprintf(constant.TemplateIngredientSuggestion, dish, listing.String())
}
