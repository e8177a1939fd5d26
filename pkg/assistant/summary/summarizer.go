package summary

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/GimenezJorge/ChatbotWhatsappGratis/internal/constant"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/llm"
	"github.com/GimenezJorge/ChatbotWhatsappGratis/pkg/store"
)

// Summarizer maintains the session's derived conversation caches at the
// end of each turn. Failures are absorbed: a summary that didn't refresh
// is stale context, not a broken conversation.
type Summarizer struct {
	llmProvider llm.LLMProvider
	model       string
	logger      *log.Logger
}

func NewSummarizer(llmProvider llm.LLMProvider, model string, logger *log.Logger) *Summarizer {
	return &Summarizer{
		llmProvider: llmProvider,
		model:       model,
		logger:      logger,
	}
}

// Refresh rebuilds both summary caches from the recent exchanges.
func (s *Summarizer) Refresh(ctx context.Context, sess *store.Session) {
	if len(sess.Exchanges) == 0 {
		return
	}
	transcript := renderTranscript(sess.Exchanges)

	narrative, err := s.llmProvider.Generate(ctx,
		fmt.Sprintf(constant.SummaryPrompt, transcript),
		llm.WithTemperature(0.2),
		llm.WithModel(s.model),
	)
	if err != nil {
		s.logger.Printf("[WARN] Summary refresh failed, keeping previous: %v", err)
	} else if narrative = strings.TrimSpace(narrative); narrative != "" {
		sess.ConversationSummary = narrative + " " + constant.SummaryDisclaimer
	}

	shortList, err := s.llmProvider.Generate(ctx,
		fmt.Sprintf(constant.ShortListPrompt, transcript),
		llm.WithTemperature(0.0),
		llm.WithModel(s.model),
	)
	if err != nil {
		s.logger.Printf("[WARN] Short product summary refresh failed, keeping previous: %v", err)
		return
	}
	shortList = strings.TrimSpace(shortList)
	if shortList == "" || strings.EqualFold(shortList, "NONE") {
		sess.ShortProductSummary = ""
		return
	}
	sess.ShortProductSummary = shortList
}

func renderTranscript(exchanges []store.Exchange) string {
	var b strings.Builder
	for _, ex := range exchanges {
		b.WriteString("Cliente: " + ex.Customer + "\n")
		b.WriteString("Asistente: " + ex.Assistant + "\n")
	}
	return b.String()
}
